package parser

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// isTypeLikeName reports whether an identifier is capitalized, the only
// signal used to treat it as a type reference.
func isTypeLikeName(name string) bool {
	if name == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func trimBackticks(value string) string {
	return strings.Trim(strings.TrimSpace(value), "`")
}

func sortedSet(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func appendUnique(values []string, seen map[string]bool, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return values
	}
	if seen[value] {
		return values
	}
	seen[value] = true
	return append(values, value)
}

// lastTypeComponent reduces a written type such as `Outer.Inner<T>` to the
// nominal name it denotes (`Inner`).
func lastTypeComponent(written string) string {
	written = strings.TrimSpace(written)
	if i := strings.IndexAny(written, "<( \t\n"); i >= 0 {
		written = written[:i]
	}
	if i := strings.LastIndex(written, "."); i >= 0 {
		written = written[i+1:]
	}
	return trimBackticks(written)
}
