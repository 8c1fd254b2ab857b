package formats

import (
	"fmt"
	"strings"
	"unicode"
)

func sanitizeID(name string) string {
	if name == "" {
		return "n"
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := b.String()
	if unicode.IsDigit(rune(out[0])) {
		return "n_" + out
	}
	return out
}

// makeIDs assigns a unique diagram identifier to every name.
func makeIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	used := make(map[string]int, len(names))
	for _, name := range names {
		if _, ok := ids[name]; ok {
			continue
		}
		base := sanitizeID(name)
		idx := used[base]
		used[base] = idx + 1
		if idx == 0 {
			ids[name] = base
			continue
		}
		ids[name] = fmt.Sprintf("%s_%d", base, idx+1)
	}
	return ids
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func (g *SliceGraph) ids() map[string]string {
	names := make([]string, 0, len(g.Nodes)+len(g.External))
	for _, n := range g.Nodes {
		names = append(names, n.Name)
	}
	names = append(names, g.External...)
	return makeIDs(names)
}
