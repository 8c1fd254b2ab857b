package parser

import (
	"regexp"
	"sort"
)

var identifierPattern = regexp.MustCompile(`[\p{L}_][\p{L}\p{N}_]*`)

// ScanIdentifiers returns every capitalized identifier token in text, sorted
// and unique. It has no notion of scope: a capitalized non-type symbol is
// indistinguishable from a type reference.
func ScanIdentifiers(text string) []string {
	seen := make(map[string]bool)
	for _, token := range identifierPattern.FindAllString(text, -1) {
		if isTypeLikeName(token) {
			seen[token] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
