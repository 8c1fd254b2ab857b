// Package builtins holds the deny-list of names assumed to come from the
// Swift standard library and platform SDKs. Such names are never used as
// anchors when expanding the reference graph.
package builtins

import (
	_ "embed"
	"sort"
	"strings"
)

//go:embed swift.txt
var swiftBuiltinsData string

var swiftBuiltins = map[string]bool{}

func init() {
	for _, line := range strings.Split(swiftBuiltinsData, "\n") {
		registerBuiltinLine(swiftBuiltins, line)
	}
}

func registerBuiltinLine(target map[string]bool, line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	target[line] = true
}

// Registry answers whether a name is library-provided. It is immutable once
// built and safe for concurrent reads.
type Registry struct {
	names map[string]bool
}

// Default returns the registry of embedded Swift/SDK names.
func Default() *Registry {
	return New(nil)
}

// New returns the embedded names plus extra, e.g. third-party module types
// configured by the user.
func New(extra []string) *Registry {
	names := make(map[string]bool, len(swiftBuiltins)+len(extra))
	for name := range swiftBuiltins {
		names[name] = true
	}
	for _, name := range extra {
		registerBuiltinLine(names, name)
	}
	return &Registry{names: names}
}

// Contains reports whether name is treated as builtin. A nil registry
// contains nothing.
func (r *Registry) Contains(name string) bool {
	if r == nil {
		return false
	}
	return r.names[name]
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns the registry contents in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.names))
	for name := range r.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
