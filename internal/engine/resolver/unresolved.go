package resolver

import (
	"sort"

	"swiftslice/internal/engine/graph"
)

// UnresolvedReference is a non-builtin name used by a resolved declaration
// that no collected file declares. These are not errors: the name may come
// from a module the registry does not know, or from a file that failed to
// parse.
type UnresolvedReference struct {
	Name  string
	Users []string // titles of the resolved declarations mentioning Name
}

// Unresolved lists the dangling references of set, sorted by name.
func (r *Resolver) Unresolved(index *graph.Index, set *ResolvedSet) []UnresolvedReference {
	users := make(map[string][]string)
	for _, decl := range set.Declarations {
		for _, name := range decl.ReferencedTypes {
			if r.registry.Contains(name) || len(index.Declarers(name)) > 0 || len(index.Extensions(name)) > 0 {
				continue
			}
			users[name] = append(users[name], decl.Title())
		}
	}

	out := make([]UnresolvedReference, 0, len(users))
	for name, titles := range users {
		out = append(out, UnresolvedReference{Name: name, Users: titles})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
