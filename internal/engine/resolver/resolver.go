// Package resolver computes the minimal slice of declarations needed to
// compile a start file and a set of seed types on their own.
package resolver

import (
	"log/slog"
	"sort"

	"swiftslice/internal/engine/builtins"
	"swiftslice/internal/engine/graph"
	"swiftslice/internal/engine/parser"
)

// ResolvedSet is the fixed point of the closure computation.
type ResolvedSet struct {
	// Declarations holds the resolved declarations ordered by discovery
	// index, which is also the emission order.
	Declarations         []*parser.Declaration
	ContributingFiles    []string
	ResolvedImports      []string
	TotalDeclarations    int
	ResolvedDeclarations int
	// Rescued counts declarations added by the safety-net pass.
	Rescued int

	members map[*parser.Declaration]bool
}

func (s *ResolvedSet) Contains(decl *parser.Declaration) bool {
	return s.members[decl]
}

// Resolver runs the closure computation against a builtin registry.
type Resolver struct {
	registry *builtins.Registry
	logger   *slog.Logger
}

func New(registry *builtins.Registry, logger *slog.Logger) *Resolver {
	if registry == nil {
		registry = builtins.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{registry: registry, logger: logger}
}

func (r *Resolver) Registry() *builtins.Registry {
	return r.registry
}

// Resolve computes the declaration-level slice for startFile and seeds.
//
// Seeding takes every non-entry-point declaration of startFile plus every
// declarer and extension of a non-builtin seed name. Expansion is a FIFO
// walk: each popped declaration is resolved at most once, entry points are
// discarded, and the declarers and extensions of its non-builtin references
// plus the extensions of its own declared names are queued. Free functions
// and constants in already contributing files are then added, since no type
// name can lead to them.
func (r *Resolver) Resolve(index *graph.Index, startFile string, seeds []string) *ResolvedSet {
	queue := make([]*parser.Declaration, 0, index.Len())
	for _, decl := range index.FileDeclarations(startFile) {
		if !decl.EntryPoint {
			queue = append(queue, decl)
		}
	}
	for _, seed := range seeds {
		if r.registry.Contains(seed) {
			continue
		}
		queue = append(queue, index.Declarers(seed)...)
		queue = append(queue, index.Extensions(seed)...)
	}

	resolved := make(map[*parser.Declaration]bool)
	for head := 0; head < len(queue); head++ {
		decl := queue[head]
		if resolved[decl] || decl.EntryPoint {
			continue
		}
		resolved[decl] = true

		for _, name := range decl.ReferencedTypes {
			if r.registry.Contains(name) {
				continue
			}
			queue = append(queue, index.Declarers(name)...)
			queue = append(queue, index.Extensions(name)...)
		}
		// A declared name is user-defined by construction, so its
		// extensions are never filtered.
		for _, name := range decl.DeclaredTypes {
			queue = append(queue, index.Extensions(name)...)
		}
	}

	contributing := make(map[string]bool)
	for decl := range resolved {
		contributing[decl.File] = true
	}

	rescued := 0
	for _, decl := range index.Declarations() {
		if resolved[decl] || decl.EntryPoint || !decl.IsFree() || !contributing[decl.File] {
			continue
		}
		resolved[decl] = true
		rescued++
	}

	set := assemble(index, resolved)
	set.Rescued = rescued
	r.logger.Debug("closure resolved",
		"start", startFile,
		"seeds", len(seeds),
		"visited", len(queue),
		"resolved", set.ResolvedDeclarations,
		"total", set.TotalDeclarations,
		"rescued", rescued,
	)
	return set
}

func assemble(index *graph.Index, resolved map[*parser.Declaration]bool) *ResolvedSet {
	set := &ResolvedSet{
		Declarations:      make([]*parser.Declaration, 0, len(resolved)),
		TotalDeclarations: index.Len(),
		members:           resolved,
	}

	files := make(map[string]bool)
	for decl := range resolved {
		set.Declarations = append(set.Declarations, decl)
		files[decl.File] = true
	}
	sort.Slice(set.Declarations, func(i, j int) bool {
		return set.Declarations[i].Index < set.Declarations[j].Index
	})
	set.ResolvedDeclarations = len(set.Declarations)

	imports := make(map[string]bool)
	for file := range files {
		set.ContributingFiles = append(set.ContributingFiles, file)
		for _, module := range index.Imports(file) {
			imports[module] = true
		}
	}
	sort.Strings(set.ContributingFiles)
	for module := range imports {
		set.ResolvedImports = append(set.ResolvedImports, module)
	}
	sort.Strings(set.ResolvedImports)
	return set
}
