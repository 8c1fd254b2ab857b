package formats

import (
	"path/filepath"
	"sort"

	"swiftslice/internal/engine/parser"
	"swiftslice/internal/engine/resolver"
)

// Node is one resolved declaration owner: a declared type, an extended
// type that nothing in the slice declares, or a free declaration.
type Node struct {
	Name    string
	File    string
	Kind    string
	InCycle bool
}

// Edge is a type reference between two nodes. External edges point at a
// name no collected file declares.
type Edge struct {
	From     string
	To       string
	External bool
	Cycle    bool
}

// SliceGraph is the reference graph restricted to one resolved set.
type SliceGraph struct {
	Nodes    []Node
	Edges    []Edge
	External []string
	Files    []string
}

func nodeName(decl *parser.Declaration) string {
	if len(decl.DeclaredTypes) > 0 {
		return decl.DeclaredTypes[0]
	}
	if decl.ExtendedType != "" {
		return decl.ExtendedType
	}
	return decl.Title()
}

// NewSliceGraph builds the graph of set. Cycles are groups of type names as
// reported by cycle detection on the full index.
func NewSliceGraph(set *resolver.ResolvedSet, unresolved []resolver.UnresolvedReference, cycles [][]string) *SliceGraph {
	owner := make(map[string]string)
	for _, decl := range set.Declarations {
		name := nodeName(decl)
		for _, declared := range decl.DeclaredTypes {
			owner[declared] = name
		}
	}
	for _, decl := range set.Declarations {
		if decl.IsExtension() {
			if _, ok := owner[decl.ExtendedType]; !ok {
				owner[decl.ExtendedType] = decl.ExtendedType
			}
		}
	}

	cycleNodes := make(map[string]bool)
	cycleEdges := make(map[string]map[string]bool)
	for _, cycle := range cycles {
		for i := range cycle {
			from, to := owner[cycle[i]], owner[cycle[(i+1)%len(cycle)]]
			if from == "" || to == "" {
				continue
			}
			cycleNodes[from] = true
			if cycleEdges[from] == nil {
				cycleEdges[from] = make(map[string]bool)
			}
			cycleEdges[from][to] = true
		}
	}

	missing := make(map[string]bool, len(unresolved))
	for _, ref := range unresolved {
		missing[ref.Name] = true
	}

	g := &SliceGraph{}
	seenNode := make(map[string]bool)
	seenEdge := make(map[string]map[string]bool)
	seenFile := make(map[string]bool)
	external := make(map[string]bool)
	for _, decl := range set.Declarations {
		from := nodeName(decl)
		if decl.IsExtension() {
			from = owner[decl.ExtendedType]
		}
		if !seenNode[from] {
			seenNode[from] = true
			kind := decl.Kind.String()
			if decl.IsExtension() && from == decl.ExtendedType {
				kind = "extension"
			}
			g.Nodes = append(g.Nodes, Node{Name: from, File: decl.File, Kind: kind, InCycle: cycleNodes[from]})
		}
		if !seenFile[decl.File] {
			seenFile[decl.File] = true
			g.Files = append(g.Files, decl.File)
		}
		if seenEdge[from] == nil {
			seenEdge[from] = make(map[string]bool)
		}
		for _, ref := range decl.ReferencedTypes {
			to, ok := owner[ref]
			isExternal := false
			if !ok {
				if !missing[ref] {
					continue
				}
				to, isExternal = ref, true
				external[ref] = true
			}
			if to == from || seenEdge[from][to] {
				continue
			}
			seenEdge[from][to] = true
			g.Edges = append(g.Edges, Edge{From: from, To: to, External: isExternal, Cycle: cycleEdges[from][to]})
		}
	}

	for name := range external {
		g.External = append(g.External, name)
	}
	sort.Strings(g.External)
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].From != g.Edges[j].From {
			return g.Edges[i].From < g.Edges[j].From
		}
		return g.Edges[i].To < g.Edges[j].To
	})
	return g
}

// NodesInFile returns the nodes placed in file, in discovery order.
func (g *SliceGraph) NodesInFile(file string) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.File == file {
			out = append(out, n)
		}
	}
	return out
}

func fileLabel(path string) string {
	return filepath.Base(path)
}
