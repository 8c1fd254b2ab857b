package formats

import (
	"fmt"
	"strings"

	"swiftslice/internal/engine/resolver"
)

type TSVGenerator struct {
	graph *SliceGraph
}

func NewTSVGenerator(g *SliceGraph) *TSVGenerator {
	return &TSVGenerator{graph: g}
}

func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("From\tTo\tKind\n")
	for _, e := range t.graph.Edges {
		kind := "reference"
		switch {
		case e.Cycle:
			kind = "cycle"
		case e.External:
			kind = "unresolved"
		}
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\n", e.From, e.To, kind))
	}

	return buf.String(), nil
}

// GenerateDeclarations lists every resolved declaration in emission order.
func (t *TSVGenerator) GenerateDeclarations(set *resolver.ResolvedSet) (string, error) {
	var buf strings.Builder

	buf.WriteString("Index\tKind\tTitle\tFile\tLine\n")
	for _, decl := range set.Declarations {
		buf.WriteString(fmt.Sprintf("%d\t%s\t%s\t%s\t%d\n",
			decl.Index,
			decl.Kind,
			decl.Title(),
			decl.File,
			decl.Line,
		))
	}

	return buf.String(), nil
}
