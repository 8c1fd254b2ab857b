package formats

import (
	"fmt"
	"strings"
)

type DOTGenerator struct {
	graph *SliceGraph
}

func NewDOTGenerator(g *SliceGraph) *DOTGenerator {
	return &DOTGenerator{graph: g}
}

func (d *DOTGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("digraph slice {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  overlap=false;\n\n")

	// One cluster per contributing file.
	for i, file := range d.graph.Files {
		buf.WriteString(fmt.Sprintf("  subgraph cluster_%d {\n", i))
		buf.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeLabel(fileLabel(file))))
		buf.WriteString("    style=filled;\n")
		buf.WriteString("    color=\"whitesmoke\";\n")
		for _, n := range d.graph.NodesInFile(file) {
			label := fmt.Sprintf("%s\\n(%s)", escapeLabel(n.Name), n.Kind)
			if n.InCycle {
				buf.WriteString(fmt.Sprintf("    \"%s\" [label=\"%s\", style=\"rounded,filled\", fillcolor=\"mistyrose\", color=\"red\", penwidth=2.0];\n", escapeLabel(n.Name), label))
			} else {
				buf.WriteString(fmt.Sprintf("    \"%s\" [label=\"%s\", style=\"rounded,filled\", fillcolor=\"white\", color=\"darkslategrey\"];\n", escapeLabel(n.Name), label))
			}
		}
		buf.WriteString("  }\n\n")
	}

	if len(d.graph.External) > 0 {
		buf.WriteString("  // Unresolved references\n")
		for _, name := range d.graph.External {
			buf.WriteString(fmt.Sprintf("  \"%s\" [style=\"rounded,filled,dashed\", fillcolor=\"gainsboro\", color=\"grey\"];\n", escapeLabel(name)))
		}
		buf.WriteString("\n")
	}

	for _, e := range d.graph.Edges {
		from, to := escapeLabel(e.From), escapeLabel(e.To)
		switch {
		case e.Cycle:
			buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"red\", penwidth=3.0, label=\"CYCLE\"];\n", from, to))
		case e.External:
			buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"grey\", style=dashed];\n", from, to))
		default:
			buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [color=\"forestgreen\"];\n", from, to))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}
