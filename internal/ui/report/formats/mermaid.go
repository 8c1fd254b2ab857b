package formats

import (
	"fmt"
	"strconv"
	"strings"
)

type MermaidGenerator struct {
	graph *SliceGraph
}

func NewMermaidGenerator(g *SliceGraph) *MermaidGenerator {
	return &MermaidGenerator{graph: g}
}

func (m *MermaidGenerator) Generate() (string, error) {
	var b strings.Builder
	b.WriteString("flowchart LR\n")

	ids := m.graph.ids()
	var cycleIDs []string
	for i, file := range m.graph.Files {
		b.WriteString(fmt.Sprintf("  subgraph file_%d[\"%s\"]\n", i, escapeLabel(fileLabel(file))))
		for _, n := range m.graph.NodesInFile(file) {
			b.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids[n.Name], escapeLabel(n.Name)))
			if n.InCycle {
				cycleIDs = append(cycleIDs, ids[n.Name])
			}
		}
		b.WriteString("  end\n")
	}
	externalIDs := make([]string, 0, len(m.graph.External))
	for _, name := range m.graph.External {
		b.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", ids[name], escapeLabel(name)))
		externalIDs = append(externalIDs, ids[name])
	}

	b.WriteString("\n")
	var cycleLinks, externalLinks []string
	for i, e := range m.graph.Edges {
		label := ""
		if e.Cycle {
			label = "|CYCLE|"
			cycleLinks = append(cycleLinks, strconv.Itoa(i))
		} else if e.External {
			externalLinks = append(externalLinks, strconv.Itoa(i))
		}
		b.WriteString(fmt.Sprintf("  %s -->%s %s\n", ids[e.From], label, ids[e.To]))
	}

	if len(externalIDs) > 0 {
		b.WriteString("  classDef externalNode fill:#efefef,stroke:#808080,stroke-dasharray:4 3,color:#000000;\n")
		b.WriteString(fmt.Sprintf("  class %s externalNode;\n", strings.Join(externalIDs, ",")))
	}
	if len(cycleIDs) > 0 {
		b.WriteString("  classDef cycleNode fill:#ffecec,stroke:#cc0000,stroke-width:2px,color:#000000;\n")
		b.WriteString(fmt.Sprintf("  class %s cycleNode;\n", strings.Join(cycleIDs, ",")))
	}
	if len(cycleLinks) > 0 {
		b.WriteString(fmt.Sprintf("  linkStyle %s stroke:#cc0000,stroke-width:3px;\n", strings.Join(cycleLinks, ",")))
	}
	if len(externalLinks) > 0 {
		b.WriteString(fmt.Sprintf("  linkStyle %s stroke:#777777,stroke-dasharray:4 3;\n", strings.Join(externalLinks, ",")))
	}
	return b.String(), nil
}
