package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ExtractionContext carries the source buffer and helpers shared by the
// collector and snippet extractor.
type ExtractionContext struct {
	Source []byte
	Path   string
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

func (c *ExtractionContext) Span(start, end uint32) string {
	return string(c.Source[start:end])
}

func (c *ExtractionContext) Location(node *sitter.Node) Location {
	return Location{
		File:   c.Path,
		Line:   int(node.StartPoint().Row) + 1,
		Column: int(node.StartPoint().Column) + 1,
	}
}

// ChildOfKind returns the first direct child with the given kind.
func (c *ExtractionContext) ChildOfKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == kind {
			return child
		}
	}
	return nil
}

func (c *ExtractionContext) ChildText(node *sitter.Node, kind string) string {
	return c.Text(c.ChildOfKind(node, kind))
}

// Walk visits node and its descendants in document order. visit returns
// false to skip a node's children.
func Walk(node *sitter.Node, visit func(n *sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		Walk(node.Child(i), visit)
	}
}
