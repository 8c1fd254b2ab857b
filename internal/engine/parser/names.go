package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// nameSets accumulates the declared and referenced names of one item.
type nameSets struct {
	declared   map[string]bool
	referenced map[string]bool
}

func newNameSets() *nameSets {
	return &nameSets{
		declared:   make(map[string]bool),
		referenced: make(map[string]bool),
	}
}

// collectNames is the single recursive pass shared by every item kind. Every
// capitalized identifier is a reference; type, protocol and typealias
// declarations nested anywhere in a type item add to its declared names.
func collectNames(ctx *ExtractionContext, item *sitter.Node, kind ItemKind) *nameSets {
	sets := newNameSets()

	switch kind {
	case ItemType, ItemTypeAlias:
		if name := declaredName(ctx, item); name != "" {
			sets.declared[name] = true
		}
	}

	Walk(item, func(n *sitter.Node) bool {
		switch n.Type() {
		case "type_identifier", "simple_identifier":
			if name := trimBackticks(ctx.Text(n)); isTypeLikeName(name) {
				sets.referenced[name] = true
			}
			return false
		case "comment", "multiline_comment":
			return false
		case "class_declaration":
			if kind == ItemType && n != item && declarationKeyword(ctx, n) != "extension" {
				if name := declaredName(ctx, n); name != "" {
					sets.declared[name] = true
				}
			}
		case "protocol_declaration", "typealias_declaration":
			if kind == ItemType && n != item {
				if name := declaredName(ctx, n); name != "" {
					sets.declared[name] = true
				}
			}
		}
		return true
	})

	for name := range sets.declared {
		delete(sets.referenced, name)
	}
	return sets
}
