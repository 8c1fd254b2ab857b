package parser

import (
	"bytes"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const snippetMarker = "#Preview"

var entryPointAttributes = map[string]bool{
	"main":              true,
	"UIApplicationMain": true,
	"NSApplicationMain": true,
}

var typeDeclarationKeywords = map[string]bool{
	"class":     true,
	"struct":    true,
	"enum":      true,
	"actor":     true,
	"extension": true,
}

func isCommentNode(node *sitter.Node) bool {
	switch node.Type() {
	case "comment", "multiline_comment":
		return true
	}
	return false
}

// classifyItem maps a top-level syntax node onto the closed item set.
func classifyItem(ctx *ExtractionContext, node *sitter.Node) ItemKind {
	if isSnippetStart(ctx, node) {
		return ItemSnippet
	}
	switch node.Type() {
	case "import_declaration":
		return ItemImport
	case "class_declaration":
		if declarationKeyword(ctx, node) == "extension" {
			return ItemExtension
		}
		return ItemType
	case "protocol_declaration":
		return ItemType
	case "function_declaration":
		return ItemFunction
	case "property_declaration":
		return ItemConstant
	case "typealias_declaration":
		return ItemTypeAlias
	}
	return ItemStatement
}

// isDeclarationNode reports whether node is a recognised declaration; used to
// stop a snippet group from swallowing the next real item.
func isDeclarationNode(node *sitter.Node) bool {
	switch node.Type() {
	case "import_declaration", "class_declaration", "protocol_declaration",
		"function_declaration", "property_declaration", "typealias_declaration":
		return true
	}
	return false
}

// isSnippetStart matches `#Preview` both as a macro invocation node and as
// the leading fragment of an error-recovered parse, where the `#` may be
// split from the identifier.
func isSnippetStart(ctx *ExtractionContext, node *sitter.Node) bool {
	rest := ctx.Source[node.StartByte():]
	if !bytes.HasPrefix(rest, []byte(snippetMarker)) {
		return false
	}
	after := rest[len(snippetMarker):]
	if len(after) == 0 {
		return true
	}
	c := after[0]
	return !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

// snippetGroup returns the index of the last top-level child that belongs to
// the snippet starting at child i, and the trailing closure holding its
// body (nil when none was found).
func snippetGroup(ctx *ExtractionContext, root *sitter.Node, i int) (int, *sitter.Node) {
	count := int(root.ChildCount())
	for j := i; j < count; j++ {
		child := root.Child(j)
		if child == nil {
			continue
		}
		if j > i && (isDeclarationNode(child) || isSnippetStart(ctx, child)) {
			break
		}
		if closure := trailingClosure(child); closure != nil {
			return j, closure
		}
	}
	return i, nil
}

// trailingClosure finds the closure literal attached as a call suffix below
// node, falling back to the first closure literal of any kind.
func trailingClosure(node *sitter.Node) *sitter.Node {
	var trailing, first *sitter.Node
	var visit func(n, parent *sitter.Node)
	visit = func(n, parent *sitter.Node) {
		if n == nil || trailing != nil {
			return
		}
		if n.Type() == "lambda_literal" {
			if parent != nil && parent.Type() == "call_suffix" {
				trailing = n
				return
			}
			if first == nil {
				first = n
			}
			return
		}
		for k := 0; k < int(n.ChildCount()); k++ {
			visit(n.Child(k), n)
		}
	}
	visit(node, nil)
	if trailing != nil {
		return trailing
	}
	return first
}

// closureBody returns the text between a closure literal's braces.
func closureBody(ctx *ExtractionContext, closure *sitter.Node) string {
	start, end := closure.StartByte(), closure.EndByte()
	count := int(closure.ChildCount())
	if count > 0 {
		if open := closure.Child(0); open != nil && open.Type() == "{" {
			start = open.EndByte()
		}
		if closeBrace := closure.Child(count - 1); closeBrace != nil && closeBrace.Type() == "}" {
			end = closeBrace.StartByte()
		}
	}
	// Closures with a signature keep their body after `in`.
	for k := 0; k < count; k++ {
		child := closure.Child(k)
		if child != nil && child.Type() == "in" {
			start = child.EndByte()
		}
	}
	if end < start {
		return ""
	}
	return ctx.Span(start, end)
}

// importedModule returns the module named by an import declaration: the
// first path component, so `import struct Foo.Bar` yields `Foo`.
func importedModule(ctx *ExtractionContext, node *sitter.Node) string {
	ident := ctx.ChildOfKind(node, "identifier")
	if ident != nil {
		if first := ctx.ChildOfKind(ident, "simple_identifier"); first != nil {
			return trimBackticks(ctx.Text(first))
		}
		return trimBackticks(strings.SplitN(ctx.Text(ident), ".", 2)[0])
	}
	// Fallback: the token following `import` and an optional kind keyword.
	fields := strings.Fields(ctx.Text(node))
	for k := 0; k < len(fields); k++ {
		if fields[k] != "import" {
			continue
		}
		for _, candidate := range fields[k+1:] {
			switch candidate {
			case "struct", "class", "enum", "protocol", "typealias", "func", "let", "var":
				continue
			}
			return trimBackticks(strings.SplitN(candidate, ".", 2)[0])
		}
	}
	return ""
}

// declarationKeyword returns class/struct/enum/actor/extension for a
// class_declaration node.
func declarationKeyword(ctx *ExtractionContext, node *sitter.Node) string {
	if kind := node.ChildByFieldName("declaration_kind"); kind != nil {
		return ctx.Text(kind)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || child.IsNamed() {
			continue
		}
		if typeDeclarationKeywords[child.Type()] {
			return child.Type()
		}
	}
	return ""
}

// declaredName returns the name introduced by a type, protocol or typealias
// declaration.
func declaredName(ctx *ExtractionContext, node *sitter.Node) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return trimBackticks(ctx.Text(name))
	}
	if name := ctx.ChildOfKind(node, "type_identifier"); name != nil {
		return trimBackticks(ctx.Text(name))
	}
	return ""
}

// extendedTypeName returns the nominal type an extension applies to.
func extendedTypeName(ctx *ExtractionContext, node *sitter.Node) string {
	target := node.ChildByFieldName("name")
	if target == nil {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			if child.Type() == "user_type" || child.Type() == "type_identifier" {
				target = child
				break
			}
		}
	}
	if target == nil {
		return ""
	}
	if target.Type() == "user_type" {
		last := ""
		for i := 0; i < int(target.NamedChildCount()); i++ {
			child := target.NamedChild(i)
			if child != nil && child.Type() == "type_identifier" {
				last = ctx.Text(child)
			}
		}
		if last != "" {
			return trimBackticks(last)
		}
	}
	return lastTypeComponent(ctx.Text(target))
}

// hasEntryPointAttribute reports whether the item's attribute list carries
// an application entry-point marker.
func hasEntryPointAttribute(ctx *ExtractionContext, node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "attribute":
			if entryPointAttributes[attributeName(ctx, child)] {
				return true
			}
		case "modifiers":
			for k := 0; k < int(child.ChildCount()); k++ {
				attr := child.Child(k)
				if attr != nil && attr.Type() == "attribute" && entryPointAttributes[attributeName(ctx, attr)] {
					return true
				}
			}
		}
	}
	return false
}

func attributeName(ctx *ExtractionContext, attr *sitter.Node) string {
	if userType := ctx.ChildOfKind(attr, "user_type"); userType != nil {
		return lastTypeComponent(ctx.Text(userType))
	}
	text := strings.TrimPrefix(strings.TrimSpace(ctx.Text(attr)), "@")
	return lastTypeComponent(text)
}
