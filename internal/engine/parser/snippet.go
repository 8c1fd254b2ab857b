package parser

import (
	"context"
	"os"
	"strings"

	"swiftslice/internal/core/errors"
)

// SnippetExtractor finds the `#Preview` block of a file and the imports it
// is written against.
type SnippetExtractor struct {
	parser *Parser
}

func NewSnippetExtractor(p *Parser) *SnippetExtractor {
	if p == nil {
		p = NewParser()
	}
	return &SnippetExtractor{parser: p}
}

// ExtractSnippet returns the dedented body of the first `#Preview` block in
// path. The block is located through the syntax tree, so braces inside
// strings or comments do not confuse it.
func (e *SnippetExtractor) ExtractSnippet(ctx context.Context, path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithPath(err, errors.CodeSnippetFileNotFound, "file not found", path)
	}
	return e.ExtractSnippetSource(ctx, path, source)
}

// ExtractSnippetSource is ExtractSnippet over an in-memory buffer.
func (e *SnippetExtractor) ExtractSnippetSource(ctx context.Context, path string, source []byte) (string, error) {
	tree, err := e.parser.Parse(ctx, source)
	if err != nil {
		return "", errors.AddContext(err, errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	ectx := &ExtractionContext{Source: source, Path: path}
	for i := 0; i < int(root.ChildCount()); i++ {
		node := root.Child(i)
		if node == nil || !isSnippetStart(ectx, node) {
			continue
		}
		_, closure := snippetGroup(ectx, root, i)
		if closure == nil {
			break
		}
		body := Dedent(closureBody(ectx, closure))
		if body == "" {
			return "", errors.WithPath(nil, errors.CodeEmptySnippetBody, "empty snippet body", path)
		}
		return body, nil
	}
	return "", errors.WithPath(nil, errors.CodeNoSnippetFound, "no snippet found", path)
}

// ExtractImports returns the sorted module names imported by path.
func (e *SnippetExtractor) ExtractImports(ctx context.Context, path string) ([]string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithPath(err, errors.CodeSnippetFileNotFound, "file not found", path)
	}
	tree, err := e.parser.Parse(ctx, source)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	ectx := &ExtractionContext{Source: source, Path: path}
	seen := make(map[string]bool)
	for i := 0; i < int(root.ChildCount()); i++ {
		node := root.Child(i)
		if node == nil || node.Type() != "import_declaration" {
			continue
		}
		if module := importedModule(ectx, node); module != "" {
			seen[module] = true
		}
	}
	return sortedSet(seen), nil
}

// Dedent strips the indentation shared by every non-blank line and trims
// surrounding blank lines. Trailing whitespace is dropped from every line.
func Dedent(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent < 0 {
		return ""
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		out = append(out, strings.TrimRight(line[minIndent:], " \t"))
	}

	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
