package parser

import (
	"context"
	"log/slog"

	"swiftslice/internal/core/errors"

	sitter "github.com/smacker/go-tree-sitter"
)

// Collector parses Swift files into ordered top-level declarations.
type Collector struct {
	parser *Parser
	logger *slog.Logger
}

func NewCollector(p *Parser, logger *slog.Logger) *Collector {
	if p == nil {
		p = NewParser()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Collector{parser: p, logger: logger}
}

// CollectFile reads and collects path. Read failures carry
// CodeUnreadableSourceFile; the caller decides whether they are fatal.
func (c *Collector) CollectFile(ctx context.Context, path string) (*FileRecord, error) {
	source, err := readSource(path, errors.CodeUnreadableSourceFile)
	if err != nil {
		return nil, err
	}
	return c.Collect(ctx, path, source)
}

// Collect builds the FileRecord for source. Declaration indexes are left at
// zero; see NumberDeclarations.
func (c *Collector) Collect(ctx context.Context, path string, source []byte) (*FileRecord, error) {
	tree, err := c.parser.Parse(ctx, source)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		c.logger.Debug("syntax errors in source file, collecting best effort", "path", path)
	}

	ectx := &ExtractionContext{Source: source, Path: path}
	record := &FileRecord{Path: path}
	imports := make(map[string]bool)

	pendingComment := -1
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		node := root.Child(i)
		if node == nil || !node.IsNamed() {
			continue
		}
		if isCommentNode(node) {
			if pendingComment < 0 {
				pendingComment = int(node.StartByte())
			}
			continue
		}

		kind := classifyItem(ectx, node)
		switch kind {
		case ItemImport:
			if module := importedModule(ectx, node); module != "" {
				imports[module] = true
			}
		case ItemSnippet:
			i, _ = snippetGroup(ectx, root, i)
		default:
			start := node.StartByte()
			if pendingComment >= 0 {
				start = uint32(pendingComment)
			}
			record.Declarations = append(record.Declarations, buildDeclaration(ectx, node, kind, start))
		}
		pendingComment = -1
	}

	record.Imports = sortedSet(imports)
	c.logger.Debug("collected source file",
		"path", path,
		"declarations", len(record.Declarations),
		"imports", len(record.Imports),
	)
	return record, nil
}

func buildDeclaration(ctx *ExtractionContext, node *sitter.Node, kind ItemKind, start uint32) *Declaration {
	decl := &Declaration{
		Kind:       kind,
		SourceText: ctx.Span(start, node.EndByte()),
		EntryPoint: hasEntryPointAttribute(ctx, node),
		File:       ctx.Path,
		Line:       ctx.Location(node).Line,
	}

	// Extensions never declare: collectNames only records nested
	// declarations for type items.
	sets := collectNames(ctx, node, kind)
	if kind == ItemExtension {
		decl.ExtendedType = extendedTypeName(ctx, node)
	}
	decl.DeclaredTypes = sortedSet(sets.declared)
	decl.ReferencedTypes = sortedSet(sets.referenced)
	return decl
}
