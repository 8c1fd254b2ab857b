package parser

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"swiftslice/internal/core/errors"
	"swiftslice/internal/shared/observability"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/swift"
)

const SourceExtension = ".swift"

// IsSourceFile reports whether path names a Swift source file.
func IsSourceFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SourceExtension)
}

// Parser turns Swift source into tree-sitter syntax trees.
type Parser struct {
	pool *ParserPool
}

func NewParser() *Parser {
	return &Parser{pool: NewParserPool(swift.GetLanguage())}
}

// Parse returns the syntax tree of source. The caller must Close the tree.
func (p *Parser) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	start := time.Now()
	defer func() {
		observability.ParsingDuration.WithLabelValues("swift").Observe(time.Since(start).Seconds())
	}()

	tree, err := p.pool.Parse(ctx, source)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "parse failed")
	}
	if tree == nil {
		return nil, errors.New(errors.CodeInternal, "parse failed")
	}
	return tree, nil
}

// Parses counts the source buffers parsed so far.
func (p *Parser) Parses() int {
	return p.pool.Parses()
}

// readSource reads path, returning a coded error that names the file.
func readSource(path string, code errors.ErrorCode) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithPath(err, code, "cannot read source file", path)
	}
	return data, nil
}
