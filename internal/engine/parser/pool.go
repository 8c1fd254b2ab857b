package parser

import (
	"context"
	"sync"
	"sync/atomic"

	sitter "github.com/smacker/go-tree-sitter"
)

// ParserPool hands out Swift parsers to the collector workers. Parsers are
// reset on return so no tree outlives its lease.
type ParserPool struct {
	lang   *sitter.Language
	pool   sync.Pool
	leased atomic.Int64
	parses atomic.Int64
}

func NewParserPool(lang *sitter.Language) *ParserPool {
	p := &ParserPool{lang: lang}
	p.pool.New = func() any {
		sp := sitter.NewParser()
		sp.SetLanguage(lang)
		return sp
	}
	return p
}

func (p *ParserPool) Get() *sitter.Parser {
	sp := p.pool.Get().(*sitter.Parser)
	sp.SetLanguage(p.lang)
	p.leased.Add(1)
	return sp
}

// Put resets sp and returns it. Callers must not use sp afterwards.
func (p *ParserPool) Put(sp *sitter.Parser) {
	if sp == nil {
		return
	}
	p.leased.Add(-1)
	sp.Reset()
	p.pool.Put(sp)
}

// Parse leases a parser for one source buffer. The caller owns the returned
// tree and must Close it.
func (p *ParserPool) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	sp := p.Get()
	defer p.Put(sp)
	p.parses.Add(1)
	return sp.ParseCtx(ctx, nil, source)
}

// Leased is the number of parsers currently checked out.
func (p *ParserPool) Leased() int {
	return int(p.leased.Load())
}

// Parses counts every Parse call since the pool was created.
func (p *ParserPool) Parses() int {
	return int(p.parses.Load())
}
