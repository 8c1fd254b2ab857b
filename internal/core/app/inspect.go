package app

import (
	"context"

	"swiftslice/internal/core/errors"
	"swiftslice/internal/engine/resolver"
)

// Inspection is everything the interactive inspector shows for one request.
type Inspection struct {
	*Collection
	Set        *resolver.ResolvedSet
	Cycles     [][]string
	Unresolved []resolver.UnresolvedReference
}

func (s *Service) Inspect(ctx context.Context, req Request) (*Inspection, error) {
	col, err := s.Collect(ctx, req)
	if err != nil {
		return nil, err
	}
	set := s.resolver.Resolve(col.Index, col.StartFile, req.Seeds)
	return &Inspection{
		Collection: col,
		Set:        set,
		Cycles:     col.Index.DetectCycles(s.Registry().Contains),
		Unresolved: s.resolver.Unresolved(col.Index, set),
	}, nil
}

// Why returns the shortest chain of type references leading from one
// declared type to another.
func (s *Service) Why(ctx context.Context, req Request, from, to string) ([]string, error) {
	col, err := s.Collect(ctx, req)
	if err != nil {
		return nil, err
	}
	chain, ok := col.Index.ReferenceChain(from, to, s.Registry().Contains)
	if !ok {
		err := errors.New(errors.CodeNotFound, "no reference chain found")
		err = errors.AddContext(err, "from", from)
		return nil, errors.AddContext(err, "to", to)
	}
	return chain, nil
}
