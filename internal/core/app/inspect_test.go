package app

import (
	"context"
	"path/filepath"
	"testing"

	"swiftslice/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceInspectAndWhy(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Start.swift": "struct Screen {\n    let a: Alpha\n    let g: Ghost\n}\n",
		"Alpha.swift": "struct Alpha {\n    let b: Beta\n}\n",
		"Beta.swift":  "struct Beta {\n    let a: Alpha\n}\n",
		"Other.swift": "struct Other {}\n",
	})
	svc := newService(t)
	req := Request{StartFile: filepath.Join(root, "Start.swift"), SourcesDir: root}

	in, err := svc.Inspect(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, in.Index.Len())
	assert.Equal(t, 3, in.Set.ResolvedDeclarations)
	assert.Equal(t, [][]string{{"Alpha", "Beta"}}, in.Cycles)
	require.Len(t, in.Unresolved, 1)
	assert.Equal(t, "Ghost", in.Unresolved[0].Name)

	chain, err := svc.Why(context.Background(), req, "Screen", "Beta")
	require.NoError(t, err)
	assert.Equal(t, []string{"Screen", "Alpha", "Beta"}, chain)

	_, err = svc.Why(context.Background(), req, "Other", "Beta")
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}
