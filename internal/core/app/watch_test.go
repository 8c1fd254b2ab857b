package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"swiftslice/internal/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceWatch(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Start.swift": "struct Start {\n    let m: Model\n}\n",
	})
	cfg := config.Default()
	cfg.Watch.Debounce = 50 * time.Millisecond
	cfg.Watch.MaxRunsPerSecond = 50
	svc, err := New(cfg, nil)
	require.NoError(t, err)

	results := make(chan *Result, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Watch(ctx, Request{StartFile: filepath.Join(root, "Start.swift"), SourcesDir: root}, func(res *Result, err error) {
			if err == nil {
				results <- res
			}
		})
	}()

	next := func() *Result {
		select {
		case res := <-results:
			return res
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for resolve")
			return nil
		}
	}

	first := next()
	assert.Equal(t, 1, first.ResolvedDeclarations)
	require.Len(t, first.Unresolved, 1)
	assert.Equal(t, "Model", first.Unresolved[0].Name)

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "Model.swift"), []byte("struct Model {}\n"), 0o644))

	second := next()
	assert.Equal(t, 2, second.ResolvedDeclarations)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
