package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFiles(t *testing.T) {
	idx := (&tree{}).
		file("/s/Start.swift", nil, typ("Screen", "Model", "String"), entry("StartApp")).
		file("/s/Model.swift", nil, typ("Model"), typ("Unused")).
		file("/s/ModelExt.swift", nil, ext("Model", "Formatter")).
		file("/s/Formatter.swift", nil, typ("Formatter"), entry("FormatterApp")).
		file("/s/StringExt.swift", nil, ext("String")).
		file("/s/Orphan.swift", nil, typ("Orphan")).
		index()

	got := New(nil, nil).ResolveFiles(idx, "/s/Start.swift", nil)

	assert.Equal(t, []string{"/s/Model.swift", "/s/ModelExt.swift", "/s/Start.swift"}, got.Files)
	assert.Equal(t, []string{"Formatter.swift"}, got.Excluded)
}

func TestResolveFiles_SeedsAndCycles(t *testing.T) {
	idx := (&tree{}).
		file("/s/Start.swift", nil, typ("Start")).
		file("/s/Ping.swift", nil, typ("Ping", "Pong")).
		file("/s/Pong.swift", nil, typ("Pong", "Ping")).
		file("/s/View.swift", nil, ext("View")).
		index()

	got := New(nil, nil).ResolveFiles(idx, "/s/Start.swift", []string{"Ping", "View"})

	assert.Equal(t, []string{"/s/Ping.swift", "/s/Pong.swift", "/s/Start.swift"}, got.Files)
	assert.Empty(t, got.Excluded)
}
