package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreapp "swiftslice/internal/core/app"
	"swiftslice/internal/engine/graph"
	"swiftslice/internal/engine/parser"
	"swiftslice/internal/engine/resolver"
)

func sampleInspection() *coreapp.Inspection {
	screen := &parser.Declaration{Kind: parser.ItemType, DeclaredTypes: []string{"Screen"}, ReferencedTypes: []string{"Ghost", "Model"}, SourceText: "struct Screen {}", File: "/s/Screen.swift", Line: 1}
	model := &parser.Declaration{Kind: parser.ItemType, DeclaredTypes: []string{"Model"}, SourceText: "struct Model {}", File: "/s/Model.swift", Line: 3}
	other := &parser.Declaration{Kind: parser.ItemType, DeclaredTypes: []string{"Other"}, SourceText: "struct Other {}", File: "/s/Model.swift", Line: 5}
	records := []*parser.FileRecord{
		{Path: "/s/Model.swift", Declarations: []*parser.Declaration{model, other}},
		{Path: "/s/Screen.swift", Declarations: []*parser.Declaration{screen}},
	}
	parser.NumberDeclarations(records)
	index := graph.NewIndex(records)
	r := resolver.New(nil, nil)
	set := r.Resolve(index, "/s/Screen.swift", nil)
	return &coreapp.Inspection{
		Collection: &coreapp.Collection{StartFile: "/s/Screen.swift", Index: index},
		Set:        set,
		Cycles:     [][]string{{"A", "B"}},
		Unresolved: r.Unresolved(index, set),
	}
}

func TestModel_PanelsAndFilters(t *testing.T) {
	m := initialModel()
	assert.Contains(t, m.View(), "collecting sources")

	updated, _ := m.Update(inspectMsg{inspection: sampleInspection()})
	state, ok := updated.(model)
	require.True(t, ok, "expected model type, got %T", updated)
	assert.Len(t, state.declList.Items(), 3)
	assert.Len(t, state.issueList.Items(), 2)
	assert.Contains(t, state.View(), "2 of 3 resolved")

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	state = updated.(model)
	assert.True(t, state.resolvedOnly)
	assert.Len(t, state.declList.Items(), 2)

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyTab})
	state = updated.(model)
	assert.Equal(t, panelIssues, state.mode)

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyTab})
	state = updated.(model)
	assert.Equal(t, panelDeclarations, state.mode)
}

func TestModel_SourceView(t *testing.T) {
	updated, _ := initialModel().Update(inspectMsg{inspection: sampleInspection()})
	state := updated.(model)
	updated, _ = state.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	state = updated.(model)

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyEnter})
	state = updated.(model)
	require.True(t, state.showSource)
	assert.Contains(t, state.View(), "struct Model {}")

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyEsc})
	state = updated.(model)
	assert.False(t, state.showSource)
}

func TestModel_Quit(t *testing.T) {
	_, cmd := initialModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestDeclItem(t *testing.T) {
	decl := &parser.Declaration{Kind: parser.ItemType, DeclaredTypes: []string{"App"}, EntryPoint: true, File: "/s/App.swift", Line: 4}
	item := declItem{decl: decl}

	assert.True(t, strings.HasPrefix(item.Title(), "@ "))
	assert.Equal(t, "App.swift:4  type", item.Description())
}
