package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftslice/internal/shared/version"
)

type fixture struct {
	root    string
	sources string
	args    []string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"swiftslice.toml": "[sources]\ndir = \"Sources\"\n\n[output]\nworkspace_root = \"stage\"\n",
		"Sources/Card.swift": `import SwiftUI

struct CardView: View {
    let model: Model
    var body: some View { Text("card") }
}

#Preview {
    CardView(model: Model())
}
`,
		"Sources/Model.swift": "import Foundation\n\nstruct Model {}\n\nstruct Unused {}\n",
		"Sources/App.swift":   "import SwiftUI\n\n@main\nstruct DemoApp: App {\n    var body: some Scene { WindowGroup { CardView(model: Model()) } }\n}\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return fixture{
		root:    root,
		sources: filepath.Join(root, "Sources"),
		args: []string{
			"--config", filepath.Join(root, "swiftslice.toml"),
			"--env-file", filepath.Join(root, "missing.env"),
		},
	}
}

func (f fixture) run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), append(append([]string(nil), f.args...), args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestResolveCommand_Stdout(t *testing.T) {
	f := newFixture(t)

	code, stdout, stderr := f.run(t, "resolve", filepath.Join(f.sources, "Card.swift"))
	require.Equal(t, 0, code, stderr)

	assert.True(t, strings.HasPrefix(stdout, "// Generated by swiftslice: 2 of 4 declarations from 2 files.\n"))
	assert.Contains(t, stdout, "struct CardView: View {")
	assert.Contains(t, stdout, "struct Model {}")
	assert.NotContains(t, stdout, "Unused")
	assert.Contains(t, stderr, "2 of 4 declarations")
}

func TestResolveCommand_JSONAndOutputFile(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(f.root, "build", "Slice.swift")

	code, stdout, stderr := f.run(t, "resolve", "--json", "-o", out, filepath.Join(f.sources, "Card.swift"))
	require.Equal(t, 0, code, stderr)

	var summary resolveSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 2, summary.ResolvedDeclarations)
	assert.Equal(t, 4, summary.TotalDeclarations)
	assert.Equal(t, []string{"Foundation", "SwiftUI"}, summary.ResolvedImports)
	assert.Equal(t, out, summary.OutputPath)
	assert.Empty(t, summary.GeneratedSource)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(written), "struct Model {}")
}

func TestResolveCommand_NoSnippetAndSeeds(t *testing.T) {
	f := newFixture(t)
	scratch := filepath.Join(f.root, "Scratch.swift")
	require.NoError(t, os.WriteFile(scratch, []byte("struct Scratch {}\n"), 0o644))

	code, stdout, stderr := f.run(t, "resolve", "--no-snippet", "--seed", "Model", scratch)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "struct Scratch {}")
	assert.Contains(t, stdout, "struct Model {}")
	assert.NotContains(t, stdout, "CardView")
}

func TestResolveCommand_Stage(t *testing.T) {
	f := newFixture(t)

	code, stdout, stderr := f.run(t, "resolve", "--json", "--stage", filepath.Join(f.sources, "Card.swift"))
	require.Equal(t, 0, code, stderr)

	var summary resolveSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	require.NotEmpty(t, summary.Workspace)
	assert.Equal(t, filepath.Join(f.root, "stage"), filepath.Dir(summary.Workspace))

	host, err := os.ReadFile(filepath.Join(summary.Workspace, "PreviewHost.swift"))
	require.NoError(t, err)
	assert.Contains(t, string(host), "        CardView(model: Model())\n")
}

func TestResolveCommand_Errors(t *testing.T) {
	f := newFixture(t)

	code, _, stderr := f.run(t, "resolve", filepath.Join(f.sources, "Missing.swift"))
	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr, "error: "), stderr)
	assert.Contains(t, stderr, "START_FILE_UNREADABLE")
	assert.Equal(t, 1, strings.Count(stderr, "\n"))

	code, _, stderr = f.run(t, "resolve", "--stage", filepath.Join(f.sources, "Model.swift"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "NO_SNIPPET_FOUND")
}

func TestResolveCommand_EmptySnippet(t *testing.T) {
	f := newFixture(t)
	empty := filepath.Join(f.sources, "Empty.swift")
	require.NoError(t, os.WriteFile(empty, []byte("struct EmptyView {}\n#Preview {\n    \n}\n"), 0o644))

	code, stdout, stderr := f.run(t, "resolve", empty)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "EMPTY_SNIPPET_BODY")

	code, _, stderr = f.run(t, "resolve", "--stage", empty)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "EMPTY_SNIPPET_BODY")
	assert.NotContains(t, stderr, "NO_SNIPPET_FOUND")

	code, _, stderr = f.run(t, "graph", empty)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "EMPTY_SNIPPET_BODY")

	code, stdout, _ = f.run(t, "resolve", "--no-snippet", empty)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "struct EmptyView {}")
}

func TestFilesCommand(t *testing.T) {
	f := newFixture(t)

	code, stdout, stderr := f.run(t, "files", filepath.Join(f.sources, "Card.swift"))
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, filepath.Join(f.sources, "Card.swift")+"\n"+filepath.Join(f.sources, "Model.swift")+"\n", stdout)
}

func TestSnippetCommand(t *testing.T) {
	f := newFixture(t)
	card := filepath.Join(f.sources, "Card.swift")

	code, stdout, stderr := f.run(t, "snippet", card)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "CardView(model: Model())\n", stdout)

	code, stdout, _ = f.run(t, "snippet", "--seeds", card)
	require.Equal(t, 0, code)
	assert.Equal(t, "CardView\nModel\n", stdout)

	code, stdout, _ = f.run(t, "snippet", "--imports", card)
	require.Equal(t, 0, code)
	assert.Equal(t, "SwiftUI\n", stdout)

	code, _, stderr = f.run(t, "snippet", filepath.Join(f.sources, "Model.swift"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "NO_SNIPPET_FOUND")
}

func TestWhyCommand(t *testing.T) {
	f := newFixture(t)

	code, stdout, stderr := f.run(t, "why", filepath.Join(f.sources, "Card.swift"), "CardView", "Model")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "CardView -> Model\n", stdout)
}

func TestGraphCommand(t *testing.T) {
	f := newFixture(t)
	card := filepath.Join(f.sources, "Card.swift")

	code, stdout, stderr := f.run(t, "graph", card)
	require.Equal(t, 0, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "digraph slice {\n"))
	assert.Contains(t, stdout, `"CardView" -> "Model" [color="forestgreen"];`)
	assert.NotContains(t, stdout, "Unused")

	out := filepath.Join(f.root, "graph", "slice.mmd")
	code, _, stderr = f.run(t, "graph", "--format", "mermaid", "-o", out, card)
	require.Equal(t, 0, code, stderr)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CardView --> Model")

	code, stdout, _ = f.run(t, "graph", "-f", "decls", card)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "type CardView")
	assert.Contains(t, stdout, "type Model")

	code, _, stderr = f.run(t, "graph", "-f", "svg", card)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown graph format")
}

func TestCacheCommand(t *testing.T) {
	f := newFixture(t)
	cfg := "[sources]\ndir = \"Sources\"\n\n[parse]\ncache_file = \"state/records.db\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "swiftslice.toml"), []byte(cfg), 0o644))

	code, _, stderr := f.run(t, "resolve", filepath.Join(f.sources, "Card.swift"))
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(f.root, "state", "records.db"))

	code, stdout, stderr := f.run(t, "cache", "stats", "--json")
	require.Equal(t, 0, code, stderr)
	var stats struct {
		Persisted int  `json:"persisted"`
		Store     bool `json:"store"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	assert.True(t, stats.Store)
	assert.Equal(t, 3, stats.Persisted)

	require.NoError(t, os.Remove(filepath.Join(f.sources, "App.swift")))
	code, stdout, stderr = f.run(t, "cache", "prune")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "removed 1 records\n", stdout)
}

func TestWatchCommand_NeedsOutput(t *testing.T) {
	f := newFixture(t)

	code, _, stderr := f.run(t, "watch", filepath.Join(f.sources, "Card.swift"))
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "output path")
}

func TestVersionCommand(t *testing.T) {
	f := newFixture(t)

	code, stdout, _ := f.run(t, "version")
	require.Equal(t, 0, code)
	assert.Equal(t, version.String()+"\n", stdout)
}
