package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"swiftslice/internal/engine/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage(t *testing.T) {
	root := t.TempDir()
	result := &Result{
		GeneratedSource: "import Foundation\n\nstruct Model {}\n\n",
		ResolvedImports: []string{"Foundation"},
	}

	ws, err := Stage(root, result, "VStack {\n    Text(\"hi\")\n}")
	require.NoError(t, err)

	assert.Equal(t, root, filepath.Dir(ws.Dir))
	assert.Equal(t, ws.ID, filepath.Base(ws.Dir))

	generated, err := os.ReadFile(ws.GeneratedPath)
	require.NoError(t, err)
	assert.Equal(t, result.GeneratedSource, string(generated))

	host, err := os.ReadFile(ws.HostPath)
	require.NoError(t, err)
	want := `import Foundation
import SwiftUI

@main
struct PreviewHostApp: App {
    var body: some Scene {
        WindowGroup {
            PreviewHostView()
        }
    }
}

struct PreviewHostView: View {
    var body: some View {
        VStack {
            Text("hi")
        }
    }
}
`
	assert.Equal(t, want, string(host))

	again, err := Stage(root, result, "Text(\"x\")")
	require.NoError(t, err)
	assert.NotEqual(t, ws.Dir, again.Dir)
}

func TestStage_AvoidsNameCollision(t *testing.T) {
	result := &Result{Declarations: []*parser.Declaration{{
		Kind:          parser.ItemType,
		DeclaredTypes: []string{"PreviewHostView"},
	}}}

	ws, err := Stage(t.TempDir(), result, "Text(\"x\")")
	require.NoError(t, err)

	host, err := os.ReadFile(ws.HostPath)
	require.NoError(t, err)
	assert.NotContains(t, string(host), "struct PreviewHostView:")
	assert.True(t, strings.Contains(string(host), "struct PreviewHost"))
}

func TestStage_NilResult(t *testing.T) {
	_, err := Stage(t.TempDir(), nil, "")
	assert.Error(t, err)
}
