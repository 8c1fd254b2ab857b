package app

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"swiftslice/internal/core/errors"
	"swiftslice/internal/shared/util"

	"github.com/google/uuid"
)

const (
	GeneratedFileName = "Generated.swift"
	HostFileName      = "PreviewHost.swift"
)

// Workspace is a staged directory ready to be handed to a Swift build.
type Workspace struct {
	ID            string
	Dir           string
	GeneratedPath string
	HostPath      string
}

// Stage writes the generated slice and an entry-point wrapper that hosts
// snippetBody into a fresh directory under root.
func Stage(root string, result *Result, snippetBody string) (*Workspace, error) {
	if result == nil {
		return nil, errors.New(errors.CodeValidationError, "nothing to stage")
	}

	id := uuid.NewString()
	ws := &Workspace{ID: id, Dir: filepath.Join(root, id)}
	ws.GeneratedPath = filepath.Join(ws.Dir, GeneratedFileName)
	ws.HostPath = filepath.Join(ws.Dir, HostFileName)

	if err := util.WriteStringAtomic(ws.GeneratedPath, result.GeneratedSource, 0o644); err != nil {
		return nil, errors.WithPath(err, errors.CodeInternal, "write generated source", ws.GeneratedPath)
	}
	host := HostSource(result, snippetBody, hostPrefix(result, id))
	if err := util.WriteStringAtomic(ws.HostPath, host, 0o644); err != nil {
		return nil, errors.WithPath(err, errors.CodeInternal, "write preview host", ws.HostPath)
	}
	return ws, nil
}

// hostPrefix picks a type-name prefix for the wrapper that no resolved
// declaration already uses.
func hostPrefix(result *Result, id string) string {
	prefix := "PreviewHost"
	for _, decl := range result.Declarations {
		if decl.Declares(prefix+"App") || decl.Declares(prefix+"View") {
			return prefix + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
		}
	}
	return prefix
}

// HostSource renders the wrapper: SwiftUI plus the slice's imports, an
// `@main` app and a view whose body is the snippet.
func HostSource(result *Result, snippetBody, prefix string) string {
	imports := map[string]bool{"SwiftUI": true}
	for _, module := range result.ResolvedImports {
		imports[module] = true
	}
	modules := make([]string, 0, len(imports))
	for module := range imports {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	var b strings.Builder
	for _, module := range modules {
		fmt.Fprintf(&b, "import %s\n", module)
	}
	fmt.Fprintf(&b, `
@main
struct %[1]sApp: App {
    var body: some Scene {
        WindowGroup {
            %[1]sView()
        }
    }
}

struct %[1]sView: View {
    var body: some View {
`, prefix)
	for _, line := range strings.Split(snippetBody, "\n") {
		if strings.TrimSpace(line) == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("        ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("    }\n}\n")
	return b.String()
}
