// Package synth renders a resolved declaration set as one Swift source text.
package synth

import (
	"fmt"
	"strings"

	"swiftslice/internal/engine/resolver"
)

// Options tweak rendering.
type Options struct {
	// OmitHeader drops the leading counts comment.
	OmitHeader bool
}

// Render emits a header comment with the counts, one `import` line per
// module, a blank line, then every declaration in discovery order, each
// followed by a blank line. The result is not validated.
func Render(set *resolver.ResolvedSet) string {
	return RenderWith(set, Options{})
}

func RenderWith(set *resolver.ResolvedSet, opts Options) string {
	var b strings.Builder

	if !opts.OmitHeader {
		fmt.Fprintf(&b, "// Generated by swiftslice: %d of %d declarations from %d files.\n",
			set.ResolvedDeclarations, set.TotalDeclarations, len(set.ContributingFiles))
	}

	prev := ""
	for i, module := range set.ResolvedImports {
		if i > 0 && module == prev {
			continue
		}
		prev = module
		b.WriteString("import ")
		b.WriteString(module)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, decl := range set.Declarations {
		b.WriteString(decl.SourceText)
		b.WriteString("\n\n")
	}
	return b.String()
}
