package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	coreapp "swiftslice/internal/core/app"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Margin(1, 2)
)

// resolveSummary is the --json shape of a resolve run.
type resolveSummary struct {
	ResolvedDeclarations int               `json:"resolved_declarations"`
	TotalDeclarations    int               `json:"total_declarations"`
	ResolvedImports      []string          `json:"resolved_imports"`
	ContributingFiles    []string          `json:"contributing_files"`
	Unresolved           []unresolvedEntry `json:"unresolved,omitempty"`
	Skipped              []string          `json:"skipped,omitempty"`
	OutputPath           string            `json:"output_path,omitempty"`
	Workspace            string            `json:"workspace,omitempty"`
	GeneratedSource      string            `json:"generated_source,omitempty"`
}

type unresolvedEntry struct {
	Name  string   `json:"name"`
	Users []string `json:"users"`
}

// newResolveSummary embeds the generated source only when it was not
// written to a file.
func newResolveSummary(res *coreapp.Result, output string, ws *coreapp.Workspace) resolveSummary {
	s := resolveSummary{
		ResolvedDeclarations: res.ResolvedDeclarations,
		TotalDeclarations:    res.TotalDeclarations,
		ResolvedImports:      nonNil(res.ResolvedImports),
		ContributingFiles:    nonNil(res.ContributingFiles),
		Skipped:              res.Skipped,
		OutputPath:           output,
	}
	for _, u := range res.Unresolved {
		s.Unresolved = append(s.Unresolved, unresolvedEntry{Name: u.Name, Users: u.Users})
	}
	if ws != nil {
		s.Workspace = ws.Dir
	}
	if output == "" {
		s.GeneratedSource = res.GeneratedSource
	}
	return s
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderResolveSummary(res *coreapp.Result, output string, ws *coreapp.Workspace) string {
	var b strings.Builder
	b.WriteString(successStyle.Render(fmt.Sprintf("%d of %d declarations", res.ResolvedDeclarations, res.TotalDeclarations)))
	b.WriteString(statusStyle.Render(fmt.Sprintf(" from %d files", len(res.ContributingFiles))))
	b.WriteString("\n")

	if len(res.ResolvedImports) > 0 {
		fmt.Fprintf(&b, "  imports: %s\n", strings.Join(res.ResolvedImports, ", "))
	}
	for _, u := range res.Unresolved {
		fmt.Fprintf(&b, "  %s %s (used by %s)\n", warnStyle.Render("unresolved"), u.Name, strings.Join(u.Users, ", "))
	}
	for _, path := range res.Skipped {
		fmt.Fprintf(&b, "  %s %s\n", warnStyle.Render("skipped"), path)
	}
	if output != "" {
		fmt.Fprintf(&b, "  wrote %s\n", output)
	}
	if ws != nil {
		fmt.Fprintf(&b, "  staged %s\n", ws.Dir)
	}
	return b.String()
}

func renderFilesSummary(res *coreapp.FileResult) string {
	var b strings.Builder
	b.WriteString(successStyle.Render(fmt.Sprintf("%d files", len(res.Files))))
	b.WriteString("\n")
	for _, name := range res.Excluded {
		fmt.Fprintf(&b, "  %s %s (entry point)\n", warnStyle.Render("excluded"), name)
	}
	for _, path := range res.Skipped {
		fmt.Fprintf(&b, "  %s %s\n", warnStyle.Render("skipped"), filepath.Base(path))
	}
	return b.String()
}
