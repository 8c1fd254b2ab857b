package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	coreapp "swiftslice/internal/core/app"
	"swiftslice/internal/engine/parser"
)

type panel int

const (
	panelDeclarations panel = iota
	panelIssues
)

type declItem struct {
	decl     *parser.Declaration
	resolved bool
}

func (i declItem) Title() string {
	mark := "  "
	if i.resolved {
		mark = "✓ "
	}
	if i.decl.EntryPoint {
		mark = "@ "
	}
	return mark + i.decl.Title()
}

func (i declItem) Description() string {
	return fmt.Sprintf("%s:%d  %s", filepath.Base(i.decl.File), i.decl.Line, i.decl.Kind)
}

func (i declItem) FilterValue() string { return i.decl.Title() + " " + i.decl.File }

type issueItem struct {
	title, desc string
}

func (i issueItem) Title() string       { return i.title }
func (i issueItem) Description() string { return i.desc }
func (i issueItem) FilterValue() string { return i.title + i.desc }

type inspectMsg struct {
	inspection *coreapp.Inspection
}

type model struct {
	declList  list.Model
	issueList list.Model
	mode      panel

	inspection   *coreapp.Inspection
	resolvedOnly bool
	showSource   bool
	width        int
	height       int
}

func initialModel() model {
	decls := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	decls.Title = "Declarations"
	decls.SetShowStatusBar(true)
	decls.SetFilteringEnabled(true)

	issues := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	issues.Title = "Cycles and Unresolved Names"
	issues.SetShowStatusBar(false)
	issues.SetFilteringEnabled(true)

	return model{declList: decls, issueList: issues}
}

func runInspector(ctx context.Context, in *coreapp.Inspection) error {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	go p.Send(inspectMsg{inspection: in})
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.activeList().FilterState() == list.Filtering {
			break
		}
		return handleKeyActions(msg, m)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		m.declList.SetSize(msg.Width-h, msg.Height-v-4)
		m.issueList.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil
	case inspectMsg:
		m.inspection = msg.inspection
		m.refreshItems()
		return m, nil
	}

	var cmd tea.Cmd
	if m.mode == panelIssues {
		m.issueList, cmd = m.issueList.Update(msg)
	} else {
		m.declList, cmd = m.declList.Update(msg)
	}
	return m, cmd
}

func handleKeyActions(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.mode == panelDeclarations {
			m.mode = panelIssues
		} else {
			m.mode = panelDeclarations
		}
		m.showSource = false
		return m, nil
	case "r":
		m.resolvedOnly = !m.resolvedOnly
		m.refreshItems()
		return m, nil
	case "enter":
		if m.mode == panelDeclarations && m.selected() != nil {
			m.showSource = !m.showSource
		}
		return m, nil
	case "esc":
		if m.showSource {
			m.showSource = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.mode == panelIssues {
		m.issueList, cmd = m.issueList.Update(msg)
	} else {
		m.declList, cmd = m.declList.Update(msg)
	}
	return m, cmd
}

func (m *model) activeList() *list.Model {
	if m.mode == panelIssues {
		return &m.issueList
	}
	return &m.declList
}

func (m model) selected() *parser.Declaration {
	item, ok := m.declList.SelectedItem().(declItem)
	if !ok {
		return nil
	}
	return item.decl
}

func (m *model) refreshItems() {
	in := m.inspection
	if in == nil {
		return
	}

	var decls []list.Item
	for _, decl := range in.Index.Declarations() {
		resolved := in.Set.Contains(decl)
		if m.resolvedOnly && !resolved {
			continue
		}
		decls = append(decls, declItem{decl: decl, resolved: resolved})
	}
	m.declList.SetItems(decls)

	var issues []list.Item
	for _, cycle := range in.Cycles {
		issues = append(issues, issueItem{
			title: "Reference Cycle",
			desc:  strings.Join(cycle, " -> ") + " -> " + cycle[0],
		})
	}
	for _, u := range in.Unresolved {
		issues = append(issues, issueItem{
			title: "Unresolved " + u.Name,
			desc:  "used by " + strings.Join(u.Users, ", "),
		})
	}
	m.issueList.SetItems(issues)
}

func (m model) View() string {
	if m.inspection == nil {
		return docStyle.Render(statusStyle.Render("collecting sources..."))
	}
	in := m.inspection

	status := statusStyle.Render(fmt.Sprintf("%s | %d files | tab: switch panel  r: resolved only  enter: source  q: quit",
		filepath.Base(in.StartFile), len(in.Index.Records())))
	counts := successStyle.Render(fmt.Sprintf("%d of %d resolved", in.Set.ResolvedDeclarations, in.Set.TotalDeclarations))
	issues := fmt.Sprintf("%s | %s",
		cycleStyle.Render(fmt.Sprintf("%d Cycles", len(in.Cycles))),
		warnStyle.Render(fmt.Sprintf("%d Unresolved", len(in.Unresolved))))
	header := fmt.Sprintf("%s\n%s | %s\n%s\n", titleStyle.Render("swiftslice inspector"), counts, issues, status)

	var body string
	switch {
	case m.showSource && m.selected() != nil:
		decl := m.selected()
		body = titleStyle.Render(decl.Title()) + "\n" +
			statusStyle.Render(fmt.Sprintf("%s:%d", decl.File, decl.Line)) + "\n\n" + decl.SourceText
	case m.mode == panelIssues:
		body = m.issueList.View()
	default:
		body = m.declList.View()
	}
	return docStyle.Render(header + "\n" + body)
}
