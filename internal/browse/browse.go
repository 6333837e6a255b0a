// Package browse shows a parsed graph in a scrollable terminal view.
package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexcodex/nodelang/framework/nodelang"
	"github.com/lexcodex/nodelang/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Options configure the browser.
type Options struct {
	Title string
	Color bool
}

// Run opens the browser on g and blocks until the user quits.
func Run(ctx context.Context, g *nodelang.Graph, opts Options) error {
	program := tea.NewProgram(newModel(g, opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

type model struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newModel(g *nodelang.Graph, opts Options) model {
	r := render.New(render.Options{Color: opts.Color})
	content := r.Outline(g)
	if content == "" {
		content = "(no nodes)"
	}
	vp := viewport.New(80, 20)
	vp.SetContent(content)
	return model{
		title:    opts.Title,
		content:  content,
		viewport: vp,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = max(10, msg.Width)
		m.viewport.Height = max(3, msg.Height-2)
		m.viewport.SetContent(m.content)
		m.ready = true
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll  q quit", m.viewport.ScrollPercent()*100)))
	return b.String()
}
