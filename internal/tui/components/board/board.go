// Package board is a scrollable panel showing one query result.
package board

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			MarginBottom(1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	title    string
	lines    []string
	empty    string
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetContent replaces the panel. empty is shown when lines is empty.
func (m *Model) SetContent(title string, lines []string, empty string) {
	m.title = title
	m.lines = lines
	m.empty = empty
	m.viewport.GotoTop()
	m.Render()
}

// Lines returns the rows currently shown, without styling.
func (m Model) Lines() []string {
	return m.lines
}

func (m *Model) Render() {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString("\n")
	}
	if len(m.lines) == 0 {
		b.WriteString(emptyStyle.Render(m.empty))
	} else {
		b.WriteString(strings.Join(m.lines, "\n"))
	}
	m.viewport.SetContent(b.String())
}
