package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/whosfree/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case !isTab(m.state) && m.form != nil:
		content = docStyle.Render(m.form.View())
	case m.state == constants.StatePhrases:
		content = docStyle.Render(m.phrases.View())
	default:
		content = docStyle.Render(m.board.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewTagLine(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if !isTab(active) {
		active = m.previousState
	}
	tabs := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTagLine() string {
	if m.tagLine == "" {
		return statusStyle.Render("No catchphrases yet.")
	}
	return tagLineStyle.Render("“" + m.tagLine + "”")
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsError {
		return errorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}
