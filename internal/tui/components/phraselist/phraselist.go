// Package phraselist lists the stored catchphrases.
package phraselist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type AddPhraseMsg struct{}

type Item string

func (i Item) Title() string       { return string(i) }
func (i Item) Description() string { return "" }
func (i Item) FilterValue() string { return string(i) }

type KeyMap struct {
	Add key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(phrases []string, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(items(phrases), delegate, width, height)
	l.Title = "Catchphrases"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is drawn by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add}
	}

	return Model{list: l, keys: keys}
}

func items(phrases []string) []list.Item {
	out := make([]list.Item, len(phrases))
	for i, p := range phrases {
		out[i] = Item(p)
	}
	return out
}

func (m *Model) SetPhrases(phrases []string) {
	m.list.SetItems(items(phrases))
}

// Len returns the number of phrases listed.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the user is typing a filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddPhraseMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No catchphrases yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
