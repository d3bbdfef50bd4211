package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/whosfree/internal/catchphrase"
	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/live"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/tui/components/phraselist"
)

// chromeHeight is the rows taken by the tabs, tag line, status and help.
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !isTab(m.state) && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.board.SetSize(msg.Width-h, msg.Height-chromeHeight-v)
		m.phrases.SetSize(msg.Width-h, msg.Height-chromeHeight-v)
		return m, nil

	case ReloadedMsg:
		if msg.SettingsChanged {
			if err := m.reloadEngine(); err != nil {
				logger.Error("Failed to reload settings", "error", err)
			}
		}
		if m.tagLine == "" {
			m.tagLine = catchphrase.Random(m.holder.Current().Catchphrases)
		}
		m.refresh()
		return m, nil

	case phraseAddedMsg:
		switch {
		case msg.err != nil:
			m.setError(msg.err)
		case msg.added:
			ds := *m.holder.Current()
			ds.Catchphrases = append(append([]string{}, ds.Catchphrases...), msg.phrase)
			m.holder.Replace(&ds)
			m.tagLine = msg.phrase
			m.refresh()
			m.setStatus("Added %q", msg.phrase)
		default:
			m.setStatus("%q is already a catchphrase.", msg.phrase)
		}
		return m, nil

	case phraselist.AddPhraseMsg:
		m.phraseForm = &PhraseFormModel{}
		return m.openForm(NewPhraseForm(m.phraseForm), constants.StateAddPhrase)

	case tea.KeyMsg:
		if m.state == constants.StatePhrases && m.phrases.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = constants.SessionState((int(m.state) + 1) % tabCount)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = constants.SessionState((int(m.state) - 1 + tabCount) % tabCount)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if _, _, err := live.Reload(m.store, m.holder); err != nil {
				m.setError(err)
			}
			m.tagLine = catchphrase.Random(m.holder.Current().Catchphrases)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Slot) && m.state != constants.StatePhrases:
			m.slotForm = &SlotFormModel{Week: m.week, Day: m.day, Period: m.period}
			return m.openForm(NewSlotForm(m.slotForm, m.engine.Settings()), constants.StateSelectSlot)
		case key.Matches(msg, m.keys.Person) && m.state == constants.StateDay:
			m.personForm = &PersonFormModel{PersonID: m.personID}
			return m.openForm(NewPersonForm(m.personForm, m.holder.Current().Roster), constants.StateSelectPerson)
		case key.Matches(msg, m.keys.Search) && m.state == constants.StateSearch:
			m.searchForm = &SearchFormModel{Needle: m.needle}
			return m.openForm(NewSearchForm(m.searchForm), constants.StateSearchInput)
		}
	}

	var cmd tea.Cmd
	if m.state == constants.StatePhrases {
		m.phrases, cmd = m.phrases.Update(msg)
	} else {
		m.board, cmd = m.board.Update(msg)
	}
	return m, cmd
}

func (m Model) openForm(form *huh.Form, state constants.SessionState) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = state
	if m.width > 0 {
		form = form.WithWidth(m.width - docStyle.GetHorizontalFrameSize())
	}
	m.form = form
	return m, m.form.Init()
}

func (m Model) closeForm() Model {
	m.state = m.previousState
	m.form = nil
	return m
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.applyForm()
	case huh.StateAborted:
		return m.closeForm(), nil
	}
	return m, cmd
}

// applyForm copies a completed form into the model and leaves the form.
func (m Model) applyForm() (tea.Model, tea.Cmd) {
	state := m.state
	m = m.closeForm()

	switch state {
	case constants.StateSelectSlot:
		m.week, m.day, m.period = m.slotForm.Week, m.slotForm.Day, m.slotForm.Period
	case constants.StateSelectPerson:
		m.personID = m.personForm.PersonID
	case constants.StateSearchInput:
		m.needle = m.searchForm.Needle
	case constants.StateAddPhrase:
		if !m.phraseForm.Confirm {
			m.setStatus("Cancelled.")
			return m, nil
		}
		return m, addPhrase(m, m.phraseForm.Phrase)
	}
	m.refresh()
	return m, nil
}

func addPhrase(m Model, phrase string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		p, err := catchphrase.Normalize(phrase)
		if err != nil {
			return phraseAddedMsg{phrase: phrase, err: err}
		}
		added, err := store.AddCatchphrase(p)
		return phraseAddedMsg{phrase: p, added: added, err: err}
	}
}
