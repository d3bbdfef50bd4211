// Package tui is the interactive terminal front end: one tab per query, a
// random catchphrase as the tag line, and huh forms for picking the slot,
// person and search text.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/whosfree/internal/catchphrase"
	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/storage"
	"github.com/julianstephens/whosfree/internal/timetable"
	"github.com/julianstephens/whosfree/internal/tui/components/board"
	"github.com/julianstephens/whosfree/internal/tui/components/phraselist"
)

// tabCount is the number of top-level tabs, StateFree through StatePhrases.
const tabCount = int(constants.StatePhrases) + 1

var tabTitles = []string{"Free", "Lessons", "Day", "Search", "Phrases"}

type SlotFormModel struct {
	Week   string
	Day    string
	Period int
}

type PersonFormModel struct {
	PersonID string
}

type SearchFormModel struct {
	Needle string
}

type PhraseFormModel struct {
	Phrase  string
	Confirm bool
}

// ReloadedMsg tells the model the holder has a new dataset.
type ReloadedMsg struct {
	Version         uint64
	SettingsChanged bool
}

type phraseAddedMsg struct {
	phrase string
	added  bool
	err    error
}

type Model struct {
	store         storage.Provider
	holder        *timetable.Holder
	engine        *timetable.Engine
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	board         board.Model
	phrases       phraselist.Model
	form          *huh.Form
	slotForm      *SlotFormModel
	personForm    *PersonFormModel
	searchForm    *SearchFormModel
	phraseForm    *PhraseFormModel
	week          string
	day           string
	period        int
	personID      string
	needle        string
	tagLine       string
	status        string
	statusIsError bool
	quitting      bool
	width         int
	height        int
}

// NewModel builds the model over a holder that has already been loaded.
func NewModel(store storage.Provider, holder *timetable.Holder) (Model, error) {
	m := Model{
		store:  store,
		holder: holder,
		state:  constants.StateFree,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		board:  board.New(0, 0),
		period: 1,
	}
	if err := m.reloadEngine(); err != nil {
		return m, err
	}

	settings := m.engine.Settings()
	if len(settings.WeekOrder) > 0 {
		m.week = settings.WeekOrder[0]
	}
	if len(settings.DayOrder) > 0 {
		m.day = settings.DayOrder[0]
	}

	ds := holder.Current()
	if len(ds.Roster) > 0 {
		m.personID = ds.Roster[0].ID
	}
	m.phrases = phraselist.New(ds.Catchphrases, 0, 0)
	m.tagLine = catchphrase.Random(ds.Catchphrases)
	m.refresh()
	return m, nil
}

// reloadEngine rebuilds the query engine from the stored settings.
func (m *Model) reloadEngine() error {
	settings, err := m.store.GetSettings()
	if err != nil {
		return err
	}
	models.ApplyDefaultSettings(&settings)
	engine, err := timetable.New(settings)
	if err != nil {
		return err
	}
	m.engine = engine
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	switch m.state {
	case constants.StateFree, constants.StateLessons:
		keys = append(keys, m.keys.Slot)
	case constants.StateDay:
		keys = append(keys, m.keys.Slot, m.keys.Person)
	case constants.StateSearch:
		keys = append(keys, m.keys.Slot, m.keys.Search)
	case constants.StatePhrases:
		keys = append(keys, m.keys.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	actions := []key.Binding{m.keys.Slot, m.keys.Person, m.keys.Search, m.keys.Add}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// isTab reports whether s is one of the top-level tabs rather than a form.
func isTab(s constants.SessionState) bool {
	return int(s) < tabCount
}
