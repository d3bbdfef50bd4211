package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/live"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/storage/sqlite"
	"github.com/julianstephens/whosfree/internal/timetable"
)

func setupTestModel(t *testing.T) (Model, *sqlite.Store, *timetable.Holder) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"), "default")
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	roster := models.Roster{
		{ID: "liam", Name: "Liam", Color: "blue"},
		{ID: "ava", Name: "Ava", Color: "darkred"},
	}
	snapshot := models.Snapshot{
		"liam": {"Week 1": {"Monday": {"Maths", "Free", "Art", "Period 4", "Period 5"}}},
		"ava":  {"Week 1": {"Monday": {"Maths", "English", "Free", "Science", "Period 5"}}},
	}
	if err := store.SaveRoster(roster); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSnapshot(snapshot); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddCatchphrase("Tea is a food group"); err != nil {
		t.Fatal(err)
	}

	holder := timetable.NewHolder(nil)
	if _, _, err := live.Reload(store, holder); err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(store, holder)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, store, holder
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func boardText(m Model) string {
	return strings.Join(m.board.Lines(), "\n")
}

func TestNewModel_Defaults(t *testing.T) {
	m, _, _ := setupTestModel(t)

	if m.week != "Week 1" || m.day != "Monday" || m.period != 1 {
		t.Errorf("slot = %q/%q/%d, want Week 1/Monday/1", m.week, m.day, m.period)
	}
	if m.personID != "liam" {
		t.Errorf("personID = %q, want liam", m.personID)
	}
	if m.tagLine != "Tea is a food group" {
		t.Errorf("tagLine = %q", m.tagLine)
	}
	if m.state != constants.StateFree {
		t.Errorf("state = %v, want StateFree", m.state)
	}
}

func TestModel_FreeAndLessonsTabs(t *testing.T) {
	m, _, _ := setupTestModel(t)
	m.period = 2
	m.refresh()

	if got := boardText(m); !strings.Contains(got, "Liam") || strings.Contains(got, "Ava") {
		t.Errorf("free board = %q, want only Liam", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateLessons {
		t.Fatalf("state = %v, want StateLessons", m.state)
	}
	got := boardText(m)
	if !strings.Contains(got, "English") || !strings.Contains(got, "Ava") {
		t.Errorf("lessons board = %q, want Ava in English", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateFree {
		t.Errorf("state = %v after shift+tab, want StateFree", m.state)
	}
}

func TestModel_EmptyFreeSlot(t *testing.T) {
	m, _, _ := setupTestModel(t)

	if got := m.board.Lines(); len(got) != 0 {
		t.Errorf("period 1 free lines = %v, want none", got)
	}
	if !strings.Contains(m.board.View(), "No one free right now.") {
		t.Errorf("board view missing empty-state message: %q", m.board.View())
	}
}

func TestModel_DayTab(t *testing.T) {
	m, _, _ := setupTestModel(t)
	m.state = constants.StateDay
	m.refresh()

	got := boardText(m)
	if !strings.Contains(got, constants.FreeDisplay) || !strings.Contains(got, "Art") {
		t.Errorf("day board = %q", got)
	}

	m.day = "Tuesday"
	m.refresh()
	if !strings.Contains(m.board.View(), "No schedule found for Liam on Tuesday.") {
		t.Errorf("board view = %q", m.board.View())
	}
}

func TestModel_SearchTab(t *testing.T) {
	m, _, _ := setupTestModel(t)
	m.state = constants.StateSearch
	m.needle = "MATH"
	m.refresh()

	got := m.board.Lines()
	if len(got) != 2 {
		t.Fatalf("matches = %v, want 2", got)
	}
	if !strings.Contains(got[0], "Liam") || !strings.Contains(got[1], "Ava") {
		t.Errorf("matches not in roster order: %v", got)
	}
}

func TestModel_InvalidSlotShowsInputError(t *testing.T) {
	m, _, _ := setupTestModel(t)
	m.period = 0
	m.refresh()

	if !m.statusIsError || m.status != "Please select a Week, Day, and Period." {
		t.Errorf("status = %q (error=%v)", m.status, m.statusIsError)
	}
}

func TestModel_ReloadedMsg(t *testing.T) {
	m, _, holder := setupTestModel(t)
	m.period = 2
	m.refresh()

	ds := *holder.Current()
	ds.Roster = append(models.Roster{{ID: "noah", Name: "Noah"}}, ds.Roster...)
	ds.Snapshot = models.Snapshot{
		"noah": {"Week 1": {"Monday": {"Maths", "Free"}}},
		"liam": ds.Snapshot["liam"],
	}
	version := holder.Replace(&ds)

	m = update(t, m, ReloadedMsg{Version: version})
	got := boardText(m)
	if !strings.Contains(got, "Noah") || !strings.Contains(got, "Liam") {
		t.Errorf("board after reload = %q", got)
	}
}

func TestModel_PhraseAdded(t *testing.T) {
	m, _, holder := setupTestModel(t)

	m = update(t, m, phraseAddedMsg{phrase: "Bring biscuits", added: true})
	if m.tagLine != "Bring biscuits" {
		t.Errorf("tagLine = %q", m.tagLine)
	}
	if got := holder.Current().Catchphrases; len(got) != 2 {
		t.Errorf("holder phrases = %v, want 2", got)
	}
	if m.phrases.Len() != 2 {
		t.Errorf("phrase list len = %d, want 2", m.phrases.Len())
	}

	m = update(t, m, phraseAddedMsg{phrase: "bring BISCUITS"})
	if m.status != `"bring BISCUITS" is already a catchphrase.` {
		t.Errorf("status = %q", m.status)
	}
}

func TestAddPhraseCmd(t *testing.T) {
	m, store, _ := setupTestModel(t)

	msg := addPhrase(m, "  Bring biscuits ")().(phraseAddedMsg)
	if msg.err != nil || !msg.added || msg.phrase != "Bring biscuits" {
		t.Fatalf("msg = %+v", msg)
	}
	msg = addPhrase(m, "   ")().(phraseAddedMsg)
	if msg.err == nil {
		t.Error("expected error for empty phrase")
	}

	phrases, err := store.GetCatchphrases()
	if err != nil {
		t.Fatal(err)
	}
	if len(phrases) != 2 {
		t.Errorf("stored phrases = %v", phrases)
	}
}

func TestModel_OpenAndCancelForm(t *testing.T) {
	m, _, _ := setupTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if m.state != constants.StateSelectSlot || m.form == nil {
		t.Fatalf("state = %v, form = %v", m.state, m.form)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateFree || m.form != nil {
		t.Errorf("after esc state = %v, form = %v", m.state, m.form)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := setupTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(Model).quitting || cmd == nil {
		t.Error("expected quit")
	}
	if next.(Model).View() != "" {
		t.Error("expected empty view after quit")
	}
}
