package tui

import (
	stderrors "errors"
	"fmt"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/models"
)

// refresh recomputes the active tab's query against the holder's current
// dataset.
func (m *Model) refresh() {
	ds := m.holder.Current()
	m.phrases.SetPhrases(ds.Catchphrases)

	var err error
	switch m.state {
	case constants.StateFree:
		err = m.renderFree(ds)
	case constants.StateLessons:
		err = m.renderLessons(ds)
	case constants.StateDay:
		err = m.renderDay(ds)
	case constants.StateSearch:
		err = m.renderSearch(ds)
	}
	if err != nil {
		m.setError(err)
	}
}

func (m *Model) setStatus(format string, a ...any) {
	m.status = fmt.Sprintf(format, a...)
	m.statusIsError = false
}

func (m *Model) setError(err error) {
	var inputErr *errors.InputError
	if stderrors.As(err, &inputErr) {
		m.status = inputErr.Message
	} else {
		m.status = err.Error()
	}
	m.statusIsError = true
}

func (m Model) slotTitle() string {
	return fmt.Sprintf("%s, %s, %s", m.week, m.day, m.engine.Settings().PeriodLabel(m.period))
}

func swatch(p models.Person) string {
	return personStyle(p.Color).Render("■") + " " + p.DisplayName()
}

func (m *Model) renderFree(ds *models.Dataset) error {
	a, err := m.engine.FindByAvailability(ds.Roster, ds.Snapshot, m.week, m.day, m.period)
	if err != nil {
		m.board.SetContent(m.slotTitle(), nil, "")
		return err
	}
	lines := make([]string, 0, len(a.Free))
	for _, p := range a.Free {
		lines = append(lines, swatch(p))
	}
	m.board.SetContent("Free right now: "+m.slotTitle(), lines, "No one free right now.")
	m.noteMissing(len(a.Missing))
	return nil
}

func (m *Model) renderLessons(ds *models.Dataset) error {
	a, err := m.engine.FindByAvailability(ds.Roster, ds.Snapshot, m.week, m.day, m.period)
	if err != nil {
		m.board.SetContent(m.slotTitle(), nil, "")
		return err
	}
	var lines []string
	for i, bucket := range a.Busy {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, bucket.Subject)
		for _, p := range bucket.People {
			lines = append(lines, "  "+swatch(p))
		}
	}
	m.board.SetContent("In a lesson: "+m.slotTitle(), lines, "No one is in a lesson right now.")
	m.noteMissing(len(a.Missing))
	return nil
}

func (m *Model) noteMissing(n int) {
	if n > 0 {
		m.setStatus("%d without an entry for this slot", n)
		return
	}
	m.status = ""
}

func (m *Model) renderDay(ds *models.Dataset) error {
	person, ok := ds.Roster.Find(m.personID)
	if !ok {
		m.board.SetContent("", nil, "Please select who you are, the Week, and the Day.")
		return nil
	}

	view := m.engine.BuildDayView(ds.Snapshot, person.ID, m.week, m.day)
	title := fmt.Sprintf("%s's Schedule for %s, %s", person.DisplayName(), m.week, m.day)
	if !view.Found() {
		m.board.SetContent(title, nil, fmt.Sprintf("No schedule found for %s on %s.", person.DisplayName(), m.day))
		m.status = ""
		return nil
	}

	style := personStyle(person.Color)
	lines := make([]string, 0, view.Len())
	for _, entry := range view.Entries() {
		subject := style.Render(entry.Display())
		if entry.Free {
			subject = statusStyle.UnsetPadding().Render(constants.FreeDisplay)
		}
		lines = append(lines, fmt.Sprintf("%-10s %s", entry.Label, subject))
	}
	m.board.SetContent(title, lines, "No periods recorded.")
	m.status = ""
	return nil
}

func (m *Model) renderSearch(ds *models.Dataset) error {
	if m.needle == "" {
		m.board.SetContent("Search "+m.week+", "+m.day, nil, "Press / to search subjects.")
		m.status = ""
		return nil
	}
	matches, err := m.engine.FindBySubjectSubstring(ds.Roster, ds.Snapshot, m.week, m.day, m.needle)
	if err != nil {
		m.board.SetContent("", nil, "")
		return err
	}
	lines := make([]string, 0, len(matches))
	for _, match := range matches {
		lines = append(lines, fmt.Sprintf("%-10s %s  %s", match.Label, swatch(match.Person), match.Subject))
	}
	m.board.SetContent(fmt.Sprintf("%q on %s, %s", m.needle, m.week, m.day), lines,
		fmt.Sprintf("No lessons match %q.", m.needle))
	m.status = ""
	return nil
}
