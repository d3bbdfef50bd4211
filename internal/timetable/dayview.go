package timetable

import (
	"iter"
	"strings"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/models"
)

// DayEntry is one labeled period of a day view.
type DayEntry struct {
	Label   string `json:"label"`
	Subject string `json:"subject"`
	Free    bool   `json:"free"`
}

// Display returns the text shown for the entry.
func (d DayEntry) Display() string {
	if d.Free {
		return constants.FreeDisplay
	}
	return d.Subject
}

// DayView is a person's labeled schedule for one day. When Outcome is not
// Found there is no schedule and Entries yields nothing.
type DayView struct {
	PersonID string            `json:"person"`
	Week     string            `json:"week"`
	Day      string            `json:"day"`
	Outcome  constants.Outcome `json:"outcome"`

	periods models.PeriodList
	labels  []string
	isFree  func(string) bool
}

// Found reports whether a schedule existed for the person and day.
func (v DayView) Found() bool {
	return v.Outcome == constants.OutcomeFound
}

// Len returns the number of entries the view yields.
func (v DayView) Len() int {
	if !v.Found() {
		return 0
	}
	return min(len(v.labels), len(v.periods))
}

// Entries yields (index, entry) pairs in period order. Each call walks the
// captured period list again.
func (v DayView) Entries() iter.Seq2[int, DayEntry] {
	return func(yield func(int, DayEntry) bool) {
		for i := range v.Len() {
			subject := strings.TrimSpace(v.periods[i])
			entry := DayEntry{
				Label:   v.labels[i],
				Subject: subject,
				Free:    v.isFree(subject),
			}
			if !yield(i, entry) {
				return
			}
		}
	}
}

// Collect materializes the view's entries.
func (v DayView) Collect() []DayEntry {
	out := make([]DayEntry, 0, v.Len())
	for _, e := range v.Entries() {
		out = append(out, e)
	}
	return out
}

// BuildDayView assembles the labeled schedule for one person and day.
func (e *Engine) BuildDayView(snapshot models.Snapshot, personID, week, day string) DayView {
	periods, outcome := lookupDay(snapshot, personID, week, day)
	return DayView{
		PersonID: personID,
		Week:     week,
		Day:      day,
		Outcome:  outcome,
		periods:  periods,
		labels:   e.settings.PeriodLabels,
		isFree:   e.classifier.IsFree,
	}
}
