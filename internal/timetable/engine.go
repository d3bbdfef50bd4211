// Package timetable answers lookups over a roster and a timetable snapshot.
//
// The engine owns no data: every query takes the roster and snapshot it
// operates on, so callers decide which snapshot is current. Missing data at
// any level yields a typed outcome instead of an error; only malformed
// caller input is reported as an error.
package timetable

import (
	"strings"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/models"
)

// Engine runs timetable queries under a fixed configuration.
type Engine struct {
	settings   models.Settings
	classifier *Classifier
}

// New creates an engine for the given settings. The settings are used as
// supplied; callers apply defaults beforehand.
func New(settings models.Settings) (*Engine, error) {
	c, err := NewClassifier(settings)
	if err != nil {
		return nil, err
	}
	return &Engine{settings: settings, classifier: c}, nil
}

// Settings returns the configuration the engine was built with.
func (e *Engine) Settings() models.Settings {
	return e.settings
}

// IsFreePeriod reports whether a subject value denotes a free period.
func (e *Engine) IsFreePeriod(subject string) bool {
	return e.classifier.IsFree(subject)
}

// SubjectResult is the outcome of resolving a single period.
type SubjectResult struct {
	Outcome constants.Outcome `json:"outcome"`
	Subject string            `json:"subject,omitempty"`
}

// Found reports whether the lookup reached a period.
func (r SubjectResult) Found() bool {
	return r.Outcome == constants.OutcomeFound
}

// ResolveSubject looks up the subject a person has at (week, day, period).
// period is 1-based. The returned subject is whitespace-trimmed.
func (e *Engine) ResolveSubject(snapshot models.Snapshot, personID, week, day string, period int) SubjectResult {
	periods, outcome := lookupDay(snapshot, personID, week, day)
	if outcome != constants.OutcomeFound {
		return SubjectResult{Outcome: outcome}
	}
	if period < 1 || period > len(periods) {
		return SubjectResult{Outcome: constants.OutcomePeriodOutOfRange}
	}
	return SubjectResult{
		Outcome: constants.OutcomeFound,
		Subject: strings.TrimSpace(periods[period-1]),
	}
}

// lookupDay walks person -> week -> day and reports the first missing branch.
func lookupDay(snapshot models.Snapshot, personID, week, day string) (models.PeriodList, constants.Outcome) {
	schedule, ok := snapshot[personID]
	if !ok {
		return nil, constants.OutcomePersonNotFound
	}
	days, ok := schedule[week]
	if !ok {
		return nil, constants.OutcomeWeekNotFound
	}
	periods, ok := days[day]
	if !ok {
		return nil, constants.OutcomeDayNotFound
	}
	return periods, constants.OutcomeFound
}
