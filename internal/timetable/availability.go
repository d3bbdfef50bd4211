package timetable

import (
	"strings"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/models"
)

// BusyBucket groups the people who share a subject in a slot.
type BusyBucket struct {
	Subject string          `json:"subject"`
	People  []models.Person `json:"people"`
}

// Exclusion records a roster member whose slot could not be resolved.
type Exclusion struct {
	Person  models.Person     `json:"person"`
	Outcome constants.Outcome `json:"outcome"`
}

// Availability partitions the resolvable roster members for a slot.
type Availability struct {
	Free    []models.Person `json:"free"`
	Busy    []BusyBucket    `json:"busy"`
	Missing []Exclusion     `json:"missing,omitempty"`
}

// BusyCount returns the number of people across all busy buckets.
func (a Availability) BusyCount() int {
	n := 0
	for _, b := range a.Busy {
		n += len(b.People)
	}
	return n
}

// BusyMap returns the busy buckets keyed by subject.
func (a Availability) BusyMap() map[string][]models.Person {
	m := make(map[string][]models.Person, len(a.Busy))
	for _, b := range a.Busy {
		m[b.Subject] = b.People
	}
	return m
}

// validateSlot checks the week, day and period supplied by a caller.
func validateSlot(week, day string, period int) error {
	if strings.TrimSpace(week) == "" || strings.TrimSpace(day) == "" || period < 1 {
		return errors.NewInputError("slot", "Please select a Week, Day, and Period.")
	}
	return nil
}

// FindByAvailability reports who is free and who is busy (grouped by
// subject) at the given slot. People whose schedule lacks the slot are left
// out of both groups and listed in Missing.
func (e *Engine) FindByAvailability(roster models.Roster, snapshot models.Snapshot, week, day string, period int) (Availability, error) {
	if err := validateSlot(week, day, period); err != nil {
		return Availability{}, err
	}

	result := Availability{
		Free: []models.Person{},
		Busy: []BusyBucket{},
	}
	index := make(map[string]int)

	for _, person := range roster {
		res := e.ResolveSubject(snapshot, person.ID, week, day, period)
		if !res.Found() {
			logger.Warn("Missing timetable data",
				"person", person.ID, "week", week, "day", day, "period", period, "outcome", res.Outcome)
			result.Missing = append(result.Missing, Exclusion{Person: person, Outcome: res.Outcome})
			continue
		}

		if e.classifier.IsFree(res.Subject) {
			result.Free = append(result.Free, person)
			continue
		}

		i, ok := index[res.Subject]
		if !ok {
			i = len(result.Busy)
			index[res.Subject] = i
			result.Busy = append(result.Busy, BusyBucket{Subject: res.Subject})
		}
		result.Busy[i].People = append(result.Busy[i].People, person)
	}

	return result, nil
}
