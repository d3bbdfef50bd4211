package timetable

import (
	"strings"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/models"
)

// SubjectMatch is a period whose subject contains the search needle.
type SubjectMatch struct {
	Person  models.Person `json:"person"`
	Period  int           `json:"period"`
	Label   string        `json:"label"`
	Subject string        `json:"subject"`
}

// FindBySubjectSubstring lists every non-free period on the given day whose
// subject contains needle, ignoring case. Results follow roster order, then
// period order.
func (e *Engine) FindBySubjectSubstring(roster models.Roster, snapshot models.Snapshot, week, day, needle string) ([]SubjectMatch, error) {
	n := normalize(needle)
	if n == "" {
		return nil, errors.NewInputError("needle", "Type something to search for")
	}
	if strings.TrimSpace(week) == "" || strings.TrimSpace(day) == "" {
		return nil, errors.NewInputError("slot", "Please select a Week and Day.")
	}

	matches := []SubjectMatch{}
	for _, person := range roster {
		periods, outcome := lookupDay(snapshot, person.ID, week, day)
		if outcome != constants.OutcomeFound {
			logger.Debug("Skipping person without schedule", "person", person.ID, "outcome", outcome)
			continue
		}

		for i, raw := range periods {
			subject := strings.TrimSpace(raw)
			if e.classifier.IsFree(subject) {
				continue
			}
			if strings.Contains(normalize(subject), n) {
				matches = append(matches, SubjectMatch{
					Person:  person,
					Period:  i + 1,
					Label:   e.settings.PeriodLabel(i + 1),
					Subject: subject,
				})
			}
		}
	}
	return matches, nil
}
