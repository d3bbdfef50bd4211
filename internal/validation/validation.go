package validation

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/timetable"
)

// Conflict represents a detected gap or inconsistency in a dataset
type Conflict struct {
	Type        constants.ConflictType
	Description string
	PersonID    string // person involved (if applicable)
	Week        string // week label (if applicable)
	Day         string // day label (if applicable)
	Items       []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns the number of conflicts of the given type
func (vr *ValidationResult) Count(t constants.ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks a roster and timetable against the configured week,
// day and period layout.
type Validator struct {
	settings models.Settings
}

// New creates a new Validator. Missing settings fall back to defaults.
func New(settings models.Settings) *Validator {
	models.ApplyDefaultSettings(&settings)
	return &Validator{settings: settings}
}

// ValidateDataset checks the roster and snapshot of ds.
func (v *Validator) ValidateDataset(ds *models.Dataset) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if ds == nil {
		return result
	}

	v.checkRoster(ds.Roster, &result)
	v.checkSchedules(ds.Roster, ds.Snapshot, &result)
	v.checkSettings(&result)
	return result
}

func (v *Validator) checkRoster(roster models.Roster, result *ValidationResult) {
	seen := make(map[string]int)
	for i, p := range roster {
		if strings.TrimSpace(p.ID) == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictMissingPersonID,
				Description: fmt.Sprintf("Roster entry %d (%q) has no id", i+1, p.Name),
				Items:       []string{p.Name},
			})
			continue
		}
		seen[p.ID]++
		if seen[p.ID] == 2 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicatePersonID,
				Description: fmt.Sprintf("Duplicate person id: %q", p.ID),
				PersonID:    p.ID,
			})
		}
		if p.Color != "" && !slices.Contains(constants.KnownColors, strings.ToLower(p.Color)) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictUnknownColor,
				Description: fmt.Sprintf("%s uses unknown color %q", p.DisplayName(), p.Color),
				PersonID:    p.ID,
				Items:       []string{p.Color},
			})
		}
	}
}

func (v *Validator) checkSchedules(roster models.Roster, snapshot models.Snapshot, result *ValidationResult) {
	periods := len(v.settings.PeriodLabels)

	for _, p := range roster {
		if p.ID == "" {
			continue
		}
		schedule, ok := snapshot[p.ID]
		if !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictNoSchedule,
				Description: fmt.Sprintf("%s has no timetable", p.DisplayName()),
				PersonID:    p.ID,
			})
			continue
		}

		for _, week := range v.settings.WeekOrder {
			days, ok := schedule[week]
			if !ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictMissingWeek,
					Description: fmt.Sprintf("%s has no entries for %s", p.DisplayName(), week),
					PersonID:    p.ID,
					Week:        week,
				})
				continue
			}
			for _, day := range v.settings.DayOrder {
				list, ok := days[day]
				if !ok {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type:        constants.ConflictMissingDay,
						Description: fmt.Sprintf("%s has no entries for %s %s", p.DisplayName(), week, day),
						PersonID:    p.ID,
						Week:        week,
						Day:         day,
					})
					continue
				}
				if len(list) < periods {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type:        constants.ConflictShortDay,
						Description: fmt.Sprintf("%s has %d of %d periods on %s %s", p.DisplayName(), len(list), periods, week, day),
						PersonID:    p.ID,
						Week:        week,
						Day:         day,
					})
				}
			}
		}
	}

	// Schedules whose person is not on the roster are never queried.
	var orphans []string
	for id := range snapshot {
		if _, ok := roster.Find(id); !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictOrphanSchedule,
			Description: fmt.Sprintf("Timetable entry %q does not match anyone on the roster", id),
			PersonID:    id,
		})
	}
}

func (v *Validator) checkSettings(result *ValidationResult) {
	classifier, err := timetable.NewClassifier(v.settings)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictInvalidPolicy,
			Description: err.Error(),
			Items:       []string{string(v.settings.MatchPolicy)},
		})
		return
	}

	markers := v.settings.FreeMarkers
	if classifier.Policy() == constants.MatchSubstring {
		markers = v.settings.SubstringMarkers
	}

	seen := make(map[string]bool)
	for _, m := range markers {
		key := strings.ToLower(strings.TrimSpace(m))
		if seen[key] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictDuplicateFreeMatch,
				Description: fmt.Sprintf("Free marker %q is listed more than once", m),
				Items:       []string{m},
			})
		}
		seen[key] = true
	}
}
