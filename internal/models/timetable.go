package models

import (
	"sort"
	"strings"
)

// PeriodList is an ordered list of subjects; index 0 is period 1.
type PeriodList []string

// DaySchedule maps a day label (e.g. "Monday") to its periods.
type DaySchedule map[string]PeriodList

// PersonSchedule maps a week label (e.g. "Week 1") to a day schedule.
type PersonSchedule map[string]DaySchedule

// Snapshot maps a person id to their schedule. A snapshot is treated as an
// immutable value: replacements are wholesale.
type Snapshot map[string]PersonSchedule

// Weeks returns the distinct week labels present in the snapshot, sorted.
func (s Snapshot) Weeks() []string {
	seen := make(map[string]bool)
	for _, ps := range s {
		for week := range ps {
			seen[week] = true
		}
	}
	return sortedKeys(seen)
}

// Days returns the distinct day labels present in the snapshot, sorted.
func (s Snapshot) Days() []string {
	seen := make(map[string]bool)
	for _, ps := range s {
		for _, ds := range ps {
			for day := range ds {
				seen[day] = true
			}
		}
	}
	return sortedKeys(seen)
}

// MaxPeriods returns the length of the longest period list in the snapshot.
func (s Snapshot) MaxPeriods() int {
	max := 0
	for _, ps := range s {
		for _, ds := range ps {
			for _, periods := range ds {
				if len(periods) > max {
					max = len(periods)
				}
			}
		}
	}
	return max
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
