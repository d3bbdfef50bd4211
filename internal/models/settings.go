package models

import "github.com/julianstephens/whosfree/internal/constants"

// Settings is the query engine's configuration. It is supplied by the caller
// on every engine construction; nothing in the engine hardcodes these values.
type Settings struct {
	FreeMarkers      []string              `json:"free_markers" yaml:"free_markers"`           // subjects meaning "no lesson" under the exact policy
	MatchPolicy      constants.MatchPolicy `json:"match_policy" yaml:"match_policy"`           // "exact" or "substring"
	SubstringMarkers []string              `json:"substring_markers" yaml:"substring_markers"` // needles for the substring policy
	PeriodLabels     []string              `json:"period_labels" yaml:"period_labels"`         // human-facing label per period position
	DayOrder         []string              `json:"day_order" yaml:"day_order"`                 // e.g. Monday..Friday
	WeekOrder        []string              `json:"week_order" yaml:"week_order"`               // e.g. "Week 1", "Week 2"
}
