package timetable

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/models"
)

var folder = cases.Fold()

// normalize trims surrounding whitespace and case-folds s.
func normalize(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// Classifier decides whether a subject string denotes a free period.
type Classifier struct {
	policy  constants.MatchPolicy
	markers map[string]bool
	needles []string
}

// NewClassifier builds a classifier from the free-period settings. An unknown
// match policy is reported as an input error.
func NewClassifier(settings models.Settings) (*Classifier, error) {
	policy, err := models.ParseMatchPolicy(string(settings.MatchPolicy))
	if err != nil {
		return nil, errors.NewInputError("match_policy", "%v", err)
	}

	c := &Classifier{
		policy:  policy,
		markers: make(map[string]bool, len(settings.FreeMarkers)),
	}
	for _, m := range settings.FreeMarkers {
		c.markers[normalize(m)] = true
	}
	for _, n := range settings.SubstringMarkers {
		if n := normalize(n); n != "" {
			c.needles = append(c.needles, n)
		}
	}
	return c, nil
}

// Policy returns the active match policy.
func (c *Classifier) Policy() constants.MatchPolicy {
	return c.policy
}

// IsFree reports whether subject is a free period. An empty (or all
// whitespace) subject is always free.
func (c *Classifier) IsFree(subject string) bool {
	s := normalize(subject)
	if s == "" {
		return true
	}

	switch c.policy {
	case constants.MatchSubstring:
		for _, n := range c.needles {
			if strings.Contains(s, n) {
				return true
			}
		}
		return false
	default:
		return c.markers[s]
	}
}
