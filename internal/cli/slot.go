package cli

import (
	"strconv"
	"strings"

	"github.com/julianstephens/whosfree/internal/models"
)

// SlotFlags select a week, day and period on the command line.
type SlotFlags struct {
	Week   string `short:"w" help:"Week label or number (e.g. \"Week 1\" or 1)."`
	Day    string `short:"d" help:"Day label or prefix (e.g. Monday or mon)."`
	Period int    `short:"p" help:"Period number, starting at 1."`
}

// Resolve maps the flag values onto the configured labels.
func (f SlotFlags) Resolve(settings models.Settings) (week, day string) {
	return settings.ResolveWeek(f.Week), settings.ResolveDay(f.Day)
}

// PersonNotFoundError is returned when a name matches nobody on the roster.
type PersonNotFoundError struct {
	Name string
}

func (e *PersonNotFoundError) Error() string {
	return "no one named " + strconv.Quote(e.Name) + " on the roster"
}

// FindPerson looks up a roster member by id or name.
func FindPerson(roster models.Roster, name string) (models.Person, error) {
	p, ok := roster.Lookup(strings.TrimSpace(name))
	if !ok {
		return models.Person{}, &PersonNotFoundError{Name: name}
	}
	return p, nil
}
