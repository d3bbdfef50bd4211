package query

import (
	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/printer"
)

type DayCmd struct {
	Person string `arg:"" help:"Person id or name."`
	Week   string `short:"w" help:"Week label or number."`
	Day    string `short:"d" help:"Day label or prefix."`
	JSON   bool   `help:"Print the schedule as JSON."`
}

type dayJSON struct {
	Person  string      `json:"person"`
	Week    string      `json:"week"`
	Day     string      `json:"day"`
	Found   bool        `json:"found"`
	Periods interface{} `json:"periods"`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}

	settings := engine.Settings()
	week := settings.ResolveWeek(c.Week)
	day := settings.ResolveDay(c.Day)
	if week == "" || day == "" {
		return errors.NewInputError("slot", "Please select who you are, the Week, and the Day.")
	}

	person, err := cli.FindPerson(ds.Roster, c.Person)
	if err != nil {
		return err
	}

	view := engine.BuildDayView(ds.Snapshot, person.ID, week, day)
	if c.JSON {
		return writeJSON(dayJSON{
			Person:  person.ID,
			Week:    week,
			Day:     day,
			Found:   view.Found(),
			Periods: view.Collect(),
		})
	}

	printer.Day(person, view)
	return nil
}
