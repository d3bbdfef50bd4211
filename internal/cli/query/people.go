package query

import (
	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/printer"
)

type PeopleCmd struct {
	JSON bool `help:"Print the roster as JSON."`
}

func (c *PeopleCmd) Run(ctx *cli.Context) error {
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(ds.Roster)
	}

	if len(ds.Roster) == 0 {
		printer.Muted("No people yet. Use 'whosfree import' to load a timetable.")
		return nil
	}
	for _, p := range ds.Roster {
		if _, ok := ds.Snapshot[p.ID]; !ok {
			printer.Printf("  %s  %s\n", printer.Swatch(p), "(no timetable)")
			continue
		}
		printer.Println("  " + printer.Swatch(p))
	}
	return nil
}
