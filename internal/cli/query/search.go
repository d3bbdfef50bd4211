package query

import (
	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/printer"
)

type SearchCmd struct {
	Needle        string `arg:"" help:"Text to look for in subjects."`
	cli.SlotFlags `embed:""`
	JSON          bool `help:"Print matches as JSON."`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}

	week, day := c.SlotFlags.Resolve(engine.Settings())
	matches, err := engine.FindBySubjectSubstring(ds.Roster, ds.Snapshot, week, day, c.Needle)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(matches)
	}

	printer.Matches(c.Needle, matches)
	return nil
}
