package query

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/printer"
	"github.com/julianstephens/whosfree/internal/timetable"
)

type FreeCmd struct {
	cli.SlotFlags `embed:""`
	ShowMissing   bool `help:"List people with no entry for the slot."`
	JSON          bool `help:"Print the result as JSON."`
}

func (c *FreeCmd) Run(ctx *cli.Context) error {
	a, err := availability(ctx, c.SlotFlags)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(a.Free)
	}

	printer.Free(a)
	if c.ShowMissing {
		printer.Missing(a)
	}
	return nil
}

type LessonsCmd struct {
	cli.SlotFlags `embed:""`
	ShowMissing   bool `help:"List people with no entry for the slot."`
	JSON          bool `help:"Print the result as JSON."`
}

func (c *LessonsCmd) Run(ctx *cli.Context) error {
	a, err := availability(ctx, c.SlotFlags)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(a.Busy)
	}

	printer.Lessons(a)
	if c.ShowMissing {
		printer.Missing(a)
	}
	return nil
}

func availability(ctx *cli.Context, slot cli.SlotFlags) (timetable.Availability, error) {
	engine, err := ctx.Engine()
	if err != nil {
		return timetable.Availability{}, err
	}
	ds, err := ctx.Dataset()
	if err != nil {
		return timetable.Availability{}, err
	}

	week, day := slot.Resolve(engine.Settings())
	return engine.FindByAvailability(ds.Roster, ds.Snapshot, week, day, slot.Period)
}

func writeJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	printer.Println(string(out))
	return nil
}
