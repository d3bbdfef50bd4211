package system

import (
	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/printer"
	"github.com/julianstephens/whosfree/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	ds, err := ctx.Dataset()
	if err != nil {
		return err
	}

	printer.Step("Validating %d people against %d weeks x %d days...",
		len(ds.Roster), len(settings.WeekOrder), len(settings.DayOrder))
	result := validation.New(settings).ValidateDataset(ds)

	printer.Println()
	printer.Println(result.FormatReport())

	// Problems are reported, not returned: a partial timetable still answers
	// queries.
	return nil
}
