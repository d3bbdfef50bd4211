package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/importer"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/printer"
	"github.com/julianstephens/whosfree/internal/validation"
)

type ImportCmd struct {
	File         string `arg:"" type:"existingfile" help:"Timetable file (legacy timetable.json, or a JSON/YAML document)."`
	Catchphrases string `type:"existingfile" help:"JSON or YAML list of catchphrases to add."`
	Format       string `help:"Force the input layout (legacy, json, yaml). Detected from the file by default."`
	DryRun       bool   `help:"Parse and validate without writing to the store."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	result, err := c.read()
	if err != nil {
		return err
	}

	if c.Catchphrases != "" {
		phrases, err := importer.ReadCatchphrases(c.Catchphrases)
		if err != nil {
			return err
		}
		result.Catchphrases = append(result.Catchphrases, phrases...)
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if result.Settings != nil {
		settings = *result.Settings
		models.ApplyDefaultSettings(&settings)
	}
	if result.Metadata != nil {
		if len(result.Metadata.Weeks) > 0 {
			settings.WeekOrder = result.Metadata.Weeks
		}
		if len(result.Metadata.Days) > 0 {
			settings.DayOrder = result.Metadata.Days
		}
	}

	report := validation.New(settings).ValidateDataset(&models.Dataset{
		Roster:       result.Roster,
		Snapshot:     result.Snapshot,
		Catchphrases: result.Catchphrases,
	})
	printer.Println(report.FormatReport())

	if c.DryRun {
		printer.Muted("Dry run: %d people, %d schedules, %d catchphrases parsed. Nothing written.",
			len(result.Roster), len(result.Snapshot), len(result.Catchphrases))
		return nil
	}

	ctx.PerformAutomaticBackup()

	summary, err := importer.Apply(ctx.Store, result)
	if err != nil {
		return err
	}
	printer.Success("Imported %d people and %d schedules (%s layout).", summary.People, summary.Schedules, result.Format)
	if summary.PhrasesAdded > 0 {
		printer.Printf("  Added %d new catchphrases\n", summary.PhrasesAdded)
	}
	return nil
}

func (c *ImportCmd) read() (*importer.Result, error) {
	if c.Format == "" {
		return importer.ReadFile(c.File)
	}
	format, err := importer.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	return importer.Parse(data, format)
}
