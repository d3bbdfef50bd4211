package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/printer"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	FreeMarkers      []string `help:"Subjects that mean a free period under the exact policy (comma separated)." sep:","`
	ClearFreeMarkers bool     `help:"Remove all free markers, so only blank subjects are free."`
	MatchPolicy      *string  `help:"How subjects are compared with free markers: exact or substring." enum:"exact,substring"`
	SubstringMarkers []string `help:"Needles for the substring policy (comma separated)." sep:","`
	PeriodLabels     []string `help:"Label for each period position (comma separated)." sep:","`
	DayOrder         []string `help:"Day labels in display order (comma separated)." sep:","`
	WeekOrder        []string `help:"Week labels in display order (comma separated)." sep:","`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		printSettings(settings)
		return nil
	}

	updated := false
	if c.ClearFreeMarkers {
		settings.FreeMarkers = []string{}
		updated = true
	}
	if c.FreeMarkers != nil {
		settings.FreeMarkers = clean(c.FreeMarkers)
		updated = true
	}
	if c.MatchPolicy != nil {
		policy, err := models.ParseMatchPolicy(*c.MatchPolicy)
		if err != nil {
			return errors.NewInputError("match_policy", "%v", err)
		}
		settings.MatchPolicy = policy
		updated = true
	}
	if c.SubstringMarkers != nil {
		settings.SubstringMarkers = clean(c.SubstringMarkers)
		updated = true
	}
	if c.PeriodLabels != nil {
		settings.PeriodLabels = clean(c.PeriodLabels)
		updated = true
	}
	if c.DayOrder != nil {
		settings.DayOrder = clean(c.DayOrder)
		updated = true
	}
	if c.WeekOrder != nil {
		settings.WeekOrder = clean(c.WeekOrder)
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		printer.Success("Settings updated successfully.")
	} else {
		printer.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

func printSettings(s models.Settings) {
	printer.Println("Current Settings:")
	printer.Printf("  Match Policy:      %s\n", s.MatchPolicy)
	printer.Printf("  Free Markers:      %s\n", joinOrNone(s.FreeMarkers))
	printer.Printf("  Substring Markers: %s\n", joinOrNone(s.SubstringMarkers))
	printer.Printf("  Period Labels:     %s\n", joinOrNone(s.PeriodLabels))
	printer.Printf("  Day Order:         %s\n", joinOrNone(s.DayOrder))
	printer.Printf("  Week Order:        %s\n", joinOrNone(s.WeekOrder))
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}

func clean(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
