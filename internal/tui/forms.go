package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/whosfree/internal/catchphrase"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/models"
)

func NewSlotForm(f *SlotFormModel, settings models.Settings) *huh.Form {
	periods := make([]huh.Option[int], 0, len(settings.PeriodLabels))
	for i := range settings.PeriodLabels {
		periods = append(periods, huh.NewOption(settings.PeriodLabel(i+1), i+1))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Week").
				Options(huh.NewOptions(settings.WeekOrder...)...).
				Value(&f.Week),
			huh.NewSelect[string]().
				Title("Day").
				Options(huh.NewOptions(settings.DayOrder...)...).
				Value(&f.Day),
			huh.NewSelect[int]().
				Title("Period").
				Options(periods...).
				Value(&f.Period),
		),
	).WithShowHelp(true)
}

func NewPersonForm(f *PersonFormModel, roster models.Roster) *huh.Form {
	options := make([]huh.Option[string], 0, len(roster))
	for _, p := range roster {
		options = append(options, huh.NewOption(p.DisplayName(), p.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Who are you?").
				Options(options...).
				Value(&f.PersonID),
		),
	).WithShowHelp(true)
}

func NewSearchForm(f *SearchFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search subjects").
				Placeholder("e.g. maths").
				Value(&f.Needle).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.NewInputError("needle", "Type something to search for")
					}
					return nil
				}),
		),
	).WithShowHelp(true)
}

func NewPhraseForm(f *PhraseFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New catchphrase").
				Value(&f.Phrase).
				Validate(func(s string) error {
					_, err := catchphrase.Normalize(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().
				TitleFunc(func() string {
					return fmt.Sprintf("Are you sure you want to add: %q?", strings.TrimSpace(f.Phrase))
				}, &f.Phrase).
				Affirmative("Yes, add").
				Negative("Cancel").
				Value(&f.Confirm),
		),
	).WithShowHelp(true)
}
