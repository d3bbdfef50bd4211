package phrases

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/whosfree/internal/catchphrase"
	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/printer"
)

// confirmFunc asks before a phrase is stored. Tests replace it.
var confirmFunc = func(phrase string) (bool, error) {
	confirmed := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Are you sure you want to add: %q?", phrase)).
		Affirmative("Yes, add").
		Negative("Cancel").
		Value(&confirmed).
		Run()
	return confirmed, err
}

type PhraseCmd struct {
	Add    PhraseAddCmd    `cmd:"" help:"Add a catchphrase."`
	List   PhraseListCmd   `cmd:"" help:"List all catchphrases."`
	Random PhraseRandomCmd `cmd:"" help:"Show a random catchphrase." default:"1"`
}

type PhraseAddCmd struct {
	Phrase string `arg:"" help:"The phrase to add."`
	Yes    bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *PhraseAddCmd) Run(ctx *cli.Context) error {
	phrase, err := catchphrase.Normalize(c.Phrase)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirmFunc(phrase)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			printer.Muted("Cancelled.")
			return nil
		}
	}

	added, err := ctx.Store.AddCatchphrase(phrase)
	if err != nil {
		return fmt.Errorf("failed to add phrase: %w", err)
	}
	if !added {
		printer.Warning("%q is already a catchphrase.", phrase)
		return nil
	}

	printer.Success("Phrase added: %q", phrase)
	return nil
}

type PhraseListCmd struct{}

func (c *PhraseListCmd) Run(ctx *cli.Context) error {
	phrases, err := ctx.Store.GetCatchphrases()
	if err != nil {
		return fmt.Errorf("failed to get catchphrases: %w", err)
	}
	if len(phrases) == 0 {
		printer.Muted("No catchphrases yet.")
		return nil
	}
	for _, p := range catchphrase.Dedupe(phrases) {
		printer.Println("  " + p)
	}
	return nil
}

type PhraseRandomCmd struct{}

func (c *PhraseRandomCmd) Run(ctx *cli.Context) error {
	phrases, err := ctx.Store.GetCatchphrases()
	if err != nil {
		return fmt.Errorf("failed to get catchphrases: %w", err)
	}
	printer.Phrase(catchphrase.Random(phrases))
	return nil
}
