package system

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/importer"
	"github.com/julianstephens/whosfree/internal/printer"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout."`
	Format string `help:"Output layout (json, yaml, legacy). Defaults to the output file's extension, or json."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := c.format()
	if err != nil {
		return err
	}

	doc, err := importer.Export(ctx.Store)
	if err != nil {
		return err
	}

	var w io.Writer = printer.Output
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	}

	if err := importer.Encode(w, doc, format); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if c.Output != "" {
		printer.Success("Exported %d people to %s", len(doc.Roster), c.Output)
	}
	return nil
}

func (c *ExportCmd) format() (importer.Format, error) {
	if c.Format != "" {
		return importer.ParseFormat(c.Format)
	}
	switch strings.ToLower(filepath.Ext(c.Output)) {
	case ".yaml", ".yml":
		return importer.FormatYAML, nil
	default:
		return importer.FormatJSON, nil
	}
}
