package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/config"
	"github.com/julianstephens/whosfree/internal/printer"
	"github.com/julianstephens/whosfree/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting an existing file store before initialization."`
	Source string `help:"Source store path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !ctx.IsFileStore() {
			return fmt.Errorf("--force only resets file stores")
		}
		path := ctx.Store.GetConfigPath()
		if c.Source != "" && samePath(path, c.Source) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			printer.Muted("Deleted existing store at: %s", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	printer.Success("Initialized whosfree storage at: %s", ctx.Store.GetConfigPath())

	if c.Source != "" {
		printer.Step("Copying data from: %s", c.Source)
		src := config.Config{Store: c.Source, Tenant: ctx.Store.GetTenant()}
		source, err := src.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open source store: %w", err)
		}
		if err := source.Load(); err != nil {
			return fmt.Errorf("failed to load source store: %w", err)
		}
		defer source.Close()

		if err := copyStore(source, ctx.Store); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		printer.Success("Migration completed successfully!")
	}
	return nil
}

// copyStore copies every document of one tenant from src to dst.
func copyStore(src, dst storage.Provider) error {
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	roster, err := src.GetRoster()
	if err != nil {
		return fmt.Errorf("failed to get roster from source: %w", err)
	}
	if err := dst.SaveRoster(roster); err != nil {
		return fmt.Errorf("failed to save roster to destination: %w", err)
	}
	printer.Printf("  Copied %d people\n", len(roster))

	snapshot, err := src.GetSnapshot()
	if err != nil {
		return fmt.Errorf("failed to get timetable from source: %w", err)
	}
	if err := dst.SaveSnapshot(snapshot); err != nil {
		return fmt.Errorf("failed to save timetable to destination: %w", err)
	}
	printer.Printf("  Copied %d schedules\n", len(snapshot))

	phrases, err := src.GetCatchphrases()
	if err != nil {
		return fmt.Errorf("failed to get catchphrases from source: %w", err)
	}
	added := 0
	for _, phrase := range phrases {
		ok, err := dst.AddCatchphrase(phrase)
		if err != nil {
			return fmt.Errorf("failed to add catchphrase %q: %w", phrase, err)
		}
		if ok {
			added++
		}
	}
	printer.Printf("  Copied %d catchphrases\n", added)
	return nil
}

func samePath(a, b string) bool {
	if config.BackendFor(b) == config.BackendPostgres || config.BackendFor(b) == config.BackendRedis {
		return a == b
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
