package system

import (
	"context"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/live"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/printer"
	"github.com/julianstephens/whosfree/internal/timetable"
)

// WatchCmd follows the store and prints a line each time the timetable is
// reloaded.
type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	watcher, err := ctx.Watcher()
	if err != nil {
		return err
	}

	holder := timetable.NewHolder(nil)
	version, ds, err := live.Reload(ctx.Store, holder)
	if err != nil {
		printer.Warning("Initial load failed: %v", err)
	}
	printReload(version, ds, nil)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer.Muted("Watching %s for changes (Ctrl+C to stop)...", ctx.Store.GetConfigPath())
	return live.Follow(runCtx, ctx.Store, watcher, holder, live.WithOnReload(printReload))
}

func printReload(version uint64, ds *models.Dataset, changed []string) {
	line := ds.LoadedAt.Format("15:04:05")
	if len(changed) > 0 {
		line += " [" + strings.Join(changed, ", ") + "]"
	}
	printer.Step("v%d %s: %d people, %d schedules, %d catchphrases",
		version, line, len(ds.Roster), len(ds.Snapshot), len(ds.Catchphrases))
}

// settingsChanged reports whether a reload touched the settings document.
func settingsChanged(changed []string) bool {
	return slices.Contains(changed, constants.DocSettings) || slices.Contains(changed, "*")
}
