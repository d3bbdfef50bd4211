package system

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/whosfree/internal/cli"
	whosfreeerrors "github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/live"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/timetable"
	"github.com/julianstephens/whosfree/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	holder := timetable.NewHolder(nil)
	if _, _, err := live.Reload(ctx.Store, holder); err != nil {
		logger.Warn("Initial load failed", "error", err)
	}

	model, err := tui.NewModel(ctx.Store, holder)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())

	followCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watcher, err := ctx.Watcher(); err == nil {
		onReload := func(version uint64, _ *models.Dataset, changed []string) {
			p.Send(tui.ReloadedMsg{Version: version, SettingsChanged: settingsChanged(changed)})
		}
		go func() {
			if err := live.Follow(followCtx, ctx.Store, watcher, holder, live.WithOnReload(onReload)); err != nil {
				logger.Warn("Live updates stopped", "error", err)
			}
		}()
	} else if !errors.Is(err, whosfreeerrors.ErrWatchUnsupported) {
		logger.Warn("Live updates unavailable", "error", err)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}
