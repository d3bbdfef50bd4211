package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/whosfree/internal/api"
	"github.com/julianstephens/whosfree/internal/cli"
	whosfreeerrors "github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/live"
	"github.com/julianstephens/whosfree/internal/lockfile"
	"github.com/julianstephens/whosfree/internal/logger"
	"github.com/julianstephens/whosfree/internal/models"
	"github.com/julianstephens/whosfree/internal/printer"
	"github.com/julianstephens/whosfree/internal/timetable"
)

// ServeCmd runs the HTTP API and keeps it in step with the store.
type ServeCmd struct {
	Addr   string `help:"Listen address. Defaults to --listen."`
	NoLive bool   `help:"Serve the dataset loaded at startup without following changes."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Listen
	}

	lock, err := lockfile.Acquire(ctx.DataDir(), addr, ctx.Store.GetTenant())
	if err != nil {
		if errors.Is(err, lockfile.ErrAlreadyRunning) {
			info, _ := lockfile.Read(ctx.DataDir())
			return printer.Error(
				"whosfree is already serving this data directory",
				fmt.Sprintf("A server (pid %d) is listening on %s.", info.PID, info.Addr),
				[]string{"Stop the running server first."},
			)
		}
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release serve lock", "error", err)
		}
	}()

	holder := timetable.NewHolder(nil)
	if _, _, err := live.Reload(ctx.Store, holder); err != nil {
		logger.Warn("Initial load failed, serving empty dataset", "error", err)
	}

	srv, err := api.New(ctx.Store, holder)
	if err != nil {
		return fmt.Errorf("failed to start API: %w", err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !c.NoLive {
		if err := c.follow(runCtx, ctx, holder, srv); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(addr)
	}()
	printer.Success("Serving %s on %s", ctx.Store.GetTenant(), addr)

	select {
	case err := <-errCh:
		return err
	case <-runCtx.Done():
	}

	printer.Muted("Shutting down...")
	if err := srv.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return <-errCh
}

func (c *ServeCmd) follow(runCtx context.Context, ctx *cli.Context, holder *timetable.Holder, srv *api.Server) error {
	watcher, err := ctx.Watcher()
	if errors.Is(err, whosfreeerrors.ErrWatchUnsupported) {
		logger.Warn("Store has no change feed, serving the startup dataset", "store", ctx.Store.GetConfigPath())
		return nil
	}
	if err != nil {
		return err
	}

	onReload := func(version uint64, _ *models.Dataset, changed []string) {
		logger.Debug("Documents changed", "version", version, "changed", changed)
		if settingsChanged(changed) {
			if err := srv.ReloadSettings(); err != nil {
				logger.Error("Failed to reload settings", "error", err)
			}
		}
	}

	go func() {
		if err := live.Follow(runCtx, ctx.Store, watcher, holder, live.WithOnReload(onReload)); err != nil {
			logger.Error("Live updates stopped", "error", err)
		}
	}()
	return nil
}
