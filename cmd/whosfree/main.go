package main

import (
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/whosfree/internal/cli"
	"github.com/julianstephens/whosfree/internal/cli/backups"
	"github.com/julianstephens/whosfree/internal/cli/phrases"
	"github.com/julianstephens/whosfree/internal/cli/query"
	"github.com/julianstephens/whosfree/internal/cli/settings"
	"github.com/julianstephens/whosfree/internal/cli/system"
	"github.com/julianstephens/whosfree/internal/config"
	"github.com/julianstephens/whosfree/internal/constants"
	"github.com/julianstephens/whosfree/internal/errors"
	"github.com/julianstephens/whosfree/internal/logger"
)

var CLI struct {
	Version       kong.VersionFlag
	Store         string        `help:"Store path (.db for SQLite, .json for a JSON file), a postgres:// or redis:// URL, or 'keyring' to read the URL from the OS keyring. PostgreSQL URLs must NOT embed a password." env:"WHOSFREE_STORE" default:"${default_store}"`
	Tenant        string        `help:"Tenant (one school or team) inside the store." env:"WHOSFREE_TENANT" default:"${default_tenant}"`
	Debug         bool          `help:"Mirror debug logs to stderr." env:"WHOSFREE_DEBUG"`
	Listen        string        `help:"HTTP listen address for serve." env:"WHOSFREE_LISTEN" default:"${default_listen}"`
	RedisPassword string        `help:"Redis AUTH password. Falls back to the OS keyring." env:"WHOSFREE_REDIS_PASSWORD"`
	Poll          time.Duration `help:"How often file stores are checked for changes." env:"WHOSFREE_POLL" default:"2s"`

	Init     system.InitCmd       `cmd:"" help:"Initialize whosfree storage."`
	Import   system.ImportCmd     `cmd:"" help:"Import a timetable file."`
	Export   system.ExportCmd     `cmd:"" help:"Export the roster, timetable, settings and catchphrases."`
	People   query.PeopleCmd      `cmd:"" help:"List the roster."`
	Free     query.FreeCmd        `cmd:"" help:"Show who is free in a period."`
	Lessons  query.LessonsCmd     `cmd:"" help:"Show who is in a lesson in a period, grouped by subject."`
	Day      query.DayCmd         `cmd:"" help:"Show one person's day."`
	Search   query.SearchCmd      `cmd:"" help:"Find lessons whose subject contains some text."`
	Phrase   phrases.PhraseCmd    `cmd:"" help:"Manage catchphrases."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage query settings."`
	Validate system.ValidateCmd   `cmd:"" help:"Check the timetable for gaps and inconsistencies."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Watch    system.WatchCmd      `cmd:"" help:"Follow the store and report each reload."`
	Serve    system.ServeCmd      `cmd:"" help:"Serve the HTTP API."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage file store backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string or redis password in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

func main() {
	config.LoadDotenv()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Who's free? Timetable lookups for a two-week rota."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_store":  constants.DefaultConfigPath,
			"default_tenant": constants.DefaultTenant,
			"default_listen": constants.DefaultListenAddr,
		},
	)

	command := ctx.Command()
	cfg := config.Config{
		Store:         CLI.Store,
		Tenant:        CLI.Tenant,
		Debug:         CLI.Debug,
		Listen:        CLI.Listen,
		RedisPassword: CLI.RedisPassword,
		PollInterval:  CLI.Poll,
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.DataDir(),
		Quiet:     command == "tui",
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	// Keyring commands manage the credentials a store would need, so they
	// run without one.
	if strings.HasPrefix(command, "keyring") {
		errors.Fatal(ctx.Run(&cli.Context{Config: cfg}))
		return
	}

	store, err := cfg.OpenStore()
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
	}

	// Init and doctor handle their own loading
	if command != "init" && command != "doctor" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
