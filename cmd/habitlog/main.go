package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/cli/backups"
	"github.com/julianstephens/habitlog/internal/cli/coaching"
	"github.com/julianstephens/habitlog/internal/cli/habits"
	"github.com/julianstephens/habitlog/internal/cli/reports"
	"github.com/julianstephens/habitlog/internal/cli/system"
	"github.com/julianstephens/habitlog/internal/config"
	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
)

var CLI struct {
	Version    kong.VersionFlag
	Data       string `help:"Data location: JSON file, SQLite file (.db) or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string." type:"string"`
	ConfigFile string `help:"YAML config file path." name:"config-file" env:"HABITLOG_CONFIG" type:"path"`
	Debug      bool   `help:"Enable debug logging to stderr."`

	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit   habits.HabitCmd   `cmd:"" help:"Manage habits and daily tracking."`
	Stats   reports.StatsCmd  `cmd:"" help:"Show completion statistics."`
	Export  reports.ExportCmd `cmd:"" help:"Export habits as markdown, csv or a json backup."`
	Coach   coaching.CoachCmd `cmd:"" help:"Ask the AI habit coach."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the coach API key in the OS keyring."`
	Backup  backups.BackupCmd `cmd:"" help:"Manage habit backups."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Local habit tracker with statistics, exports and an AI coach"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Data != "" {
		cfg.Data = CLI.Data
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	configDir, err := config.ExpandPath(constants.DefaultConfigDir)
	if err != nil {
		errors.Fatal(err)
	}
	err = logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: configDir,
		Level:     cfg.LogLevel,
		Command:   ctx.Command(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging at %s: %v\n", logger.FilePath(configDir), err)
	}

	if cfg.Data, err = config.ExpandPath(cfg.Data); err != nil {
		errors.Fatal(err)
	}
	if cfg.ExportDir, err = config.ExpandPath(cfg.ExportDir); err != nil {
		errors.Fatal(err)
	}

	store, err := storage.Open(cfg.Data)
	if err != nil {
		errors.Fatal(err)
	}
	logger.WithData(store.GetConfigPath())

	appCtx := cli.NewContext(cfg, store, cli.StateDirFor(cfg.Data, configDir))
	logger.Debug("Starting command")

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}
