package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/perfgo/nextest/config"
)

const AppName = "nextest"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
	config config.Config

	// replaced in tests
	loadConfig func(zerolog.Logger) (config.Config, error)
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger:     logger,
		loadConfig: config.Load,
	}
	app.cli = &cli.App{
		Name:  AppName,
		Usage: "List the tests of prebuilt test binaries and plan their invocation",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose (debug) logging",
			},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			cfg, err := app.loadConfig(app.logger)
			if err != nil {
				return err
			}
			app.config = cfg
			return nil
		},
	}

	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list-binaries",
		Usage:  "List the test binaries produced by a build",
		Action: app.listBinaries,
		Flags: []cli.Flag{
			buildEventsFlag(),
			metadataFlag(),
			formatFlag(),
			detailedFlag(),
			colorFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "list",
		Usage:     "List the tests in every test binary",
		ArgsUsage: "[PATTERN...]",
		Action:    app.list,
		Flags:     testListFlags(),
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "plan",
		Usage:     "Print the command line, directory and environment of every test that would run",
		ArgsUsage: "[PATTERN...]",
		Action:    app.plan,
		Flags:     testListFlags(),
		Description: `Prints one invocation per test matching the filter. Every invocation
runs exactly one test, through the configured runner if the binary's build
platform has one.

Examples:
  nextest plan --metadata metadata.json < build-events.json
  nextest plan --metadata metadata.json --format json tests::slow`,
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && len(commit) >= 8 {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
