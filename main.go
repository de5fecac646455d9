package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/docboard/internal/commands"
	"github.com/colonyops/docboard/internal/core/config"
	"github.com/colonyops/docboard/internal/core/styles"
	"github.com/colonyops/docboard/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app, tuiCmd := commands.NewRoot(flags)
	app.Version = build()

	app.Before = func(ctx context.Context, c *cli.Command) (context.Context, error) {
		// Always log to a file; use explicit path or default to <datadir>/docboard.log
		logFile := flags.LogFile
		if logFile == "" {
			logFile = filepath.Join(flags.DataDir, "docboard.log")
		}

		logger, closer, err := logutils.New(flags.LogLevel, logFile)
		if err != nil {
			return ctx, fmt.Errorf("setup logger: %w", err)
		}
		log.Logger = logger
		logCloser = closer

		cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
		if err != nil {
			return ctx, fmt.Errorf("load config: %w", err)
		}
		flags.Config = cfg

		// Apply configured theme (validation ensures name is valid)
		palette, _ := styles.GetPalette(cfg.Theme)
		styles.SetTheme(palette)

		return ctx, nil
	}

	app.After = func(ctx context.Context, c *cli.Command) error {
		if logCloser != nil {
			logCloser()
		}
		return nil
	}

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'docboard --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
