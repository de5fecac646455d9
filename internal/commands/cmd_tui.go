package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/docboard/internal/tui"
	"github.com/colonyops/docboard/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags

	exportDir    string
	profilerPort int
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "export-dir",
			Usage:       "directory the download action writes to (overrides export.dir)",
			Sources:     cli.EnvVars("DOCBOARD_EXPORT_DIR"),
			Destination: &cmd.exportDir,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("DOCBOARD_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := *cmd.flags.Config
	if cmd.exportDir != "" {
		cfg.Export.Dir = cmd.exportDir
	}

	dataset, err := loadDataset(&cfg)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(&cfg)
	if err != nil {
		return err
	}

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort, log.Logger)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().Str("url", profServer.URL()).Msg("profiler endpoint available")
	}

	log.Debug().
		Int("widgets", len(dataset.Widgets)).
		Int("documents", catalog.Len()).
		Msg("starting dashboard")

	m := tui.New(&cfg, tui.Options{
		Dataset: dataset,
		Catalog: catalog,
		Logger:  log.Logger,
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
