package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/docboard/internal/core/config"
	"github.com/colonyops/docboard/internal/core/document"
	"github.com/colonyops/docboard/internal/core/fixtures"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// Global returns the root command's flags bound to f.
func (f *Flags) Global() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("DOCBOARD_LOG_LEVEL"),
			Value:       "info",
			Destination: &f.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file (defaults to <data-dir>/docboard.log)",
			Sources:     cli.EnvVars("DOCBOARD_LOG_FILE"),
			Destination: &f.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("DOCBOARD_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &f.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "path to data directory",
			Sources:     cli.EnvVars("DOCBOARD_DATA_DIR"),
			Value:       DefaultDataDir(),
			Destination: &f.DataDir,
		},
	}
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "docboard", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "docboard")
}

// loadDataset returns the configured fixtures. An unset path yields the
// built-in set.
func loadDataset(cfg *config.Config) (*fixtures.Dataset, error) {
	ds, err := fixtures.Load(cfg.Fixtures)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	return ds, nil
}

// loadCatalog returns the configured document catalog. An unset directory
// yields the built-in documents.
func loadCatalog(cfg *config.Config) (*document.Catalog, error) {
	catalog, err := document.Open(cfg.Documents.Dir, cfg.Documents.Pattern)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	return catalog, nil
}
