// Package config handles configuration loading and validation for docboard.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/docboard/internal/core/styles"
)

// Dashboard actions that keys can be bound to.
const (
	ActionToggleCompare = "toggle_compare"
	ActionDownload      = "download"
	ActionCompare       = "compare"
	ActionClose         = "close"
	ActionSearch        = "search"
	ActionHelp          = "help"
	ActionQuit          = "quit"
	ActionMoveLeft      = "move_left"
	ActionMoveRight     = "move_right"
	ActionHideWidget    = "hide_widget"
	ActionResetLayout   = "reset_layout"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]string{
	"m":   ActionToggleCompare,
	"d":   ActionDownload,
	"c":   ActionCompare,
	"esc": ActionClose,
	"/":   ActionSearch,
	"?":   ActionHelp,
	"q":   ActionQuit,
	"<":   ActionMoveLeft,
	">":   ActionMoveRight,
	"x":   ActionHideWidget,
	"R":   ActionResetLayout,
}

// Config holds the application configuration.
type Config struct {
	Theme       string            `yaml:"theme"`
	Fixtures    string            `yaml:"fixtures"` // dataset file; empty uses the built-in one
	Documents   DocumentsConfig   `yaml:"documents"`
	Export      ExportConfig      `yaml:"export"`
	TUI         TUIConfig         `yaml:"tui"`
	Keybindings map[string]string `yaml:"keybindings"` // key -> action
	DataDir     string            `yaml:"-"`           // set by caller, not from config file
}

// DocumentsConfig locates the markdown documents shown in the preview panel.
type DocumentsConfig struct {
	Dir     string `yaml:"dir"`     // empty uses the built-in documents
	Pattern string `yaml:"pattern"` // doublestar glob relative to Dir
}

// ExportConfig controls where the download action writes.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// TUIConfig holds dashboard layout and timing settings.
type TUIConfig struct {
	FocusDelay  time.Duration `yaml:"focus_delay"`
	PanelWidth  int           `yaml:"panel_width"`
	GridColumns int           `yaml:"grid_columns"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: styles.DefaultTheme,
		Documents: DocumentsConfig{
			Pattern: "**/*.md",
		},
		Export: ExportConfig{
			Dir: ".",
		},
		TUI: TUIConfig{
			FocusDelay:  50 * time.Millisecond,
			PanelWidth:  72,
			GridColumns: 2,
		},
		Keybindings: map[string]string{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Documents.Pattern == "" {
		c.Documents.Pattern = defaults.Documents.Pattern
	}
	if c.Export.Dir == "" {
		c.Export.Dir = defaults.Export.Dir
	}
	if c.TUI.FocusDelay == 0 {
		c.TUI.FocusDelay = defaults.TUI.FocusDelay
	}
	if c.TUI.PanelWidth == 0 {
		c.TUI.PanelWidth = defaults.TUI.PanelWidth
	}
	if c.TUI.GridColumns == 0 {
		c.TUI.GridColumns = defaults.TUI.GridColumns
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]string) map[string]string {
	result := make(map[string]string, len(defaults)+len(user))

	// Copy defaults first
	for k, v := range defaults {
		result[k] = v
	}

	// Override with user config
	for k, v := range user {
		result[k] = v
	}

	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", c.Theme, styles.ThemeNames())
	}

	if c.TUI.FocusDelay < 0 || c.TUI.FocusDelay > time.Second {
		return fmt.Errorf("tui.focus_delay must be between 0 and 1s, got %s", c.TUI.FocusDelay)
	}

	if c.TUI.PanelWidth < 30 {
		return fmt.Errorf("tui.panel_width must be at least 30")
	}

	if c.TUI.GridColumns < 1 || c.TUI.GridColumns > 4 {
		return fmt.Errorf("tui.grid_columns must be between 1 and 4")
	}

	for key, action := range c.Keybindings {
		if !isValidAction(action) {
			return fmt.Errorf("keybinding %q has invalid action %q", key, action)
		}
	}

	return nil
}

func isValidAction(action string) bool {
	switch action {
	case ActionToggleCompare, ActionDownload, ActionCompare, ActionClose,
		ActionSearch, ActionHelp, ActionQuit, ActionMoveLeft, ActionMoveRight,
		ActionHideWidget, ActionResetLayout:
		return true
	default:
		return false
	}
}
