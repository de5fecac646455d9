package config

import (
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// glob patterns and file accessibility. The configPath argument specifies the
// config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateDocuments(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.TUI.FocusDelay < 10*time.Millisecond {
		warnings = append(warnings, ValidationWarning{
			Category: "TUI",
			Item:     "focus_delay",
			Message:  "focus delay under 10ms may race with the panel render",
		})
	}

	if c.Documents.Dir == "" && c.Fixtures != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Documents",
			Message:  "custom fixtures with built-in documents; cities without a document show an empty preview",
		})
	}

	return warnings
}

// validateFileAccess checks the config file, fixtures file, and directories.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("fixtures", c.Fixtures, isFileIfSet),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("export.dir", c.Export.Dir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateDocuments checks the documents directory and glob pattern.
func (c *Config) validateDocuments() error {
	var errs criterio.FieldErrorsBuilder

	if !doublestar.ValidatePattern(c.Documents.Pattern) {
		errs = errs.Append("documents.pattern", fmt.Errorf("invalid glob %q", c.Documents.Pattern))
	}

	if c.Documents.Dir != "" {
		info, err := os.Stat(c.Documents.Dir)
		switch {
		case err != nil:
			errs = errs.Append("documents.dir", fmt.Errorf("cannot access: %w", err))
		case !info.IsDir():
			errs = errs.Append("documents.dir", fmt.Errorf("%s is not a directory", c.Documents.Dir))
		}
	}

	return errs.ToError()
}

func isFileIfSet(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
