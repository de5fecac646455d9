package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/docboard/internal/core/config"
	"github.com/colonyops/docboard/internal/core/styles"
	"github.com/colonyops/docboard/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "docboard config validate [options]",
				Description: "Validates the configuration file, checking the fixtures file, document directory and glob pattern, and export directory.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationIssue is one field error in the report.
type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	issues, err := collectIssues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))
	if err != nil {
		return err
	}
	warnings := cmd.flags.Config.Warnings()

	out := c.Root().Writer
	if cmd.format == "json" {
		return cmd.outputJSON(out, issues, warnings)
	}
	return cmd.outputText(out, issues, warnings)
}

// collectIssues flattens field errors. Any other error is returned as is.
func collectIssues(err error) ([]validationIssue, error) {
	if err == nil {
		return nil, nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues, nil
}

func (cmd *ConfigValidateCmd) outputJSON(w io.Writer, issues []validationIssue, warnings []config.ValidationWarning) error {
	out := struct {
		Valid    bool                       `json:"valid"`
		Errors   []validationIssue          `json:"errors,omitempty"`
		Warnings []config.ValidationWarning `json:"warnings,omitempty"`
	}{
		Valid:    len(issues) == 0,
		Errors:   issues,
		Warnings: warnings,
	}

	if err := iojson.Encode(w, out); err != nil {
		return err
	}
	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(w io.Writer, issues []validationIssue, warnings []config.ValidationWarning) error {
	var (
		ok   = styles.CommandHeaderStyle.Foreground(styles.ColorSuccess)
		warn = styles.CommandHeaderStyle.Foreground(styles.ColorWarning)
		bad  = styles.CommandHeaderStyle.Foreground(styles.ColorError)
		dim  = styles.DividerStyle
	)

	for _, wr := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", warn.Render(styles.IconWarning), wr.Category, wr.Message)
		if wr.Item != "" {
			_, _ = fmt.Fprintf(w, "  %s\n", dim.Render("Item: "+wr.Item))
		}
	}

	for _, is := range issues {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", bad.Render(styles.IconError), is.Field, is.Message)
	}

	_, _ = fmt.Fprintln(w)
	if len(issues) == 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", ok.Render(styles.IconSuccess), "Configuration is valid")
		return nil
	}

	_, _ = fmt.Fprintf(w, "%s %d error(s) found\n", bad.Render(styles.IconError), len(issues))
	return cli.Exit("", 1)
}
