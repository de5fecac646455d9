package commands

import (
	"github.com/urfave/cli/v3"
)

// NewRoot builds the docboard command tree with every subcommand and the
// TUI flags registered. Callers add the lifecycle hooks and default action.
func NewRoot(flags *Flags) (*cli.Command, *TuiCmd) {
	root := &cli.Command{
		Name:      "docboard",
		Usage:     "Browse city documents from a dashboard of tables",
		UsageText: "docboard [global options] command [command options]",
		Description: `Docboard shows a grid of table widgets. Activating a row opens the city's
document in a side panel; compare mode checks rows across tables and opens
two documents side by side.

Run 'docboard' with no arguments to open the dashboard.
Run 'docboard export' to write a selection without the dashboard.`,
		EnableShellCompletion: true,
		Flags:                 flags.Global(),
	}

	tuiCmd := NewTuiCmd(flags)

	root = NewTablesCmd(flags).Register(root)
	root = NewExportCmd(flags).Register(root)
	root = NewConfigValidateCmd(flags).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	return root, tuiCmd
}
