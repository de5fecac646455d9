package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// TableWidgetCompleter returns a ShellCompleteFunc that suggests "widget:"
// prefixes for --select, one per table widget.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TableWidgetCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if flags.Config == nil {
			return
		}

		dataset, err := loadDataset(flags.Config)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, t := range dataset.Tables() {
			_, _ = fmt.Fprintf(w, "%s:\n", t.ID)
		}
	}
}
