package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/docboard/internal/core/fixtures"
	"github.com/colonyops/docboard/internal/core/focus"
	"github.com/colonyops/docboard/internal/core/selection"
	"github.com/colonyops/docboard/pkg/iojson"
)

type ExportCmd struct {
	flags *Flags
	fr    *iojson.FileReader[ExportInput]

	// flags
	selects []string
	out     string

	now    func() time.Time
	prompt func(*fixtures.Dataset) ([]ExportSelection, error)
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{
		flags:  flags,
		fr:     &iojson.FileReader[ExportInput]{},
		now:    time.Now,
		prompt: promptSelections,
	}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "export",
		Usage: "Write the selected cities to a JSON file",
		UsageText: `docboard export [options]

Select rows by flag:
  docboard export --select widget1:1,3 --select widget2:4

Read from file or stdin:
  docboard export -f selection.json
  echo '{"selections":[{"widget":"widget1","rows":[1]}]}' | docboard export`,
		Description: `Applies the selection to each table the same way the dashboard's compare
mode does and writes the download file. Cities are deduplicated and only the
most recent two are kept.

With no --select flag and no piped input, an interactive picker is shown.

Input JSON schema:
  {
    "selections": [
      { "widget": "widget1", "rows": [1, 3] }
    ]
  }`,
		DisableSliceFlagSeparator: true,
		ShellComplete:             TableWidgetCompleter(cmd.flags),
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.StringSliceFlag{
				Name:        "select",
				Aliases:     []string{"s"},
				Usage:       "rows to select as widget:id,id (repeatable)",
				Destination: &cmd.selects,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "directory to write to (defaults to export.dir)",
				Destination: &cmd.out,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(_ context.Context, c *cli.Command) error {
	dataset, err := loadDataset(cmd.flags.Config)
	if err != nil {
		return err
	}

	selections, err := cmd.readSelections(dataset)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	input := ExportInput{Selections: selections}
	if err := input.Validate(dataset); err != nil {
		return fmt.Errorf("invalid selection: %w", err)
	}

	coord := selection.New(dataset, selection.Options{
		Fallback: focus.CompareAction,
		Logger:   log.Logger,
	})
	for _, s := range input.Selections {
		coord.ChangeSelection(s.Widget, s.Rows)
	}

	out := c.Root().Writer
	now := cmd.now()

	export, ok := coord.Export(now)
	if !ok {
		_, _ = fmt.Fprintln(out, "nothing selected")
		return nil
	}

	dir := cmd.out
	if dir == "" {
		dir = cmd.flags.Config.Export.Dir
	}

	path, err := selection.WriteExport(dir, export, now)
	if err != nil {
		return err
	}

	log.Info().Str("path", path).Strs("cities", export.Cities).Msg("export written")
	_, _ = fmt.Fprintf(out, "Saved %d cities to %s\n", len(export.Cities), path)
	return nil
}

// readSelections picks the input source: flags first, then a file or piped
// stdin, then the interactive picker.
func (cmd *ExportCmd) readSelections(dataset *fixtures.Dataset) ([]ExportSelection, error) {
	switch {
	case len(cmd.selects) > 0:
		return parseSelections(cmd.selects)
	case cmd.fr.HasFile() || !cmd.fr.StdinIsTerminal():
		input, err := cmd.fr.Read()
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		return input.Selections, nil
	default:
		return cmd.prompt(dataset)
	}
}

// ExportInput is the JSON input schema for export.
type ExportInput struct {
	Selections []ExportSelection `json:"selections"`
}

// ExportSelection is the set of checked rows of one table widget.
type ExportSelection struct {
	Widget string `json:"widget"`
	Rows   []int  `json:"rows"`
}

// Validate checks that every selection names a distinct table widget. Row ids
// are not checked; ids without a city are dropped when applied.
func (in ExportInput) Validate(dataset *fixtures.Dataset) error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(in.Selections))

	for i, s := range in.Selections {
		field := fmt.Sprintf("selections[%d].widget", i)

		w, ok := dataset.Widget(s.Widget)
		switch {
		case s.Widget == "":
			errs = errs.Append(field, fmt.Errorf("widget is required"))
		case !ok:
			errs = errs.Append(field, fmt.Errorf("unknown widget %q", s.Widget))
		case !w.IsTable():
			errs = errs.Append(field, fmt.Errorf("widget %q is not a table", s.Widget))
		case seen[s.Widget]:
			errs = errs.Append(field, fmt.Errorf("duplicate widget %q", s.Widget))
		}
		seen[s.Widget] = true
	}

	return errs.ToError()
}

// parseSelections turns "widget:id,id" values into selections. A value with
// no widget prefix continues the previous one, so "widget1:1" "3" reads the
// same as "widget1:1,3". A repeated widget extends its earlier selection.
func parseSelections(values []string) ([]ExportSelection, error) {
	var (
		out   []ExportSelection
		index = make(map[string]int)
		cur   = -1
	)

	for _, v := range values {
		ids := v
		if widget, rest, ok := strings.Cut(v, ":"); ok {
			widget = strings.TrimSpace(widget)
			if widget == "" {
				return nil, fmt.Errorf("selection %q: missing widget id", v)
			}

			i, seen := index[widget]
			if !seen {
				i = len(out)
				index[widget] = i
				out = append(out, ExportSelection{Widget: widget})
			}
			cur = i
			ids = rest
		} else if cur < 0 {
			return nil, fmt.Errorf("selection %q: expected widget:id,id", v)
		}

		for _, part := range strings.Split(ids, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("selection %q: invalid row id %q", v, part)
			}
			out[cur].Rows = append(out[cur].Rows, id)
		}
	}

	return out, nil
}

// promptSelections shows one multi-select per table widget.
func promptSelections(dataset *fixtures.Dataset) ([]ExportSelection, error) {
	tables := dataset.Tables()
	if len(tables) == 0 {
		return nil, nil
	}

	picked := make([][]int, len(tables))
	fields := make([]huh.Field, 0, len(tables))
	for i, w := range tables {
		options := make([]huh.Option[int], 0, len(w.Rows))
		for _, r := range w.Rows {
			options = append(options, huh.NewOption(rowLabel(r), r.ID))
		}

		fields = append(fields, huh.NewMultiSelect[int]().
			Title(w.Title).
			Description("space to toggle, enter to continue").
			Options(options...).
			Value(&picked[i]))
	}

	err := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(huh.ThemeCharm()).
		Run()
	if err != nil {
		return nil, err
	}

	var out []ExportSelection
	for i, w := range tables {
		if len(picked[i]) > 0 {
			out = append(out, ExportSelection{Widget: w.ID, Rows: picked[i]})
		}
	}
	return out, nil
}

func rowLabel(r fixtures.Row) string {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	return fmt.Sprintf("%s · %s", name, r.City)
}
