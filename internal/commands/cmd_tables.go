package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/docboard/internal/core/document"
	"github.com/colonyops/docboard/internal/core/fixtures"
	"github.com/colonyops/docboard/pkg/iojson"
)

type TablesCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewTablesCmd creates a new tables command
func NewTablesCmd(flags *Flags) *TablesCmd {
	return &TablesCmd{flags: flags}
}

// Register adds the tables command to the application
func (cmd *TablesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tables",
		Usage:     "List table widgets and their rows",
		UsageText: "docboard tables [--json]",
		Description: `Displays every row of every table widget with its city and the
document the preview panel would show for it.

Use --json for one JSON object per row.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *TablesCmd) run(_ context.Context, c *cli.Command) error {
	dataset, err := loadDataset(cmd.flags.Config)
	if err != nil {
		return err
	}

	catalog, err := loadCatalog(cmd.flags.Config)
	if err != nil {
		return err
	}

	rows := buildRowInfos(dataset, catalog)
	if len(rows) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No table rows found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, r := range rows {
			if err := iojson.WriteLine(out, r); err != nil {
				return fmt.Errorf("encode row: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WIDGET\tID\tNAME\tAGE\tCITY\tDOCUMENT")
	for _, r := range rows {
		doc := r.Document
		if doc == "" {
			doc = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s %s\t%d\t%s\t%s\n", r.Widget, r.ID, r.FirstName, r.LastName, r.Age, r.City, doc)
	}

	return w.Flush()
}

// rowInfo is the JSON output format for docboard tables --json.
type rowInfo struct {
	Widget    string `json:"widget"`
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
	City      string `json:"city"`
	Document  string `json:"document,omitempty"`
}

func buildRowInfos(dataset *fixtures.Dataset, catalog *document.Catalog) []rowInfo {
	var out []rowInfo
	for _, w := range dataset.Tables() {
		for _, r := range w.Rows {
			// The resolved city wins over the row's display value.
			city, ok := dataset.CityOf(r.ID)
			if !ok {
				city = r.City
			}

			out = append(out, rowInfo{
				Widget:    w.ID,
				ID:        r.ID,
				FirstName: r.FirstName,
				LastName:  r.LastName,
				Age:       r.Age,
				City:      city,
				Document:  catalog.Location(city),
			})
		}
	}
	return out
}
