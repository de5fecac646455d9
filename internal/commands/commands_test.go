package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/docboard/internal/core/config"
	"github.com/colonyops/docboard/internal/core/fixtures"
	"github.com/colonyops/docboard/internal/core/selection"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestFlags(t *testing.T) *Flags {
	t.Helper()

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	cfg.Export.Dir = t.TempDir()

	return &Flags{Config: cfg}
}

// runApp registers the commands on a bare root and runs args against it.
func runApp(t *testing.T, flags *Flags, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := &cli.Command{
		Name:   "docboard",
		Writer: &buf,
	}

	export := NewExportCmd(flags)
	export.now = func() time.Time { return testNow }
	export.prompt = func(*fixtures.Dataset) ([]ExportSelection, error) {
		t.Fatal("unexpected interactive prompt")
		return nil, nil
	}

	app = NewTablesCmd(flags).Register(app)
	app = export.Register(app)

	err := app.Run(context.Background(), append([]string{"docboard"}, args...))
	return buf.String(), err
}

func readExport(t *testing.T, dir string) selection.Export {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, selection.ExportFilename(testNow)))
	require.NoError(t, err)

	var e selection.Export
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestParseSelections(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    []ExportSelection
		wantErr string
	}{
		{
			name:   "single widget",
			values: []string{"widget1:1,3"},
			want:   []ExportSelection{{Widget: "widget1", Rows: []int{1, 3}}},
		},
		{
			name:   "two widgets keep flag order",
			values: []string{"widget2:4", "widget1:2"},
			want: []ExportSelection{
				{Widget: "widget2", Rows: []int{4}},
				{Widget: "widget1", Rows: []int{2}},
			},
		},
		{
			name:   "bare ids continue the previous widget",
			values: []string{"widget1:1", "3"},
			want:   []ExportSelection{{Widget: "widget1", Rows: []int{1, 3}}},
		},
		{
			name:   "repeated widget extends",
			values: []string{"widget1:1", "widget2:4", "widget1:3"},
			want: []ExportSelection{
				{Widget: "widget1", Rows: []int{1, 3}},
				{Widget: "widget2", Rows: []int{4}},
			},
		},
		{
			name:   "empty id list",
			values: []string{"widget1:"},
			want:   []ExportSelection{{Widget: "widget1"}},
		},
		{
			name:    "ids without widget",
			values:  []string{"1,3"},
			wantErr: "expected widget:id,id",
		},
		{
			name:    "missing widget id",
			values:  []string{":1"},
			wantErr: "missing widget id",
		},
		{
			name:    "non numeric id",
			values:  []string{"widget1:one"},
			wantErr: `invalid row id "one"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSelections(tt.values)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportInput_Validate(t *testing.T) {
	dataset, err := fixtures.Default()
	require.NoError(t, err)

	tests := []struct {
		name      string
		input     ExportInput
		wantField string
		wantErr   string
	}{
		{
			name:  "empty is valid",
			input: ExportInput{},
		},
		{
			name: "valid tables",
			input: ExportInput{Selections: []ExportSelection{
				{Widget: "widget1", Rows: []int{1}},
				{Widget: "widget2", Rows: []int{4}},
			}},
		},
		{
			name:      "missing widget",
			input:     ExportInput{Selections: []ExportSelection{{Rows: []int{1}}}},
			wantField: "selections[0].widget",
			wantErr:   "required",
		},
		{
			name:      "unknown widget",
			input:     ExportInput{Selections: []ExportSelection{{Widget: "widget9"}}},
			wantField: "selections[0].widget",
			wantErr:   "unknown widget",
		},
		{
			name:      "static widget",
			input:     ExportInput{Selections: []ExportSelection{{Widget: "widget3"}}},
			wantField: "selections[0].widget",
			wantErr:   "not a table",
		},
		{
			name: "duplicate widget",
			input: ExportInput{Selections: []ExportSelection{
				{Widget: "widget1", Rows: []int{1}},
				{Widget: "widget1", Rows: []int{2}},
			}},
			wantField: "selections[1].widget",
			wantErr:   "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate(dataset)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
			assert.Contains(t, fieldErrs[0].Err.Error(), tt.wantErr)
		})
	}
}

func TestExportCmd_WritesSelection(t *testing.T) {
	flags := newTestFlags(t)
	dir := t.TempDir()

	out, err := runApp(t, flags, "export", "--select", "widget1:1,3", "--select", "widget2:4", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 cities to")

	e := readExport(t, dir)
	assert.Equal(t, []string{"Winterfell", "Dragonstone"}, e.Cities)
	assert.Equal(t, "2025-03-14T09:26:53.000Z", e.Timestamp)
}

func TestExportCmd_DefaultsToConfiguredDir(t *testing.T) {
	flags := newTestFlags(t)

	_, err := runApp(t, flags, "export", "--select", "widget1:2")
	require.NoError(t, err)

	e := readExport(t, flags.Config.Export.Dir)
	assert.Equal(t, []string{"King's Landing"}, e.Cities)
}

func TestExportCmd_KeepsNewestTwo(t *testing.T) {
	flags := newTestFlags(t)
	dir := t.TempDir()

	_, err := runApp(t, flags, "export", "--select", "widget1:2", "--select", "widget2:4,5", "--out", dir)
	require.NoError(t, err)

	e := readExport(t, dir)
	assert.Equal(t, []string{"Dragonstone", "Asshai"}, e.Cities)
}

func TestExportCmd_NothingSelected(t *testing.T) {
	flags := newTestFlags(t)
	dir := t.TempDir()

	out, err := runApp(t, flags, "export", "--select", "widget1:99", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "nothing selected")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file should be written")
}

func TestExportCmd_FromFile(t *testing.T) {
	flags := newTestFlags(t)
	dir := t.TempDir()

	input := filepath.Join(t.TempDir(), "selection.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"selections":[{"widget":"widget2","rows":[5]},{"widget":"widget1","rows":[3]}]}`), 0o644))

	_, err := runApp(t, flags, "export", "-f", input, "--out", dir)
	require.NoError(t, err)

	e := readExport(t, dir)
	assert.Equal(t, []string{"Asshai", "Winterfell"}, e.Cities)
}

func TestExportCmd_RejectsStaticWidget(t *testing.T) {
	flags := newTestFlags(t)

	_, err := runApp(t, flags, "export", "--select", "widget3:1", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a table")
}

func TestTablesCmd_Text(t *testing.T) {
	flags := newTestFlags(t)

	out, err := runApp(t, flags, "tables")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6, "header plus five rows")
	assert.Contains(t, lines[0], "WIDGET")
	assert.Contains(t, lines[1], "Jon Snow")
	assert.Contains(t, lines[1], "winterfell.md")
	assert.Contains(t, lines[5], "widget2")
}

func TestTablesCmd_JSON(t *testing.T) {
	flags := newTestFlags(t)

	out, err := runApp(t, flags, "tables", "--json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)

	var first rowInfo
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, rowInfo{
		Widget:    "widget1",
		ID:        1,
		FirstName: "Jon",
		LastName:  "Snow",
		Age:       35,
		City:      "Winterfell",
		Document:  "winterfell.md",
	}, first)
}

func TestTablesCmd_MissingDocument(t *testing.T) {
	flags := newTestFlags(t)
	flags.Config.Documents.Dir = t.TempDir()

	out, err := runApp(t, flags, "tables", "--json")
	require.NoError(t, err)

	var first rowInfo
	require.NoError(t, json.Unmarshal([]byte(strings.Split(out, "\n")[0]), &first))
	assert.Empty(t, first.Document)
}

func TestNewRoot(t *testing.T) {
	root, tuiCmd := NewRoot(&Flags{})
	require.NotNil(t, tuiCmd)

	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"tables", "export", "config"}, names)

	var flagNames []string
	for _, f := range root.Flags {
		flagNames = append(flagNames, f.Names()[0])
	}
	assert.Equal(t, []string{"log-level", "log-file", "config", "data-dir", "export-dir", "profiler-port"}, flagNames)
}
