// Package fixtures loads the static dataset shown on the dashboard: the shared
// table columns, the widget cards and their rows, and the row-id to city
// lookup used to resolve selections.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDataset []byte

// Kind is the type of content a widget card renders.
type Kind string

const (
	KindTable  Kind = "table"
	KindStatic Kind = "static"
)

// Column describes one table column shared by all table widgets.
type Column struct {
	Field  string `yaml:"field"`
	Header string `yaml:"header"`
	Width  int    `yaml:"width"`
}

// Row is one record of a table widget.
type Row struct {
	ID        int    `yaml:"id"         json:"id"`
	FirstName string `yaml:"first_name" json:"first_name"`
	LastName  string `yaml:"last_name"  json:"last_name"`
	Age       int    `yaml:"age"        json:"age"`
	City      string `yaml:"city"       json:"city"`
}

// Field returns the display value of the named column.
func (r Row) Field(name string) string {
	switch name {
	case "id":
		return fmt.Sprint(r.ID)
	case "first_name":
		return r.FirstName
	case "last_name":
		return r.LastName
	case "age":
		return fmt.Sprint(r.Age)
	case "city":
		return r.City
	default:
		return ""
	}
}

// Widget is a card on the dashboard grid.
type Widget struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Kind  Kind   `yaml:"kind"`
	Rows  []Row  `yaml:"rows"`
	Body  string `yaml:"body"`
}

// IsTable reports whether the widget renders a data table.
func (w Widget) IsTable() bool { return w.Kind == KindTable }

// Dataset is the full set of fixtures.
type Dataset struct {
	Columns []Column       `yaml:"columns"`
	Widgets []Widget       `yaml:"widgets"`
	Cities  map[int]string `yaml:"cities"`

	lookup map[int]string
}

// Default returns the embedded dataset.
func Default() (*Dataset, error) {
	return Parse(defaultDataset)
}

// Load reads a dataset from path. An empty path returns the embedded dataset.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a dataset.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	if err := ds.init(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (d *Dataset) init() error {
	seenWidgets := make(map[string]bool, len(d.Widgets))
	seenRows := make(map[int]string)

	for i, w := range d.Widgets {
		if w.ID == "" {
			return fmt.Errorf("widgets[%d]: id is required", i)
		}
		if seenWidgets[w.ID] {
			return fmt.Errorf("widgets[%d]: duplicate id %q", i, w.ID)
		}
		seenWidgets[w.ID] = true

		switch w.Kind {
		case KindTable, KindStatic:
		case "":
			d.Widgets[i].Kind = KindStatic
		default:
			return fmt.Errorf("widget %q: unknown kind %q", w.ID, w.Kind)
		}

		for _, r := range w.Rows {
			if owner, ok := seenRows[r.ID]; ok {
				return fmt.Errorf("widget %q: row id %d already used by %q", w.ID, r.ID, owner)
			}
			seenRows[r.ID] = w.ID
		}
	}

	// An explicit city map wins; rows fill in anything it leaves out.
	d.lookup = make(map[int]string, len(seenRows))
	for _, w := range d.Widgets {
		for _, r := range w.Rows {
			if r.City != "" {
				d.lookup[r.ID] = r.City
			}
		}
	}
	for id, city := range d.Cities {
		d.lookup[id] = city
	}

	return nil
}

// CityOf resolves a row id to its city.
func (d *Dataset) CityOf(rowID int) (string, bool) {
	city, ok := d.lookup[rowID]
	return city, ok && city != ""
}

// Widget returns the widget with the given id.
func (d *Dataset) Widget(id string) (Widget, bool) {
	for _, w := range d.Widgets {
		if w.ID == id {
			return w, true
		}
	}
	return Widget{}, false
}

// Tables returns the table widgets in layout order.
func (d *Dataset) Tables() []Widget {
	var out []Widget
	for _, w := range d.Widgets {
		if w.IsTable() {
			out = append(out, w)
		}
	}
	return out
}

// CityNames returns every distinct city in the lookup, sorted.
func (d *Dataset) CityNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, city := range d.lookup {
		if !seen[city] {
			seen[city] = true
			out = append(out, city)
		}
	}
	sort.Strings(out)
	return out
}
