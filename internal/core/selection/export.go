package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/colonyops/docboard/pkg/iojson"
)

// timestampLayout matches a JavaScript ISO string: UTC with milliseconds.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Export is the serialized comparison selection.
type Export struct {
	Timestamp string   `json:"timestamp"`
	Cities    []string `json:"cities"`
}

// Export builds the download payload. ok is false when nothing is selected.
func (c *Coordinator) Export(now time.Time) (Export, bool) {
	if !c.CanDownload() {
		return Export{}, false
	}

	cities := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		cities = append(cities, e.City)
	}

	return Export{
		Timestamp: now.UTC().Format(timestampLayout),
		Cities:    cities,
	}, true
}

// ExportFilename returns the file name used for an export taken at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("selected-cities-%s.json", t.UTC().Format(time.DateOnly))
}

// WriteExport writes e as indented JSON into dir and returns the file path.
// The directory is created when missing.
func WriteExport(dir string, e Export, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, ExportFilename(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := iojson.Encode(f, e); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
