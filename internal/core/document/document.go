// Package document resolves cities to the documents previewed in the side
// panel. A Catalog is built by globbing markdown files in a filesystem; each
// file names its city in front matter, or through its file name.
package document

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every markdown file below the catalog root.
const DefaultPattern = "**/*.md"

//go:embed defaults/*.md
var defaults embed.FS

// Document is one previewable file.
type Document struct {
	City     string
	Title    string
	Location string // path inside the catalog filesystem
	Body     string // markdown without front matter
}

// Catalog maps cities to documents.
type Catalog struct {
	docs map[string]Document
}

// Default returns the catalog of embedded documents.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(defaults, "defaults")
	if err != nil {
		return nil, fmt.Errorf("open embedded documents: %w", err)
	}
	return Load(sub, DefaultPattern)
}

// Open builds a catalog from a directory on disk. An empty dir returns the
// embedded catalog.
func Open(dir, pattern string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("open documents dir: %w", err)
	}
	return Load(os.DirFS(dir), pattern)
}

// Load globs fsys with pattern and indexes every match by city. When two
// files claim the same city the lexically first path wins.
func Load(fsys fs.FS, pattern string) (*Catalog, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid document pattern %q", pattern)
	}

	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob documents: %w", err)
	}
	sort.Strings(matches)

	c := &Catalog{docs: make(map[string]Document, len(matches))}
	for _, p := range matches {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", p, err)
		}

		fm, body := ParseFrontmatter(string(data))
		city := fm.City
		if city == "" {
			city = cityFromPath(p)
		}
		if _, exists := c.docs[city]; exists {
			continue
		}

		title := fm.Title
		if title == "" {
			title = city
		}

		c.docs[city] = Document{
			City:     city,
			Title:    title,
			Location: p,
			Body:     body,
		}
	}

	return c, nil
}

// cityFromPath turns "kings-landing.md" into "Kings Landing".
func cityFromPath(p string) string {
	stem := strings.TrimSuffix(path.Base(p), path.Ext(p))
	words := strings.FieldsFunc(stem, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Lookup returns the document for city.
func (c *Catalog) Lookup(city string) (Document, bool) {
	d, ok := c.docs[city]
	return d, ok
}

// Location returns where city's document lives, or "" when it has none.
func (c *Catalog) Location(city string) string {
	return c.docs[city].Location
}

// Cities returns every city with a document, sorted.
func (c *Catalog) Cities() []string {
	out := make([]string, 0, len(c.docs))
	for city := range c.docs {
		out = append(out, city)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of documents.
func (c *Catalog) Len() int { return len(c.docs) }
