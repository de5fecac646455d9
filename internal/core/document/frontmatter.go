package document

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds metadata parsed from a document's YAML front matter.
// All fields are best-effort: missing or malformed frontmatter produces zero values.
type Frontmatter struct {
	City  string `yaml:"city"`
	Title string `yaml:"title"`
}

// ParseFrontmatter splits YAML front matter from document content and returns
// it with the remaining body. Front matter must be delimited by "---" on its
// own line at the start of the file; otherwise the whole content is the body.
// The body is returned as a slice of content, untouched past the delimiter.
func ParseFrontmatter(content string) (Frontmatter, string) {
	first, rest, ok := strings.Cut(content, "\n")
	if !ok || strings.TrimSpace(first) != "---" {
		return Frontmatter{}, content
	}

	var header []string
	for {
		line, next, more := strings.Cut(rest, "\n")
		if strings.TrimSpace(line) == "---" {
			var fm Frontmatter
			_ = yaml.Unmarshal([]byte(strings.Join(header, "\n")), &fm)
			return fm, strings.TrimLeft(next, "\r\n")
		}
		if !more {
			return Frontmatter{}, content
		}
		header = append(header, strings.TrimSuffix(line, "\r"))
		rest = next
	}
}
