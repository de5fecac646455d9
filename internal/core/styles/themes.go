package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette is a dashboard theme. The base colors cover text and chrome; the
// dashboard tokens color the checkbox marks, the row whose document is open,
// and the side panel frame. A nil dashboard token falls back to a base color.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Success    color.Color
	Warning    color.Color
	Error      color.Color

	Checkbox  color.Color // checked compare marks, falls back to Success
	ActiveRow color.Color // row shown in the side panel, falls back to Secondary
	Panel     color.Color // side panel border, falls back to Primary

	// Light selects glamour's light base style for document previews.
	Light bool
}

// resolved returns p with every nil dashboard token filled in.
func (p Palette) resolved() Palette {
	if p.Checkbox == nil {
		p.Checkbox = p.Success
	}
	if p.ActiveRow == nil {
		p.ActiveRow = p.Secondary
	}
	if p.Panel == nil {
		p.Panel = p.Primary
	}
	return p
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
		Checkbox:   lipgloss.Color("#73daca"),
		ActiveRow:  lipgloss.Color("#bb9af7"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
		ActiveRow:  lipgloss.Color("#fe8019"),
		Panel:      lipgloss.Color("#d3869b"),
	},
	"catppuccin-latte": {
		Primary:    lipgloss.Color("#1e66f5"), // Blue
		Secondary:  lipgloss.Color("#179299"), // Teal
		Foreground: lipgloss.Color("#4c4f69"), // Text
		Muted:      lipgloss.Color("#9ca0b0"), // Overlay0
		Background: lipgloss.Color("#eff1f5"), // Base
		Surface:    lipgloss.Color("#ccd0da"), // Surface0
		Success:    lipgloss.Color("#40a02b"), // Green
		Warning:    lipgloss.Color("#df8e1d"), // Yellow
		Error:      lipgloss.Color("#d20f39"), // Red
		ActiveRow:  lipgloss.Color("#8839ef"), // Mauve
		Light:      true,
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name with its
// dashboard tokens resolved.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	if !ok {
		return Palette{}, false
	}
	return p.resolved(), true
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns the document preview style for the active palette.
// Headings take the panel color so a preview reads as part of its frame.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	if CurrentPalette.Light {
		cfg = glamourstyles.LightStyleConfig
	}

	fg := colorHexPtr(ColorForeground)
	panel := colorHexPtr(ColorPanel)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = panel
	cfg.H1.Color = colorHexPtr(ColorBackground)
	cfg.H1.BackgroundColor = panel
	for _, h := range []*glamouransi.StyleBlock{&cfg.H2, &cfg.H3, &cfg.H4, &cfg.H5, &cfg.H6} {
		h.Color = panel
	}

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	cfg.Table.Color = fg

	return cfg
}
