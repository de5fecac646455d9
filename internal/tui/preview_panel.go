package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/colonyops/docboard/internal/core/document"
	"github.com/colonyops/docboard/internal/core/selection"
	"github.com/colonyops/docboard/internal/core/styles"
)

const (
	panelMinWidth     = 30
	panelMinGridWidth = 30
	panelMinHeight    = 8
	panelHeaderLines  = 2 // title row + divider
	panelFooterLines  = 1
	comparePaneGap    = 1
)

type comparePane struct {
	entry    selection.Entry
	viewport viewport.Model
}

// PreviewPanel is the right-hand slide-in that shows either one city's
// document or two of them side by side.
type PreviewPanel struct {
	catalog  *document.Catalog
	log      zerolog.Logger
	maxWidth int

	width  int
	height int

	panel      selection.Panel
	entries    []selection.Entry
	contentKey string

	single viewport.Model
	panes  []comparePane
}

// NewPreviewPanel creates a panel reading documents from catalog. maxWidth
// is the configured panel width; it shrinks on narrow terminals.
func NewPreviewPanel(catalog *document.Catalog, maxWidth int, log zerolog.Logger) *PreviewPanel {
	p := &PreviewPanel{
		catalog:  catalog,
		log:      log,
		maxWidth: max(maxWidth, panelMinWidth),
	}
	p.SetSize(80, 24)
	return p
}

// SetSize fits the panel to the terminal.
func (p *PreviewPanel) SetSize(termW, termH int) {
	p.width = max(min(p.maxWidth, termW-panelMinGridWidth), panelMinWidth)
	p.height = max(termH, panelMinHeight)
	p.refresh()
}

// Width returns the panel's outer width.
func (p *PreviewPanel) Width() int { return p.width }

// Visible reports whether a panel is shown.
func (p *PreviewPanel) Visible() bool { return p.panel.Visible() }

// Sync loads the panel described by snap. It returns true when a panel
// opened or switched to a different target, which is when focus should move
// to the close control.
func (p *PreviewPanel) Sync(snap selection.Snapshot) bool {
	changed := snap.Panel.Visible() && snap.Panel.Key() != p.panel.Key()
	p.panel = snap.Panel
	p.entries = snap.CompareEntries
	p.refresh()
	return changed
}

func (p *PreviewPanel) innerWidth() int {
	return max(p.width-styles.PanelStyle.GetHorizontalFrameSize(), 1)
}

func (p *PreviewPanel) bodyHeight() int {
	return max(p.height-styles.PanelStyle.GetVerticalFrameSize()-panelHeaderLines-panelFooterLines, 1)
}

func (p *PreviewPanel) paneWidth() int {
	return max((p.innerWidth()-comparePaneGap)/2, 1)
}

func (p *PreviewPanel) key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s@%dx%d", p.panel.Key(), p.width, p.height)
	if p.panel.Kind == selection.PanelCompare {
		for _, e := range p.entries {
			sb.WriteString("|" + e.TableID + ":" + e.City)
		}
	}
	return sb.String()
}

// refresh re-renders documents when the content or size changed.
func (p *PreviewPanel) refresh() {
	key := p.key()
	if key == p.contentKey {
		return
	}
	p.contentKey = key

	switch p.panel.Kind {
	case selection.PanelSingle:
		width := p.innerWidth()
		p.single = viewport.New(viewport.WithWidth(width), viewport.WithHeight(p.bodyHeight()))
		p.single.SetContent(p.renderDocument(p.panel.Target.City, width))
		p.panes = nil
	case selection.PanelCompare:
		width := p.paneWidth()
		p.panes = make([]comparePane, 0, len(p.entries))
		for _, e := range p.entries {
			vp := viewport.New(viewport.WithWidth(width), viewport.WithHeight(max(p.bodyHeight()-1, 1)))
			vp.SetContent(p.renderDocument(e.City, width))
			p.panes = append(p.panes, comparePane{entry: e, viewport: vp})
		}
	default:
		p.panes = nil
	}
}

func (p *PreviewPanel) renderDocument(city string, width int) string {
	doc, ok := p.catalog.Lookup(city)
	if !ok {
		return styles.PanelEmptyStyle.Render("No document for " + city)
	}

	meta := styles.PanelSubtitleStyle.Render(ansi.Truncate(doc.Location, width, "…"))
	return meta + "\n\n" + p.renderMarkdown(doc.Body, width)
}

func (p *PreviewPanel) renderMarkdown(body string, width int) string {
	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		p.log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return body
	}

	rendered, err := renderer.Render(body)
	if err != nil {
		p.log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return body
	}
	return strings.Trim(rendered, "\n")
}

// ScrollUp scrolls every visible document up.
func (p *PreviewPanel) ScrollUp(n int) {
	p.single.ScrollUp(n)
	for i := range p.panes {
		p.panes[i].viewport.ScrollUp(n)
	}
}

// ScrollDown scrolls every visible document down.
func (p *PreviewPanel) ScrollDown(n int) {
	p.single.ScrollDown(n)
	for i := range p.panes {
		p.panes[i].viewport.ScrollDown(n)
	}
}

// PageSize is the number of lines a page scroll moves.
func (p *PreviewPanel) PageSize() int {
	return max(p.bodyHeight()-1, 1)
}

func (p *PreviewPanel) title() string {
	switch p.panel.Kind {
	case selection.PanelSingle:
		return fmt.Sprintf("Document preview (%s)", p.panel.Target.TableID)
	case selection.PanelCompare:
		return "Compare documents"
	default:
		return ""
	}
}

// View renders the panel. closeFocused highlights the close control.
func (p *PreviewPanel) View(closeFocused bool) string {
	inner := p.innerWidth()

	closeLabel := styles.IconClose + " Close"
	closeBtn := styles.ToolbarButtonStyle.Render(closeLabel)
	if closeFocused {
		closeBtn = styles.ToolbarButtonFocusedStyle.Render(closeLabel)
	}
	title := styles.PanelTitleStyle.Render(ansi.Truncate(p.title(), max(inner-lipgloss.Width(closeBtn)-1, 1), "…"))
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(closeBtn), 1)
	header := title + strings.Repeat(" ", gap) + closeBtn
	divider := styles.PanelDividerStyle.Render(strings.Repeat("─", inner))

	var body, scroll string
	switch p.panel.Kind {
	case selection.PanelSingle:
		body = p.single.View()
		scroll = scrollInfo(p.single)
	case selection.PanelCompare:
		width := p.paneWidth()
		cols := make([]string, 0, 2*len(p.panes))
		for i, pane := range p.panes {
			if i > 0 {
				cols = append(cols, strings.Repeat(" ", comparePaneGap))
			}
			head := styles.PanelSubtitleStyle.Render(ansi.Truncate(
				fmt.Sprintf("%s %s · %s", styles.IconCity, pane.entry.City, pane.entry.TableID), width, "…"))
			cols = append(cols, lipgloss.NewStyle().Width(width).Render(
				lipgloss.JoinVertical(lipgloss.Left, head, pane.viewport.View())))
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, cols...)
		if len(p.panes) > 0 {
			scroll = scrollInfo(p.panes[0].viewport)
		}
	}
	body = lipgloss.NewStyle().Height(p.bodyHeight()).MaxHeight(p.bodyHeight()).Render(body)

	footer := styles.PanelScrollStyle.Render("esc close • pgup/pgdn scroll" + scroll)

	content := lipgloss.JoinVertical(lipgloss.Left, header, divider, body, footer)
	return styles.PanelStyle.Width(p.width).Height(p.height).Render(content)
}

func scrollInfo(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.VisibleLineCount() {
		return ""
	}
	return fmt.Sprintf(" (%.0f%%)", vp.ScrollPercent()*100)
}

// Overlay composites the panel against the right edge of background.
func (p *PreviewPanel) Overlay(background string, width, height int, closeFocused bool) string {
	if !p.panel.Visible() {
		return background
	}

	panel := p.View(closeFocused)

	bgLayer := lipgloss.NewLayer(background)
	panelLayer := lipgloss.NewLayer(panel)
	panelLayer.X(max(width-lipgloss.Width(panel), 0)).Y(0).Z(1)

	compositor := lipgloss.NewCompositor(bgLayer, panelLayer)
	return compositor.Render()
}
