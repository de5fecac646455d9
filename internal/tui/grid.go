package tui

import (
	"slices"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/docboard/internal/core/fixtures"
)

const gridGap = 1

// Grid lays widgets out in a fixed number of columns. Widgets can be
// reordered and hidden; Reset restores the initial layout.
type Grid struct {
	widgets  map[string]fixtures.Widget
	defaults []string
	order    []string
	hidden   map[string]bool
	columns  int
}

// NewGrid creates a grid over widgets in their given order.
func NewGrid(widgets []fixtures.Widget, columns int) *Grid {
	g := &Grid{
		widgets: make(map[string]fixtures.Widget, len(widgets)),
		hidden:  make(map[string]bool),
		columns: max(columns, 1),
	}
	for _, w := range widgets {
		g.widgets[w.ID] = w
		g.defaults = append(g.defaults, w.ID)
	}
	g.order = slices.Clone(g.defaults)
	return g
}

// Visible returns the shown widgets in layout order.
func (g *Grid) Visible() []fixtures.Widget {
	out := make([]fixtures.Widget, 0, len(g.order))
	for _, id := range g.order {
		if !g.hidden[id] {
			out = append(out, g.widgets[id])
		}
	}
	return out
}

// IsHidden reports whether the widget has been hidden.
func (g *Grid) IsHidden(id string) bool {
	return g.hidden[id]
}

// Move swaps the widget with its visible neighbour delta steps away.
// It returns false at the edges or for unknown widgets.
func (g *Grid) Move(id string, delta int) bool {
	visible := g.Visible()
	idx := slices.IndexFunc(visible, func(w fixtures.Widget) bool { return w.ID == id })
	if idx < 0 {
		return false
	}
	target := idx + delta
	if target < 0 || target >= len(visible) {
		return false
	}

	a := slices.Index(g.order, id)
	b := slices.Index(g.order, visible[target].ID)
	g.order[a], g.order[b] = g.order[b], g.order[a]
	return true
}

// Hide removes the widget from the layout.
func (g *Grid) Hide(id string) bool {
	if _, ok := g.widgets[id]; !ok || g.hidden[id] {
		return false
	}
	g.hidden[id] = true
	return true
}

// Reset restores the default order and unhides every widget.
func (g *Grid) Reset() {
	g.order = slices.Clone(g.defaults)
	clear(g.hidden)
}

// Render lays the visible widgets out within width. card renders one widget
// at the given outer width.
func (g *Grid) Render(width int, card func(w fixtures.Widget, width int) string) string {
	visible := g.Visible()
	if len(visible) == 0 {
		return ""
	}

	cols := min(g.columns, len(visible))
	cardWidth := max((width-gridGap*(cols-1))/cols, 10)

	var rows []string
	for start := 0; start < len(visible); start += cols {
		end := min(start+cols, len(visible))

		cells := make([]string, 0, 2*(end-start))
		for i, w := range visible[start:end] {
			if i > 0 {
				cells = append(cells, lipgloss.NewStyle().Width(gridGap).Render(""))
			}
			cells = append(cells, card(w, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
