package tui

import (
	"slices"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/docboard/internal/core/fixtures"
	"github.com/colonyops/docboard/internal/core/focus"
	"github.com/colonyops/docboard/internal/core/styles"
)

const (
	cursorWidth   = 2
	checkboxWidth = 4
)

// TableWidget renders one table card. It holds no selection state: which
// rows are checked is always read from the Coordinator.
type TableWidget struct {
	widget  fixtures.Widget
	columns []fixtures.Column
}

// NewTableWidget creates a table widget over w's rows.
func NewTableWidget(w fixtures.Widget, columns []fixtures.Column) TableWidget {
	return TableWidget{widget: w, columns: columns}
}

// ID returns the widget id.
func (t TableWidget) ID() string { return t.widget.ID }

// RowIDs returns the row ids in display order.
func (t TableWidget) RowIDs() []int {
	ids := make([]int, 0, len(t.widget.Rows))
	for _, r := range t.widget.Rows {
		ids = append(ids, r.ID)
	}
	return ids
}

// FocusIDs returns one focus id per row.
func (t TableWidget) FocusIDs() []focus.ID {
	ids := make([]focus.ID, 0, len(t.widget.Rows))
	for _, r := range t.widget.Rows {
		ids = append(ids, focus.Row(t.widget.ID, r.ID))
	}
	return ids
}

// Toggle flips rowID in checked and returns the table's new selection in
// display order.
func (t TableWidget) Toggle(rowID int, checked []int) []int {
	var out []int
	for _, r := range t.widget.Rows {
		on := slices.Contains(checked, r.ID)
		if r.ID == rowID {
			on = !on
		}
		if on {
			out = append(out, r.ID)
		}
	}
	return out
}

// tableState is what a table needs from the rest of the model to render.
type tableState struct {
	cursor      focus.ID
	compareMode bool
	checked     func(rowID int) bool
	activeCity  string // city previewed from this table, if any
}

// Render draws the header and rows truncated to width.
func (t TableWidget) Render(width int, s tableState) string {
	lines := make([]string, 0, len(t.widget.Rows)+1)
	lines = append(lines, styles.TableHeaderStyle.Render(t.line(width, s.compareMode, "", "", func(c fixtures.Column) string {
		return c.Header
	})))

	if len(t.widget.Rows) == 0 {
		lines = append(lines, styles.CardHintStyle.Render("No rows"))
		return strings.Join(lines, "\n")
	}

	for _, r := range t.widget.Rows {
		focused := s.cursor == focus.Row(t.widget.ID, r.ID)

		cursor := ""
		if focused {
			cursor = styles.IconCursor
		}

		box := ""
		if s.compareMode {
			if s.checked != nil && s.checked(r.ID) {
				box = styles.CheckboxCheckedStyle.Render(styles.IconCheckboxOn)
			} else {
				box = styles.CheckboxStyle.Render(styles.IconCheckboxOff)
			}
		}

		line := t.line(width, s.compareMode, cursor, box, func(c fixtures.Column) string {
			return r.Field(c.Field)
		})

		style := styles.TableRowStyle
		switch {
		case focused:
			style = styles.TableRowFocusedStyle
		case s.activeCity != "" && r.City == s.activeCity:
			style = styles.TableRowActiveStyle
		}
		lines = append(lines, style.Render(line))
	}

	return strings.Join(lines, "\n")
}

func (t TableWidget) line(width int, compareMode bool, cursor, box string, value func(fixtures.Column) string) string {
	var sb strings.Builder
	sb.WriteString(padCell(cursor, cursorWidth))
	if compareMode {
		sb.WriteString(padCell(box, checkboxWidth))
	}
	for i, c := range t.columns {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(padCell(value(c), c.Width))
	}
	return ansi.Truncate(sb.String(), width, "…")
}

// padCell truncates s to w cells and pads it with spaces to exactly w.
func padCell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = ansi.Truncate(s, w, "…")
	if gap := w - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
