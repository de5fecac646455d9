package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/docboard/internal/core/fixtures"
	"github.com/colonyops/docboard/internal/core/focus"
	"github.com/colonyops/docboard/internal/core/selection"
	"github.com/colonyops/docboard/internal/core/styles"
)

const dragHandle = "⠿"

// View renders the TUI.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes the dashboard with the panel, help, and toast overlays.
func (m Model) render() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	snap := m.coord.Snapshot()

	gridWidth := w
	if snap.Panel.Visible() {
		gridWidth = max(w-m.panel.Width(), panelMinGridWidth)
	}

	content := m.renderDashboard(gridWidth, h, snap)
	content = m.panel.Overlay(content, w, h, m.ring.Current() == focus.PanelClose)

	if m.state == stateShowingHelp {
		content = m.helpDialog.Overlay(content, w, h)
	}

	if m.toastController.HasToasts() {
		content = m.toastView.Overlay(content, w, h)
	}

	return content
}

// renderDashboard draws the toolbar, the widget grid, and the status line.
func (m Model) renderDashboard(width, height int, snap selection.Snapshot) string {
	toolbar := renderToolbar(width, snap, m.ring.Current(), m.search)
	divider := styles.DividerStyle.Render(strings.Repeat("─", width))
	status := styles.StatusBarStyle.Render(m.keys.StatusHint())

	gridHeight := max(height-lipgloss.Height(toolbar)-2, 1)
	grid := m.grid.Render(width, func(w fixtures.Widget, cardWidth int) string {
		return m.renderCard(w, cardWidth, snap)
	})
	if grid == "" {
		grid = styles.CardHintStyle.Render("All widgets are hidden. Press R to restore the layout.")
	}
	grid = lipgloss.NewStyle().Height(gridHeight).MaxHeight(gridHeight).Render(grid)

	return lipgloss.JoinVertical(lipgloss.Left, toolbar, divider, grid, status)
}

func (m Model) renderCard(w fixtures.Widget, width int, snap selection.Snapshot) string {
	focusedWidget, _ := m.focusedWidget()
	focused := focusedWidget == w.ID

	style := styles.CardStyle
	if focused {
		style = styles.CardFocusedStyle
	}
	inner := max(width-style.GetHorizontalFrameSize(), 1)

	handle := styles.CardHintStyle.Render(dragHandle)
	if m.ring.Current() == focus.Card(w.ID) {
		handle = styles.TableRowFocusedStyle.Render(dragHandle)
	}
	title := handle + " " + styles.CardTitleStyle.Render(w.Title)

	var body string
	if tw, ok := m.tables[w.ID]; ok {
		state := tableState{
			cursor:      m.ring.Current(),
			compareMode: snap.CompareMode,
			checked: func(rowID int) bool {
				return m.coord.Checked(w.ID, rowID)
			},
		}
		if snap.Panel.Kind == selection.PanelSingle && snap.Panel.Target.TableID == w.ID {
			state.activeCity = snap.Panel.Target.City
		}
		body = tw.Render(inner, state)
	} else {
		body = styles.HelpDescStyle.Render(w.Body)
	}

	parts := []string{title, body}
	if focused {
		parts = append(parts, styles.CardHintStyle.Render("< > move • x hide"))
	}

	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
