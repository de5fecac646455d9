package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/docboard/internal/core/focus"
	"github.com/colonyops/docboard/internal/core/selection"
	"github.com/colonyops/docboard/internal/core/styles"
)

const toolbarTitle = "Dashboard"

// toolbarControls are the focusable toolbar ids in tab order.
var toolbarControls = []focus.ID{
	focus.Search,
	focus.ToggleCompare,
	focus.Download,
	focus.CompareAction,
}

type toolbarButton struct {
	id      focus.ID
	label   string
	enabled bool
	active  bool
}

func toolbarButtons(snap selection.Snapshot) []toolbarButton {
	mode := toolbarButton{id: focus.ToggleCompare, label: "Compare Mode", enabled: true}
	if snap.CompareMode {
		mode.label = "Exit Compare"
		mode.active = true
	}

	return []toolbarButton{
		mode,
		{
			id:      focus.Download,
			label:   fmt.Sprintf("%s Download (%d)", styles.IconDownload, len(snap.Entries)),
			enabled: snap.CanDownload,
		},
		{
			id:      focus.CompareAction,
			label:   compareLabel(snap),
			enabled: snap.CanCompare,
		},
	}
}

func compareLabel(snap selection.Snapshot) string {
	if snap.CanCompare {
		return fmt.Sprintf("%s Compare (✓/%d)", styles.IconCompare, selection.MaxEntries)
	}
	return fmt.Sprintf("%s Compare (%d/%d)", styles.IconCompare, len(snap.Entries), selection.MaxEntries)
}

func renderButton(b toolbarButton, focused bool) string {
	switch {
	case focused:
		return styles.ToolbarButtonFocusedStyle.Render(b.label)
	case !b.enabled:
		return styles.ToolbarButtonDisabledStyle.Render(b.label)
	case b.active:
		return styles.ToolbarButtonActiveStyle.Render(b.label)
	default:
		return styles.ToolbarButtonStyle.Render(b.label)
	}
}

// renderToolbar draws the title and search box on the left and the buttons
// on the right.
func renderToolbar(width int, snap selection.Snapshot, current focus.ID, search textinput.Model) string {
	title := styles.CardTitleStyle.Render(toolbarTitle)

	prompt := styles.SearchPromptStyle.Render(styles.IconSearch + " ")
	if current == focus.Search {
		prompt = styles.ToolbarButtonFocusedStyle.Render(styles.IconSearch)
	}
	left := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", prompt, search.View())

	buttons := toolbarButtons(snap)
	rendered := make([]string, 0, len(buttons))
	for _, b := range buttons {
		rendered = append(rendered, renderButton(b, current == b.id))
	}
	right := strings.Join(rendered, " ")

	spacer := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.ToolbarStyle.Render(left + strings.Repeat(" ", spacer) + right)
}
