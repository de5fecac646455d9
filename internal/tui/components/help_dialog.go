// Package components provides reusable TUI components.
package components

import (
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/docboard/internal/core/styles"
)

const helpKeyWidth = 14

// HelpEntry represents a single keyboard shortcut entry.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related help entries under a title.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// HelpDialog displays the available keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
}

// NewHelpDialog creates a new help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpDialogSection) *HelpDialog {
	return &HelpDialog{
		title:    title,
		sections: sections,
	}
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	var lines []string
	separator := styles.DividerStyle.Render(strings.Repeat("─", 30))

	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.PanelTitleStyle.Render(section.Title), separator)
		}

		for _, entry := range section.Entries {
			lines = append(lines, formatKeyDesc(entry.Key, entry.Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(h.title),
		"",
		strings.Join(lines, "\n"),
		styles.ModalHelpStyle.Render("esc/? close"),
	)

	return styles.ModalStyle.Render(content)
}

// Overlay renders the help dialog centered over the given background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	modalW := lipgloss.Width(modal)
	modalH := lipgloss.Height(modal)
	modalLayer.X(max((width-modalW)/2, 0)).Y(max((height-modalH)/2, 0)).Z(2)

	compositor := lipgloss.NewCompositor(bgLayer, modalLayer)
	return compositor.Render()
}

func formatKeyDesc(key, desc string) string {
	padded := key + strings.Repeat(" ", max(helpKeyWidth-lipgloss.Width(key), 1))
	return styles.HelpKeyStyle.Render(padded) + styles.HelpDescStyle.Render(desc)
}
