// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color

	ColorCheckbox  color.Color
	ColorActiveRow color.Color
	ColorPanel     color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// Dashboard grid.
	CardStyle        lipgloss.Style
	CardFocusedStyle lipgloss.Style
	CardTitleStyle   lipgloss.Style
	CardHintStyle    lipgloss.Style

	// Table widget.
	TableHeaderStyle     lipgloss.Style
	TableRowStyle        lipgloss.Style
	TableRowFocusedStyle lipgloss.Style
	TableRowActiveStyle  lipgloss.Style
	CheckboxStyle        lipgloss.Style
	CheckboxCheckedStyle lipgloss.Style

	// Toolbar.
	ToolbarStyle               lipgloss.Style
	ToolbarButtonStyle         lipgloss.Style
	ToolbarButtonFocusedStyle  lipgloss.Style
	ToolbarButtonDisabledStyle lipgloss.Style
	ToolbarButtonActiveStyle   lipgloss.Style
	SearchPromptStyle          lipgloss.Style

	// Side panel.
	PanelStyle         lipgloss.Style
	PanelTitleStyle    lipgloss.Style
	PanelSubtitleStyle lipgloss.Style
	PanelDividerStyle  lipgloss.Style
	PanelScrollStyle   lipgloss.Style
	PanelEmptyStyle    lipgloss.Style

	// Modals.
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
	HelpKeyStyle    lipgloss.Style
	HelpDescStyle   lipgloss.Style

	// Toasts.
	ToastInfoStyle    lipgloss.Style
	ToastSuccessStyle lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style

	StatusBarStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	p = p.resolved()
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorCheckbox = p.Checkbox
	ColorActiveRow = p.ActiveRow
	ColorPanel = p.Panel

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	CardFocusedStyle = CardStyle.
		BorderForeground(ColorPrimary)
	CardTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CardHintStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true)
	TableRowStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	TableRowFocusedStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Background(ColorSurface)
	TableRowActiveStyle = lipgloss.NewStyle().
		Foreground(ColorActiveRow).
		Bold(true)
	CheckboxStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CheckboxCheckedStyle = lipgloss.NewStyle().
		Foreground(ColorCheckbox).
		Bold(true)

	ToolbarStyle = lipgloss.NewStyle().
		Padding(0, 1)
	ToolbarButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorForeground)
	ToolbarButtonFocusedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)
	ToolbarButtonDisabledStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(ColorMuted).
		Strikethrough(true)
	ToolbarButtonActiveStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSecondary).
		Foreground(ColorBackground)
	SearchPromptStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPanel).
		Padding(0, 1)
	PanelTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	PanelSubtitleStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	PanelDividerStyle = lipgloss.NewStyle().
		Foreground(ColorSurface)
	PanelScrollStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	PanelEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	HelpDescStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toastBase.BorderForeground(ColorPrimary)
	ToastSuccessStyle = toastBase.BorderForeground(ColorSuccess)
	ToastWarningStyle = toastBase.BorderForeground(ColorWarning)
	ToastErrorStyle = toastBase.BorderForeground(ColorError)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
