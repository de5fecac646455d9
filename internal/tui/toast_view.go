package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/docboard/internal/core/notify"
	"github.com/colonyops/docboard/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the toast stack and composites it over the dashboard.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the stack with the oldest toast on top.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.notification.Level {
	case notify.LevelError:
		icon = styles.IconError
		style = styles.ToastErrorStyle
	case notify.LevelWarning:
		icon = styles.IconWarning
		style = styles.ToastWarningStyle
	case notify.LevelSuccess:
		icon = styles.IconSuccess
		style = styles.ToastSuccessStyle
	default:
		icon = styles.IconInfo
		style = styles.ToastInfoStyle
	}

	return style.Width(toastWidth).Render(icon + " " + t.notification.Message)
}

// Overlay composites the toast stack over background in the lower-right corner.
func (v *ToastView) Overlay(background string, width, height int) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(toastContent)

	toastW := lipgloss.Width(toastContent)
	toastH := lipgloss.Height(toastContent)

	rightX := max(width-toastW-1, 0)
	bottomY := max(height-toastH-1, 0)

	toastLayer.X(rightX).Y(bottomY).Z(3)

	compositor := lipgloss.NewCompositor(bgLayer, toastLayer)
	return compositor.Render()
}
