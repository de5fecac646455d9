// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace for cleaner golden files.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, strings.TrimRight(line, " "))
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press message for a single printable rune.
func KeyPress(key rune) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: key, Text: string(key)})
}

// KeyDown creates a down arrow key press message.
func KeyDown() tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown})
}

// KeyUp creates an up arrow key press message.
func KeyUp() tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyUp})
}

// KeyEnter creates an enter key press message.
func KeyEnter() tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
}

// KeyEsc creates an escape key press message.
func KeyEsc() tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
}

// KeySpace creates a space bar key press message.
func KeySpace() tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "})
}

// KeyTab creates a tab key press message.
func KeyTab() tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab})
}

// KeyShiftTab creates a shift+tab key press message.
func KeyShiftTab() tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift})
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}

// Contains reports whether the ANSI-stripped view contains every substring.
func Contains(view string, subs ...string) bool {
	plain := StripANSI(view)
	for _, s := range subs {
		if !strings.Contains(plain, s) {
			return false
		}
	}
	return true
}
