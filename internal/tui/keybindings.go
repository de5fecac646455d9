package tui

import (
	"maps"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/docboard/internal/core/config"
	"github.com/colonyops/docboard/internal/tui/components"
)

// actionOrder fixes the order actions appear in the help dialog.
var actionOrder = []string{
	config.ActionToggleCompare,
	config.ActionCompare,
	config.ActionDownload,
	config.ActionClose,
	config.ActionSearch,
	config.ActionMoveLeft,
	config.ActionMoveRight,
	config.ActionHideWidget,
	config.ActionResetLayout,
	config.ActionHelp,
	config.ActionQuit,
}

var actionHelp = map[string]string{
	config.ActionToggleCompare: "toggle compare mode",
	config.ActionCompare:       "compare selected cities",
	config.ActionDownload:      "download selection",
	config.ActionClose:         "close panel",
	config.ActionSearch:        "focus search",
	config.ActionMoveLeft:      "move widget left",
	config.ActionMoveRight:     "move widget right",
	config.ActionHideWidget:    "hide widget",
	config.ActionResetLayout:   "reset layout",
	config.ActionHelp:          "show help",
	config.ActionQuit:          "quit",
}

// KeyMap resolves key presses to dashboard actions. Action keys come from
// config; navigation keys are fixed.
type KeyMap struct {
	actions map[string]string // key -> action

	Up         key.Binding
	Down       key.Binding
	Next       key.Binding
	Prev       key.Binding
	Activate   key.Binding
	Toggle     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	ForceClose key.Binding
}

// NewKeyMap builds a KeyMap from a key -> action map.
func NewKeyMap(keybindings map[string]string) KeyMap {
	return KeyMap{
		actions:    maps.Clone(keybindings),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous row")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next row")),
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous control")),
		Activate:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open row / press button")),
		Toggle:     key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "select row (compare mode)")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll panel up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll panel down")),
		ForceClose: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// Resolve returns the action bound to the pressed key.
func (k KeyMap) Resolve(msg tea.KeyMsg) (string, bool) {
	action, ok := k.actions[msg.String()]
	return action, ok
}

// KeysFor returns the sorted keys bound to action.
func (k KeyMap) KeysFor(action string) []string {
	var keys []string
	for key, a := range k.actions {
		if a == action {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// Bindings returns the configured actions as key.Binding values.
func (k KeyMap) Bindings() []key.Binding {
	bindings := make([]key.Binding, 0, len(actionOrder))
	for _, action := range actionOrder {
		keys := k.KeysFor(action)
		if len(keys) == 0 {
			continue
		}
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), actionHelp[action]),
		))
	}
	return bindings
}

// HelpSections builds the help dialog contents.
func (k KeyMap) HelpSections() []components.HelpDialogSection {
	toEntries := func(bindings ...key.Binding) []components.HelpEntry {
		entries := make([]components.HelpEntry, 0, len(bindings))
		for _, b := range bindings {
			h := b.Help()
			entries = append(entries, components.HelpEntry{Key: h.Key, Desc: h.Desc})
		}
		return entries
	}

	return []components.HelpDialogSection{
		{Title: "Dashboard", Entries: toEntries(k.Bindings()...)},
		{Title: "Navigation", Entries: toEntries(
			k.Next, k.Prev, k.Up, k.Down, k.Activate, k.Toggle, k.PageUp, k.PageDown,
		)},
	}
}

// StatusHint renders the one-line shortcut summary under the grid.
func (k KeyMap) StatusHint() string {
	hint := func(action string) string {
		keys := k.KeysFor(action)
		if len(keys) == 0 {
			return ""
		}
		return keys[0] + " " + actionHelp[action]
	}

	parts := []string{"tab focus", "enter open", "space select"}
	for _, action := range []string{config.ActionToggleCompare, config.ActionHelp, config.ActionQuit} {
		if h := hint(action); h != "" {
			parts = append(parts, h)
		}
	}
	return strings.Join(parts, " • ")
}
