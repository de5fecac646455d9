// Package focus models keyboard focus for the dashboard. An ID names one
// focusable control and a Ring holds the controls that are currently attached
// to the screen, in tab order.
package focus

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ID identifies a focusable control. The zero value means "nothing".
type ID string

// Well-known toolbar and panel controls.
const (
	Search        ID = "control:search"
	ToggleCompare ID = "control:toggle-compare"
	Download      ID = "control:download"
	CompareAction ID = "control:compare"
	PanelClose    ID = "control:panel-close"
)

const (
	rowPrefix  = "row:"
	cardPrefix = "card:"
)

// Control returns the ID for a named control.
func Control(name string) ID {
	return ID("control:" + name)
}

// Row returns the ID for a row inside a table widget.
func Row(widgetID string, rowID int) ID {
	return ID(fmt.Sprintf("%s%s:%d", rowPrefix, widgetID, rowID))
}

// Card returns the ID for the drag handle of a widget card.
func Card(widgetID string) ID {
	return ID(cardPrefix + widgetID)
}

// ParseCard returns the widget a card handle belongs to.
func ParseCard(id ID) (widgetID string, ok bool) {
	widgetID, found := strings.CutPrefix(string(id), cardPrefix)
	if !found || widgetID == "" {
		return "", false
	}
	return widgetID, true
}

// ParseRow splits a row ID into its widget and row. ok is false for any
// other kind of ID.
func ParseRow(id ID) (widgetID string, rowID int, ok bool) {
	rest, found := strings.CutPrefix(string(id), rowPrefix)
	if !found {
		return "", 0, false
	}

	idx := strings.LastIndex(rest, ":")
	if idx <= 0 {
		return "", 0, false
	}

	n, err := strconv.Atoi(rest[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:idx], n, true
}

// IsZero reports whether the ID is empty.
func (id ID) IsZero() bool { return id == "" }

// Ring is the ordered list of attached focusable controls and the one that
// currently holds focus.
type Ring struct {
	ids     []ID
	current ID
}

// NewRing creates a ring over ids with focus on the first one.
func NewRing(ids ...ID) *Ring {
	r := &Ring{}
	r.Reset(ids)
	return r
}

// Reset replaces the attached controls. Focus stays where it is if that
// control is still attached, otherwise it moves to the first control.
func (r *Ring) Reset(ids []ID) {
	r.ids = slices.Clone(ids)
	if r.Attached(r.current) {
		return
	}
	r.current = ""
	if len(r.ids) > 0 {
		r.current = r.ids[0]
	}
}

// IDs returns a copy of the attached controls in tab order.
func (r *Ring) IDs() []ID {
	return slices.Clone(r.ids)
}

// Attached reports whether id is currently part of the ring.
func (r *Ring) Attached(id ID) bool {
	if id.IsZero() {
		return false
	}
	return slices.Contains(r.ids, id)
}

// Current returns the focused control.
func (r *Ring) Current() ID {
	return r.current
}

// Focus moves focus to id. It returns false and leaves focus untouched when
// id is not attached.
func (r *Ring) Focus(id ID) bool {
	if !r.Attached(id) {
		return false
	}
	r.current = id
	return true
}

// Next moves focus forward, wrapping at the end.
func (r *Ring) Next() ID {
	return r.step(1)
}

// Prev moves focus backward, wrapping at the start.
func (r *Ring) Prev() ID {
	return r.step(-1)
}

func (r *Ring) step(dir int) ID {
	if len(r.ids) == 0 {
		return ""
	}
	idx := slices.Index(r.ids, r.current)
	if idx < 0 {
		r.current = r.ids[0]
		return r.current
	}
	idx = (idx + dir + len(r.ids)) % len(r.ids)
	r.current = r.ids[idx]
	return r.current
}
