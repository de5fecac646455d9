// Package selection owns the dashboard's interaction state: which document is
// previewed, which rows across tables are marked for comparison, and where
// keyboard focus returns when the panel closes.
//
// The Coordinator is a reducer. Every exported mutator handles exactly one
// event and views are handed out as immutable Snapshots.
package selection

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/colonyops/docboard/internal/core/focus"
)

// MaxEntries caps the comparison selection.
const MaxEntries = 2

// CityResolver maps a row id to its city.
type CityResolver interface {
	CityOf(rowID int) (string, bool)
}

// Entry is one (table, city) pair selected for comparison.
type Entry struct {
	TableID string `json:"table_id"`
	City    string `json:"city"`
}

// Target is the document shown by the single preview panel.
type Target struct {
	TableID string
	City    string
}

// PanelKind tags which panel is visible.
type PanelKind int

const (
	PanelNone PanelKind = iota
	PanelSingle
	PanelCompare
)

// String returns a lowercase name for logging.
func (k PanelKind) String() string {
	switch k {
	case PanelSingle:
		return "single"
	case PanelCompare:
		return "compare"
	default:
		return "none"
	}
}

// Panel is the visible side panel. Target is only meaningful for PanelSingle;
// PanelCompare reads its documents from the comparison entries.
type Panel struct {
	Kind   PanelKind
	Target Target
}

// Visible reports whether any panel is shown.
func (p Panel) Visible() bool { return p.Kind != PanelNone }

// Key identifies the panel's content. It changes whenever the panel opens,
// switches kind, or retargets, and is used to tie deferred focus to one
// specific panel instance.
func (p Panel) Key() string {
	switch p.Kind {
	case PanelSingle:
		return "single:" + p.Target.TableID + ":" + p.Target.City
	case PanelCompare:
		return "compare"
	default:
		return ""
	}
}

// Options configures a Coordinator.
type Options struct {
	// Fallback receives focus on close when the captured control is gone.
	Fallback focus.ID
	Logger   zerolog.Logger
}

// Coordinator tracks preview and comparison state for every table on the
// dashboard. It is not safe for concurrent use; the TUI mutates it from its
// update loop only.
type Coordinator struct {
	resolve  CityResolver
	fallback focus.ID
	log      zerolog.Logger

	entries     []Entry
	lastIDs     map[string][]int // table id -> ids from its latest selection event
	panel       Panel
	captured    focus.ID
	compareMode bool

	// released holds the captured control of a compare panel hidden by a
	// selection event until RestoreHidden collects it.
	released    focus.ID
	hasReleased bool
}

// New creates a Coordinator resolving rows through r.
func New(r CityResolver, opts Options) *Coordinator {
	return &Coordinator{
		resolve:  r,
		fallback: opts.Fallback,
		log:      opts.Logger.With().Str("component", "selection").Logger(),
		lastIDs:  make(map[string][]int),
	}
}

// ActivateRow opens the single preview for the row's city. current is the
// control holding focus before the panel opens; it is captured only when no
// panel is already open so repeated activations keep the original return
// point. Unresolvable rows are ignored.
func (c *Coordinator) ActivateRow(tableID string, rowID int, current focus.ID) (Target, bool) {
	city, ok := c.resolve.CityOf(rowID)
	if !ok {
		c.log.Debug().Str("table", tableID).Int("row", rowID).Msg("activate: unresolved row")
		return Target{}, false
	}

	if !c.panel.Visible() {
		c.captured = current
	}
	c.released, c.hasReleased = "", false

	target := Target{TableID: tableID, City: city}
	c.panel = Panel{Kind: PanelSingle, Target: target}

	c.log.Debug().
		Str("table", tableID).
		Int("row", rowID).
		Str("city", city).
		Str("captured", string(c.captured)).
		Msg("activate: preview opened")

	return target, true
}

// ChangeSelection replaces tableID's contribution to the comparison set with
// the cities of rowIDs. Entries from other tables are kept, duplicates by
// city collapse onto their most recent occurrence, and only the most recent
// MaxEntries survive.
func (c *Coordinator) ChangeSelection(tableID string, rowIDs []int) []Entry {
	incoming := make([]Entry, 0, len(rowIDs))
	for _, id := range rowIDs {
		city, ok := c.resolve.CityOf(id)
		if !ok {
			continue
		}
		incoming = append(incoming, Entry{TableID: tableID, City: city})
	}

	merged := make([]Entry, 0, len(c.entries)+len(incoming))
	for _, e := range c.entries {
		if e.TableID != tableID {
			merged = append(merged, e)
		}
	}
	merged = append(merged, incoming...)

	c.entries = truncate(dedupe(merged), MaxEntries)
	c.lastIDs[tableID] = slices.Clone(rowIDs)

	if c.panel.Kind == PanelCompare && !c.CanCompare() {
		c.hideCompare("selection: compare panel hidden below threshold")
	}

	c.log.Debug().
		Str("table", tableID).
		Ints("rows", rowIDs).
		Int("entries", len(c.entries)).
		Msg("selection changed")

	return c.Entries()
}

// dedupe keeps the last occurrence of every city, at that occurrence's
// position.
func dedupe(entries []Entry) []Entry {
	last := make(map[string]int, len(entries))
	for i, e := range entries {
		last[e.City] = i
	}

	out := make([]Entry, 0, len(last))
	for i, e := range entries {
		if last[e.City] == i {
			out = append(out, e)
		}
	}
	return out
}

// truncate keeps the newest n entries.
func truncate(entries []Entry, n int) []Entry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

// Compare opens the compare panel, capturing current the same way
// ActivateRow does. It is a no-op returning false until at least two cities
// are selected.
func (c *Coordinator) Compare(current focus.ID) bool {
	if !c.CanCompare() {
		return false
	}

	if !c.panel.Visible() {
		c.captured = current
	}
	c.released, c.hasReleased = "", false
	c.panel = Panel{Kind: PanelCompare}

	c.log.Debug().Int("entries", len(c.entries)).Msg("compare panel opened")
	return true
}

// ClosePreview hides whichever panel is visible and returns the control that
// should receive focus: the captured control if attached still reports it as
// present, otherwise the fallback. ok is false when no panel was open.
func (c *Coordinator) ClosePreview(attached func(focus.ID) bool) (restore focus.ID, ok bool) {
	if !c.panel.Visible() {
		return "", false
	}

	restore = c.restoreTarget(c.captured, attached)

	c.log.Debug().
		Str("panel", c.panel.Kind.String()).
		Str("restore", string(restore)).
		Msg("panel closed")

	c.panel = Panel{}
	c.captured = ""
	return restore, true
}

// RestoreHidden returns where focus goes after ChangeSelection or
// ToggleCompareMode hid the compare panel. The captured control is resolved
// against attached exactly like ClosePreview. ok is false when no panel was
// hidden since the last call or a new panel has opened since.
func (c *Coordinator) RestoreHidden(attached func(focus.ID) bool) (restore focus.ID, ok bool) {
	if !c.hasReleased {
		return "", false
	}
	restore = c.restoreTarget(c.released, attached)
	c.released, c.hasReleased = "", false
	return restore, true
}

func (c *Coordinator) hideCompare(msg string) {
	c.released, c.hasReleased = c.captured, true
	c.panel = Panel{}
	c.captured = ""
	c.log.Debug().Str("released", string(c.released)).Msg(msg)
}

// restoreTarget is captured if attached still reports it, else the fallback.
func (c *Coordinator) restoreTarget(captured focus.ID, attached func(focus.ID) bool) focus.ID {
	if !captured.IsZero() && attached != nil && attached(captured) {
		return captured
	}
	return c.fallback
}

// ToggleCompareMode flips compare mode. Either way the comparison selection is
// cleared wholesale and the compare panel, if open, is hidden.
func (c *Coordinator) ToggleCompareMode() bool {
	c.compareMode = !c.compareMode
	c.entries = nil
	clear(c.lastIDs)

	if c.panel.Kind == PanelCompare {
		c.hideCompare("compare panel hidden by mode toggle")
	}

	c.log.Debug().Bool("compare_mode", c.compareMode).Msg("compare mode toggled")
	return c.compareMode
}

// CompareMode reports whether checkbox selection is enabled.
func (c *Coordinator) CompareMode() bool { return c.compareMode }

// CanCompare reports whether the compare action is enabled.
func (c *Coordinator) CanCompare() bool { return len(c.entries) >= 2 }

// CanDownload reports whether there is anything to export.
func (c *Coordinator) CanDownload() bool { return len(c.entries) > 0 }

// Entries returns a copy of the comparison selection.
func (c *Coordinator) Entries() []Entry { return slices.Clone(c.entries) }

// CompareEntries returns the entries shown side by side in the compare panel.
func (c *Coordinator) CompareEntries() []Entry {
	return slices.Clone(c.entries[:min(2, len(c.entries))])
}

// Panel returns the visible panel.
func (c *Coordinator) Panel() Panel { return c.panel }

// Captured returns the control focus returns to on close.
func (c *Coordinator) Captured() focus.ID { return c.captured }

// Checked reports whether rowID renders as selected in tableID: the row was
// part of the table's latest selection and its city is still an entry owned
// by that table.
func (c *Coordinator) Checked(tableID string, rowID int) bool {
	if !slices.Contains(c.lastIDs[tableID], rowID) {
		return false
	}
	city, ok := c.resolve.CityOf(rowID)
	if !ok {
		return false
	}
	return slices.Contains(c.entries, Entry{TableID: tableID, City: city})
}

// CheckedIDs filters rowIDs down to the ones Checked reports for tableID.
func (c *Coordinator) CheckedIDs(tableID string, rowIDs []int) []int {
	var out []int
	for _, id := range rowIDs {
		if c.Checked(tableID, id) {
			out = append(out, id)
		}
	}
	return out
}

// Snapshot is an immutable copy of the view state.
type Snapshot struct {
	Panel          Panel
	Entries        []Entry
	CompareEntries []Entry
	CompareMode    bool
	CanCompare     bool
	CanDownload    bool
}

// Snapshot returns the current view state.
func (c *Coordinator) Snapshot() Snapshot {
	return Snapshot{
		Panel:          c.panel,
		Entries:        c.Entries(),
		CompareEntries: c.CompareEntries(),
		CompareMode:    c.compareMode,
		CanCompare:     c.CanCompare(),
		CanDownload:    c.CanDownload(),
	}
}
