package selection

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docboard/internal/core/focus"
)

type cityMap map[int]string

func (m cityMap) CityOf(id int) (string, bool) {
	c, ok := m[id]
	return c, ok
}

var testCities = cityMap{
	1: "Winterfell",
	2: "King's Landing",
	3: "Winterfell",
	4: "Dragonstone",
	5: "Asshai",
}

func newTestCoordinator() *Coordinator {
	return New(testCities, Options{Fallback: focus.CompareAction, Logger: zerolog.Nop()})
}

func attachedAll(focus.ID) bool { return true }

func attachedNone(focus.ID) bool { return false }

func TestActivateRow_SetsPreviewTarget(t *testing.T) {
	c := newTestCoordinator()
	prior := focus.Row("widget1", 1)

	target, ok := c.ActivateRow("widget1", 1, prior)
	require.True(t, ok)

	assert.Equal(t, Target{TableID: "widget1", City: "Winterfell"}, target)
	assert.Equal(t, PanelSingle, c.Panel().Kind)
	assert.Equal(t, target, c.Panel().Target)
	assert.Equal(t, prior, c.Captured())

	restore, ok := c.ClosePreview(attachedAll)
	require.True(t, ok)
	assert.Equal(t, prior, restore)
	assert.False(t, c.Panel().Visible())
	assert.True(t, c.Captured().IsZero())
}

func TestActivateRow_UnresolvedIsNoop(t *testing.T) {
	c := newTestCoordinator()

	_, ok := c.ActivateRow("widget1", 42, focus.Search)

	assert.False(t, ok)
	assert.False(t, c.Panel().Visible())
	assert.True(t, c.Captured().IsZero())
}

func TestActivateRow_CapturesOnlyOnce(t *testing.T) {
	c := newTestCoordinator()
	first := focus.Row("widget1", 1)

	c.ActivateRow("widget1", 1, first)
	c.ActivateRow("widget1", 1, focus.PanelClose)
	c.ActivateRow("widget2", 4, focus.PanelClose)

	assert.Equal(t, first, c.Captured())
	assert.Equal(t, Target{TableID: "widget2", City: "Dragonstone"}, c.Panel().Target)
}

func TestClosePreview_FallsBackWhenDetached(t *testing.T) {
	c := newTestCoordinator()
	c.ActivateRow("widget1", 1, focus.Row("widget1", 1))

	restore, ok := c.ClosePreview(attachedNone)

	require.True(t, ok)
	assert.Equal(t, focus.CompareAction, restore)
}

func TestClosePreview_FallsBackWhenNothingCaptured(t *testing.T) {
	c := newTestCoordinator()
	c.ActivateRow("widget1", 1, "")

	restore, ok := c.ClosePreview(attachedAll)

	require.True(t, ok)
	assert.Equal(t, focus.CompareAction, restore)
}

func TestClosePreview_NoPanel(t *testing.T) {
	c := newTestCoordinator()

	restore, ok := c.ClosePreview(attachedAll)

	assert.False(t, ok)
	assert.True(t, restore.IsZero())
}

func TestChangeSelection_DedupesWithinTable(t *testing.T) {
	c := newTestCoordinator()

	entries := c.ChangeSelection("widget1", []int{1, 3})

	assert.Equal(t, []Entry{{TableID: "widget1", City: "Winterfell"}}, entries)
	assert.False(t, c.CanCompare())
	assert.True(t, c.CanDownload())
}

func TestChangeSelection_MergesAcrossTables(t *testing.T) {
	c := newTestCoordinator()

	c.ChangeSelection("widget1", []int{1, 3})
	entries := c.ChangeSelection("widget2", []int{4})

	assert.Equal(t, []Entry{
		{TableID: "widget1", City: "Winterfell"},
		{TableID: "widget2", City: "Dragonstone"},
	}, entries)
	assert.True(t, c.CanCompare())
}

func TestChangeSelection_ReplacesSameTableEntries(t *testing.T) {
	c := newTestCoordinator()

	c.ChangeSelection("widget1", []int{1})
	c.ChangeSelection("widget2", []int{4})
	entries := c.ChangeSelection("widget1", []int{2})

	assert.Equal(t, []Entry{
		{TableID: "widget2", City: "Dragonstone"},
		{TableID: "widget1", City: "King's Landing"},
	}, entries)
}

func TestChangeSelection_DropsUnresolvable(t *testing.T) {
	c := newTestCoordinator()

	entries := c.ChangeSelection("widget1", []int{99, 2, 100})

	assert.Equal(t, []Entry{{TableID: "widget1", City: "King's Landing"}}, entries)
}

func TestChangeSelection_MostRecentDuplicateWins(t *testing.T) {
	c := newTestCoordinator()

	c.ChangeSelection("widget1", []int{1})
	c.ChangeSelection("widget2", []int{4})
	entries := c.ChangeSelection("widget3", []int{3}) // Winterfell again, newer table

	assert.Equal(t, []Entry{
		{TableID: "widget2", City: "Dragonstone"},
		{TableID: "widget3", City: "Winterfell"},
	}, entries)
}

func TestChangeSelection_TruncatesToNewest(t *testing.T) {
	c := newTestCoordinator()

	entries := c.ChangeSelection("widget1", []int{1, 2, 4, 5})

	require.Len(t, entries, MaxEntries)
	assert.Equal(t, []Entry{
		{TableID: "widget1", City: "Dragonstone"},
		{TableID: "widget1", City: "Asshai"},
	}, entries)
}

func TestChangeSelection_MergeProperty(t *testing.T) {
	// The merged set is the deduplicated union of other tables' prior entries
	// and the new entries, newest last, capped at MaxEntries.
	events := []struct {
		table string
		ids   []int
	}{
		{"a", []int{1}},
		{"b", []int{4, 5}},
		{"a", []int{2, 3}},
		{"c", []int{5}},
		{"b", nil},
		{"a", []int{99}},
	}

	c := newTestCoordinator()
	var model []Entry
	for _, ev := range events {
		var next []Entry
		for _, e := range model {
			if e.TableID != ev.table {
				next = append(next, e)
			}
		}
		for _, id := range ev.ids {
			if city, ok := testCities[id]; ok {
				next = append(next, Entry{TableID: ev.table, City: city})
			}
		}
		// Walk newest to oldest keeping each city once until the cap is hit.
		model = nil
		kept := map[string]bool{}
		for i := len(next) - 1; i >= 0 && len(model) < MaxEntries; i-- {
			if kept[next[i].City] {
				continue
			}
			kept[next[i].City] = true
			model = append([]Entry{next[i]}, model...)
		}

		got := c.ChangeSelection(ev.table, ev.ids)
		assert.Equal(t, len(model), len(got))
		for i := range model {
			assert.Equal(t, model[i], got[i])
		}

		seen := map[string]bool{}
		for _, e := range got {
			assert.False(t, seen[e.City], "duplicate city %s", e.City)
			seen[e.City] = true
		}
		assert.LessOrEqual(t, len(got), MaxEntries)
	}
}

func TestCompare_RequiresTwoEntries(t *testing.T) {
	c := newTestCoordinator()

	assert.False(t, c.Compare(focus.CompareAction))

	c.ChangeSelection("widget1", []int{1})
	assert.False(t, c.CanCompare())
	assert.False(t, c.Compare(focus.CompareAction))
	assert.False(t, c.Panel().Visible())

	c.ChangeSelection("widget2", []int{4})
	assert.True(t, c.CanCompare())
	assert.True(t, c.Compare(focus.CompareAction))
	assert.Equal(t, PanelCompare, c.Panel().Kind)
	assert.Equal(t, focus.CompareAction, c.Captured())
	assert.Len(t, c.CompareEntries(), 2)
}

func TestCompare_HiddenWhenSelectionDropsBelowThreshold(t *testing.T) {
	c := newTestCoordinator()
	c.ChangeSelection("widget1", []int{1})
	c.ChangeSelection("widget2", []int{4})
	require.True(t, c.Compare(focus.CompareAction))

	c.ChangeSelection("widget2", nil)

	assert.False(t, c.Panel().Visible())
	assert.False(t, c.CanCompare())
}

func TestRestoreHidden_AfterSelectionDrop(t *testing.T) {
	c := newTestCoordinator()
	c.ChangeSelection("widget1", []int{1})
	c.ChangeSelection("widget2", []int{4})
	require.True(t, c.Compare(focus.Row("widget2", 4)))

	_, ok := c.RestoreHidden(attachedAll)
	require.False(t, ok, "nothing hidden while the panel is open")

	c.ChangeSelection("widget2", nil)

	restore, ok := c.RestoreHidden(attachedAll)
	require.True(t, ok)
	assert.Equal(t, focus.Row("widget2", 4), restore)

	_, ok = c.RestoreHidden(attachedAll)
	assert.False(t, ok, "collected once")
}

func TestRestoreHidden_ModeToggleMatchesClose(t *testing.T) {
	tests := []struct {
		name     string
		attached func(focus.ID) bool
		want     focus.ID
	}{
		{name: "captured attached", attached: attachedAll, want: focus.Row("widget1", 1)},
		{name: "captured detached", attached: attachedNone, want: focus.CompareAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCoordinator()
			c.ToggleCompareMode()
			c.ChangeSelection("widget1", []int{1})
			c.ChangeSelection("widget2", []int{4})
			require.True(t, c.Compare(focus.Row("widget1", 1)))

			c.ToggleCompareMode()
			require.False(t, c.Panel().Visible())
			assert.True(t, c.Captured().IsZero())

			restore, ok := c.RestoreHidden(tt.attached)
			require.True(t, ok)
			assert.Equal(t, tt.want, restore)
		})
	}
}

func TestRestoreHidden_ClearedByNewPanel(t *testing.T) {
	c := newTestCoordinator()
	c.ChangeSelection("widget1", []int{1})
	c.ChangeSelection("widget2", []int{4})
	require.True(t, c.Compare(focus.CompareAction))
	c.ChangeSelection("widget2", nil)

	c.ActivateRow("widget1", 2, focus.Row("widget1", 2))

	_, ok := c.RestoreHidden(attachedAll)
	assert.False(t, ok)
}

func TestPanel_AtMostOneVisible(t *testing.T) {
	c := newTestCoordinator()
	c.ChangeSelection("widget1", []int{1})
	c.ChangeSelection("widget2", []int{4})

	require.True(t, c.Compare(focus.CompareAction))
	c.ActivateRow("widget1", 2, focus.Row("widget1", 2))

	assert.Equal(t, PanelSingle, c.Panel().Kind)
	// The compare panel captured first, so the row activation keeps it.
	assert.Equal(t, focus.CompareAction, c.Captured())

	require.True(t, c.Compare(focus.PanelClose))
	assert.Equal(t, PanelCompare, c.Panel().Kind)
}

func TestToggleCompareMode_ClearsSelection(t *testing.T) {
	c := newTestCoordinator()

	assert.True(t, c.ToggleCompareMode())
	c.ChangeSelection("widget1", []int{1})
	c.ChangeSelection("widget2", []int{4})
	require.True(t, c.Compare(focus.CompareAction))

	assert.False(t, c.ToggleCompareMode())

	assert.Empty(t, c.Entries())
	assert.False(t, c.Panel().Visible())
	assert.False(t, c.Checked("widget1", 1))
}

func TestToggleCompareMode_KeepsSinglePreview(t *testing.T) {
	c := newTestCoordinator()
	c.ActivateRow("widget1", 1, focus.Row("widget1", 1))

	c.ToggleCompareMode()

	assert.Equal(t, PanelSingle, c.Panel().Kind)
}

func TestChecked(t *testing.T) {
	c := newTestCoordinator()
	c.ChangeSelection("widget1", []int{1, 3})
	c.ChangeSelection("widget2", []int{4})

	assert.True(t, c.Checked("widget1", 1))
	assert.True(t, c.Checked("widget1", 3))
	assert.False(t, c.Checked("widget1", 2))
	assert.True(t, c.Checked("widget2", 4))
	assert.False(t, c.Checked("widget2", 1))

	assert.Equal(t, []int{1, 3}, c.CheckedIDs("widget1", []int{1, 2, 3}))

	// Winterfell moves to another table: widget1 rows uncheck.
	c.ChangeSelection("widget9", []int{1})
	assert.False(t, c.Checked("widget1", 1))
	assert.True(t, c.Checked("widget9", 1))
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := newTestCoordinator()
	c.ChangeSelection("widget1", []int{1})
	c.ChangeSelection("widget2", []int{4})

	snap := c.Snapshot()
	snap.Entries[0].City = "mutated"

	assert.Equal(t, "Winterfell", c.Entries()[0].City)
	assert.True(t, snap.CanCompare)
	assert.True(t, snap.CanDownload)
	assert.Len(t, snap.CompareEntries, 2)
}

func TestPanel_Key(t *testing.T) {
	assert.Empty(t, Panel{}.Key())
	assert.Equal(t, "compare", Panel{Kind: PanelCompare}.Key())

	a := Panel{Kind: PanelSingle, Target: Target{TableID: "w", City: "A"}}
	b := Panel{Kind: PanelSingle, Target: Target{TableID: "w", City: "B"}}
	assert.NotEqual(t, a.Key(), b.Key())
}
