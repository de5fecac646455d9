package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docboard/internal/core/fixtures"
	"github.com/colonyops/docboard/internal/core/focus"
	"github.com/colonyops/docboard/pkg/tuitest"
)

func testTable(t *testing.T) TableWidget {
	t.Helper()
	ds, err := fixtures.Default()
	require.NoError(t, err)
	w, ok := ds.Widget("widget1")
	require.True(t, ok)
	return NewTableWidget(w, ds.Columns)
}

func TestTableWidget_IDs(t *testing.T) {
	tw := testTable(t)

	assert.Equal(t, "widget1", tw.ID())
	assert.Equal(t, []int{1, 2, 3}, tw.RowIDs())
	assert.Equal(t, []focus.ID{
		focus.Row("widget1", 1),
		focus.Row("widget1", 2),
		focus.Row("widget1", 3),
	}, tw.FocusIDs())
}

func TestTableWidget_Toggle(t *testing.T) {
	tw := testTable(t)

	tests := []struct {
		name    string
		row     int
		checked []int
		want    []int
	}{
		{name: "check first", row: 1, checked: nil, want: []int{1}},
		{name: "keeps display order", row: 1, checked: []int{3}, want: []int{1, 3}},
		{name: "uncheck", row: 3, checked: []int{1, 3}, want: []int{1}},
		{name: "uncheck last", row: 2, checked: []int{2}, want: nil},
		{name: "ignores foreign ids", row: 2, checked: []int{4}, want: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tw.Toggle(tt.row, tt.checked))
		})
	}
}

func TestTableWidget_Render(t *testing.T) {
	tw := testTable(t)

	out := tuitest.StripANSI(tw.Render(80, tableState{cursor: focus.Row("widget1", 2)}))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "First name")
	assert.NotContains(t, lines[0], "[ ]")
	assert.Contains(t, lines[2], "▸")
	assert.Contains(t, lines[2], "Lannister")
	assert.NotContains(t, lines[1], "▸")
}

func TestTableWidget_RenderCompareMode(t *testing.T) {
	tw := testTable(t)

	out := tuitest.StripANSI(tw.Render(80, tableState{
		compareMode: true,
		checked:     func(rowID int) bool { return rowID == 3 },
	}))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "[ ]")
	assert.Contains(t, lines[3], "[x]")
}

func TestTableWidget_RenderTruncates(t *testing.T) {
	tw := testTable(t)

	out := tuitest.StripANSI(tw.Render(20, tableState{}))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 20)
	}
}

func TestPadCell(t *testing.T) {
	assert.Equal(t, "ab  ", padCell("ab", 4))
	assert.Equal(t, "abc…", padCell("abcdef", 4))
	assert.Empty(t, padCell("ab", 0))
}
