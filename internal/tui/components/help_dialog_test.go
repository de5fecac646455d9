package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/docboard/pkg/tuitest"
)

func TestHelpDialog_View(t *testing.T) {
	d := NewHelpDialog("Keyboard Shortcuts", []HelpDialogSection{
		{Title: "Dashboard", Entries: []HelpEntry{{Key: "m", Desc: "toggle compare mode"}}},
		{Title: "Navigation", Entries: []HelpEntry{{Key: "tab", Desc: "next control"}}},
	})

	out := tuitest.StripANSI(d.View())

	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "toggle compare mode")
	assert.Less(t, strings.Index(out, "Dashboard"), strings.Index(out, "Navigation"))
}

func TestFormatKeyDesc_AlignsDescriptions(t *testing.T) {
	a := tuitest.StripANSI(formatKeyDesc("m", "one"))
	b := tuitest.StripANSI(formatKeyDesc("shift+tab", "two"))

	assert.Equal(t, strings.Index(a, "one"), strings.Index(b, "two"))
}
