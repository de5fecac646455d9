package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docboard/internal/core/config"
	"github.com/colonyops/docboard/pkg/tuitest"
)

func TestKeyMap_Resolve(t *testing.T) {
	k := NewKeyMap(map[string]string{
		"m":   config.ActionToggleCompare,
		"esc": config.ActionClose,
		"v":   config.ActionCompare,
	})

	action, ok := k.Resolve(tuitest.KeyPress('m'))
	require.True(t, ok)
	assert.Equal(t, config.ActionToggleCompare, action)

	action, ok = k.Resolve(tuitest.KeyEsc())
	require.True(t, ok)
	assert.Equal(t, config.ActionClose, action)

	_, ok = k.Resolve(tuitest.KeyPress('z'))
	assert.False(t, ok)
}

func TestKeyMap_KeysFor(t *testing.T) {
	k := NewKeyMap(map[string]string{
		"c": config.ActionCompare,
		"v": config.ActionCompare,
		"q": config.ActionQuit,
	})

	assert.Equal(t, []string{"c", "v"}, k.KeysFor(config.ActionCompare))
	assert.Empty(t, k.KeysFor(config.ActionDownload))
}

func TestKeyMap_HelpSections(t *testing.T) {
	k := NewKeyMap(map[string]string{
		"q": config.ActionQuit,
		"m": config.ActionToggleCompare,
	})

	sections := k.HelpSections()
	require.Len(t, sections, 2)

	dashboard := sections[0].Entries
	require.Len(t, dashboard, 2)
	assert.Equal(t, "m", dashboard[0].Key, "ordered by action, not key")
	assert.Equal(t, "toggle compare mode", dashboard[0].Desc)
	assert.Equal(t, "q", dashboard[1].Key)
}

func TestKeyMap_StatusHint(t *testing.T) {
	k := NewKeyMap(map[string]string{"m": config.ActionToggleCompare})

	assert.Equal(t, "tab focus • enter open • space select • m toggle compare mode", k.StatusHint())
}
