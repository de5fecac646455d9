package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/docboard/internal/core/focus"
)

func TestFocusScheduler_DeliversTarget(t *testing.T) {
	s := &FocusScheduler{}

	cmd := s.Schedule(focus.PanelClose, "single:widget1:Winterfell", time.Millisecond)
	msg, ok := cmd().(focusTickMsg)
	require.True(t, ok)

	assert.True(t, s.Accept(msg))
	assert.Equal(t, focus.PanelClose, msg.target)
	assert.Equal(t, "single:widget1:Winterfell", msg.panelKey)
}

func TestFocusScheduler_LatestWins(t *testing.T) {
	s := &FocusScheduler{}

	first := s.Schedule(focus.PanelClose, "a", time.Millisecond)().(focusTickMsg)
	second := s.Schedule(focus.PanelClose, "b", time.Millisecond)().(focusTickMsg)

	assert.False(t, s.Accept(first))
	assert.True(t, s.Accept(second))
}

func TestFocusScheduler_Cancel(t *testing.T) {
	s := &FocusScheduler{}

	msg := s.Schedule(focus.PanelClose, "a", time.Millisecond)().(focusTickMsg)
	s.Cancel()

	assert.False(t, s.Accept(msg))
}
