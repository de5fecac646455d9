package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/docboard/internal/core/focus"
)

// focusTickMsg delivers a deferred focus transfer. panelKey ties it to the
// panel instance that requested it.
type focusTickMsg struct {
	seq      uint64
	target   focus.ID
	panelKey string
}

// FocusScheduler defers focus moves until after the next render. Only the
// most recently scheduled tick is honoured: scheduling again or cancelling
// invalidates everything in flight.
type FocusScheduler struct {
	seq uint64
}

// Schedule returns a command that requests focus on target after delay.
func (s *FocusScheduler) Schedule(target focus.ID, panelKey string, delay time.Duration) tea.Cmd {
	s.seq++
	seq := s.seq
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return focusTickMsg{seq: seq, target: target, panelKey: panelKey}
	})
}

// Cancel drops any pending focus transfer.
func (s *FocusScheduler) Cancel() {
	s.seq++
}

// Accept reports whether msg is the latest scheduled transfer.
func (s *FocusScheduler) Accept(msg focusTickMsg) bool {
	return msg.seq == s.seq
}
