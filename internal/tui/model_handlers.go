package tui

import (
	"slices"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/docboard/internal/core/config"
	"github.com/colonyops/docboard/internal/core/focus"
	"github.com/colonyops/docboard/internal/core/notify"
	"github.com/colonyops/docboard/internal/core/selection"
)

// exportDoneMsg reports the result of writing an export file.
type exportDoneMsg struct {
	path  string
	count int
	err   error
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.panel.SetSize(msg.Width, msg.Height)
	return m, nil
}

func (m Model) handleFocusTick(msg focusTickMsg) (tea.Model, tea.Cmd) {
	if !m.scheduler.Accept(msg) {
		return m, nil
	}
	if m.coord.Panel().Key() != msg.panelKey {
		return m, nil
	}
	if m.ring.Current() == msg.target {
		return m, nil
	}
	if m.ring.Focus(msg.target) {
		m.search.Blur()
	}
	return m, nil
}

func (m Model) handleToastTick(_ toastTickMsg) (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if m.toastController.HasToasts() {
		return m, scheduleToastTick()
	}
	m.toastController.SetTicking(false)
	return m, nil
}

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("export failed")
		return m, m.notify(notify.LevelError, "Export failed: %v", msg.err)
	}
	m.log.Info().Str("path", msg.path).Int("cities", msg.count).Msg("selection exported")
	return m, m.notify(notify.LevelSuccess, "Saved %d cities to %s", msg.count, msg.path)
}

// --- Input ---

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == keyCtrlC {
		return m.quit()
	}

	if m.state == stateShowingHelp {
		return m.handleHelpDialogKey(msg)
	}

	if m.ring.Current() == focus.Search && m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	if action, ok := m.keys.Resolve(msg); ok {
		return m.dispatch(action)
	}

	return m.handleNavKey(msg)
}

func (m Model) handleHelpDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, _ := m.keys.Resolve(msg)
	switch action {
	case config.ActionClose, config.ActionHelp, config.ActionQuit:
		m.state = stateNormal
	}
	return m, nil
}

// handleSearchKey feeds typing to the search box. The box is a placeholder:
// its value is never applied to the tables.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next, m.keys.Prev):
		m.search.Blur()
		return m.handleNavKey(msg)
	case msg.String() == "esc":
		m.search.Blur()
		m.ring.Next()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) dispatch(action string) (tea.Model, tea.Cmd) {
	switch action {
	case config.ActionToggleCompare:
		return m.toggleCompareMode()
	case config.ActionDownload:
		return m.download()
	case config.ActionCompare:
		return m.compare()
	case config.ActionClose:
		return m.closePanel()
	case config.ActionSearch:
		m.ring.Focus(focus.Search)
		cmd := m.search.Focus()
		return m, cmd
	case config.ActionHelp:
		m.state = stateShowingHelp
		return m, nil
	case config.ActionQuit:
		return m.quit()
	case config.ActionMoveLeft:
		return m.moveWidget(-1)
	case config.ActionMoveRight:
		return m.moveWidget(1)
	case config.ActionHideWidget:
		return m.hideWidget()
	case config.ActionResetLayout:
		m.grid.Reset()
		m.refreshRing()
		return m, nil
	}
	return m, nil
}

func (m Model) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		return m.focusTo(m.ring.Next())
	case key.Matches(msg, m.keys.Prev):
		return m.focusTo(m.ring.Prev())
	case key.Matches(msg, m.keys.Up):
		if !m.moveRow(-1) && m.panel.Visible() {
			m.panel.ScrollUp(1)
		}
	case key.Matches(msg, m.keys.Down):
		if !m.moveRow(1) && m.panel.Visible() {
			m.panel.ScrollDown(1)
		}
	case key.Matches(msg, m.keys.PageUp):
		m.panel.ScrollUp(m.panel.PageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.panel.ScrollDown(m.panel.PageSize())
	case key.Matches(msg, m.keys.Activate):
		return m.activateFocused()
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleFocusedRow()
	}
	return m, nil
}

// focusTo syncs the search box with a focus change.
func (m Model) focusTo(id focus.ID) (tea.Model, tea.Cmd) {
	if id == focus.Search {
		cmd := m.search.Focus()
		return m, cmd
	}
	m.search.Blur()
	return m, nil
}

// moveRow moves focus to the neighbouring row of the same table.
func (m *Model) moveRow(delta int) bool {
	widgetID, _, ok := focus.ParseRow(m.ring.Current())
	if !ok {
		return false
	}

	ids := m.ring.IDs()
	idx := slices.Index(ids, m.ring.Current()) + delta
	if idx < 0 || idx >= len(ids) {
		return true
	}
	if next, _, ok := focus.ParseRow(ids[idx]); ok && next == widgetID {
		m.ring.Focus(ids[idx])
	}
	return true
}

func (m Model) activateFocused() (tea.Model, tea.Cmd) {
	current := m.ring.Current()
	switch current {
	case focus.ToggleCompare:
		return m.toggleCompareMode()
	case focus.Download:
		return m.download()
	case focus.CompareAction:
		return m.compare()
	case focus.PanelClose:
		return m.closePanel()
	}

	widgetID, rowID, ok := focus.ParseRow(current)
	if !ok {
		return m, nil
	}
	if _, ok := m.coord.ActivateRow(widgetID, rowID, current); !ok {
		return m, nil
	}
	return m, m.syncPanel()
}

func (m Model) toggleFocusedRow() (tea.Model, tea.Cmd) {
	widgetID, rowID, ok := focus.ParseRow(m.ring.Current())
	if !ok {
		return m, nil
	}
	if !m.coord.CompareMode() {
		return m, m.notify(notify.LevelInfo, "Turn on compare mode to select rows")
	}

	tw := m.tables[widgetID]
	checked := m.coord.CheckedIDs(widgetID, tw.RowIDs())
	m.coord.ChangeSelection(widgetID, tw.Toggle(rowID, checked))
	return m, m.syncPanel()
}

func (m Model) toggleCompareMode() (tea.Model, tea.Cmd) {
	m.coord.ToggleCompareMode()
	return m, m.syncPanel()
}

func (m Model) compare() (tea.Model, tea.Cmd) {
	if !m.coord.Compare(m.ring.Current()) {
		return m, nil
	}
	return m, m.syncPanel()
}

func (m Model) download() (tea.Model, tea.Cmd) {
	now := m.now()
	export, ok := m.coord.Export(now)
	if !ok {
		return m, nil
	}

	dir := m.cfg.Export.Dir
	return m, func() tea.Msg {
		path, err := selection.WriteExport(dir, export, now)
		return exportDoneMsg{path: path, count: len(export.Cities), err: err}
	}
}

func (m Model) closePanel() (tea.Model, tea.Cmd) {
	restore, ok := m.coord.ClosePreview(m.ring.Attached)
	if !ok {
		return m, nil
	}

	m.scheduler.Cancel()
	m.panel.Sync(m.coord.Snapshot())
	m.refreshRing()
	m.ring.Focus(restore)
	m.search.Blur()
	return m, nil
}

func (m Model) moveWidget(delta int) (tea.Model, tea.Cmd) {
	widgetID, ok := m.focusedWidget()
	if !ok {
		return m, nil
	}
	if m.grid.Move(widgetID, delta) {
		m.refreshRing()
	}
	return m, nil
}

func (m Model) hideWidget() (tea.Model, tea.Cmd) {
	widgetID, ok := m.focusedWidget()
	if !ok || !m.grid.Hide(widgetID) {
		return m, nil
	}
	m.refreshRing()
	if ids := m.widgetFocusIDs(); len(ids) > 0 {
		m.ring.Focus(ids[0])
	}
	return m, nil
}

// syncPanel pushes the Coordinator's state into the panel and focus ring
// after a selection event. Opening or retargeting a panel schedules focus
// onto its close control; a panel going away cancels any pending transfer
// and, if focus was inside it, restores focus like closePanel does.
func (m *Model) syncPanel() tea.Cmd {
	snap := m.coord.Snapshot()
	onClose := m.ring.Current() == focus.PanelClose

	changed := m.panel.Sync(snap)
	m.refreshRing()

	if !snap.Panel.Visible() {
		m.scheduler.Cancel()
		restore, hidden := m.coord.RestoreHidden(m.ring.Attached)
		if onClose {
			if !hidden {
				restore = focus.CompareAction
			}
			m.ring.Focus(restore)
			m.search.Blur()
		}
		return nil
	}

	if changed {
		return m.scheduler.Schedule(focus.PanelClose, snap.Panel.Key(), m.cfg.TUI.FocusDelay)
	}
	return nil
}
