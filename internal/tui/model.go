// Package tui implements the dashboard's Bubble Tea interface.
package tui

import (
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/docboard/internal/core/config"
	"github.com/colonyops/docboard/internal/core/document"
	"github.com/colonyops/docboard/internal/core/fixtures"
	"github.com/colonyops/docboard/internal/core/focus"
	"github.com/colonyops/docboard/internal/core/notify"
	"github.com/colonyops/docboard/internal/core/selection"
	"github.com/colonyops/docboard/internal/core/styles"
	"github.com/colonyops/docboard/internal/tui/components"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateShowingHelp
)

const keyCtrlC = "ctrl+c"

// Options configures the TUI.
type Options struct {
	Dataset *fixtures.Dataset
	Catalog *document.Catalog
	Logger  zerolog.Logger

	// Now stamps exports. Defaults to time.Now.
	Now func() time.Time
}

// Model is the dashboard's Bubble Tea model.
type Model struct {
	cfg     *config.Config
	dataset *fixtures.Dataset
	catalog *document.Catalog
	log     zerolog.Logger
	now     func() time.Time

	keys      KeyMap
	coord     *selection.Coordinator
	ring      *focus.Ring
	scheduler *FocusScheduler
	grid      *Grid
	tables    map[string]TableWidget
	panel     *PreviewPanel
	search    textinput.Model

	toastController *ToastController
	toastView       *ToastView
	helpDialog      *components.HelpDialog

	state    UIState
	width    int
	height   int
	quitting bool
}

// New creates the dashboard model.
func New(cfg *config.Config, opts Options) Model {
	log := opts.Logger.With().Str("component", "tui").Logger()

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	tables := make(map[string]TableWidget)
	for _, w := range opts.Dataset.Tables() {
		tables[w.ID] = NewTableWidget(w, opts.Dataset.Columns)
	}

	search := textinput.New()
	search.Placeholder = "Search…"
	search.Prompt = ""
	search.SetWidth(18)
	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	search.SetStyles(inputStyles)

	keys := NewKeyMap(cfg.Keybindings)
	toastController := NewToastController()

	m := Model{
		cfg:     cfg,
		dataset: opts.Dataset,
		catalog: opts.Catalog,
		log:     log,
		now:     now,
		keys:    keys,
		coord: selection.New(opts.Dataset, selection.Options{
			Fallback: focus.CompareAction,
			Logger:   opts.Logger,
		}),
		ring:            focus.NewRing(),
		scheduler:       &FocusScheduler{},
		grid:            NewGrid(opts.Dataset.Widgets, cfg.TUI.GridColumns),
		tables:          tables,
		panel:           NewPreviewPanel(opts.Catalog, cfg.TUI.PanelWidth, log),
		search:          search,
		toastController: toastController,
		toastView:       NewToastView(toastController),
		helpDialog:      components.NewHelpDialog("Keyboard Shortcuts", keys.HelpSections()),
	}

	m.refreshRing()
	if ids := m.widgetFocusIDs(); len(ids) > 0 {
		m.ring.Focus(ids[0])
	}

	if missing := m.citiesWithoutDocument(); missing > 0 {
		m.toastController.Push(notify.New(notify.LevelWarning, "%d cities have no document", missing))
	}

	return m
}

func (m Model) citiesWithoutDocument() int {
	missing := 0
	for _, city := range m.dataset.CityNames() {
		if _, ok := m.catalog.Lookup(city); !ok {
			missing++
		}
	}
	return missing
}

// Init starts the toast timer when startup produced a toast.
func (m Model) Init() tea.Cmd {
	if m.toastController.HasToasts() {
		return m.ensureToastTick()
	}
	return nil
}

// Update routes a message to its handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case focusTickMsg:
		return m.handleFocusTick(msg)
	case toastTickMsg:
		return m.handleToastTick(msg)
	case exportDoneMsg:
		return m.handleExportDone(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.ring.Current() == focus.Search {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refreshRing rebuilds the focus ring from what is on screen: the toolbar,
// the visible widgets, then the panel's close control.
func (m *Model) refreshRing() {
	ids := make([]focus.ID, 0, len(toolbarControls)+8)
	ids = append(ids, toolbarControls...)
	ids = append(ids, m.widgetFocusIDs()...)
	if m.coord.Panel().Visible() {
		ids = append(ids, focus.PanelClose)
	}
	m.ring.Reset(ids)
}

// widgetFocusIDs returns focus ids for the visible widgets in layout order.
// Tables contribute their rows; cards without rows contribute their drag
// handle instead.
func (m Model) widgetFocusIDs() []focus.ID {
	var ids []focus.ID
	for _, w := range m.grid.Visible() {
		if tw, ok := m.tables[w.ID]; ok {
			if rows := tw.FocusIDs(); len(rows) > 0 {
				ids = append(ids, rows...)
				continue
			}
		}
		ids = append(ids, focus.Card(w.ID))
	}
	return ids
}

// focusedWidget returns the widget owning the focused row or card handle.
func (m Model) focusedWidget() (string, bool) {
	if widgetID, _, ok := focus.ParseRow(m.ring.Current()); ok {
		return widgetID, true
	}
	return focus.ParseCard(m.ring.Current())
}

func (m *Model) ensureToastTick() tea.Cmd {
	if m.toastController.Ticking() {
		return nil
	}
	m.toastController.SetTicking(true)
	return scheduleToastTick()
}

func (m *Model) notify(level notify.Level, format string, args ...any) tea.Cmd {
	m.toastController.Push(notify.New(level, format, args...))
	return m.ensureToastTick()
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.scheduler.Cancel()
	return m, tea.Quit
}
