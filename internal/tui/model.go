package tui

import (
	"fmt"
	"time"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/navigation"
	"github.com/Veraticus/app-strategy/internal/tui/components"
	"github.com/Veraticus/app-strategy/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Tab is one of the overview tabs.
type Tab int

// Overview tabs.
const (
	TabStrategicOverview Tab = iota
	TabPriorityAnalysis
	TabPerformanceInsights
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabStrategicOverview:
		return "Strategic Overview"
	case TabPriorityAnalysis:
		return "Priority Analysis"
	case TabPerformanceInsights:
		return "Performance Insights"
	default:
		return fmt.Sprintf("Tab(%d)", int(t))
	}
}

// statusTimeout is how long a status message stays on screen.
const statusTimeout = 8 * time.Second

// Model holds the main TUI state.
type Model struct {
	theme      themes.Theme
	config     Config
	keymap     KeyMap
	help       help.Model
	table      *model.Table
	nav        *navigation.Machine
	segments   components.SegmentListModel
	listing    components.ListingModel
	detail     components.CategoryDetailModel
	panels     []metrics.Listing
	status     string
	statusKind statusKind
	statusSeq  int
	tab        Tab
	spotlight  metrics.Spotlight
	panel      int
	width      int
	height     int
	quitting   bool
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarn
	statusError
)

// New creates the dashboard model.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Table == nil {
		return Model{}, fmt.Errorf("%w: no category table", common.ErrDataUnavailable)
	}
	return newModel(cfg), nil
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	m := Model{
		config:   cfg,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		theme:    cfg.Theme,
		table:    cfg.Table,
		nav:      navigation.New(cfg.Table),
		segments: components.NewSegmentList(cfg.Theme),
		listing:  components.NewListing(cfg.Theme),
		detail:   components.NewCategoryDetail(cfg.Theme),
		width:    cfg.Width,
		height:   cfg.Height,
	}

	if mismatches := metrics.AuditBusinessPriority(cfg.Table, cfg.PriorityTolerance); len(mismatches) > 0 {
		m.status = fmt.Sprintf("%d categories have a business priority that differs from 0.4×severity + 0.6×impact by more than %g",
			len(mismatches), cfg.PriorityTolerance)
		m.statusKind = statusWarn
	}

	m.handleResize()
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.status != "" {
		cmds = append(cmds, clearStatusAfter(m.statusSeq))
	}
	return tea.Batch(cmds...)
}

// State returns the navigation state.
func (m Model) State() navigation.State {
	return m.nav.State()
}

// Tab returns the active overview tab.
func (m Model) Tab() Tab {
	return m.tab
}

// Spotlight returns the active hero metric drill-down.
func (m Model) Spotlight() metrics.Spotlight {
	return m.spotlight
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Current returns the listing the export keys act on, if any.
func (m Model) Current() (metrics.Listing, bool) {
	if m.segmentsFocused() || len(m.panels) == 0 {
		return metrics.Listing{}, false
	}
	return m.panels[m.panel], true
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeys(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case exportedMsg:
		return m, m.setStatus(statusInfo, fmt.Sprintf("Exported %s to %s", msg.kind, msg.path))

	case publishedMsg:
		return m, m.setStatus(statusInfo, fmt.Sprintf("Published %d rows to %s", msg.rows, msg.url))

	case errMsg:
		common.LogError(msg.err, "Dashboard command failed", nil)
		return m, m.setStatus(statusError, common.UserMessage(msg.err))

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKeys processes key presses.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.nav.State()

	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return m, nil

	case key.Matches(msg, m.keymap.ClearScreen):
		return m, tea.ClearScreen

	case key.Matches(msg, m.keymap.Back):
		switch {
		case state.View != navigation.ViewOverview:
			m.nav.Back()
		case m.spotlight != metrics.SpotlightNone:
			m.spotlight = metrics.SpotlightNone
		default:
			return m, nil
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.NextTab), key.Matches(msg, m.keymap.PrevTab):
		if state.View != navigation.ViewOverview {
			return m, nil
		}
		step := Tab(1)
		if key.Matches(msg, m.keymap.PrevTab) {
			step = tabCount - 1
		}
		m.tab = (m.tab + step) % tabCount
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.Urgent):
		return m.toggleSpotlight(metrics.SpotlightUrgent)
	case key.Matches(msg, m.keymap.Severity):
		return m.toggleSpotlight(metrics.SpotlightSeverity)
	case key.Matches(msg, m.keymap.Demand):
		return m.toggleSpotlight(metrics.SpotlightDemand)
	case key.Matches(msg, m.keymap.Affected):
		return m.toggleSpotlight(metrics.SpotlightAffected)

	case key.Matches(msg, m.keymap.Focus):
		if len(m.panels) > 1 {
			m.panel = (m.panel + 1) % len(m.panels)
			m.listing.SetListing(m.panels[m.panel])
		}
		return m, nil

	case key.Matches(msg, m.keymap.Select):
		return m.selectCurrent()

	case key.Matches(msg, m.keymap.Export):
		return m, m.exportCSV()

	case key.Matches(msg, m.keymap.Chart):
		return m, m.exportChart()

	case key.Matches(msg, m.keymap.Publish):
		return m, m.publish()
	}

	var cmd tea.Cmd
	switch {
	case m.segmentsFocused():
		m.segments, cmd = m.segments.Update(msg)
	case state.View == navigation.ViewCategoryDetail:
		m.detail, cmd = m.detail.Update(msg)
	default:
		m.listing, cmd = m.listing.Update(msg)
	}
	return m, cmd
}

// toggleSpotlight opens a hero metric drill-down on the first tab, or
// closes it when it is already open.
func (m Model) toggleSpotlight(s metrics.Spotlight) (tea.Model, tea.Cmd) {
	if m.nav.State().View != navigation.ViewOverview {
		return m, nil
	}
	if m.tab == TabStrategicOverview && m.spotlight == s {
		m.spotlight = metrics.SpotlightNone
	} else {
		m.spotlight = s
	}
	m.tab = TabStrategicOverview
	m.refresh()
	return m, nil
}

// selectCurrent opens the segment or category under the cursor.
func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	var err error
	switch {
	case m.segmentsFocused():
		segment, ok := m.segments.Selected()
		if !ok {
			return m, nil
		}
		err = m.nav.SelectSegment(segment)
	case m.nav.State().View == navigation.ViewCategoryDetail:
		return m, nil
	default:
		name, ok := m.listing.Selected()
		if !ok {
			return m, nil
		}
		err = m.nav.SelectCategory(name)
	}

	if err != nil {
		return m, m.setStatus(statusError, common.UserMessage(err))
	}
	m.refresh()
	return m, nil
}

// segmentsFocused reports whether keys go to the segment list.
func (m Model) segmentsFocused() bool {
	return m.nav.State().View == navigation.ViewOverview &&
		m.tab == TabStrategicOverview &&
		m.spotlight == metrics.SpotlightNone
}

// refresh recomputes the displayed listings for the current state.
func (m *Model) refresh() {
	state := m.nav.State()
	m.panels = nil

	switch state.View {
	case navigation.ViewOverview:
		switch m.tab {
		case TabStrategicOverview:
			m.segments.SetCounts(metrics.Overview(m.table).Segments)
			if l, ok := metrics.SpotlightListing(m.table, m.spotlight); ok {
				m.panels = []metrics.Listing{l}
			}
		case TabPriorityAnalysis:
			pv := metrics.PriorityAnalysis(m.table)
			m.panels = []metrics.Listing{pv.TopProblems, pv.TopSeverity}
		case TabPerformanceInsights:
			m.panels = []metrics.Listing{
				metrics.Heatmap(m.table, m.config.HeatmapRows),
				metrics.CompleteTable(m.table),
			}
		}

	case navigation.ViewSegmentDetail:
		sv := metrics.SegmentDetail(m.table, state.SelectedSegment)
		m.panels = []metrics.Listing{sv.Listing}
		if sv.Performance.Rows != nil {
			m.panels = append(m.panels, sv.Performance)
		}

	case navigation.ViewCategoryDetail:
		if r, err := metrics.CategoryDetail(m.table, state.SelectedCategory); err == nil {
			m.detail.SetRecord(r, m.table.Columns())
		}
		if l, err := metrics.CategoryListing(m.table, state.SelectedCategory); err == nil {
			m.panels = []metrics.Listing{l}
		}
	}

	m.panel = 0
	m.segments.SetFocused(m.segmentsFocused())
	if len(m.panels) > 0 {
		m.listing.SetListing(m.panels[0])
	}
}

// handleResize distributes the terminal size to the components.
func (m *Model) handleResize() {
	m.help.Width = m.width
	bodyHeight := max(6, m.height-m.chromeHeight())
	m.segments.Resize(m.width - 4)
	m.listing.Resize(m.width-4, bodyHeight)
	m.detail.Resize(m.width-4, bodyHeight)
}

// chromeHeight is the number of rows taken by header, tabs, hero cards,
// status line and help.
func (m Model) chromeHeight() int {
	h := 12
	if m.help.ShowAll {
		h += 4
	}
	return h
}

// setStatus shows a message in the status line and schedules its removal.
func (m *Model) setStatus(kind statusKind, text string) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusKind = kind
	return clearStatusAfter(m.statusSeq)
}

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
