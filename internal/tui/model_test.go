package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/export"
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/navigation"
	"github.com/Veraticus/app-strategy/internal/sheets"
	"github.com/Veraticus/app-strategy/internal/testutil/categories"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends keys in order and returns the resulting model and the command
// of the last key.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok, "Update returned %T", next)
	}
	return m, cmd
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	table := categories.NewBuilder(t).WithFixture(categories.FixtureStandard).Build()
	opts = append([]Option{WithTable(table), WithExportDir(t.TempDir())}, opts...)
	m, err := New(opts...)
	require.NoError(t, err)
	return m
}

func TestNew_RequiresTable(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, common.ErrDataUnavailable)
}

func TestModel_InitialState(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, navigation.Initial(), m.State())
	assert.Equal(t, TabStrategicOverview, m.Tab())
	assert.Equal(t, metrics.SpotlightNone, m.Spotlight())
	assert.Empty(t, m.Status())
	_, ok := m.Current()
	assert.False(t, ok)

	view := m.View()
	assert.Contains(t, view, "Strategic Overview")
	assert.Contains(t, view, "Strategic Segment Distribution")
	assert.Contains(t, view, model.SegmentBelowStandard)
}

func TestModel_SelectSegmentAndBack(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "enter")
	state := m.State()
	assert.Equal(t, navigation.ViewSegmentDetail, state.View)
	assert.Equal(t, model.SegmentBelowStandard, state.SelectedSegment)

	l, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, []string{"Product Reviews", "Live Chat"}, l.Rows.Names())
	assert.Contains(t, m.View(), "Segment: "+model.SegmentBelowStandard)

	m, _ = press(t, m, "esc")
	assert.Equal(t, navigation.Initial(), m.State())
}

func TestModel_SegmentCursor(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "down", "down", "enter")
	assert.Equal(t, model.SegmentHighDemandMinorGap, m.State().SelectedSegment)
}

func TestModel_HealthySegmentShowsPerformance(t *testing.T) {
	m := newTestModel(t)

	// Last segment: High Demand, Good Quality has no quality issues.
	m, _ = press(t, m, "G", "enter")
	require.Equal(t, model.SegmentHighDemandGoodQual, m.State().SelectedSegment)

	l, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, []string{"Shipping Rates", "Loyalty Programs"}, l.Rows.Names())

	m, _ = press(t, m, "f")
	l, ok = m.Current()
	require.True(t, ok)
	assert.Equal(t, metrics.KeyPerformance+"high_demand_good_quality", l.Key)
	assert.Contains(t, m.View(), "No quality issues in this segment.")
}

func TestModel_SpotlightToCategory(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "1")
	assert.Equal(t, metrics.SpotlightUrgent, m.Spotlight())
	l, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, metrics.KeyUrgent, l.Key)

	m, _ = press(t, m, "down", "enter")
	state := m.State()
	assert.Equal(t, navigation.ViewCategoryDetail, state.View)
	assert.Equal(t, "Live Chat", state.SelectedCategory)
	assert.Empty(t, state.SelectedSegment)

	// Back returns to the overview; the spotlight is dashboard state and
	// stays open until dismissed.
	m, _ = press(t, m, "backspace")
	assert.Equal(t, navigation.Initial(), m.State())
	assert.Equal(t, metrics.SpotlightUrgent, m.Spotlight())

	m, _ = press(t, m, "esc")
	assert.Equal(t, metrics.SpotlightNone, m.Spotlight())
}

func TestModel_SpotlightToggle(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "2", "2")
	assert.Equal(t, metrics.SpotlightNone, m.Spotlight())

	m, _ = press(t, m, "tab", "3")
	assert.Equal(t, TabStrategicOverview, m.Tab())
	assert.Equal(t, metrics.SpotlightDemand, m.Spotlight())
	assert.Contains(t, m.View(), "market size (Total Reviews)")

	m, _ = press(t, m, "4")
	assert.Equal(t, metrics.SpotlightAffected, m.Spotlight())
}

func TestModel_Tabs(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		key  string
		want Tab
	}{
		{key: "tab", want: TabPriorityAnalysis},
		{key: "tab", want: TabPerformanceInsights},
		{key: "tab", want: TabStrategicOverview},
		{key: "shift+tab", want: TabPerformanceInsights},
		{key: "left", want: TabPriorityAnalysis},
		{key: "l", want: TabPerformanceInsights},
	}
	for _, tt := range tests {
		m, _ = press(t, m, tt.key)
		assert.Equal(t, tt.want, m.Tab(), "after %s", tt.key)
	}
}

func TestModel_PriorityTabPanels(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "tab")
	l, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, metrics.KeyTopProblems, l.Key)

	m, _ = press(t, m, "f")
	l, ok = m.Current()
	require.True(t, ok)
	assert.Equal(t, metrics.KeyTopSeverity, l.Key)

	m, _ = press(t, m, "f")
	l, _ = m.Current()
	assert.Equal(t, metrics.KeyTopProblems, l.Key)
}

func TestModel_PerformanceTab(t *testing.T) {
	m := newTestModel(t, WithHeatmapRows(3))

	m, _ = press(t, m, "shift+tab")
	l, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, metrics.KeyHeatmap, l.Key)
	assert.Equal(t, 3, l.Rows.Len())
	assert.Contains(t, m.View(), "Severity vs Impact")

	m, _ = press(t, m, "f")
	l, _ = m.Current()
	assert.Equal(t, metrics.KeyCompleteTable, l.Key)
	assert.Equal(t, 7, l.Rows.Len())
}

func TestModel_TabsIgnoredInDetail(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "enter", "tab", "1")
	assert.Equal(t, navigation.ViewSegmentDetail, m.State().View)
	assert.Equal(t, TabStrategicOverview, m.Tab())
	assert.Equal(t, metrics.SpotlightNone, m.Spotlight())
}

func TestModel_CategoryFromSegmentDetail(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "enter", "enter")
	state := m.State()
	assert.Equal(t, navigation.ViewCategoryDetail, state.View)
	assert.Equal(t, "Product Reviews", state.SelectedCategory)
	assert.Empty(t, state.SelectedSegment)
	assert.Contains(t, m.View(), "Reviews")

	// Enter in the detail view is a no-op.
	m, _ = press(t, m, "enter")
	assert.Equal(t, state, m.State())
}

func TestModel_EmptySpotlightShowsNoData(t *testing.T) {
	table := categories.NewBuilder(t).WithFixture(categories.FixtureNoQualityIssues).Build()
	m, err := New(WithTable(table))
	require.NoError(t, err)

	m, _ = press(t, m, "2")
	l, ok := m.Current()
	require.True(t, ok)
	assert.True(t, l.IsEmpty())
	assert.Contains(t, m.View(), "No data")

	// Selecting from an empty table does nothing.
	m, _ = press(t, m, "enter")
	assert.Equal(t, navigation.Initial(), m.State())
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestModel_ExportCSV(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, WithExportDir(dir))

	m, cmd := press(t, m, "3", "e")
	msg := runCmd(t, cmd)
	exported, ok := msg.(exportedMsg)
	require.True(t, ok, "got %T: %v", msg, msg)
	assert.Equal(t, filepath.Join(dir, "very_high_demand.csv"), exported.path)

	data, err := os.ReadFile(exported.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Product Reviews")
	assert.NotContains(t, string(data), "Form Builder")

	next, _ := m.Update(msg)
	m = next.(Model)
	assert.Contains(t, m.Status(), "Exported CSV")
}

func TestModel_ExportSegmentDistribution(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, WithExportDir(dir))

	_, cmd := press(t, m, "e")
	exported, ok := runCmd(t, cmd).(exportedMsg)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "segment_distribution.csv"), exported.path)

	data, err := os.ReadFile(exported.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Strategic Segment,Categories")
	assert.Contains(t, string(data), model.SegmentBelowStandard+",2")
}

func TestModel_ExportCompleteTableFileName(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, WithExportDir(dir))

	_, cmd := press(t, m, "shift+tab", "f", "e")
	exported, ok := runCmd(t, cmd).(exportedMsg)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, export.CompleteTableFileName), exported.path)
}

func TestModel_ExportChart(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, WithExportDir(dir))

	_, cmd := press(t, m, "c")
	exported, ok := runCmd(t, cmd).(exportedMsg)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "segment_distribution.png"), exported.path)

	_, cmd = press(t, m, "1", "c")
	exported, ok = runCmd(t, cmd).(exportedMsg)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "urgent.png"), exported.path)

	info, err := os.Stat(exported.path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestModel_ExportChart_NothingToChart(t *testing.T) {
	table := categories.NewBuilder(t).WithFixture(categories.FixtureNoQualityIssues).Build()
	m, err := New(WithTable(table), WithExportDir(t.TempDir()))
	require.NoError(t, err)

	// Empty severity spotlight: nothing to draw.
	_, cmd := press(t, m, "2", "c")
	msg, ok := runCmd(t, cmd).(errMsg)
	require.True(t, ok)
	assert.ErrorIs(t, msg.err, export.ErrNothingToChart)
}

func TestModel_Publish(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		m := newTestModel(t)
		_, cmd := press(t, m, "p")
		msg, ok := runCmd(t, cmd).(errMsg)
		require.True(t, ok)
		assert.ErrorIs(t, msg.err, common.ErrMissingConfig)

		next, _ := m.Update(msg)
		assert.Equal(t, "Google Sheets publishing is not configured", next.(Model).Status())
	})

	t.Run("publishes displayed slice", func(t *testing.T) {
		pub := sheets.NewMockPublisher()
		m := newTestModel(t, WithPublisher(pub))

		_, cmd := press(t, m, "tab", "p")
		msg, ok := runCmd(t, cmd).(publishedMsg)
		require.True(t, ok)
		assert.Equal(t, sheets.TabURL(sheets.MockSpreadsheetID, 0), msg.url)

		next, _ := m.Update(msg)
		assert.Equal(t, "Published "+strconv.Itoa(msg.rows)+" rows to "+msg.url, next.(Model).Status())

		calls := pub.PublishCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, "Top Problems by Business Priority", calls[0].Title)
		assert.Equal(t, msg.rows, len(calls[0].Rows))
	})

	t.Run("publisher error", func(t *testing.T) {
		pub := sheets.NewMockPublisher()
		pub.PublishFunc = func(context.Context, export.Slice) (string, error) {
			return "", errors.New("quota exceeded")
		}
		m := newTestModel(t, WithPublisher(pub))

		_, cmd := press(t, m, "p")
		msg, ok := runCmd(t, cmd).(errMsg)
		require.True(t, ok)

		next, _ := m.Update(msg)
		assert.Contains(t, next.(Model).Status(), "quota exceeded")
	})
}

func TestModel_StatusClears(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(errMsg{err: errors.New("first")})
	m = next.(Model)
	next, _ = m.Update(errMsg{err: errors.New("second")})
	m = next.(Model)

	// A stale timer leaves the newer message alone.
	next, _ = m.Update(clearStatusMsg{seq: m.statusSeq - 1})
	m = next.(Model)
	assert.Equal(t, "second", m.Status())

	next, _ = m.Update(clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, next.(Model).Status())
}

func TestModel_PriorityAuditWarning(t *testing.T) {
	fixture := categories.FixtureMinimal.Records()
	fixture[0].BusinessPriority += 5
	b := categories.NewBuilder(t)
	for _, r := range fixture {
		b = b.WithRecord(r)
	}

	m, err := New(WithTable(b.Build()))
	require.NoError(t, err)
	assert.Contains(t, m.Status(), "1 categories have a business priority")
	assert.Contains(t, m.View(), "1 categories have a business priority")
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t)
			m, cmd := press(t, m, k)
			_, ok := runCmd(t, cmd).(tea.QuitMsg)
			assert.True(t, ok)
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_WindowResize(t *testing.T) {
	m := newTestModel(t)

	for _, size := range []tea.WindowSizeMsg{{Width: 60, Height: 20}, {Width: 200, Height: 60}} {
		next, _ := m.Update(size)
		m = next.(Model)
		assert.NotEmpty(t, m.View())
	}

	m, _ = press(t, m, "?")
	assert.Contains(t, m.View(), "publish to Sheets")
}

func TestModel_WithSize(t *testing.T) {
	m := newTestModel(t, WithSize(80, 24))

	assert.Equal(t, 80, m.width)
	assert.Equal(t, 24, m.height)
	assert.Equal(t, 80, m.help.Width)
	assert.NotEmpty(t, m.View())
}

func TestModel_RejectedSelectionShowsStatus(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "1")
	name, ok := m.listing.Selected()
	require.True(t, ok)
	require.Equal(t, "Product Reviews", name)

	// The catalogue no longer holds the highlighted row.
	m.nav.Reset(categories.NewBuilder(t).WithFixture(categories.FixtureNoQualityIssues).Build())
	before := m.State()

	m, cmd := press(t, m, "enter")
	assert.NotNil(t, cmd)
	assert.Equal(t, before, m.State())
	assert.Equal(t, metrics.SpotlightUrgent, m.Spotlight())
	assert.Equal(t, statusError, m.statusKind)
	assert.Contains(t, m.Status(), "Not in the loaded table")
	assert.Contains(t, m.Status(), "Product Reviews")
	assert.Contains(t, m.View(), "Not in the loaded table")
}

func TestModel_RejectedSegmentShowsStatus(t *testing.T) {
	m := newTestModel(t)
	segment, ok := m.segments.Selected()
	require.True(t, ok)

	healthy := categories.NewBuilder(t).WithFixture(categories.FixtureNoQualityIssues).Build()
	require.False(t, metrics.HasSegment(healthy, segment))
	m.nav.Reset(healthy)

	m, _ = press(t, m, "enter")
	assert.Equal(t, navigation.Initial(), m.State())
	assert.Contains(t, m.Status(), "Not in the loaded table")
}
