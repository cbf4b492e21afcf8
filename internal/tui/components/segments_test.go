package components

import (
	"testing"

	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentListModel_Navigation(t *testing.T) {
	m := NewSegmentList(themes.Default)
	m.SetCounts(metrics.Overview(standardTable(t)).Segments)

	seg, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, model.SegmentBelowStandard, seg)

	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{key: tea.KeyMsg{Type: tea.KeyDown}, want: 1},
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, want: 2},
		{key: tea.KeyMsg{Type: tea.KeyUp}, want: 1},
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, want: 4},
		{key: tea.KeyMsg{Type: tea.KeyDown}, want: 4},
		{key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, want: 0},
		{key: tea.KeyMsg{Type: tea.KeyUp}, want: 0},
	}
	for _, tt := range tests {
		m, _ = m.Update(tt.key)
		assert.Equal(t, tt.want, m.Cursor(), "after %s", tt.key)
	}
}

func TestSegmentListModel_IgnoresKeysWhenBlurred(t *testing.T) {
	m := NewSegmentList(themes.Default)
	m.SetCounts(metrics.Overview(standardTable(t)).Segments)
	m.SetFocused(false)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.Cursor())
}

func TestSegmentListModel_View(t *testing.T) {
	m := NewSegmentList(themes.Default)
	m.Resize(100)
	m.SetCounts(metrics.Overview(standardTable(t)).Segments)

	view := m.View()
	for _, seg := range model.SegmentOrder() {
		assert.Contains(t, view, seg)
	}
	assert.NotContains(t, view, model.SegmentMeetingExpectations)
	assert.Contains(t, view, "28.6%")
}

func TestSegmentListModel_Empty(t *testing.T) {
	m := NewSegmentList(themes.Default)
	m.SetCounts(nil)

	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), NoData)
}

func TestSegmentListModel_ShrinkKeepsCursorInRange(t *testing.T) {
	m := NewSegmentList(themes.Default)
	m.SetCounts(metrics.Overview(standardTable(t)).Segments)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})

	m.SetCounts([]metrics.SegmentCount{{Segment: model.SegmentUnderutilized, Count: 1}})
	seg, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, model.SegmentUnderutilized, seg)
}
