package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SegmentListModel shows the segment distribution as a selectable list of
// bars.
type SegmentListModel struct {
	theme   themes.Theme
	counts  []metrics.SegmentCount
	total   int
	cursor  int
	width   int
	focused bool
}

// NewSegmentList creates a segment list.
func NewSegmentList(theme themes.Theme) SegmentListModel {
	return SegmentListModel{theme: theme, width: 60, focused: true}
}

// SetCounts replaces the segment counts. The cursor is kept when it still
// points at a segment.
func (m *SegmentListModel) SetCounts(counts []metrics.SegmentCount) {
	m.counts = counts
	m.total = 0
	for _, c := range counts {
		m.total += c.Count
	}
	if m.cursor >= len(counts) {
		m.cursor = max(0, len(counts)-1)
	}
}

// Selected returns the segment under the cursor.
func (m SegmentListModel) Selected() (string, bool) {
	if len(m.counts) == 0 {
		return "", false
	}
	return m.counts[m.cursor].Segment, true
}

// Cursor returns the cursor position.
func (m SegmentListModel) Cursor() int {
	return m.cursor
}

// SetFocused toggles keyboard focus.
func (m *SegmentListModel) SetFocused(focused bool) {
	m.focused = focused
}

// Resize sets the render width.
func (m *SegmentListModel) Resize(width int) {
	m.width = width
}

// Update handles messages.
func (m SegmentListModel) Update(msg tea.Msg) (SegmentListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || len(m.counts) == 0 {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.counts)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.counts) - 1
	}
	return m, nil
}

// View renders the distribution.
func (m SegmentListModel) View() string {
	title := m.theme.Bold.Render("Strategic Segment Distribution")
	if len(m.counts) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, RenderNoData(m.theme, m.width))
	}

	labelWidth := 0
	for _, c := range m.counts {
		labelWidth = max(labelWidth, lipgloss.Width(c.Segment))
	}
	barWidth := max(10, min(40, m.width-labelWidth-18))

	lines := []string{title}
	for i, c := range m.counts {
		color := m.theme.SegmentColor(c.Segment)
		bar := progress.New(
			progress.WithSolidFill(string(color)),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		)

		share := 0.0
		if m.total > 0 {
			share = float64(c.Count) / float64(m.total)
		}

		marker := "  "
		label := lipgloss.NewStyle().Foreground(color).Width(labelWidth).Render(c.Segment)
		if i == m.cursor && m.focused {
			marker = "▸ "
			label = m.theme.Selected.Width(labelWidth).Render(c.Segment)
		}

		lines = append(lines, fmt.Sprintf("%s%s %s %3d (%4.1f%%)",
			marker, label, bar.ViewAs(share), c.Count, share*100))
	}
	return strings.Join(lines, "\n")
}
