package components

import (
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NoData is shown in place of an empty selection.
const NoData = "No data"

// ListingModel shows one metrics listing as a scrollable table.
type ListingModel struct {
	theme   themes.Theme
	listing metrics.Listing
	table   table.Model
	width   int
	height  int
}

// NewListing creates an empty listing table.
func NewListing(theme themes.Theme) ListingModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return ListingModel{
		theme:  theme,
		table:  t,
		width:  80,
		height: 12,
	}
}

// SetListing replaces the displayed listing and moves the cursor to the
// first row.
func (m *ListingModel) SetListing(l metrics.Listing) {
	m.listing = l
	// Rows must be cleared first: the table renders rows against the
	// current columns.
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	rows := m.rows()
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.SetCursor(0)
	}
}

// Listing returns the displayed listing.
func (m ListingModel) Listing() metrics.Listing {
	return m.listing
}

// Selected returns the category name under the cursor.
func (m ListingModel) Selected() (string, bool) {
	if m.listing.Rows == nil || m.listing.Rows.Len() == 0 {
		return "", false
	}
	i := m.table.Cursor()
	if i < 0 || i >= m.listing.Rows.Len() {
		return "", false
	}
	return m.listing.Rows.At(i).Name, true
}

// Cursor returns the cursor row.
func (m ListingModel) Cursor() int {
	return m.table.Cursor()
}

// Focus gives the table keyboard focus.
func (m *ListingModel) Focus() {
	m.table.Focus()
}

// Blur removes keyboard focus from the table.
func (m *ListingModel) Blur() {
	m.table.Blur()
}

// Focused reports whether the table has focus.
func (m ListingModel) Focused() bool {
	return m.table.Focused()
}

// Resize sets the space available to the listing, title included.
func (m *ListingModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(3, height-3))
	m.table.SetWidth(max(20, width))
	if m.listing.Rows != nil {
		m.relayout()
	}
}

// relayout recomputes column widths, keeping the cursor.
func (m *ListingModel) relayout() {
	cursor := m.table.Cursor()
	m.SetListing(m.listing)
	if cursor > 0 && cursor < len(m.table.Rows()) {
		m.table.SetCursor(cursor)
	}
}

// Update handles messages.
func (m ListingModel) Update(msg tea.Msg) (ListingModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the listing.
func (m ListingModel) View() string {
	title := m.theme.Bold.Render(m.listing.Title)

	if m.listing.Warning != nil {
		warning := m.theme.StatusWarn.Render("Section unavailable: " + common.UserMessage(m.listing.Warning))
		return lipgloss.JoinVertical(lipgloss.Left, title, warning)
	}
	if m.listing.Rows == nil || m.listing.Rows.Len() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, RenderNoData(m.theme, m.width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.table.View())
}

// RenderNoData renders the empty-selection panel.
func RenderNoData(theme themes.Theme, width int) string {
	return theme.RoundedBox.
		Width(max(20, width-4)).
		Align(lipgloss.Center).
		Foreground(theme.Muted).
		Render(NoData)
}

func (m ListingModel) rows() []table.Row {
	if m.listing.Rows == nil {
		return nil
	}
	rows := make([]table.Row, 0, m.listing.Rows.Len())
	for i := 0; i < m.listing.Rows.Len(); i++ {
		r := m.listing.Rows.At(i)
		row := make(table.Row, len(m.listing.Columns))
		for j, f := range m.listing.Columns {
			row[j] = FormatCell(r, f)
		}
		rows = append(rows, row)
	}
	return rows
}

func (m ListingModel) columns() []table.Column {
	cols := make([]table.Column, len(m.listing.Columns))
	used := 0
	nameIdx := -1
	for i, f := range m.listing.Columns {
		title := ShortHeader(f)
		if f == model.FieldName {
			nameIdx = i
			cols[i] = table.Column{Title: title}
			continue
		}
		w := min(18, max(8, len(title)+1))
		cols[i] = table.Column{Title: title, Width: w}
		used += w + 2
	}
	if nameIdx >= 0 {
		cols[nameIdx].Width = max(16, min(32, m.width-used-4))
	}
	return cols
}

// ShortHeader returns a field's display header without its unit suffix.
func ShortHeader(f model.Field) string {
	h := f.Header()
	if i := strings.Index(h, " ("); i > 0 {
		return h[:i]
	}
	return h
}

// FormatCell formats a field of r for display. Numbers are rounded to two
// decimals.
func FormatCell(r model.CategoryRecord, f model.Field) string {
	if v, ok := r.Number(f); ok {
		return FormatNumber(v)
	}
	return r.Value(f)
}

// FormatNumber rounds v to two decimals and drops trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
