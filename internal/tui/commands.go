package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/export"
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/navigation"
	tea "github.com/charmbracelet/bubbletea"
)

const publishTimeout = 2 * time.Minute

var errNothingToExport = errors.New("nothing to export in this view")

// currentSlice captures what is on screen as an export slice.
func (m Model) currentSlice() (export.Slice, error) {
	if m.segmentsFocused() {
		return export.SegmentDistribution(metrics.Overview(m.table).Segments), nil
	}

	l, ok := m.Current()
	if !ok {
		return export.Slice{}, errNothingToExport
	}
	if l.Warning != nil {
		return export.Slice{}, fmt.Errorf("cannot export %q: %w", l.Title, l.Warning)
	}
	return export.FromListing(l), nil
}

// exportCSV writes the displayed table to the export directory.
func (m Model) exportCSV() tea.Cmd {
	slice, err := m.currentSlice()
	dir := m.config.ExportDir
	return func() tea.Msg {
		if err != nil {
			return errMsg{err: err}
		}
		path, err := export.SaveCSV(dir, slice)
		if err != nil {
			return errMsg{err: fmt.Errorf("CSV export failed: %w", err)}
		}
		return exportedMsg{kind: "CSV", path: path}
	}
}

// exportChart renders the displayed view as a PNG chart: the segment pie on
// the overview, otherwise a bar chart of the listing's first numeric column.
func (m Model) exportChart() tea.Cmd {
	dir := m.config.ExportDir

	var (
		name   string
		render func(io.Writer) error
	)

	if m.segmentsFocused() {
		counts := metrics.Overview(m.table).Segments
		colors := m.theme.SegmentHex()
		name = export.ChartFileName(export.SegmentDistributionKey)
		render = func(w io.Writer) error {
			return export.SegmentPiePNG(w, "Strategic Segment Distribution", counts, colors)
		}
	} else {
		l, ok := m.Current()
		if !ok {
			return errorCmd(errNothingToExport)
		}
		field, ok := export.ChartField(l)
		if !ok {
			return errorCmd(fmt.Errorf("%w: %s has no numeric column", export.ErrNothingToChart, l.Title))
		}
		color := string(m.theme.Primary)
		if state := m.nav.State(); state.View == navigation.ViewSegmentDetail {
			color = string(m.theme.SegmentColor(state.SelectedSegment))
		}
		name = export.ChartFileName(l.Key)
		render = func(w io.Writer) error {
			return export.BarChartPNG(w, l, field, color)
		}
	}

	return func() tea.Msg {
		path, err := export.SaveChart(dir, name, render)
		if err != nil {
			return errMsg{err: fmt.Errorf("chart export failed: %w", err)}
		}
		return exportedMsg{kind: "chart", path: path}
	}
}

// publish writes the displayed table to Google Sheets.
func (m Model) publish() tea.Cmd {
	if m.config.Publisher == nil {
		return errorCmd(common.NewUserError(
			"Google Sheets publishing is not configured",
			fmt.Errorf("%w: sheets", common.ErrMissingConfig)))
	}

	slice, err := m.currentSlice()
	if err != nil {
		return errorCmd(err)
	}

	publisher := m.config.Publisher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		url, err := publisher.Publish(ctx, slice)
		if err != nil {
			return errMsg{err: fmt.Errorf("publishing to Google Sheets failed: %w", err)}
		}
		return publishedMsg{url: url, rows: len(slice.Rows)}
	}
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return errMsg{err: err}
	}
}
