package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart dimensions in pixels.
const (
	ChartWidth  = 1024
	ChartHeight = 512
	labelRunes  = 16
)

// ErrNothingToChart is returned when a chart would have no visible values.
var ErrNothingToChart = errors.New("nothing to chart")

// SegmentPiePNG renders the segment distribution as a pie chart. colors maps
// a segment to a hex colour; segments without one use the chart defaults.
func SegmentPiePNG(w io.Writer, title string, counts []metrics.SegmentCount, colors map[string]string) error {
	values := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		if c.Count == 0 {
			continue
		}
		v := chart.Value{
			Label: fmt.Sprintf("%s (%d)", c.Segment, c.Count),
			Value: float64(c.Count),
		}
		if hex, ok := colors[c.Segment]; ok {
			v.Style = chart.Style{FillColor: colorFromHex(hex), StrokeColor: drawing.ColorWhite}
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: no segments", ErrNothingToChart)
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  ChartWidth,
		Height: ChartHeight,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

// BarChartPNG renders field f of every listed row as a bar, in listing
// order.
func BarChartPNG(w io.Writer, l metrics.Listing, f model.Field, color string) error {
	if !f.IsNumeric() {
		return fmt.Errorf("%w: %q is not numeric", ErrNothingToChart, f)
	}

	bars := make([]chart.Value, 0, l.Rows.Len())
	nonZero := false
	for i := 0; i < l.Rows.Len(); i++ {
		r := l.Rows.At(i)
		v, _ := r.Number(f)
		if v != 0 {
			nonZero = true
		}
		bar := chart.Value{Label: truncate(r.Name, labelRunes), Value: v}
		if color != "" {
			bar.Style = chart.Style{FillColor: colorFromHex(color), StrokeColor: colorFromHex(color)}
		}
		bars = append(bars, bar)
	}
	if !nonZero {
		return fmt.Errorf("%w: %s has no values", ErrNothingToChart, l.Title)
	}

	bc := chart.BarChart{
		Title:      fmt.Sprintf("%s: %s", l.Title, f.Header()),
		Width:      ChartWidth,
		Height:     ChartHeight,
		BarWidth:   40,
		BarSpacing: 12,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Bars: bars,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}
	return nil
}

// SaveChart renders into dir/name and returns the path. A failed render
// leaves no file behind.
func SaveChart(dir, name string, render func(io.Writer) error) (string, error) {
	path, err := createPath(dir, name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path) //nolint:gosec // path is built from the export directory
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	slog.Info("Exported chart", "path", path)
	return path, nil
}

// ChartField picks the column a listing is charted by: its first numeric
// column.
func ChartField(l metrics.Listing) (model.Field, bool) {
	for _, f := range l.Columns {
		if f.IsNumeric() {
			return f, true
		}
	}
	return "", false
}

// ChartFileName returns the PNG file name for a listing key.
func ChartFileName(key string) string {
	if key == "" {
		key = "chart"
	}
	return key + ".png"
}

func colorFromHex(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
