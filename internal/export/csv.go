package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
)

// CompleteTableFileName is the download name of the complete analysis
// table.
const CompleteTableFileName = "shopify_quality_gap_analysis.csv"

// Slice is a displayed table ready for export: exactly the columns shown,
// in display order. Numeric marks the columns whose cells are numbers.
type Slice struct {
	Title    string
	FileName string
	Headers  []string
	Numeric  []bool
	Rows     [][]string
}

// IsNumeric reports whether column col holds numbers.
func (s Slice) IsNumeric(col int) bool {
	return col >= 0 && col < len(s.Numeric) && s.Numeric[col]
}

// FromListing captures a listing as a slice. Numbers use the shortest
// representation that parses back to the same value.
func FromListing(l metrics.Listing) Slice {
	s := Slice{
		Title:    l.Title,
		FileName: FileNameFor(l.Key),
		Headers:  make([]string, len(l.Columns)),
		Numeric:  make([]bool, len(l.Columns)),
		Rows:     make([][]string, 0, l.Rows.Len()),
	}
	for i, f := range l.Columns {
		s.Headers[i] = f.Header()
		s.Numeric[i] = f.IsNumeric()
	}
	for i := 0; i < l.Rows.Len(); i++ {
		r := l.Rows.At(i)
		cells := make([]string, len(l.Columns))
		for j, f := range l.Columns {
			cells[j] = r.Value(f)
		}
		s.Rows = append(s.Rows, cells)
	}
	return s
}

// SegmentDistributionKey names the segment distribution export.
const SegmentDistributionKey = "segment_distribution"

// SegmentDistribution captures the segment counts of the overview.
func SegmentDistribution(counts []metrics.SegmentCount) Slice {
	s := Slice{
		Title:    "Strategic Segment Distribution",
		FileName: FileNameFor(SegmentDistributionKey),
		Headers:  []string{model.FieldStrategicSegment.Header(), "Categories"},
		Numeric:  []bool{false, true},
		Rows:     make([][]string, 0, len(counts)),
	}
	for _, c := range counts {
		s.Rows = append(s.Rows, []string{c.Segment, strconv.Itoa(c.Count)})
	}
	return s
}

// FileNameFor returns the file name used for a listing key.
func FileNameFor(key string) string {
	if key == metrics.KeyCompleteTable {
		return CompleteTableFileName
	}
	if key == "" {
		key = "export"
	}
	return key + ".csv"
}

// WriteCSV writes the header row and every row of s.
func WriteCSV(w io.Writer, s Slice) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(s.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// SaveCSV writes s to dir under its file name and returns the path.
func SaveCSV(dir string, s Slice) (string, error) {
	path, err := createPath(dir, s.FileName)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path) //nolint:gosec // path is built from the export directory
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteCSV(f, s); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	slog.Info("Exported CSV", "path", path, "rows", len(s.Rows), "columns", len(s.Headers))
	return path, nil
}

func createPath(dir, name string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return filepath.Join(dir, filepath.Base(name)), nil
}
