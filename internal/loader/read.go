package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidateDelimiters are tried in order; the first wins ties.
var candidateDelimiters = []rune{',', ';', '\t'}

// ReadFile reads a delimited file. Files ending in .tsv are tab separated;
// anything else has its delimiter detected from the header line.
func ReadFile(path string) (model.RawTable, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the user's own configuration
	if err != nil {
		return model.RawTable{}, fmt.Errorf("%w: %w", common.ErrDataUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	var comma rune
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		comma = '\t'
	}

	raw, err := ReadDelimited(f, comma)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("%w: %s: %w", common.ErrDataUnavailable, path, err)
	}
	return raw, nil
}

// ReadDelimited parses delimited text. A zero comma means detect it. Short
// rows are allowed; the parser pads them.
func ReadDelimited(r io.Reader, comma rune) (model.RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if comma == 0 {
		comma = DetectDelimiter(firstLine(data))
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return model.RawTable{}, fmt.Errorf("failed to parse delimited input: %w", err)
	}
	if len(records) == 0 {
		return model.RawTable{}, nil
	}

	return model.RawTable{Headers: records[0], Rows: records[1:]}, nil
}

// DetectDelimiter picks the candidate delimiter that occurs most often
// outside quotes in line. Comma is the fallback.
func DetectDelimiter(line string) rune {
	counts := make(map[rune]int, len(candidateDelimiters))
	quoted := false
	for _, r := range line {
		if r == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[r]++
		}
	}

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

func firstLine(data []byte) string {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	return strings.TrimSuffix(string(line), "\r")
}
