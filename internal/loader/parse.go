package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/model"
	"golang.org/x/text/unicode/norm"
)

// NotSignificant is the significance value given to rows that do not carry
// one.
const NotSignificant = "No"

var errEmptyCell = errors.New("empty cell")

// column is the interpretation of one input column.
type column struct {
	header string
	field  model.Field
	kind   model.FieldKind
	extra  bool
	skip   bool
}

// Parse types raw cells into a table. Headers are matched to known fields
// after NFC normalization and trimming, case-insensitively. The first
// header matching a field wins; later ones are kept as extra columns.
func Parse(source string, raw model.RawTable) (*model.Table, error) {
	if len(raw.Headers) == 0 {
		return nil, fmt.Errorf("%w: %s: no header row", common.ErrDataUnavailable, source)
	}

	columns, present, extras := mapHeaders(raw.Headers)

	var missing []string
	for _, spec := range model.FieldSpecs() {
		if spec.Required && !present[spec.Field] {
			missing = append(missing, spec.Header)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s: missing required columns: %s",
			common.ErrDataUnavailable, source, strings.Join(missing, ", "))
	}

	records := make([]model.CategoryRecord, 0, len(raw.Rows))
	for i, cells := range raw.Rows {
		if blankRow(cells) {
			continue
		}
		// Line numbers count the header as line 1.
		r, err := parseRow(columns, cells, i+2)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrDataUnavailable, source, err)
		}
		records = append(records, r)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: no data rows", common.ErrDataUnavailable, source)
	}

	fields := make([]model.Field, 0, len(present))
	for f := range present {
		fields = append(fields, f)
	}

	t, err := model.NewTable(source, records, fields, extras)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrDataUnavailable, source, err)
	}
	return t, nil
}

// MissingOptional lists the optional fields t does not carry.
func MissingOptional(t *model.Table) []model.Field {
	var out []model.Field
	for _, spec := range model.FieldSpecs() {
		if !spec.Required && !t.Has(spec.Field) {
			out = append(out, spec.Field)
		}
	}
	return out
}

func mapHeaders(headers []string) ([]column, map[model.Field]bool, []string) {
	specs := model.FieldSpecs()
	columns := make([]column, len(headers))
	present := make(map[model.Field]bool)
	seenExtra := make(map[string]bool)
	var extras []string

	for i, h := range headers {
		clean := cleanHeader(h)
		columns[i].header = clean
		if clean == "" {
			columns[i].skip = true
			continue
		}

		matched := false
		for _, spec := range specs {
			if spec.Matches(clean) && !present[spec.Field] {
				present[spec.Field] = true
				columns[i].field = spec.Field
				columns[i].kind = spec.Kind
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		if seenExtra[clean] {
			columns[i].skip = true
			continue
		}
		seenExtra[clean] = true
		columns[i].extra = true
		extras = append(extras, clean)
	}

	return columns, present, extras
}

func parseRow(columns []column, cells []string, line int) (model.CategoryRecord, error) {
	r := model.CategoryRecord{Significant: NotSignificant}

	for i, col := range columns {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}

		switch {
		case col.skip:
		case col.extra:
			if r.Extra == nil {
				r.Extra = make(map[string]string)
			}
			r.Extra[col.header] = cell
		case col.kind == model.KindNumber:
			v, err := parseNumber(cell)
			if err != nil {
				spec, _ := model.LookupField(col.field)
				if spec.Required {
					return r, fmt.Errorf("line %d: column %q: %w", line, col.header, err)
				}
				if !errors.Is(err, errEmptyCell) {
					slog.Warn("Ignoring malformed optional value",
						"line", line, "column", col.header, "value", cell)
				}
				continue
			}
			r.SetNumber(col.field, v)
		default:
			text := strings.TrimSpace(norm.NFC.String(cell))
			if col.field == model.FieldSignificant && text == "" {
				continue
			}
			r.SetText(col.field, text)
		}
	}

	if r.Name == "" {
		return r, fmt.Errorf("line %d: empty category name", line)
	}
	return r, nil
}

// parseNumber accepts plain decimals with an optional trailing percent sign.
func parseNumber(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, errEmptyCell
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed number %q", cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("malformed number %q", cell)
	}
	return v, nil
}

func cleanHeader(h string) string {
	return strings.Join(strings.Fields(norm.NFC.String(h)), " ")
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
