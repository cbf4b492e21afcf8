package model

import "slices"

// RawTable is a header row plus string cells, the shape shared by delimited
// files and stored snapshots before the loader types them.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Raw renders t back into cells: known columns first under their primary
// headers, then the extra columns in source order.
func (t *Table) Raw() RawTable {
	columns := t.Columns()
	headers := make([]string, 0, len(columns)+len(t.extra))
	for _, f := range columns {
		headers = append(headers, f.Header())
	}
	headers = append(headers, t.extra...)

	rows := make([][]string, 0, len(t.records))
	for _, r := range t.records {
		cells := make([]string, 0, len(headers))
		for _, f := range columns {
			cells = append(cells, r.Value(f))
		}
		for _, h := range t.extra {
			cells = append(cells, r.Extra[h])
		}
		rows = append(rows, cells)
	}

	return RawTable{Headers: headers, Rows: rows}
}

// Clone returns a deep copy.
func (r RawTable) Clone() RawTable {
	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = slices.Clone(row)
	}
	return RawTable{Headers: slices.Clone(r.Headers), Rows: rows}
}
