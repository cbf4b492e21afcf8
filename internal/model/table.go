package model

import (
	"fmt"
	"slices"
)

// Table is an immutable, ordered set of category records loaded from one
// source. Accessors hand out copies.
type Table struct {
	columns map[Field]bool
	index   map[string]int
	source  string
	records []CategoryRecord
	extra   []string
}

// NewTable builds a table. columns lists the fields present in the source;
// extra lists unrecognised headers carried through in CategoryRecord.Extra.
// Category names must be unique.
func NewTable(source string, records []CategoryRecord, columns []Field, extra []string) (*Table, error) {
	t := &Table{
		source:  source,
		records: make([]CategoryRecord, len(records)),
		columns: make(map[Field]bool, len(columns)),
		index:   make(map[string]int, len(records)),
		extra:   slices.Clone(extra),
	}

	for _, f := range columns {
		t.columns[f] = true
	}

	for i, r := range records {
		if r.Name == "" {
			return nil, fmt.Errorf("row %d: empty category name", i+1)
		}
		if prev, dup := t.index[r.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q in rows %d and %d", r.Name, prev+1, i+1)
		}
		t.index[r.Name] = i
		t.records[i] = r.clone()
	}

	return t, nil
}

// Source returns the id the table was loaded from.
func (t *Table) Source() string {
	return t.source
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// At returns a copy of row i.
func (t *Table) At(i int) CategoryRecord {
	return t.records[i].clone()
}

// Records returns a copy of all rows in order.
func (t *Table) Records() []CategoryRecord {
	out := make([]CategoryRecord, len(t.records))
	for i, r := range t.records {
		out[i] = r.clone()
	}
	return out
}

// Names returns the category names in row order.
func (t *Table) Names() []string {
	out := make([]string, len(t.records))
	for i, r := range t.records {
		out[i] = r.Name
	}
	return out
}

// Find looks up a category by name.
func (t *Table) Find(name string) (CategoryRecord, bool) {
	if t == nil {
		return CategoryRecord{}, false
	}
	i, ok := t.index[name]
	if !ok {
		return CategoryRecord{}, false
	}
	return t.records[i].clone(), true
}

// Has reports whether the source provided column f.
func (t *Table) Has(f Field) bool {
	return t.columns[f]
}

// Columns returns the known fields present in the source, in display order.
func (t *Table) Columns() []Field {
	var out []Field
	for _, spec := range fieldSpecs {
		if t.columns[spec.Field] {
			out = append(out, spec.Field)
		}
	}
	return out
}

// ExtraColumns returns unrecognised headers in source order.
func (t *Table) ExtraColumns() []string {
	return slices.Clone(t.extra)
}

// Subset returns a new table holding the rows at the given indices, in the
// order given. Indices must be distinct.
func (t *Table) Subset(indices []int) *Table {
	sub := &Table{
		source:  t.source,
		columns: t.columns,
		extra:   t.extra,
		records: make([]CategoryRecord, len(indices)),
		index:   make(map[string]int, len(indices)),
	}
	for i, idx := range indices {
		sub.records[i] = t.records[idx]
		sub.index[t.records[idx].Name] = i
	}
	return sub
}
