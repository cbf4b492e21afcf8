package categories

import (
	"testing"

	"github.com/Veraticus/app-strategy/internal/model"
)

// Builder provides a fluent interface for constructing test tables.
type Builder interface {
	// WithCategory adds a generated row.
	WithCategory(name CategoryName, segment, demand string, severity, impact float64) Builder

	// WithRecord adds a row as given, without recomputing anything.
	WithRecord(r model.CategoryRecord) Builder

	// WithFixture adds the rows of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// WithColumns restricts the fields the table reports as present. By
	// default every known field is present.
	WithColumns(fields ...model.Field) Builder

	// Records returns the rows added so far.
	Records() []model.CategoryRecord

	// Build creates the table, failing the test on error.
	Build() *model.Table
}

// CategoryName represents a strongly-typed category name.
type CategoryName string

// String returns the string representation of the category name.
func (c CategoryName) String() string {
	return string(c)
}

// Category names used across tests.
const (
	CategoryReviews  CategoryName = "Product Reviews"
	CategoryShipping CategoryName = "Shipping Rates"
	CategoryUpsell   CategoryName = "Upsell & Cross-sell"
	CategoryLoyalty  CategoryName = "Loyalty Programs"
	CategoryReturns  CategoryName = "Returns Management"
	CategoryForms    CategoryName = "Form Builder"
	CategoryChat     CategoryName = "Live Chat"
)

// AllColumns returns every known field.
func AllColumns() []model.Field {
	specs := model.FieldSpecs()
	fields := make([]model.Field, len(specs))
	for i, s := range specs {
		fields[i] = s.Field
	}
	return fields
}

type tableBuilder struct {
	t       *testing.T
	records []model.CategoryRecord
	columns []model.Field
}

// NewBuilder creates a new table builder.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &tableBuilder{t: t}
}

func (b *tableBuilder) WithCategory(name CategoryName, segment, demand string, severity, impact float64) Builder {
	b.records = append(b.records, spec{
		name:     name,
		segment:  segment,
		demand:   demand,
		severity: severity,
		impact:   impact,
	}.record())
	return b
}

func (b *tableBuilder) WithRecord(r model.CategoryRecord) Builder {
	b.records = append(b.records, r)
	return b
}

func (b *tableBuilder) WithFixture(fixture Fixture) Builder {
	b.records = append(b.records, fixture.Records()...)
	return b
}

func (b *tableBuilder) WithColumns(fields ...model.Field) Builder {
	b.columns = fields
	return b
}

func (b *tableBuilder) Records() []model.CategoryRecord {
	out := make([]model.CategoryRecord, len(b.records))
	copy(out, b.records)
	return out
}

func (b *tableBuilder) Build() *model.Table {
	b.t.Helper()
	columns := b.columns
	if columns == nil {
		columns = AllColumns()
	}
	table, err := model.NewTable("test", b.records, columns, nil)
	if err != nil {
		b.t.Fatalf("failed to build category table: %v", err)
	}
	return table
}
