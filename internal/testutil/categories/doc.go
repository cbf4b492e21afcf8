// Package categories provides test infrastructure for building category
// tables. It offers a fluent API over model.CategoryRecord and a set of
// fixtures that cover every strategic segment.
//
// # Basic Usage
//
//	func TestMyView(t *testing.T) {
//		table := categories.NewBuilder(t).
//			WithFixture(categories.FixtureStandard).
//			Build()
//
//		// Use table with the metrics, navigation or tui packages...
//	}
//
// # Custom Rows
//
//	table := categories.NewBuilder(t).
//		WithCategory("Quizzes", model.SegmentUnderutilized, model.DemandLow, 0, 5).
//		WithColumns(model.FieldName, model.FieldStrategicSegment).
//		Build()
//
// Builders compute the business priority from severity and impact, so
// generated rows are always consistent with the priority formula unless a
// record is added with WithRecord.
package categories
