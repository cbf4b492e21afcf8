package categories

import "github.com/Veraticus/app-strategy/internal/model"

// Fixture represents a predefined set of category rows for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Description returns a detailed description of the fixture's purpose.
	Description() string

	// Records returns the rows included in this fixture.
	Records() []model.CategoryRecord
}

// fixture implements the Fixture interface.
type fixture struct {
	name        string
	description string
	rows        []spec
}

// spec is the compact description of one fixture row.
type spec struct {
	name      CategoryName
	segment   string
	demand    string
	severity  float64
	impact    float64
	gap       float64
	merchants float64
}

func (f *fixture) Name() string        { return f.name }
func (f *fixture) Description() string { return f.description }

func (f *fixture) Records() []model.CategoryRecord {
	out := make([]model.CategoryRecord, len(f.rows))
	for i, s := range f.rows {
		out[i] = s.record()
	}
	return out
}

func (s spec) record() model.CategoryRecord {
	return model.CategoryRecord{
		Name:                 string(s.name),
		StrategicSegment:     s.segment,
		DemandLevel:          s.demand,
		QualitySeverity:      s.severity,
		MerchantImpact:       s.impact,
		BusinessPriority:     model.BusinessPriorityOf(s.severity, s.impact),
		QualityVsMedian:      s.gap,
		EstMerchantsAffected: s.merchants,
		CurrentAvgRating:     4.5 + s.gap,
		TotalReviews:         s.merchants * 3,
		AppCount:             12,
		ReviewsPerApp:        s.merchants / 4,
		PriorityLevel:        priorityLevel(s.severity, s.impact),
		ActionTimeline:       "Next quarter",
		Significant:          "No",
		Problem:              "Merchants report **" + string(s.name) + "** apps break after updates?",
		Action:               "Publish a quality checklist for " + string(s.name) + " apps.",
	}
}

func priorityLevel(severity, impact float64) float64 {
	switch p := model.BusinessPriorityOf(severity, impact); {
	case p >= 60:
		return 1
	case p >= 40:
		return 2
	case p >= 20:
		return 3
	case p > 0:
		return 4
	default:
		return 5
	}
}

// Predefined fixtures for common test scenarios.
var (
	// FixtureMinimal provides three rows in three different segments.
	FixtureMinimal = &fixture{
		name:        "Minimal",
		description: "Minimal category set for simple unit tests",
		rows: []spec{
			{CategoryReviews, model.SegmentBelowStandard, model.DemandVeryHigh, 80, 50, -0.4, 40000},
			{CategoryShipping, model.SegmentHighDemandGoodQual, model.DemandVeryHigh, 0, 70, 0.1, 90000},
			{CategoryForms, model.SegmentUnderutilized, model.DemandLow, 10, 5, 0.0, 1000},
		},
	}

	// FixtureStandard covers every canonical segment, the folded
	// "Meeting Expectations" label and a label with irregular spacing.
	FixtureStandard = &fixture{
		name:        "Standard",
		description: "Every segment, including a synonym and a messy label",
		rows: []spec{
			{CategoryReviews, model.SegmentBelowStandard, model.DemandVeryHigh, 80, 50, -0.4, 40000},
			{CategoryShipping, model.SegmentMeetingExpectations, model.DemandVeryHigh, 0, 70, 0.1, 90000},
			{CategoryUpsell, model.SegmentHighDemandMinorGap, model.DemandHigh, 30, 20, -0.1, 12000},
			{CategoryLoyalty, model.SegmentHighDemandGoodQual, model.DemandHigh, 0, 40, 0.2, 25000},
			{CategoryReturns, model.SegmentLowDemandQualityGap, model.DemandLow, 45, 10, -0.3, 3000},
			{CategoryForms, model.SegmentUnderutilized, model.DemandLow, 10, 5, 0.0, 1000},
			{CategoryChat, "  below standard   performance", model.DemandVeryHigh, 60, 60, -0.2, 30000},
		},
	}

	// FixtureNoQualityIssues has only rows without quality severity.
	FixtureNoQualityIssues = &fixture{
		name:        "NoQualityIssues",
		description: "Healthy segments with zero severity everywhere",
		rows: []spec{
			{CategoryShipping, model.SegmentHighDemandGoodQual, model.DemandVeryHigh, 0, 70, 0.1, 90000},
			{CategoryLoyalty, model.SegmentHighDemandGoodQual, model.DemandHigh, 0, 40, 0.2, 25000},
		},
	}
)
