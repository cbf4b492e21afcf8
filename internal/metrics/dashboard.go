package metrics

import (
	"fmt"
	"slices"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/model"
)

// Thresholds and sizes used by the dashboard views.
const (
	ActionableLimit   = 10
	SeverityThreshold = 25.0
	PriorityLimit     = 10
	AffectedLimit     = 15
	HeatmapLimit      = 25
)

// Listing keys. The complete table key has a fixed export file name.
const (
	KeyUrgent         = "urgent"
	KeySeverity       = "severity"
	KeyDemand         = "very_high_demand"
	KeyAffected       = "merchants_affected"
	KeyTopProblems    = "top_problems"
	KeyTopSeverity    = "top_severity"
	KeyHeatmap        = "heatmap"
	KeyCompleteTable  = "complete"
	KeySegmentPrefix  = "segment_"
	KeyPerformance    = "performance_"
	KeyCategoryPrefix = "category_"
)

// Listing is a displayable slice: the columns shown, the rows in display
// order, and a warning when part of the view could not be computed.
type Listing struct {
	Warning error
	Rows    *model.Table
	Key     string
	Title   string
	Columns []model.Field
}

// IsEmpty reports whether the listing has no rows to show.
func (l Listing) IsEmpty() bool {
	return l.Rows.Len() == 0
}

func newListing(key, title string, rows *model.Table, columns ...model.Field) Listing {
	var present []model.Field
	for _, f := range columns {
		if rows.Has(f) && !slices.Contains(present, f) {
			present = append(present, f)
		}
	}
	return Listing{Key: key, Title: title, Rows: rows, Columns: present}
}

// failedListing keeps the view renderable when a dependent column is
// missing: no rows, and the error surfaced as a warning.
func failedListing(key, title string, t *model.Table, err error) Listing {
	return Listing{Key: key, Title: title, Rows: t.Subset(nil), Warning: err}
}

// SegmentCount is the number of categories in one canonical segment.
type SegmentCount struct {
	Segment string
	Count   int
}

// OverviewSummary holds the hero metrics of the overview.
type OverviewSummary struct {
	Segments                []SegmentCount
	MerchantsAffectedByGaps float64
	Total                   int
	Actionable              int
	HighSeverity            int
	VeryHighDemand          int
}

// Overview computes the hero metrics and the segment distribution.
func Overview(t *model.Table) OverviewSummary {
	summary := OverviewSummary{
		Total:                   t.Len(),
		Actionable:              min(ActionableLimit, t.Len()),
		HighSeverity:            FilterBy(t, AtLeast(model.FieldQualitySeverity, SeverityThreshold)).Len(),
		VeryHighDemand:          FilterBy(t, TextEquals(model.FieldDemandLevel, model.DemandVeryHigh)).Len(),
		MerchantsAffectedByGaps: sumOf(FilterBy(t, Below(model.FieldQualityVsMedian, 0)), model.FieldEstMerchantsAffected),
	}

	for _, g := range GroupBySegment(t) {
		summary.Segments = append(summary.Segments, SegmentCount{Segment: g.Segment, Count: g.Rows.Len()})
	}
	return summary
}

// Spotlight identifies one hero metric drill-down of the overview.
type Spotlight int

// Overview spotlights.
const (
	SpotlightNone Spotlight = iota
	SpotlightUrgent
	SpotlightSeverity
	SpotlightDemand
	SpotlightAffected
)

func (s Spotlight) String() string {
	switch s {
	case SpotlightUrgent:
		return "Actionable Priority Categories"
	case SpotlightSeverity:
		return "Quality Severity Issues"
	case SpotlightDemand:
		return "Very High Demand Categories"
	case SpotlightAffected:
		return "Merchants Affected by Quality Gaps"
	default:
		return "None"
	}
}

// UrgentCategories lists the top categories by business priority.
func UrgentCategories(t *model.Table) Listing {
	const title = "Categories Needing Immediate Action"
	top, err := TopN(t, model.FieldBusinessPriority, ActionableLimit, true)
	if err != nil {
		return failedListing(KeyUrgent, title, t, err)
	}
	return newListing(KeyUrgent, title, top,
		model.FieldName, model.FieldBusinessPriority, model.FieldPriorityLevel,
		model.FieldQualitySeverity, model.FieldMerchantImpact, model.FieldCurrentAvgRating,
		model.FieldEstMerchantsAffected, model.FieldDemandLevel, model.FieldPredictedChurnPct)
}

// SeverityIssues lists every category at or above the severity threshold,
// most severe first.
func SeverityIssues(t *model.Table) Listing {
	const title = "All Quality Severity Issues"
	sorted, err := SortBy(FilterBy(t, AtLeast(model.FieldQualitySeverity, SeverityThreshold)), model.FieldQualitySeverity, true)
	if err != nil {
		return failedListing(KeySeverity, title, t, err)
	}
	return newListing(KeySeverity, title, sorted,
		model.FieldName, model.FieldQualitySeverity, model.FieldMerchantImpact,
		model.FieldBusinessPriority, model.FieldCurrentAvgRating,
		model.FieldQualityVsMedian, model.FieldDemandLevel)
}

// DemandSpotlight describes the very-high-demand categories.
type DemandSpotlight struct {
	Listing
	MarketSizeField model.Field
	MarketSize      float64
	AvgRating       float64
	ActiveMerchants float64
	Count           int
}

// VeryHighDemand lists the very-high-demand categories by business
// priority. Market size is total reviews, or merchants affected when the
// review column is missing.
func VeryHighDemand(t *model.Table) DemandSpotlight {
	const title = "All Very High Demand Categories"
	vh := FilterBy(t, TextEquals(model.FieldDemandLevel, model.DemandVeryHigh))

	sorted, err := SortBy(vh, model.FieldBusinessPriority, true)
	if err != nil {
		return DemandSpotlight{Listing: failedListing(KeyDemand, title, t, err)}
	}

	sizeField := MarketSizeField(t)
	return DemandSpotlight{
		Listing: newListing(KeyDemand, title, sorted,
			model.FieldName, model.FieldStrategicSegment, model.FieldCurrentAvgRating,
			sizeField, model.FieldEstMerchantsAffected, model.FieldAppCount),
		MarketSizeField: sizeField,
		MarketSize:      sumOf(vh, sizeField),
		AvgRating:       meanOf(vh, model.FieldCurrentAvgRating),
		ActiveMerchants: sumOf(vh, model.FieldEstMerchantsAffected),
		Count:           vh.Len(),
	}
}

// MarketSizeField returns the column used for market size in t.
func MarketSizeField(t *model.Table) model.Field {
	if t.Has(model.FieldTotalReviews) {
		return model.FieldTotalReviews
	}
	return model.FieldEstMerchantsAffected
}

// AffectedSpotlight describes categories rated below the ecosystem median.
type AffectedSpotlight struct {
	Listing
	TotalAffected float64
	AvgGap        float64
	GapCategories int
}

// MerchantsAffected lists the categories with a negative quality gap that
// affect the most merchants.
func MerchantsAffected(t *model.Table) AffectedSpotlight {
	const title = "Top Categories by Merchants Affected"
	gaps := FilterBy(t, Below(model.FieldQualityVsMedian, 0))

	top, err := TopN(gaps, model.FieldEstMerchantsAffected, AffectedLimit, true)
	if err != nil {
		return AffectedSpotlight{Listing: failedListing(KeyAffected, title, t, err)}
	}

	return AffectedSpotlight{
		Listing: newListing(KeyAffected, title, top,
			model.FieldName, model.FieldEstMerchantsAffected, model.FieldBusinessPriority,
			model.FieldQualitySeverity, model.FieldMerchantImpact, model.FieldCurrentAvgRating,
			model.FieldQualityVsMedian, model.FieldDemandLevel),
		TotalAffected: sumOf(gaps, model.FieldEstMerchantsAffected),
		AvgGap:        meanOf(gaps, model.FieldQualityVsMedian),
		GapCategories: gaps.Len(),
	}
}

// SpotlightListing returns the listing behind a spotlight.
func SpotlightListing(t *model.Table, s Spotlight) (Listing, bool) {
	switch s {
	case SpotlightUrgent:
		return UrgentCategories(t), true
	case SpotlightSeverity:
		return SeverityIssues(t), true
	case SpotlightDemand:
		return VeryHighDemand(t).Listing, true
	case SpotlightAffected:
		return MerchantsAffected(t).Listing, true
	default:
		return Listing{}, false
	}
}

// PriorityView is the priority analysis tab.
type PriorityView struct {
	TopProblems Listing
	TopSeverity Listing
	Candidates  []string
}

// PriorityAnalysis ranks the top problems by business priority and the
// worst quality severity issues. Candidates is the union of both lists'
// names, problems first, without duplicates.
func PriorityAnalysis(t *model.Table) PriorityView {
	var view PriorityView

	problems, err := TopN(FilterBy(t, GreaterThan(model.FieldBusinessPriority, 0)), model.FieldBusinessPriority, PriorityLimit, true)
	if err != nil {
		view.TopProblems = failedListing(KeyTopProblems, "Top Problems by Business Priority", t, err)
	} else {
		view.TopProblems = newListing(KeyTopProblems, "Top Problems by Business Priority", problems,
			model.FieldName, model.FieldBusinessPriority, model.FieldActionTimeline)
	}

	severity, err := TopN(FilterBy(t, AtLeast(model.FieldQualitySeverity, SeverityThreshold)), model.FieldQualitySeverity, PriorityLimit, true)
	if err != nil {
		view.TopSeverity = failedListing(KeyTopSeverity, "Highest Quality Severity Issues", t, err)
	} else {
		view.TopSeverity = newListing(KeyTopSeverity, "Highest Quality Severity Issues", severity,
			model.FieldName, model.FieldQualitySeverity, model.FieldQualityVsMedian, model.FieldCurrentAvgRating)
	}

	for _, l := range []Listing{view.TopProblems, view.TopSeverity} {
		for _, name := range l.Rows.Names() {
			if !slices.Contains(view.Candidates, name) {
				view.Candidates = append(view.Candidates, name)
			}
		}
	}
	return view
}

// HeatmapFields are the score rows of the heatmap.
var HeatmapFields = []model.Field{
	model.FieldQualitySeverity,
	model.FieldMerchantImpact,
	model.FieldBusinessPriority,
}

// Heatmap returns the top n categories by business priority with their
// score breakdown.
func Heatmap(t *model.Table, n int) Listing {
	title := fmt.Sprintf("Top %d Categories by Business Priority", n)
	top, err := TopN(t, model.FieldBusinessPriority, n, true)
	if err != nil {
		return failedListing(KeyHeatmap, title, t, err)
	}
	return newListing(KeyHeatmap, title, top,
		model.FieldName, model.FieldQualitySeverity, model.FieldMerchantImpact,
		model.FieldBusinessPriority, model.FieldCurrentAvgRating, model.FieldDemandLevel)
}

// CompleteColumns are the columns of the complete analysis table, shown
// when present in the source.
var CompleteColumns = []model.Field{
	model.FieldName, model.FieldStrategicSegment, model.FieldDemandLevel,
	model.FieldQualitySeverity, model.FieldMerchantImpact, model.FieldBusinessPriority,
	model.FieldPriorityLevel, model.FieldActionTimeline, model.FieldCurrentAvgRating,
	model.FieldReviewsPerApp, model.FieldEstMerchantsAffected, model.FieldPredictedChurnPct,
	model.FieldQualityVsMedian, model.FieldPctAppsHighRated, model.FieldSignificant,
}

// CompleteTable returns every category sorted by business priority.
func CompleteTable(t *model.Table) Listing {
	const title = "Complete Category Analysis"
	sorted, err := SortBy(t, model.FieldBusinessPriority, true)
	if err != nil {
		return failedListing(KeyCompleteTable, title, t, err)
	}
	return newListing(KeyCompleteTable, title, sorted, CompleteColumns...)
}

// SegmentView is the drill-down of one segment.
type SegmentView struct {
	Listing
	Performance      Listing
	Segment          string
	AvgSeverity      float64
	AvgImpact        float64
	TotalAffected    float64
	Count            int
	HasQualityIssues bool
}

// SegmentDetail summarises the rows of a canonical segment. Segments with
// no quality issues also get a performance table sorted by merchants.
func SegmentDetail(t *model.Table, segment string) SegmentView {
	segment = CanonicalizeSegment(segment)
	rows := FilterBy(t, InSegment(segment))

	view := SegmentView{
		Listing: newListing(KeySegmentPrefix+slug(segment), "Categories in "+segment, rows,
			model.FieldName, model.FieldPriorityLevel, model.FieldActionTimeline,
			model.FieldQualitySeverity, model.FieldMerchantImpact, model.FieldBusinessPriority,
			model.FieldCurrentAvgRating, model.FieldQualityVsMedian,
			model.FieldEstMerchantsAffected, model.FieldPredictedChurnPct),
		Segment:          segment,
		Count:            rows.Len(),
		AvgSeverity:      meanOf(rows, model.FieldQualitySeverity),
		AvgImpact:        meanOf(rows, model.FieldMerchantImpact),
		TotalAffected:    sumOf(rows, model.FieldEstMerchantsAffected),
		HasQualityIssues: FilterBy(rows, model.CategoryRecord.HasQualityIssue).Len() > 0,
	}

	if !view.HasQualityIssues && rows.Len() > 0 {
		title := "Performance Metrics for " + segment
		perf, err := SortBy(rows, model.FieldEstMerchantsAffected, true)
		if err != nil {
			view.Performance = failedListing(KeyPerformance+slug(segment), title, t, err)
		} else {
			view.Performance = newListing(KeyPerformance+slug(segment), title, perf,
				model.FieldName, model.FieldCurrentAvgRating, model.FieldAppCount,
				model.FieldEstMerchantsAffected, model.FieldPctAppsHighRated)
		}
	}
	return view
}

// CategoryDetail returns the record for name.
func CategoryDetail(t *model.Table, name string) (model.CategoryRecord, error) {
	r, ok := t.Find(name)
	if !ok {
		return model.CategoryRecord{}, fmt.Errorf("%w: category %q", common.ErrUnknownEntity, name)
	}
	return r, nil
}

// CategoryListing returns a one-row listing of a category with every column
// present in the source, for export.
func CategoryListing(t *model.Table, name string) (Listing, error) {
	r, err := CategoryDetail(t, name)
	if err != nil {
		return Listing{}, err
	}
	for i := 0; i < t.Len(); i++ {
		if t.At(i).Name == r.Name {
			return newListing(KeyCategoryPrefix+slug(name), r.Name, t.Subset([]int{i}), t.Columns()...), nil
		}
	}
	return Listing{}, fmt.Errorf("%w: category %q", common.ErrUnknownEntity, name)
}
