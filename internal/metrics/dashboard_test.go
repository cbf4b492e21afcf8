package metrics

import (
	"testing"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	table := fixtureTable(t)

	got := Overview(table)

	want := OverviewSummary{
		Total:                   7,
		Actionable:              7,
		HighSeverity:            4,
		VeryHighDemand:          3,
		MerchantsAffectedByGaps: 85000,
		Segments: []SegmentCount{
			{Segment: model.SegmentBelowStandard, Count: 2},
			{Segment: model.SegmentLowDemandQualityGap, Count: 1},
			{Segment: model.SegmentHighDemandMinorGap, Count: 1},
			{Segment: model.SegmentUnderutilized, Count: 1},
			{Segment: model.SegmentHighDemandGoodQual, Count: 2},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Overview mismatch (-want +got):\n%s", diff)
	}
}

func TestOverview_ActionableCapped(t *testing.T) {
	var records []model.CategoryRecord
	for i := range 12 {
		records = append(records, model.CategoryRecord{Name: string(rune('a' + i)), BusinessPriority: float64(i)})
	}
	assert.Equal(t, ActionableLimit, Overview(tableOf(t, records)).Actionable)
}

func TestSpotlights(t *testing.T) {
	table := fixtureTable(t)

	urgent := UrgentCategories(table)
	require.NoError(t, urgent.Warning)
	assert.Equal(t, KeyUrgent, urgent.Key)
	assert.Equal(t, "Reviews", urgent.Rows.At(0).Name)
	assert.Equal(t, model.FieldName, urgent.Columns[0])

	severity := SeverityIssues(table)
	assert.Equal(t, []string{"Reviews", "Chat", "Returns", "Upsell"}, severity.Rows.Names())

	demand := VeryHighDemand(table)
	assert.Equal(t, []string{"Reviews", "Chat", "Shipping"}, demand.Rows.Names())
	assert.Equal(t, 3, demand.Count)
	assert.Equal(t, model.FieldTotalReviews, demand.MarketSizeField)
	assert.Equal(t, 480000.0, demand.MarketSize)
	assert.Equal(t, 160000.0, demand.ActiveMerchants)
	assert.InDelta(t, 13.0/3.0, demand.AvgRating, 1e-9)

	affected := MerchantsAffected(table)
	assert.Equal(t, []string{"Reviews", "Chat", "Upsell", "Returns"}, affected.Rows.Names())
	assert.Equal(t, 85000.0, affected.TotalAffected)
	assert.InDelta(t, -0.25, affected.AvgGap, 1e-9)
	assert.Equal(t, 4, affected.GapCategories)

	_, ok := SpotlightListing(table, SpotlightNone)
	assert.False(t, ok)
	l, ok := SpotlightListing(table, SpotlightSeverity)
	assert.True(t, ok)
	assert.Equal(t, KeySeverity, l.Key)
}

func TestVeryHighDemand_MarketSizeFallback(t *testing.T) {
	columns := []model.Field{
		model.FieldName, model.FieldDemandLevel, model.FieldBusinessPriority,
		model.FieldEstMerchantsAffected, model.FieldCurrentAvgRating,
	}
	table := tableOf(t, fixtureRecords(), columns...)

	demand := VeryHighDemand(table)
	assert.Equal(t, model.FieldEstMerchantsAffected, demand.MarketSizeField)
	assert.Equal(t, 160000.0, demand.MarketSize)
	assert.NotContains(t, demand.Columns, model.FieldTotalReviews)
	assert.NotContains(t, demand.Columns, model.FieldAppCount)
}

func TestPriorityAnalysis(t *testing.T) {
	table := fixtureTable(t)

	view := PriorityAnalysis(table)

	assert.Equal(t, 7, view.TopProblems.Rows.Len())
	assert.Equal(t, []string{"Reviews", "Chat", "Shipping"}, view.TopProblems.Rows.Names()[:3])
	assert.Equal(t, []string{"Reviews", "Chat", "Returns", "Upsell"}, view.TopSeverity.Rows.Names())
	assert.Len(t, view.Candidates, 7)
	assert.Equal(t, view.TopProblems.Rows.Names(), view.Candidates)
}

func TestPriorityAnalysis_ExcludesZeroPriority(t *testing.T) {
	table := tableOf(t, []model.CategoryRecord{
		{Name: "zero", BusinessPriority: 0, QualitySeverity: 30},
		{Name: "some", BusinessPriority: 5},
	})

	view := PriorityAnalysis(table)
	assert.Equal(t, []string{"some"}, view.TopProblems.Rows.Names())
	assert.Equal(t, []string{"zero"}, view.TopSeverity.Rows.Names())
	assert.Equal(t, []string{"some", "zero"}, view.Candidates)
}

func TestHeatmapAndCompleteTable(t *testing.T) {
	table := fixtureTable(t)

	heat := Heatmap(table, 3)
	assert.Equal(t, []string{"Reviews", "Chat", "Shipping"}, heat.Rows.Names())
	assert.Equal(t, "Top 3 Categories by Business Priority", heat.Title)

	complete := CompleteTable(table)
	assert.Equal(t, KeyCompleteTable, complete.Key)
	assert.Equal(t, CompleteColumns, complete.Columns)
	assert.Equal(t, 7, complete.Rows.Len())
	assert.Equal(t, "Reviews", complete.Rows.At(0).Name)
}

func TestCompleteTable_OnlyPresentColumns(t *testing.T) {
	table := tableOf(t, fixtureRecords(), model.FieldName, model.FieldBusinessPriority, model.FieldDemandLevel)

	complete := CompleteTable(table)
	assert.Equal(t, []model.Field{model.FieldName, model.FieldDemandLevel, model.FieldBusinessPriority}, complete.Columns)
}

func TestListing_MissingColumnWarns(t *testing.T) {
	table := tableOf(t, fixtureRecords(), model.FieldName, model.FieldDemandLevel)

	urgent := UrgentCategories(table)
	assert.ErrorIs(t, urgent.Warning, common.ErrFieldNotFound)
	assert.True(t, urgent.IsEmpty())

	complete := CompleteTable(table)
	assert.ErrorIs(t, complete.Warning, common.ErrFieldNotFound)
}

func TestSegmentDetail(t *testing.T) {
	table := fixtureTable(t)

	t.Run("segment with quality issues", func(t *testing.T) {
		view := SegmentDetail(table, model.SegmentBelowStandard)
		assert.Equal(t, "segment_below_standard_performance", view.Key)
		assert.Equal(t, []string{"Reviews", "Chat"}, view.Rows.Names())
		assert.Equal(t, 2, view.Count)
		assert.Equal(t, 70.0, view.AvgSeverity)
		assert.Equal(t, 55.0, view.AvgImpact)
		assert.Equal(t, 70000.0, view.TotalAffected)
		assert.True(t, view.HasQualityIssues)
		assert.True(t, view.Performance.IsEmpty())
	})

	t.Run("synonym folds into good quality", func(t *testing.T) {
		view := SegmentDetail(table, "meeting expectations")
		assert.Equal(t, model.SegmentHighDemandGoodQual, view.Segment)
		assert.False(t, view.HasQualityIssues)
		assert.Equal(t, "performance_high_demand_good_quality", view.Performance.Key)
		assert.Equal(t, []string{"Shipping", "Loyalty"}, view.Performance.Rows.Names())
	})

	t.Run("unknown segment is empty", func(t *testing.T) {
		view := SegmentDetail(table, "Nowhere")
		assert.Equal(t, 0, view.Count)
		assert.True(t, IsEmptyResult(view.AvgSeverity))
		assert.True(t, view.IsEmpty())
		assert.True(t, view.Performance.IsEmpty())
	})
}

func TestCategoryDetail(t *testing.T) {
	table := fixtureTable(t)

	r, err := CategoryDetail(table, "Chat")
	require.NoError(t, err)
	assert.Equal(t, 60.0, r.QualitySeverity)

	_, err = CategoryDetail(table, "Nope")
	assert.ErrorIs(t, err, common.ErrUnknownEntity)

	l, err := CategoryListing(table, "Chat")
	require.NoError(t, err)
	assert.Equal(t, "category_chat", l.Key)
	assert.Equal(t, []string{"Chat"}, l.Rows.Names())
	assert.Equal(t, table.Columns(), l.Columns)

	_, err = CategoryListing(table, "Nope")
	assert.ErrorIs(t, err, common.ErrUnknownEntity)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "high_demand_minor_gap", slug("High Demand, Minor Gap"))
	assert.Equal(t, "a_b", slug("  A -- b  "))
	assert.Empty(t, slug("!!"))
}
