package metrics

import (
	"testing"

	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/stretchr/testify/require"
)

func allColumns() []model.Field {
	var fields []model.Field
	for _, spec := range model.FieldSpecs() {
		fields = append(fields, spec.Field)
	}
	return fields
}

func row(name, segment, demand string, severity, impact, gap, merchants float64) model.CategoryRecord {
	return model.CategoryRecord{
		Name:                 name,
		StrategicSegment:     segment,
		DemandLevel:          demand,
		QualitySeverity:      severity,
		MerchantImpact:       impact,
		BusinessPriority:     model.BusinessPriorityOf(severity, impact),
		QualityVsMedian:      gap,
		EstMerchantsAffected: merchants,
		CurrentAvgRating:     4.5 + gap,
		TotalReviews:         merchants * 3,
		PriorityLevel:        3,
	}
}

func fixtureRecords() []model.CategoryRecord {
	return []model.CategoryRecord{
		row("Reviews", model.SegmentBelowStandard, model.DemandVeryHigh, 80, 50, -0.4, 40000),
		row("Shipping", model.SegmentMeetingExpectations, model.DemandVeryHigh, 0, 70, 0.1, 90000),
		row("Upsell", model.SegmentHighDemandMinorGap, model.DemandHigh, 30, 20, -0.1, 12000),
		row("Loyalty", model.SegmentHighDemandGoodQual, model.DemandHigh, 0, 40, 0.2, 25000),
		row("Returns", model.SegmentLowDemandQualityGap, model.DemandLow, 45, 10, -0.3, 3000),
		row("Forms", model.SegmentUnderutilized, model.DemandLow, 10, 5, 0.0, 1000),
		row("Chat", "  below standard   performance", model.DemandVeryHigh, 60, 60, -0.2, 30000),
	}
}

func fixtureTable(t *testing.T) *model.Table {
	t.Helper()
	table, err := model.NewTable("fixture.csv", fixtureRecords(), allColumns(), nil)
	require.NoError(t, err)
	return table
}

func tableOf(t *testing.T, records []model.CategoryRecord, columns ...model.Field) *model.Table {
	t.Helper()
	if len(columns) == 0 {
		columns = allColumns()
	}
	table, err := model.NewTable("test", records, columns, nil)
	require.NoError(t, err)
	return table
}
