package model

import "maps"

// Canonical strategic segments, from most negative to most positive.
const (
	SegmentBelowStandard       = "Below Standard Performance"
	SegmentLowDemandQualityGap = "Low Demand, Quality Gap"
	SegmentHighDemandMinorGap  = "High Demand, Minor Gap"
	SegmentUnderutilized       = "Underutilized Quality"
	SegmentHighDemandGoodQual  = "High Demand, Good Quality"

	// SegmentMeetingExpectations is a raw label folded into SegmentHighDemandGoodQual.
	SegmentMeetingExpectations = "Meeting Expectations"
)

// Demand levels seen in the source data.
const (
	DemandVeryHigh = "Very High"
	DemandHigh     = "High"
	DemandMedium   = "Medium"
	DemandLow      = "Low"
)

var segmentOrder = []string{
	SegmentBelowStandard,
	SegmentLowDemandQualityGap,
	SegmentHighDemandMinorGap,
	SegmentUnderutilized,
	SegmentHighDemandGoodQual,
}

var segmentSynonyms = map[string]string{
	SegmentMeetingExpectations: SegmentHighDemandGoodQual,
}

// SegmentOrder returns the canonical segments in display order.
func SegmentOrder() []string {
	out := make([]string, len(segmentOrder))
	copy(out, segmentOrder)
	return out
}

// SegmentSynonym returns the canonical label that label folds into.
func SegmentSynonym(label string) (string, bool) {
	canonical, ok := segmentSynonyms[label]
	return canonical, ok
}

// SegmentSynonyms returns a copy of the raw-label to canonical-label map.
func SegmentSynonyms() map[string]string {
	return maps.Clone(segmentSynonyms)
}

// SegmentRank orders segments for display. Unknown labels rank after all
// canonical segments.
func SegmentRank(label string) int {
	for i, s := range segmentOrder {
		if s == label {
			return i
		}
	}
	return len(segmentOrder)
}
