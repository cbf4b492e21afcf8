package model

import (
	"maps"
	"strconv"
)

// CategoryRecord is one row of the category table.
type CategoryRecord struct {
	Extra                map[string]string
	Name                 string
	StrategicSegment     string
	DemandLevel          string
	ActionTimeline       string
	Significant          string
	Problem              string
	Action               string
	QualitySeverity      float64
	MerchantImpact       float64
	BusinessPriority     float64
	PriorityLevel        float64
	CurrentAvgRating     float64
	AppCount             float64
	TotalReviews         float64
	ReviewsPerApp        float64
	EstMerchantsAffected float64
	PredictedChurnPct    float64
	QualityVsMedian      float64
	PctAppsHighRated     float64
	CILower              float64
	CIUpper              float64
}

// Number returns the numeric value of f. The second result is false for
// text fields and unknown fields.
func (r CategoryRecord) Number(f Field) (float64, bool) {
	switch f {
	case FieldQualitySeverity:
		return r.QualitySeverity, true
	case FieldMerchantImpact:
		return r.MerchantImpact, true
	case FieldBusinessPriority:
		return r.BusinessPriority, true
	case FieldPriorityLevel:
		return r.PriorityLevel, true
	case FieldCurrentAvgRating:
		return r.CurrentAvgRating, true
	case FieldAppCount:
		return r.AppCount, true
	case FieldTotalReviews:
		return r.TotalReviews, true
	case FieldReviewsPerApp:
		return r.ReviewsPerApp, true
	case FieldEstMerchantsAffected:
		return r.EstMerchantsAffected, true
	case FieldPredictedChurnPct:
		return r.PredictedChurnPct, true
	case FieldQualityVsMedian:
		return r.QualityVsMedian, true
	case FieldPctAppsHighRated:
		return r.PctAppsHighRated, true
	case FieldCILower:
		return r.CILower, true
	case FieldCIUpper:
		return r.CIUpper, true
	default:
		return 0, false
	}
}

// Text returns the string value of a text field.
func (r CategoryRecord) Text(f Field) (string, bool) {
	switch f {
	case FieldName:
		return r.Name, true
	case FieldStrategicSegment:
		return r.StrategicSegment, true
	case FieldDemandLevel:
		return r.DemandLevel, true
	case FieldActionTimeline:
		return r.ActionTimeline, true
	case FieldSignificant:
		return r.Significant, true
	case FieldProblem:
		return r.Problem, true
	case FieldAction:
		return r.Action, true
	default:
		return "", false
	}
}

// Value formats any field as a cell. Numbers use the shortest representation
// that parses back to the same float64.
func (r CategoryRecord) Value(f Field) string {
	if v, ok := r.Number(f); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if s, ok := r.Text(f); ok {
		return s
	}
	return r.Extra[string(f)]
}

// ExpectedBusinessPriority recomputes the priority from the two scores.
func (r CategoryRecord) ExpectedBusinessPriority() float64 {
	return BusinessPriorityOf(r.QualitySeverity, r.MerchantImpact)
}

// HasQualityIssue reports whether the row carries a non-zero severity.
func (r CategoryRecord) HasQualityIssue() bool {
	return r.QualitySeverity > 0
}

// IsSignificant reports whether the significance flag is set.
func (r CategoryRecord) IsSignificant() bool {
	switch r.Significant {
	case "Yes", "yes", "YES", "True", "true", "TRUE", "1", "Y", "y":
		return true
	default:
		return false
	}
}

func (r CategoryRecord) clone() CategoryRecord {
	r.Extra = maps.Clone(r.Extra)
	return r
}

// SetNumber assigns a numeric field. It reports false for text and unknown
// fields.
func (r *CategoryRecord) SetNumber(f Field, v float64) bool {
	switch f {
	case FieldQualitySeverity:
		r.QualitySeverity = v
	case FieldMerchantImpact:
		r.MerchantImpact = v
	case FieldBusinessPriority:
		r.BusinessPriority = v
	case FieldPriorityLevel:
		r.PriorityLevel = v
	case FieldCurrentAvgRating:
		r.CurrentAvgRating = v
	case FieldAppCount:
		r.AppCount = v
	case FieldTotalReviews:
		r.TotalReviews = v
	case FieldReviewsPerApp:
		r.ReviewsPerApp = v
	case FieldEstMerchantsAffected:
		r.EstMerchantsAffected = v
	case FieldPredictedChurnPct:
		r.PredictedChurnPct = v
	case FieldQualityVsMedian:
		r.QualityVsMedian = v
	case FieldPctAppsHighRated:
		r.PctAppsHighRated = v
	case FieldCILower:
		r.CILower = v
	case FieldCIUpper:
		r.CIUpper = v
	default:
		return false
	}
	return true
}

// SetText assigns a text field. It reports false for numeric and unknown
// fields.
func (r *CategoryRecord) SetText(f Field, s string) bool {
	switch f {
	case FieldName:
		r.Name = s
	case FieldStrategicSegment:
		r.StrategicSegment = s
	case FieldDemandLevel:
		r.DemandLevel = s
	case FieldActionTimeline:
		r.ActionTimeline = s
	case FieldSignificant:
		r.Significant = s
	case FieldProblem:
		r.Problem = s
	case FieldAction:
		r.Action = s
	default:
		return false
	}
	return true
}
