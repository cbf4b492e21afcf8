package model

import "strings"

// Field identifies one column of the category table independently of the
// header text used by a particular source file.
type Field string

// Known fields, in display order.
const (
	FieldName                 Field = "name"
	FieldStrategicSegment     Field = "strategic_segment"
	FieldDemandLevel          Field = "demand_level"
	FieldQualitySeverity      Field = "quality_severity"
	FieldMerchantImpact       Field = "merchant_impact"
	FieldBusinessPriority     Field = "business_priority"
	FieldPriorityLevel        Field = "priority_level"
	FieldActionTimeline       Field = "action_timeline"
	FieldCurrentAvgRating     Field = "current_avg_rating"
	FieldAppCount             Field = "app_count"
	FieldTotalReviews         Field = "total_reviews"
	FieldReviewsPerApp        Field = "reviews_per_app"
	FieldEstMerchantsAffected Field = "est_merchants_affected"
	FieldPredictedChurnPct    Field = "predicted_churn_pct"
	FieldQualityVsMedian      Field = "quality_vs_median"
	FieldPctAppsHighRated     Field = "pct_apps_high_rated"
	FieldSignificant          Field = "significant"
	FieldCILower              Field = "ci_lower"
	FieldCIUpper              Field = "ci_upper"
	FieldProblem              Field = "problem_text"
	FieldAction               Field = "action_text"
)

// FieldKind describes how a field's cells are parsed.
type FieldKind int

const (
	// KindText fields hold free-form or enum-like strings.
	KindText FieldKind = iota
	// KindNumber fields hold floating point values.
	KindNumber
)

// FieldSpec describes a field: its primary header, the alternative headers
// accepted on input, and whether the loader requires it.
type FieldSpec struct {
	Field    Field
	Header   string
	Aliases  []string
	Kind     FieldKind
	Required bool
}

var fieldSpecs = []FieldSpec{
	{Field: FieldName, Header: "Feature Category", Kind: KindText, Required: true},
	{Field: FieldStrategicSegment, Header: "Strategic Segment", Kind: KindText, Required: true},
	{Field: FieldDemandLevel, Header: "Demand Level", Kind: KindText, Required: true},
	{Field: FieldQualitySeverity, Header: "Quality Severity (0-100)", Kind: KindNumber, Required: true},
	{Field: FieldMerchantImpact, Header: "Merchant Impact (0-100)", Kind: KindNumber, Required: true},
	{Field: FieldBusinessPriority, Header: "Business Priority (0-100)", Kind: KindNumber, Required: true},
	{Field: FieldPriorityLevel, Header: "Priority Level (1-5)", Kind: KindNumber, Required: true},
	{Field: FieldActionTimeline, Header: "Action Timeline", Kind: KindText},
	{Field: FieldCurrentAvgRating, Header: "Current Avg Rating", Kind: KindNumber, Required: true},
	{Field: FieldAppCount, Header: "# of Apps", Aliases: []string{"app_count", "Apps"}, Kind: KindNumber},
	{Field: FieldTotalReviews, Header: "Total Reviews (Market Size)", Aliases: []string{"Total Reviews", "total_reviews"}, Kind: KindNumber},
	{Field: FieldReviewsPerApp, Header: "Reviews Per App", Kind: KindNumber},
	{Field: FieldEstMerchantsAffected, Header: "Est. Merchants Affected", Kind: KindNumber, Required: true},
	{Field: FieldPredictedChurnPct, Header: "Predicted Churn %", Kind: KindNumber, Required: true},
	{Field: FieldQualityVsMedian, Header: "Quality vs Median", Kind: KindNumber, Required: true},
	{Field: FieldPctAppsHighRated, Header: "% Apps with 4.5+ Stars", Kind: KindNumber},
	{Field: FieldSignificant, Header: "Statistically Significant?", Aliases: []string{"Significant"}, Kind: KindText},
	{Field: FieldCILower, Header: "CI Lower", Aliases: []string{"CI Lower Bound"}, Kind: KindNumber},
	{Field: FieldCIUpper, Header: "CI Upper", Aliases: []string{"CI Upper Bound"}, Kind: KindNumber},
	{Field: FieldProblem, Header: "What's the Problem?", Aliases: []string{"Problem"}, Kind: KindText},
	{Field: FieldAction, Header: "What Should Shopify Do?", Aliases: []string{"Action", "Recommended Action"}, Kind: KindText},
}

var specsByField = func() map[Field]FieldSpec {
	m := make(map[Field]FieldSpec, len(fieldSpecs))
	for _, spec := range fieldSpecs {
		m[spec.Field] = spec
	}
	return m
}()

// FieldSpecs returns every known field in display order.
func FieldSpecs() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs)
	return out
}

// LookupField returns the spec for f.
func LookupField(f Field) (FieldSpec, bool) {
	spec, ok := specsByField[f]
	return spec, ok
}

// Header returns the primary header text for the field, or the field name
// itself when the field is unknown.
func (f Field) Header() string {
	if spec, ok := specsByField[f]; ok {
		return spec.Header
	}
	return string(f)
}

// IsNumeric reports whether the field holds numbers.
func (f Field) IsNumeric() bool {
	spec, ok := specsByField[f]
	return ok && spec.Kind == KindNumber
}

// Matches reports whether header names this field. Snake-case field names
// are accepted in addition to the header and its aliases.
func (s FieldSpec) Matches(header string) bool {
	if strings.EqualFold(header, s.Header) || strings.EqualFold(header, string(s.Field)) {
		return true
	}
	for _, alias := range s.Aliases {
		if strings.EqualFold(header, alias) {
			return true
		}
	}
	return false
}

// ParseField resolves a user supplied field name, accepting either the
// snake-case name or any header alias.
func ParseField(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, spec := range fieldSpecs {
		if spec.Matches(name) {
			return spec.Field, true
		}
	}
	return "", false
}
