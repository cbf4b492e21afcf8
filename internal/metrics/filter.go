package metrics

import (
	"fmt"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/model"
)

// Predicate selects rows.
type Predicate func(model.CategoryRecord) bool

// FilterBy returns the rows matching pred in source order.
func FilterBy(t *model.Table, pred Predicate) *model.Table {
	var indices []int
	for i := 0; i < t.Len(); i++ {
		if pred(t.At(i)) {
			indices = append(indices, i)
		}
	}
	return t.Subset(indices)
}

// AtLeast matches rows whose numeric field is >= k.
func AtLeast(f model.Field, k float64) Predicate {
	return func(r model.CategoryRecord) bool {
		v, ok := r.Number(f)
		return ok && v >= k
	}
}

// GreaterThan matches rows whose numeric field is > k.
func GreaterThan(f model.Field, k float64) Predicate {
	return func(r model.CategoryRecord) bool {
		v, ok := r.Number(f)
		return ok && v > k
	}
}

// Below matches rows whose numeric field is < k.
func Below(f model.Field, k float64) Predicate {
	return func(r model.CategoryRecord) bool {
		v, ok := r.Number(f)
		return ok && v < k
	}
}

// TextEquals matches rows whose text field equals v exactly.
func TextEquals(f model.Field, v string) Predicate {
	return func(r model.CategoryRecord) bool {
		s, ok := r.Text(f)
		return ok && s == v
	}
}

// InSegment matches rows whose canonical segment equals the canonical form
// of segment.
func InSegment(segment string) Predicate {
	want := CanonicalizeSegment(segment)
	return func(r model.CategoryRecord) bool {
		return CanonicalizeSegment(r.StrategicSegment) == want
	}
}

// And matches rows accepted by every predicate.
func And(preds ...Predicate) Predicate {
	return func(r model.CategoryRecord) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// requireNumeric fails with common.ErrFieldNotFound unless f is a numeric
// field present in t.
func requireNumeric(t *model.Table, f model.Field) error {
	if !f.IsNumeric() {
		return fmt.Errorf("%w: %q is not a numeric field", common.ErrFieldNotFound, f)
	}
	if !t.Has(f) {
		return fmt.Errorf("%w: %q", common.ErrFieldNotFound, f.Header())
	}
	return nil
}

// requireText fails with common.ErrFieldNotFound unless f is a text field
// present in t.
func requireText(t *model.Table, f model.Field) error {
	spec, ok := model.LookupField(f)
	if !ok || spec.Kind != model.KindText {
		return fmt.Errorf("%w: %q is not a text field", common.ErrFieldNotFound, f)
	}
	if !t.Has(f) {
		return fmt.Errorf("%w: %q", common.ErrFieldNotFound, f.Header())
	}
	return nil
}
