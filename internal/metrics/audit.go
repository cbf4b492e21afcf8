package metrics

import (
	"math"

	"github.com/Veraticus/app-strategy/internal/model"
)

// DefaultPriorityTolerance is the largest accepted gap between a stored
// business priority and the weighted formula.
const DefaultPriorityTolerance = 0.5

// PriorityMismatch is a row whose stored business priority disagrees with
// 0.4*severity + 0.6*impact.
type PriorityMismatch struct {
	Name     string
	Stored   float64
	Expected float64
	Delta    float64
}

// AuditBusinessPriority lists rows whose stored priority differs from the
// formula by more than tolerance. Stored values are never changed.
func AuditBusinessPriority(t *model.Table, tolerance float64) []PriorityMismatch {
	if tolerance < 0 {
		tolerance = DefaultPriorityTolerance
	}

	var mismatches []PriorityMismatch
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		expected := r.ExpectedBusinessPriority()
		delta := r.BusinessPriority - expected
		if math.Abs(delta) > tolerance {
			mismatches = append(mismatches, PriorityMismatch{
				Name:     r.Name,
				Stored:   r.BusinessPriority,
				Expected: expected,
				Delta:    delta,
			})
		}
	}
	return mismatches
}
