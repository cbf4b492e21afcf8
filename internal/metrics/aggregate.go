package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/app-strategy/internal/model"
)

// Op is an aggregate operation.
type Op int

// Supported aggregate operations.
const (
	OpCount Op = iota
	OpSum
	OpMean
)

func (o Op) String() string {
	switch o {
	case OpCount:
		return "count"
	case OpSum:
		return "sum"
	case OpMean:
		return "mean"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// ParseOp parses "count", "sum" or "mean".
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "count":
		return OpCount, nil
	case "sum":
		return OpSum, nil
	case "mean", "avg", "average":
		return OpMean, nil
	default:
		return OpCount, fmt.Errorf("unknown aggregate %q", s)
	}
}

// IsEmptyResult reports whether v is the sentinel returned for a mean over
// no rows.
func IsEmptyResult(v float64) bool {
	return math.IsNaN(v)
}

// Aggregate applies op to f over every row. Count ignores f. The mean of an
// empty table is NaN; the sum is 0.
func Aggregate(t *model.Table, f model.Field, op Op) (float64, error) {
	if op == OpCount {
		return float64(t.Len()), nil
	}
	if err := requireNumeric(t, f); err != nil {
		return math.NaN(), err
	}

	values := make([]float64, t.Len())
	for i := range values {
		values[i], _ = t.At(i).Number(f)
	}
	return reduce(values, op), nil
}

// Group is one group of a grouped aggregate.
type Group struct {
	Key   string
	Count int
	Value float64
}

// GroupedAggregate applies op to f per distinct value of groupBy, in order of
// first appearance. Segment keys are canonicalized before grouping.
func GroupedAggregate(t *model.Table, groupBy, f model.Field, op Op) ([]Group, error) {
	if err := requireText(t, groupBy); err != nil {
		return nil, err
	}
	if op != OpCount {
		if err := requireNumeric(t, f); err != nil {
			return nil, err
		}
	}

	var keys []string
	values := make(map[string][]float64)
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		key, _ := r.Text(groupBy)
		if groupBy == model.FieldStrategicSegment {
			key = CanonicalizeSegment(key)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
			values[key] = nil
		}
		v, _ := r.Number(f)
		values[key] = append(values[key], v)
	}

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, Group{
			Key:   key,
			Count: len(values[key]),
			Value: reduce(values[key], op),
		})
	}
	return groups, nil
}

func reduce(values []float64, op Op) float64 {
	switch op {
	case OpCount:
		return float64(len(values))
	case OpSum:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum
	case OpMean:
		if len(values) == 0 {
			return math.NaN()
		}
		return reduce(values, OpSum) / float64(len(values))
	default:
		return math.NaN()
	}
}

// sumOf and meanOf are used by the dashboard views, where the fields are
// required columns and cannot be missing.
func sumOf(t *model.Table, f model.Field) float64 {
	v, err := Aggregate(t, f, OpSum)
	if err != nil {
		return 0
	}
	return v
}

func meanOf(t *model.Table, f model.Field) float64 {
	v, _ := Aggregate(t, f, OpMean)
	return v
}
