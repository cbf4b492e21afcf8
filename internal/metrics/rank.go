package metrics

import (
	"sort"

	"github.com/Veraticus/app-strategy/internal/model"
)

// TopN returns the n rows with the largest (descending) or smallest values
// of f. Ties keep source order. The result has min(n, t.Len()) rows.
func TopN(t *model.Table, f model.Field, n int, descending bool) (*model.Table, error) {
	sorted, err := SortBy(t, f, descending)
	if err != nil {
		return nil, err
	}

	n = max(0, min(n, sorted.Len()))
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return sorted.Subset(indices), nil
}

// SortBy returns all rows stably sorted by f.
func SortBy(t *model.Table, f model.Field, descending bool) (*model.Table, error) {
	if err := requireNumeric(t, f); err != nil {
		return nil, err
	}

	values := make([]float64, t.Len())
	indices := make([]int, t.Len())
	for i := range indices {
		indices[i] = i
		values[i], _ = t.At(i).Number(f)
	}

	sort.SliceStable(indices, func(a, b int) bool {
		va, vb := values[indices[a]], values[indices[b]]
		if descending {
			return va > vb
		}
		return va < vb
	})

	return t.Subset(indices), nil
}
