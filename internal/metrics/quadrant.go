package metrics

import (
	"github.com/Veraticus/app-strategy/internal/model"
)

// Quadrants partitions a table by two fields. "High" means the value is at
// or above the threshold.
type Quadrants struct {
	HighHigh   *model.Table
	HighLow    *model.Table
	LowLow     *model.Table
	LowHigh    *model.Table
	XField     model.Field
	YField     model.Field
	XThreshold float64
	YThreshold float64
}

// Total returns the number of rows across all four quadrants.
func (q Quadrants) Total() int {
	return q.HighHigh.Len() + q.HighLow.Len() + q.LowLow.Len() + q.LowHigh.Len()
}

// QuadrantSplit assigns every row of t to exactly one quadrant relative to
// the thresholds. Row order is preserved inside each quadrant.
func QuadrantSplit(t *model.Table, x, y model.Field, xThreshold, yThreshold float64) (Quadrants, error) {
	if err := requireNumeric(t, x); err != nil {
		return Quadrants{}, err
	}
	if err := requireNumeric(t, y); err != nil {
		return Quadrants{}, err
	}

	var hh, hl, ll, lh []int
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		xv, _ := r.Number(x)
		yv, _ := r.Number(y)
		highX := xv >= xThreshold
		highY := yv >= yThreshold

		switch {
		case highX && highY:
			hh = append(hh, i)
		case highX:
			hl = append(hl, i)
		case highY:
			lh = append(lh, i)
		default:
			ll = append(ll, i)
		}
	}

	return Quadrants{
		HighHigh:   t.Subset(hh),
		HighLow:    t.Subset(hl),
		LowLow:     t.Subset(ll),
		LowHigh:    t.Subset(lh),
		XField:     x,
		YField:     y,
		XThreshold: xThreshold,
		YThreshold: yThreshold,
	}, nil
}

// MeanThresholds returns the means of x and y, the usual quadrant
// thresholds. Both are NaN for an empty table.
func MeanThresholds(t *model.Table, x, y model.Field) (float64, float64, error) {
	xm, err := Aggregate(t, x, OpMean)
	if err != nil {
		return xm, xm, err
	}
	ym, err := Aggregate(t, y, OpMean)
	if err != nil {
		return xm, ym, err
	}
	return xm, ym, nil
}
