package calculator

import "errors"

// ErrNotEnoughData is returned when fewer than two closes are available.
var ErrNotEnoughData = errors.New("not enough closes for change calculation")

// LastChange returns the most recent close and its percentage change from
// the close before it. At least two closes are required.
func LastChange(closes []float64) (last, changePct float64, err error) {
	if len(closes) < 2 {
		return 0, 0, ErrNotEnoughData
	}
	prev := closes[len(closes)-2]
	last = closes[len(closes)-1]
	if prev == 0 {
		return 0, 0, errors.New("previous close is zero")
	}
	changePct = (last - prev) / prev * 100
	return last, changePct, nil
}
