package features

import "math"

// Sentinel values of ComputeRatio. All are negative so they never collide with the
// ratio of two positive amounts.
const (
	RatioNumeratorMissing   = -1.0
	RatioDenominatorMissing = -2.0
	RatioBothMissing        = -3.0
	RatioDivideByZero       = -4.0
)

// ComputeRatio returns a/b rounded half to even at two decimals, or a sentinel when
// either side is missing or b is zero. It never fails.
func ComputeRatio(a, b *float64) float64 {
	switch {
	case isMissing(a) && isMissing(b):
		return RatioBothMissing
	case isMissing(a):
		return RatioNumeratorMissing
	case isMissing(b):
		return RatioDenominatorMissing
	case *b == 0:
		return RatioDivideByZero
	}
	return math.RoundToEven(*a / *b * 100) / 100
}

func isMissing(v *float64) bool {
	return v == nil || math.IsNaN(*v)
}
