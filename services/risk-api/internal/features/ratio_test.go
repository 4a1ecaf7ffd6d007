package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestComputeRatio(t *testing.T) {
	cases := map[string]struct {
		a, b *float64
		want float64
	}{
		"both missing":        {nil, nil, RatioBothMissing},
		"numerator missing":   {nil, ptr(10), RatioNumeratorMissing},
		"denominator missing": {ptr(10), nil, RatioDenominatorMissing},
		"zero denominator":    {ptr(10), ptr(0), RatioDivideByZero},
		"rounded to cents":    {ptr(135801.6), ptr(123456), 1.1},
		"nan is missing":      {ptr(math.NaN()), ptr(2), RatioNumeratorMissing},
		"zero numerator":      {ptr(0), ptr(5), 0},
		"tie rounds down":     {ptr(90000), ptr(80000), 1.12},
		"small tie":           {ptr(1), ptr(8), 0.12},
		"tie rounds up":       {ptr(3), ptr(8), 0.38},
		"large tie":           {ptr(27), ptr(8), 3.38},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeRatio(tc.a, tc.b))
		})
	}
}

func TestComputeRatio_SentinelsAreDisjoint(t *testing.T) {
	sentinels := []float64{RatioNumeratorMissing, RatioDenominatorMissing, RatioBothMissing, RatioDivideByZero}
	seen := map[float64]bool{}
	for _, s := range sentinels {
		assert.Less(t, s, 0.0)
		assert.False(t, seen[s])
		seen[s] = true
	}
	assert.GreaterOrEqual(t, ComputeRatio(ptr(1e-9), ptr(1e9)), 0.0)
}
