package explain

import (
	"sort"

	"github.com/nimeshabuddhika/credit-risk-api/pkg/inference"
)

// TopReasonCodes picks the n contributions that best explain the decision. Above the
// threshold those are the largest (pushing toward default), otherwise the smallest.
// Entries are sorted ascending by value; ties keep their schema order. With fewer
// than n entries all of them are returned.
func TopReasonCodes(c inference.Contributions, prob, threshold float64, n int) []inference.Contribution {
	sorted := append([]inference.Contribution(nil), c.Values...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	if prob > threshold {
		return sorted[len(sorted)-n:]
	}
	return sorted[:n]
}

// ToMap flattens reason codes for the JSON response.
func ToMap(codes []inference.Contribution) map[string]float64 {
	out := make(map[string]float64, len(codes))
	for _, c := range codes {
		out[c.Feature] = c.Value
	}
	return out
}
