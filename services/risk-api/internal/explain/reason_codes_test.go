package explain

import (
	"testing"

	"github.com/nimeshabuddhika/credit-risk-api/pkg/inference"
	"github.com/stretchr/testify/assert"
)

func contributions(values map[string]float64, order ...string) inference.Contributions {
	c := inference.Contributions{}
	for _, name := range order {
		c.Values = append(c.Values, inference.Contribution{Feature: name, Value: values[name]})
	}
	return c
}

func TestTopReasonCodes_Direction(t *testing.T) {
	c := contributions(map[string]float64{
		"a": 0.5, "b": -0.2, "c": 0.1, "d": -0.7, "e": 0.3,
	}, "a", "b", "c", "d", "e")

	high := TopReasonCodes(c, 0.8, 0.12, 3)
	assert.Equal(t, map[string]float64{"c": 0.1, "e": 0.3, "a": 0.5}, ToMap(high))
	assert.Equal(t, "a", high[2].Feature, "ascending order")

	low := TopReasonCodes(c, 0.05, 0.12, 3)
	assert.Equal(t, map[string]float64{"d": -0.7, "b": -0.2, "c": 0.1}, ToMap(low))
	assert.Equal(t, "d", low[0].Feature)
}

func TestTopReasonCodes_AtThresholdIsLowRisk(t *testing.T) {
	c := contributions(map[string]float64{"a": 1, "b": -1}, "a", "b")
	got := TopReasonCodes(c, 0.12, 0.12, 1)
	assert.Equal(t, "b", got[0].Feature)
}

func TestTopReasonCodes_Sizes(t *testing.T) {
	c := contributions(map[string]float64{"a": 1, "b": 2}, "a", "b")
	assert.Len(t, TopReasonCodes(c, 0.9, 0.12, 3), 2, "fewer entries than n")
	assert.Empty(t, TopReasonCodes(inference.Contributions{}, 0.9, 0.12, 3))
	assert.Empty(t, TopReasonCodes(c, 0.9, 0.12, 0))
}

func TestTopReasonCodes_StableTies(t *testing.T) {
	c := contributions(map[string]float64{"a": 0, "b": 0, "c": 0, "d": 0}, "a", "b", "c", "d")
	low := TopReasonCodes(c, 0, 0.12, 3)
	assert.Equal(t, []string{"a", "b", "c"}, names(low))
	high := TopReasonCodes(c, 1, 0.12, 3)
	assert.Equal(t, []string{"b", "c", "d"}, names(high))
}

func TestTopReasonCodes_DoesNotReorderInput(t *testing.T) {
	c := contributions(map[string]float64{"a": 3, "b": 1, "c": 2}, "a", "b", "c")
	TopReasonCodes(c, 1, 0.12, 3)
	assert.Equal(t, []string{"a", "b", "c"}, names(c.Values))
}

func names(cs []inference.Contribution) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Feature
	}
	return out
}
