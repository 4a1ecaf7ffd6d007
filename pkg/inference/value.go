package inference

import (
	"encoding/json"
	"math"
)

// Kind tells how a feature value is routed through a tree split.
type Kind uint8

const (
	KindMissing Kind = iota
	KindNumber
	KindCategory
)

// Value is a single model input cell: a number, a category label, or missing.
type Value struct {
	Kind     Kind
	Number   float64
	Category string
}

// Number returns a numeric value. NaN is treated as missing.
func Number(v float64) Value {
	if math.IsNaN(v) {
		return Missing()
	}
	return Value{Kind: KindNumber, Number: v}
}

// OptionalNumber maps a nil pointer to a missing value.
func OptionalNumber(v *float64) Value {
	if v == nil {
		return Missing()
	}
	return Number(*v)
}

func Category(label string) Value {
	return Value{Kind: KindCategory, Category: label}
}

func Missing() Value {
	return Value{Kind: KindMissing}
}

func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// MarshalJSON renders numbers as JSON numbers, categories as strings and missing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Number)
	case KindCategory:
		return json.Marshal(v.Category)
	default:
		return []byte("null"), nil
	}
}

// Feature is a named cell of a Vector.
type Feature struct {
	Name  string
	Value Value
}

// Vector is an ordered feature row. Order matters: it must match the model schema.
type Vector []Feature

func (v Vector) Names() []string {
	names := make([]string, len(v))
	for i, f := range v {
		names[i] = f.Name
	}
	return names
}

func (v Vector) Get(name string) (Value, bool) {
	for _, f := range v {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Map flattens the vector for JSON responses.
func (v Vector) Map() map[string]Value {
	out := make(map[string]Value, len(v))
	for _, f := range v {
		out[f.Name] = f.Value
	}
	return out
}

// Contribution is the signed attribution of one feature to the raw model output.
type Contribution struct {
	Feature string
	Value   float64
}

// Contributions holds one entry per model feature, in schema order.
// BaseValue plus the sum of all entries equals the raw model margin.
type Contributions struct {
	BaseValue float64
	Values    []Contribution
}

func (c Contributions) Len() int { return len(c.Values) }

func (c Contributions) Sum() float64 {
	var total float64
	for _, v := range c.Values {
		total += v.Value
	}
	return total
}

func (c Contributions) Map() map[string]float64 {
	out := make(map[string]float64, len(c.Values))
	for _, v := range c.Values {
		out[v.Feature] = v.Value
	}
	return out
}
