package features

import (
	"fmt"

	"github.com/nimeshabuddhika/credit-risk-api/pkg"
	"github.com/nimeshabuddhika/credit-risk-api/pkg/inference"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/configs"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/views"
)

// Transformer turns a validated request into the model's feature row.
type Transformer interface {
	Transform(req views.PredictionRequest) (inference.Vector, error)
}

type TransformerImpl struct {
	cfg *configs.InferenceConfig
}

func NewTransformer(cfg *configs.InferenceConfig) Transformer {
	return &TransformerImpl{cfg: cfg}
}

// Transform derives the ratio feature, casts categorical columns and keeps the
// selected columns in configured order. A selected column that the request cannot
// provide fails with pkg.ErrTransformation.
func (t *TransformerImpl) Transform(req views.PredictionRequest) (inference.Vector, error) {
	raw := req.Fields()
	ratio := t.cfg.RatioFeature
	num, err := numeric(raw, ratio.Numerator)
	if err != nil {
		return nil, err
	}
	den, err := numeric(raw, ratio.Denominator)
	if err != nil {
		return nil, err
	}
	r := ComputeRatio(num, den)
	raw[ratio.Name] = r

	out := make(inference.Vector, 0, len(t.cfg.SelectedFeatures))
	for _, name := range t.cfg.SelectedFeatures {
		v, ok := raw[name]
		if !ok {
			return nil, fmt.Errorf("%w: column %q not present", pkg.ErrTransformation, name)
		}
		val, err := t.cast(name, v)
		if err != nil {
			return nil, err
		}
		out = append(out, inference.Feature{Name: name, Value: val})
	}
	return out, nil
}

func (t *TransformerImpl) cast(name string, v any) (inference.Value, error) {
	if t.cfg.IsCategorical(name) {
		switch x := v.(type) {
		case nil:
			return inference.Missing(), nil
		case string:
			return inference.Category(x), nil
		case *string:
			if x == nil {
				return inference.Missing(), nil
			}
			return inference.Category(*x), nil
		}
		return inference.Value{}, fmt.Errorf("%w: %q is not a category", pkg.ErrTransformation, name)
	}
	f, ok, err := toFloat(v)
	if err != nil {
		return inference.Value{}, fmt.Errorf("%w: %q: %v", pkg.ErrTransformation, name, err)
	}
	if !ok {
		return inference.Missing(), nil
	}
	return inference.Number(f), nil
}

func numeric(raw map[string]any, name string) (*float64, error) {
	v, present := raw[name]
	if !present {
		return nil, fmt.Errorf("%w: ratio input %q not present", pkg.ErrTransformation, name)
	}
	f, ok, err := toFloat(v)
	if err != nil {
		return nil, fmt.Errorf("%w: ratio input %q: %v", pkg.ErrTransformation, name, err)
	}
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// toFloat unwraps the numeric shapes a request field can take. ok is false for nil.
func toFloat(v any) (f float64, ok bool, err error) {
	switch x := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return x, true, nil
	case int:
		return float64(x), true, nil
	case *float64:
		if x == nil {
			return 0, false, nil
		}
		return *x, true, nil
	case *int:
		if x == nil {
			return 0, false, nil
		}
		return float64(*x), true, nil
	}
	return 0, false, fmt.Errorf("unsupported type %T", v)
}
