package inference

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	AlgorithmTreePathDependent = "tree_path_dependent"
	ModelOutputRaw             = "raw"
)

// ExplainerSpec is the on-disk layout of an explainer artifact. It carries its own
// copy of the ensemble it explains.
type ExplainerSpec struct {
	Algorithm   string       `json:"algorithm"`
	ModelOutput string       `json:"model_output"`
	Model       EnsembleSpec `json:"model"`
}

// TreeExplainer computes exact SHAP values of a tree ensemble's raw output using the
// path-dependent TreeSHAP algorithm (Lundberg et al., 2018). Safe for concurrent use.
type TreeExplainer struct {
	ensemble  *Ensemble
	baseValue float64
}

// DecodeExplainer reads and validates an ExplainerSpec.
func DecodeExplainer(r io.Reader) (*TreeExplainer, error) {
	var spec ExplainerSpec
	if err := json.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: decode explainer: %v", ErrArtifact, err)
	}
	if spec.Algorithm != AlgorithmTreePathDependent {
		return nil, fmt.Errorf("%w: unsupported explainer algorithm %q", ErrArtifact, spec.Algorithm)
	}
	if spec.ModelOutput != ModelOutputRaw {
		return nil, fmt.Errorf("%w: unsupported explainer output %q", ErrArtifact, spec.ModelOutput)
	}
	e, err := NewEnsemble(spec.Model)
	if err != nil {
		return nil, err
	}
	return NewTreeExplainer(e), nil
}

func NewTreeExplainer(e *Ensemble) *TreeExplainer {
	return &TreeExplainer{ensemble: e, baseValue: e.ExpectedMargin()}
}

func (t *TreeExplainer) FeatureNames() []string { return t.ensemble.FeatureNames() }

// BaseValue is the expected raw output; contributions are measured against it.
func (t *TreeExplainer) BaseValue() float64 { return t.baseValue }

// ShapValues attributes the raw output for v to each feature, in schema order.
func (t *TreeExplainer) ShapValues(v Vector) (Contributions, error) {
	x, err := t.ensemble.bind(v)
	if err != nil {
		return Contributions{}, err
	}
	phi := make([]float64, len(x))
	for i := range t.ensemble.trees {
		t.ensemble.trees[i].shap(x, phi)
	}
	out := Contributions{BaseValue: t.baseValue, Values: make([]Contribution, len(phi))}
	for i, name := range t.ensemble.featureNames {
		out.Values[i] = Contribution{Feature: name, Value: phi[i]}
	}
	return out, nil
}

// pathElement tracks one feature split along the current root-to-node path.
// zeroFraction is the share of training cover that follows the path when the feature
// is unknown; oneFraction is 1 if x itself follows the path, else 0.
type pathElement struct {
	feature      int
	zeroFraction float64
	oneFraction  float64
	weight       float64
}

func (t *tree) shap(x []Value, phi []float64) {
	t.recurse(0, x, phi, make([]pathElement, 0, t.depth+2), 1, 1, -1)
}

func (t *tree) recurse(i int, x []Value, phi []float64, parent []pathElement, zeroFraction, oneFraction float64, feature int) {
	// siblings share the parent path, so each level extends its own copy
	path := make([]pathElement, len(parent), len(parent)+1)
	copy(path, parent)
	path = extendPath(path, zeroFraction, oneFraction, feature)

	n := &t.nodes[i]
	if n.leaf {
		for k := 1; k < len(path); k++ {
			w := unwoundPathSum(path, k)
			el := path[k]
			phi[el.feature] += w * (el.oneFraction - el.zeroFraction) * n.value
		}
		return
	}

	hot := n.next(x[n.feature])
	cold := n.yes
	if hot == n.yes {
		cold = n.no
	}

	// a feature split twice on one path is tracked once
	incomingZero, incomingOne := 1.0, 1.0
	for k := 1; k < len(path); k++ {
		if path[k].feature == n.feature {
			incomingZero, incomingOne = path[k].zeroFraction, path[k].oneFraction
			path = unwindPath(path, k)
			break
		}
	}

	t.recurse(hot, x, phi, path, incomingZero*t.nodes[hot].cover/n.cover, incomingOne, n.feature)
	t.recurse(cold, x, phi, path, incomingZero*t.nodes[cold].cover/n.cover, 0, n.feature)
}

func extendPath(path []pathElement, zeroFraction, oneFraction float64, feature int) []pathElement {
	d := len(path)
	weight := 0.0
	if d == 0 {
		weight = 1
	}
	path = append(path, pathElement{feature: feature, zeroFraction: zeroFraction, oneFraction: oneFraction, weight: weight})
	for i := d - 1; i >= 0; i-- {
		path[i+1].weight += oneFraction * path[i].weight * float64(i+1) / float64(d+1)
		path[i].weight = zeroFraction * path[i].weight * float64(d-i) / float64(d+1)
	}
	return path
}

// unwindPath removes element k, undoing its extendPath.
func unwindPath(path []pathElement, k int) []pathElement {
	d := len(path) - 1
	one, zero := path[k].oneFraction, path[k].zeroFraction
	next := path[d].weight
	for i := d - 1; i >= 0; i-- {
		if one != 0 {
			tmp := path[i].weight
			path[i].weight = next * float64(d+1) / (float64(i+1) * one)
			next = tmp - path[i].weight*zero*float64(d-i)/float64(d+1)
		} else {
			path[i].weight = path[i].weight * float64(d+1) / (zero * float64(d-i))
		}
	}
	for i := k; i < d; i++ {
		path[i].feature = path[i+1].feature
		path[i].zeroFraction = path[i+1].zeroFraction
		path[i].oneFraction = path[i+1].oneFraction
	}
	return path[:d]
}

// unwoundPathSum is the total permutation weight of the path with element k removed.
func unwoundPathSum(path []pathElement, k int) float64 {
	d := len(path) - 1
	one, zero := path[k].oneFraction, path[k].zeroFraction
	next := path[d].weight
	var total float64
	for i := d - 1; i >= 0; i-- {
		if one != 0 {
			tmp := next * float64(d+1) / (float64(i+1) * one)
			total += tmp
			next = path[i].weight - tmp*zero*float64(d-i)/float64(d+1)
		} else if zero != 0 {
			total += path[i].weight / zero / (float64(d-i) / float64(d+1))
		}
	}
	return total
}
