package inference

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

const (
	ObjectiveBinaryLogistic = "binary:logistic"

	FeatureTypeFloat       = "float"
	FeatureTypeInt         = "int"
	FeatureTypeCategorical = "c"

	// relative slack allowed between a node cover and the sum of its children
	coverTolerance = 1e-3
)

// Node is one entry of an XGBoost JSON tree dump (dump_model with_stats=True).
// Categorical splits list their left-going labels in Categories.
type Node struct {
	NodeID         int      `json:"nodeid"`
	Depth          int      `json:"depth,omitempty"`
	Split          string   `json:"split,omitempty"`
	SplitCondition float64  `json:"split_condition,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	Yes            int      `json:"yes,omitempty"`
	No             int      `json:"no,omitempty"`
	Missing        int      `json:"missing,omitempty"`
	Gain           float64  `json:"gain,omitempty"`
	Cover          float64  `json:"cover"`
	Leaf           *float64 `json:"leaf,omitempty"`
	Children       []*Node  `json:"children,omitempty"`
}

// EnsembleSpec is the on-disk layout of a binary classifier artifact.
type EnsembleSpec struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Objective    string   `json:"objective"`
	BaseScore    float64  `json:"base_score"`
	FeatureNames []string `json:"feature_names"`
	FeatureTypes []string `json:"feature_types"`
	Trees        []*Node  `json:"trees"`
}

type node struct {
	leaf        bool
	value       float64
	feature     int
	threshold   float64
	categorical bool
	categories  map[string]struct{}
	yes         int
	no          int
	missing     int
	cover       float64
}

// next returns the index of the child x is routed to.
func (n *node) next(x Value) int {
	switch {
	case x.Kind == KindMissing:
		return n.missing
	case n.categorical:
		if _, ok := n.categories[x.Category]; ok {
			return n.yes
		}
		return n.no
	case x.Number < n.threshold:
		return n.yes
	default:
		return n.no
	}
}

// tree is a flattened regression tree; nodes[0] is the root.
type tree struct {
	nodes []node
	depth int
}

func (t *tree) predict(x []Value) float64 {
	i := 0
	for !t.nodes[i].leaf {
		i = t.nodes[i].next(x[t.nodes[i].feature])
	}
	return t.nodes[i].value
}

// expected is the cover-weighted mean leaf value of the subtree rooted at i.
func (t *tree) expected(i int) float64 {
	n := &t.nodes[i]
	if n.leaf {
		return n.value
	}
	return (t.nodes[n.yes].cover*t.expected(n.yes) + t.nodes[n.no].cover*t.expected(n.no)) / n.cover
}

// Ensemble is a gradient-boosted tree classifier. It is immutable after decoding
// and safe for concurrent use.
type Ensemble struct {
	name         string
	version      string
	baseMargin   float64
	featureNames []string
	categorical  []bool
	trees        []tree
}

// DecodeEnsemble reads and validates an EnsembleSpec.
func DecodeEnsemble(r io.Reader) (*Ensemble, error) {
	var spec EnsembleSpec
	if err := json.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: decode ensemble: %v", ErrArtifact, err)
	}
	return NewEnsemble(spec)
}

// NewEnsemble compiles an EnsembleSpec into an Ensemble.
func NewEnsemble(spec EnsembleSpec) (*Ensemble, error) {
	if spec.Objective != ObjectiveBinaryLogistic {
		return nil, fmt.Errorf("%w: unsupported objective %q", ErrArtifact, spec.Objective)
	}
	if !(spec.BaseScore > 0 && spec.BaseScore < 1) {
		return nil, fmt.Errorf("%w: base_score %v outside (0,1)", ErrArtifact, spec.BaseScore)
	}
	if len(spec.FeatureNames) == 0 {
		return nil, fmt.Errorf("%w: no feature names", ErrArtifact)
	}
	if len(spec.FeatureTypes) != len(spec.FeatureNames) {
		return nil, fmt.Errorf("%w: %d feature types for %d features", ErrArtifact, len(spec.FeatureTypes), len(spec.FeatureNames))
	}
	if len(spec.Trees) == 0 {
		return nil, fmt.Errorf("%w: ensemble has no trees", ErrArtifact)
	}

	index := make(map[string]int, len(spec.FeatureNames))
	categorical := make([]bool, len(spec.FeatureNames))
	for i, name := range spec.FeatureNames {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrArtifact, name)
		}
		index[name] = i
		switch spec.FeatureTypes[i] {
		case FeatureTypeCategorical:
			categorical[i] = true
		case FeatureTypeFloat, FeatureTypeInt:
		default:
			return nil, fmt.Errorf("%w: feature %q has unknown type %q", ErrArtifact, name, spec.FeatureTypes[i])
		}
	}

	e := &Ensemble{
		name:         spec.Name,
		version:      spec.Version,
		baseMargin:   math.Log(spec.BaseScore / (1 - spec.BaseScore)),
		featureNames: append([]string(nil), spec.FeatureNames...),
		categorical:  categorical,
		trees:        make([]tree, 0, len(spec.Trees)),
	}
	for i, root := range spec.Trees {
		t, err := compileTree(root, index, categorical)
		if err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrArtifact, i, err)
		}
		e.trees = append(e.trees, t)
	}
	return e, nil
}

func compileTree(root *Node, index map[string]int, categorical []bool) (tree, error) {
	if root == nil {
		return tree{}, fmt.Errorf("empty tree")
	}
	var t tree
	var walk func(n *Node, depth int) (int, error)
	walk = func(n *Node, depth int) (int, error) {
		if depth > t.depth {
			t.depth = depth
		}
		if n.Cover <= 0 {
			return 0, fmt.Errorf("node %d: cover must be positive", n.NodeID)
		}
		pos := len(t.nodes)
		t.nodes = append(t.nodes, node{cover: n.Cover})
		if n.Leaf != nil {
			if len(n.Children) != 0 {
				return 0, fmt.Errorf("node %d: leaf with children", n.NodeID)
			}
			t.nodes[pos].leaf = true
			t.nodes[pos].value = *n.Leaf
			return pos, nil
		}

		feature, ok := index[n.Split]
		if !ok {
			return 0, fmt.Errorf("node %d: split on unknown feature %q", n.NodeID, n.Split)
		}
		if n.Missing != n.Yes && n.Missing != n.No {
			return 0, fmt.Errorf("node %d: missing branch %d is neither yes nor no", n.NodeID, n.Missing)
		}
		if len(n.Children) != 2 {
			return 0, fmt.Errorf("node %d: split node has %d children", n.NodeID, len(n.Children))
		}
		var yesNode, noNode *Node
		for _, c := range n.Children {
			switch {
			case c == nil:
			case c.NodeID == n.Yes:
				yesNode = c
			case c.NodeID == n.No:
				noNode = c
			}
		}
		if yesNode == nil || noNode == nil {
			return 0, fmt.Errorf("node %d: children do not match yes=%d no=%d", n.NodeID, n.Yes, n.No)
		}
		if math.Abs(yesNode.Cover+noNode.Cover-n.Cover) > coverTolerance*n.Cover {
			return 0, fmt.Errorf("node %d: children cover %v does not add up to %v", n.NodeID, yesNode.Cover+noNode.Cover, n.Cover)
		}

		sn := node{feature: feature, threshold: n.SplitCondition, cover: n.Cover}
		if categorical[feature] {
			if len(n.Categories) == 0 {
				return 0, fmt.Errorf("node %d: categorical split on %q without categories", n.NodeID, n.Split)
			}
			sn.categorical = true
			sn.categories = make(map[string]struct{}, len(n.Categories))
			for _, c := range n.Categories {
				sn.categories[c] = struct{}{}
			}
		} else if len(n.Categories) != 0 {
			return 0, fmt.Errorf("node %d: categories on numeric feature %q", n.NodeID, n.Split)
		}

		yes, err := walk(yesNode, depth+1)
		if err != nil {
			return 0, err
		}
		no, err := walk(noNode, depth+1)
		if err != nil {
			return 0, err
		}
		sn.yes, sn.no = yes, no
		if n.Missing == n.Yes {
			sn.missing = yes
		} else {
			sn.missing = no
		}
		t.nodes[pos] = sn
		return pos, nil
	}
	if _, err := walk(root, 0); err != nil {
		return tree{}, err
	}
	return t, nil
}

func (e *Ensemble) Name() string    { return e.name }
func (e *Ensemble) Version() string { return e.version }

// FeatureNames returns the training schema in column order.
func (e *Ensemble) FeatureNames() []string {
	return append([]string(nil), e.featureNames...)
}

// CategoricalFeatures returns the names of the columns split on label sets, in
// column order.
func (e *Ensemble) CategoricalFeatures() []string {
	var names []string
	for i, name := range e.featureNames {
		if e.categorical[i] {
			names = append(names, name)
		}
	}
	return names
}

// bind aligns v with the training schema. Any difference in column set, order or
// value kind is a schema mismatch.
func (e *Ensemble) bind(v Vector) ([]Value, error) {
	if len(v) != len(e.featureNames) {
		return nil, fmt.Errorf("%w: got %d features, model expects %d", ErrSchemaMismatch, len(v), len(e.featureNames))
	}
	x := make([]Value, len(v))
	for i, f := range v {
		if f.Name != e.featureNames[i] {
			return nil, fmt.Errorf("%w: column %d is %q, model expects %q", ErrSchemaMismatch, i, f.Name, e.featureNames[i])
		}
		switch {
		case f.Value.Kind == KindMissing:
		case e.categorical[i] && f.Value.Kind != KindCategory:
			return nil, fmt.Errorf("%w: %q must be categorical", ErrSchemaMismatch, f.Name)
		case !e.categorical[i] && f.Value.Kind != KindNumber:
			return nil, fmt.Errorf("%w: %q must be numeric", ErrSchemaMismatch, f.Name)
		}
		x[i] = f.Value
	}
	return x, nil
}

func (e *Ensemble) margin(x []Value) float64 {
	m := e.baseMargin
	for i := range e.trees {
		m += e.trees[i].predict(x)
	}
	return m
}

// PredictMargin returns the raw log-odds output for v.
func (e *Ensemble) PredictMargin(v Vector) (float64, error) {
	x, err := e.bind(v)
	if err != nil {
		return 0, err
	}
	return e.margin(x), nil
}

// PredictProba returns the positive-class probability for v.
func (e *Ensemble) PredictProba(v Vector) (float64, error) {
	m, err := e.PredictMargin(v)
	if err != nil {
		return 0, err
	}
	return sigmoid(m), nil
}

// ExpectedMargin is the cover-weighted mean model output over the training data.
func (e *Ensemble) ExpectedMargin() float64 {
	m := e.baseMargin
	for i := range e.trees {
		m += e.trees[i].expected(0)
	}
	return m
}

func sigmoid(m float64) float64 {
	return 1 / (1 + math.Exp(-m))
}
