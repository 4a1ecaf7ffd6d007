package inference

import (
	"errors"
	"fmt"
	"os"
	"slices"
)

var (
	// ErrArtifact marks a missing or corrupt model/explainer file. Fatal at startup.
	ErrArtifact = errors.New("invalid model artifact")
	// ErrSchemaMismatch marks a feature row that does not match the artifact schema.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
)

// Model scores a feature row. Implementations must be safe for concurrent use.
type Model interface {
	PredictProba(v Vector) (float64, error)
	FeatureNames() []string
}

// Explainer attributes a model output to the features of a row.
// Implementations must be safe for concurrent use.
type Explainer interface {
	ShapValues(v Vector) (Contributions, error)
	FeatureNames() []string
}

// LoadModel reads a binary classifier artifact from path.
func LoadModel(path string) (*Ensemble, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	defer f.Close()
	return DecodeEnsemble(f)
}

// LoadExplainer reads an explainer artifact from path.
func LoadExplainer(path string) (*TreeExplainer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	defer f.Close()
	return DecodeExplainer(f)
}

// SameSchema reports whether two artifacts were built for the same feature columns.
func SameSchema(a, b []string) bool {
	return slices.Equal(a, b)
}
