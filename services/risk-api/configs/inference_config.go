package configs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// RatioFeature derives Name from Numerator / Denominator.
type RatioFeature struct {
	Name        string `yaml:"name"`
	Numerator   string `yaml:"numerator"`
	Denominator string `yaml:"denominator"`
}

// InferenceConfig describes the feature schema and reason-code policy of the model.
type InferenceConfig struct {
	SelectedFeatures    []string     `yaml:"selected_features"`
	CategoricalFeatures []string     `yaml:"categorical_features"`
	RatioFeature        RatioFeature `yaml:"ratio_feature"`
	Threshold           float64      `yaml:"threshold"`
	TopN                int          `yaml:"top_n"`
	EducationTypes      []string     `yaml:"education_types"`
	OrganizationTypes   []string     `yaml:"organization_types"`
}

func LoadInferenceConfig(path string) (*InferenceConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inference config: %w", err)
	}
	defer f.Close()
	return DecodeInferenceConfig(f)
}

func DecodeInferenceConfig(r io.Reader) (*InferenceConfig, error) {
	var cfg InferenceConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode inference config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *InferenceConfig) Validate() error {
	var errs []error
	if len(c.SelectedFeatures) == 0 {
		errs = append(errs, errors.New("selected_features is empty"))
	}
	selected := make(map[string]struct{}, len(c.SelectedFeatures))
	for _, f := range c.SelectedFeatures {
		if _, dup := selected[f]; dup {
			errs = append(errs, fmt.Errorf("selected_features lists %q twice", f))
		}
		selected[f] = struct{}{}
	}
	for _, f := range c.CategoricalFeatures {
		if _, ok := selected[f]; !ok {
			errs = append(errs, fmt.Errorf("categorical feature %q is not selected", f))
		}
	}
	r := c.RatioFeature
	if r.Name == "" || r.Numerator == "" || r.Denominator == "" {
		errs = append(errs, errors.New("ratio_feature needs name, numerator and denominator"))
	}
	if !(c.Threshold > 0 && c.Threshold < 1) {
		errs = append(errs, fmt.Errorf("threshold %v outside (0,1)", c.Threshold))
	}
	if c.TopN <= 0 {
		errs = append(errs, fmt.Errorf("top_n must be positive, got %d", c.TopN))
	}
	if len(c.EducationTypes) == 0 {
		errs = append(errs, errors.New("education_types is empty"))
	}
	if len(c.OrganizationTypes) == 0 {
		errs = append(errs, errors.New("organization_types is empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid inference config: %w", errors.Join(errs...))
	}
	return nil
}

// IsCategorical reports whether name is cast to a category before scoring.
func (c *InferenceConfig) IsCategorical(name string) bool {
	return slices.Contains(c.CategoricalFeatures, name)
}
