package features

import (
	"errors"
	"testing"

	"github.com/nimeshabuddhika/credit-risk-api/pkg"
	"github.com/nimeshabuddhika/credit-risk-api/pkg/inference"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/configs"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T) *configs.InferenceConfig {
	t.Helper()
	cfg, err := configs.LoadInferenceConfig("../../configs/inference_config.yaml")
	require.NoError(t, err)
	return cfg
}

func sampleRequest() views.PredictionRequest {
	age, years := 20, 3
	return views.PredictionRequest{
		ExtSource3:       ptr(0.643026),
		ExtSource2:       ptr(0.90),
		ExtSource1:       ptr(0.675243),
		AmtCredit:        ptr(135801.6),
		AmtAnnuity:       ptr(12345),
		AmtGoodsPrice:    ptr(123456),
		ClientAge:        &age,
		EmploymentYears:  &years,
		EducationType:    "Higher education",
		OrganizationType: "Self-employed",
	}
}

func TestTransform_SampleRequest(t *testing.T) {
	cfg := loadConfig(t)
	v, err := NewTransformer(cfg).Transform(sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, cfg.SelectedFeatures, v.Names())

	ratio, ok := v.Get("AMT_CREDIT_AMT_GOODS_PRICE_ratio")
	require.True(t, ok)
	assert.Equal(t, inference.Number(1.1), ratio)

	edu, _ := v.Get("NAME_EDUCATION_TYPE")
	assert.Equal(t, inference.Category("Higher education"), edu)
	age, _ := v.Get("Client_Age")
	assert.Equal(t, inference.Number(20), age)
}

func TestTransform_MissingOptionals(t *testing.T) {
	cfg := loadConfig(t)
	req := sampleRequest()
	req.AmtGoodsPrice = nil
	req.ExtSource1 = nil
	req.EmploymentYears = nil

	v, err := NewTransformer(cfg).Transform(req)
	require.NoError(t, err)

	ratio, _ := v.Get("AMT_CREDIT_AMT_GOODS_PRICE_ratio")
	assert.Equal(t, inference.Number(RatioDenominatorMissing), ratio)
	ext1, _ := v.Get("EXT_SOURCE_1")
	assert.True(t, ext1.IsMissing())
	years, _ := v.Get("employment_years")
	assert.True(t, years.IsMissing())
}

func TestTransform_MatchesModelSchema(t *testing.T) {
	model, err := inference.LoadModel("../../../../models/model.json")
	require.NoError(t, err)

	v, err := NewTransformer(loadConfig(t)).Transform(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, model.FeatureNames(), v.Names())

	p, err := model.PredictProba(v)
	require.NoError(t, err)
	assert.InDelta(t, 0.033493163284309915, p, 1e-12)
}

func TestTransform_UnknownColumn(t *testing.T) {
	cfg := loadConfig(t)
	cfg.SelectedFeatures = append(append([]string(nil), cfg.SelectedFeatures...), "CNT_CHILDREN")

	_, err := NewTransformer(cfg).Transform(sampleRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrTransformation))
}

func TestTransform_UnknownRatioInput(t *testing.T) {
	cfg := loadConfig(t)
	cfg.RatioFeature.Denominator = "AMT_INCOME_TOTAL"

	_, err := NewTransformer(cfg).Transform(sampleRequest())
	assert.ErrorIs(t, err, pkg.ErrTransformation)
}

func TestTransform_DoesNotMutateRequest(t *testing.T) {
	req := sampleRequest()
	credit := *req.AmtCredit
	_, err := NewTransformer(loadConfig(t)).Transform(req)
	require.NoError(t, err)
	assert.Equal(t, credit, *req.AmtCredit)
	assert.Equal(t, "Higher education", req.EducationType)
}
