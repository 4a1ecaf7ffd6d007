package views

import "github.com/nimeshabuddhika/credit-risk-api/pkg/inference"

// PredictionRequest carries the applicant attributes of one scoring call.
// Optional fields are pointers so that an explicit null and an absent key both read as missing.
type PredictionRequest struct {
	ExtSource3       *float64 `json:"EXT_SOURCE_3" binding:"omitempty,ext_source" example:"0.643026"`
	ExtSource2       *float64 `json:"EXT_SOURCE_2" binding:"omitempty,ext_source" example:"0.9"`
	ExtSource1       *float64 `json:"EXT_SOURCE_1" binding:"omitempty,ext_source" example:"0.675243"`
	AmtCredit        *float64 `json:"AMT_CREDIT" binding:"required,gt=0" example:"135801.6"`
	AmtAnnuity       *float64 `json:"AMT_ANNUITY" binding:"required" example:"12345"`
	AmtGoodsPrice    *float64 `json:"AMT_GOODS_PRICE" binding:"omitempty,gt=0" example:"123456"`
	ClientAge        *int     `json:"Client_Age" binding:"required,client_age" example:"20"`
	EmploymentYears  *int     `json:"employment_years" binding:"omitempty,gte=0" example:"3"`
	EducationType    string   `json:"NAME_EDUCATION_TYPE" binding:"required,education_type" example:"Higher education"`
	OrganizationType string   `json:"ORGANIZATION_TYPE" binding:"required,organization_type" example:"Self-employed"`
}

// Fields returns the request keyed by its wire names. Missing optionals stay as nil pointers.
func (r PredictionRequest) Fields() map[string]any {
	return map[string]any{
		"EXT_SOURCE_3":        r.ExtSource3,
		"EXT_SOURCE_2":        r.ExtSource2,
		"EXT_SOURCE_1":        r.ExtSource1,
		"AMT_CREDIT":          r.AmtCredit,
		"AMT_ANNUITY":         r.AmtAnnuity,
		"AMT_GOODS_PRICE":     r.AmtGoodsPrice,
		"Client_Age":          r.ClientAge,
		"employment_years":    r.EmploymentYears,
		"NAME_EDUCATION_TYPE": r.EducationType,
		"ORGANIZATION_TYPE":   r.OrganizationType,
	}
}

type PredictionResponse struct {
	RequestID        string                     `json:"request_id"`
	RawFeatureValues map[string]any             `json:"raw_feature_values"`
	ModelFeatures    map[string]inference.Value `json:"model_features" swaggertype:"object"`
	PredictionProb   *float64                   `json:"prediction_prob"`
	Status           string                     `json:"status"`
	FailureReason    map[string]string          `json:"failure_reason"`
	TopReasonCodes   map[string]float64         `json:"top_3_reason_codes"`
	ShapValues       map[string]float64         `json:"shap_values"`
	Timestamp        string                     `json:"timestamp"` // RFC3339
}
