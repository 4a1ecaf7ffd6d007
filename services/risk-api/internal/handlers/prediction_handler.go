package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/credit-risk-api/pkg"
	"github.com/nimeshabuddhika/credit-risk-api/pkg/utils"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/observability"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/services"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/validation"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/views"
	"go.uber.org/zap"
)

type PredictionHandler struct {
	logger  *zap.Logger
	service services.PredictionService
}

func NewPredictionHandler(logger *zap.Logger, svc services.PredictionService) *PredictionHandler {
	return &PredictionHandler{logger: logger, service: svc}
}

// RegisterRoutes registers prediction routes on the provided router.
func (h *PredictionHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/predict", h.Predict)
}

// Predict godoc
// @Summary      Score a credit application
// @Description  Returns the default probability with SHAP values and the top reason codes
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Param        request  body      views.PredictionRequest  true  "Applicant attributes"
// @Success      200      {object}  views.PredictionResponse
// @Failure      400      {object}  pkg.ErrorResponse
// @Failure      422      {object}  pkg.ErrorResponse
// @Failure      500      {object}  pkg.ErrorResponse
// @Router       /predict [post]
func (h *PredictionHandler) Predict(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		h.writeError(c, traceID, pkg.NewAppError(pkg.ErrServerCode, "missing trace id", err))
		return
	}

	var req views.PredictionRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		observability.PredictionFailures.WithLabelValues(string(pkg.StageValidation)).Inc()
		h.writeError(c, traceID, validation.ToAppError(err))
		return
	}

	resp, err := h.service.Predict(c.Request.Context(), traceID, req)
	if !utils.IsEmpty(resp.RequestID) {
		c.Header(pkg.HeaderRequestId, resp.RequestID)
	}
	if err != nil {
		h.writeError(c, traceID, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PredictionHandler) writeError(c *gin.Context, traceID string, err error) {
	resp := pkg.ToErrorResponse(h.logger, traceID, err)
	c.JSON(resp.Status, resp)
}
