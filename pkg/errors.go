package pkg

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ExposeErrorDetails controls whether internal causes are echoed in error responses.
// Off by default; set from config for local debugging only.
var ExposeErrorDetails = false

// Reusable errors
var (
	ErrTransformation = errors.New("feature transformation failed")
	ErrModel          = errors.New("model invocation failed")
)

// ErrorCode defines a standardized error code
type ErrorCode struct {
	Code    string
	Status  int
	Message string // default message
}

var (
	// Generic app
	ErrInvalidInputCode = ErrorCode{Code: "APP_INVALID_INPUT", Status: http.StatusBadRequest, Message: "invalid input"}
	ErrValidationCode   = ErrorCode{Code: "APP_VALIDATION", Status: http.StatusUnprocessableEntity, Message: "request validation failed"}
	ErrServerCode       = ErrorCode{Code: "APP_INTERNAL", Status: http.StatusInternalServerError, Message: "internal server error"}

	// Inference pipeline
	ErrTransformationCode = ErrorCode{Code: "PIPELINE_TRANSFORMATION", Status: http.StatusInternalServerError, Message: "prediction failed"}
	ErrModelCode          = ErrorCode{Code: "PIPELINE_MODEL", Status: http.StatusInternalServerError, Message: "prediction failed"}
)

type AppError struct {
	Code    ErrorCode
	Message string       // public-facing message
	Cause   error        // internal cause (wrapped)
	Fields  []FieldError // per-field detail, validation errors only
}

func (e AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}
func (e AppError) Unwrap() error { return e.Cause }

func NewAppError(code ErrorCode, msg string, cause error) error {
	return AppError{Code: code, Message: msg, Cause: cause}
}

// NewValidationError builds a 422 AppError carrying the offending fields.
func NewValidationError(fields []FieldError, cause error) error {
	return AppError{Code: ErrValidationCode, Message: ErrValidationCode.Message, Cause: cause, Fields: fields}
}

// FieldError names a request field and the rule it violated.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse defines the standardized error response format
type ErrorResponse struct {
	Status  int          `json:"-"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	TraceID string       `json:"traceID,omitempty"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// ToErrorResponse converts an error into an ErrorResponse, logging details and optionally exposing error messages.
// If the error is not an AppError, it is converted to a generic 500 error.
func ToErrorResponse(logger *zap.Logger, traceID string, err error) ErrorResponse {
	var appErr AppError
	if errors.As(err, &appErr) {
		resp := ErrorResponse{
			Status:  appErr.Code.Status,
			Code:    appErr.Code.Code,
			Message: appErr.Message,
			TraceID: traceID,
			Fields:  appErr.Fields,
		}
		if appErr.Code.Status >= http.StatusInternalServerError {
			logger.Error("application error", zap.String(TraceId, traceID), zap.Error(err))
			// internal failures share one public message
			resp.Message = appErr.Code.Message
		} else {
			logger.Warn("request rejected", zap.String(TraceId, traceID), zap.Error(err))
		}
		if ExposeErrorDetails {
			resp.Details = err.Error()
		}
		return resp
	}
	// Unknown error : 500
	resp := ErrorResponse{
		Status:  ErrServerCode.Status,
		Code:    ErrServerCode.Code,
		Message: ErrServerCode.Message,
		TraceID: traceID,
	}
	logger.Error("application error", zap.String(TraceId, traceID), zap.Error(err))
	if ExposeErrorDetails {
		resp.Details = err.Error()
	}
	return resp
}
