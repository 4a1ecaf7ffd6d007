package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nimeshabuddhika/credit-risk-api/pkg"
	"github.com/nimeshabuddhika/credit-risk-api/pkg/inference"
	"github.com/nimeshabuddhika/credit-risk-api/pkg/tracing"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/explain"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/features"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/observability"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/views"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var errStagePanic = errors.New("pipeline stage panicked")

type PredictionService interface {
	Predict(ctx context.Context, traceID string, req views.PredictionRequest) (views.PredictionResponse, error)
}

type PredictionServiceConfig struct {
	Logger      *zap.Logger
	Model       inference.Model
	Explainer   inference.Explainer
	Transformer features.Transformer
	Threshold   float64
	TopN        int
	Tracer      trace.Tracer     // defaults to tracing.GetTracer()
	Now         func() time.Time // defaults to time.Now
}

type PredictionServiceImpl struct {
	logger      *zap.Logger
	model       inference.Model
	explainer   inference.Explainer
	transformer features.Transformer
	threshold   float64
	topN        int
	tracer      trace.Tracer
	now         func() time.Time
}

func NewPredictionService(cfg PredictionServiceConfig) PredictionService {
	if cfg.Tracer == nil {
		cfg.Tracer = tracing.GetTracer()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &PredictionServiceImpl{
		logger:      cfg.Logger,
		model:       cfg.Model,
		explainer:   cfg.Explainer,
		transformer: cfg.Transformer,
		threshold:   cfg.Threshold,
		topN:        cfg.TopN,
		tracer:      cfg.Tracer,
		now:         cfg.Now,
	}
}

// Predict runs transform, score, attribute and select on an already validated request.
// The returned response is always populated; on failure its status is Failed and
// the error is a 500 AppError naming the failing stage.
func (s *PredictionServiceImpl) Predict(ctx context.Context, traceID string, req views.PredictionRequest) (views.PredictionResponse, error) {
	start := s.now()
	resp := views.PredictionResponse{
		RequestID:        uuid.New().String(),
		RawFeatureValues: req.Fields(),
		ModelFeatures:    map[string]inference.Value{},
		Status:           string(pkg.PredictionStatusReceived),
		FailureReason:    map[string]string{},
		TopReasonCodes:   map[string]float64{},
		ShapValues:       map[string]float64{},
		Timestamp:        start.UTC().Format(time.RFC3339Nano),
	}
	logger := s.logger.With(zap.String(pkg.TraceId, traceID), zap.String(pkg.RequestId, resp.RequestID))
	logger.Info("prediction request received")

	ctx, span := s.tracer.Start(ctx, "prediction.pipeline", trace.WithAttributes(attribute.String(pkg.RequestId, resp.RequestID)))
	defer span.End()
	defer func() {
		observability.PredictionLatency.Observe(s.now().Sub(start).Seconds())
		observability.PredictionsTotal.WithLabelValues(resp.Status).Inc()
	}()

	resp.Status = string(pkg.PredictionStatusProcessing)

	// transform
	var vector inference.Vector
	err := s.stage(ctx, pkg.StageTransformation, func() (err error) {
		vector, err = s.transformer.Transform(req)
		return err
	})
	if err != nil {
		return s.fail(logger, span, &resp, pkg.StageTransformation, pkg.ErrTransformationCode, err)
	}
	resp.ModelFeatures = vector.Map()
	logger.Debug("features transformed", zap.Strings("features", vector.Names()))

	// score
	var prob float64
	err = s.stage(ctx, pkg.StageScoring, func() (err error) {
		prob, err = s.model.PredictProba(vector)
		if err == nil && !(prob >= 0 && prob <= 1) {
			err = fmt.Errorf("probability %v outside [0,1]", prob)
		}
		return err
	})
	if err != nil {
		return s.fail(logger, span, &resp, pkg.StageScoring, pkg.ErrModelCode, fmt.Errorf("%w: %w", pkg.ErrModel, err))
	}
	resp.PredictionProb = &prob
	observability.PredictionProbability.Observe(prob)
	logger.Info("prediction scored", zap.Float64("prediction_prob", prob))

	// attribute
	var contributions inference.Contributions
	err = s.stage(ctx, pkg.StageAttribution, func() (err error) {
		contributions, err = s.explainer.ShapValues(vector)
		if err == nil && contributions.Len() != len(vector) {
			err = fmt.Errorf("%w: %d contributions for %d features", inference.ErrSchemaMismatch, contributions.Len(), len(vector))
		}
		for i := 0; err == nil && i < len(vector); i++ {
			if got := contributions.Values[i].Feature; got != vector[i].Name {
				err = fmt.Errorf("%w: contribution %d is for %q, expected %q", inference.ErrSchemaMismatch, i, got, vector[i].Name)
			}
		}
		return err
	})
	if err != nil {
		return s.fail(logger, span, &resp, pkg.StageAttribution, pkg.ErrModelCode, fmt.Errorf("%w: %w", pkg.ErrModel, err))
	}
	resp.ShapValues = contributions.Map()

	// select
	reasons := explain.TopReasonCodes(contributions, prob, s.threshold, s.topN)
	resp.TopReasonCodes = explain.ToMap(reasons)

	resp.Status = string(pkg.PredictionStatusSuccess)
	span.SetAttributes(attribute.Float64("prediction_prob", prob))
	logger.Info("prediction succeeded", zap.Any("top_reason_codes", reasons))
	return resp, nil
}

// stage runs fn inside a child span named after the pipeline stage. A panic in fn
// is returned as an error of that stage.
func (s *PredictionServiceImpl) stage(ctx context.Context, stage pkg.PipelineStage, fn func() error) (err error) {
	_, span := s.tracer.Start(ctx, "prediction."+string(stage))
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errStagePanic, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(stage)+" failed")
		}
	}()
	return fn()
}

func (s *PredictionServiceImpl) fail(logger *zap.Logger, span trace.Span, resp *views.PredictionResponse, stage pkg.PipelineStage, code pkg.ErrorCode, err error) (views.PredictionResponse, error) {
	resp.Status = string(pkg.PredictionStatusFailed)
	resp.FailureReason = map[string]string{
		pkg.Stage: string(stage),
		"reason":  code.Message,
	}
	observability.PredictionFailures.WithLabelValues(string(stage)).Inc()
	span.SetStatus(codes.Error, "prediction failed")
	logger.Error("prediction failed", zap.String(pkg.Stage, string(stage)), zap.Error(err))
	return *resp, pkg.NewAppError(code, code.Message, err)
}
