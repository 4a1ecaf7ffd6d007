package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/nimeshabuddhika/credit-risk-api/pkg"
	"github.com/nimeshabuddhika/credit-risk-api/pkg/inference"
	middleware "github.com/nimeshabuddhika/credit-risk-api/pkg/middlewares"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/configs"
	_ "github.com/nimeshabuddhika/credit-risk-api/services/risk-api/docs"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/features"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/handlers"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/services"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/internal/validation"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Dependencies are the process-wide values shared by every request.
type Dependencies struct {
	Model       *inference.Ensemble
	Explainer   *inference.TreeExplainer
	Inference   *configs.InferenceConfig
	ServiceName string
}

// LoadDependencies reads the inference config and both artifacts. Any failure here
// is fatal: the service never starts without a usable model.
func LoadDependencies(logger *zap.Logger, cfg *configs.Config) (*Dependencies, error) {
	inf, err := configs.LoadInferenceConfig(cfg.InferenceConfigPath)
	if err != nil {
		return nil, err
	}
	model, err := inference.LoadModel(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", cfg.ModelPath, err)
	}
	explainer, err := inference.LoadExplainer(cfg.ExplainerPath)
	if err != nil {
		return nil, fmt.Errorf("load explainer %s: %w", cfg.ExplainerPath, err)
	}
	if !inference.SameSchema(model.FeatureNames(), explainer.FeatureNames()) {
		return nil, fmt.Errorf("%w: model and explainer feature names differ", inference.ErrSchemaMismatch)
	}
	if !inference.SameSchema(model.FeatureNames(), inf.SelectedFeatures) {
		return nil, fmt.Errorf("%w: selected_features do not match the model", inference.ErrSchemaMismatch)
	}
	categorical := model.CategoricalFeatures()
	for _, name := range model.FeatureNames() {
		if slices.Contains(categorical, name) != inf.IsCategorical(name) {
			return nil, fmt.Errorf("%w: categorical_features disagree with the model on %q", inference.ErrSchemaMismatch, name)
		}
	}
	logger.Info("artifacts_loaded",
		zap.String("model", model.Name()),
		zap.String("version", model.Version()),
		zap.Int("features", len(model.FeatureNames())),
		zap.Float64("base_value", explainer.BaseValue()),
	)
	return &Dependencies{Model: model, Explainer: explainer, Inference: inf, ServiceName: cfg.ServiceName}, nil
}

// NewRouter builds the Gin engine with middleware, docs and prediction routes.
func NewRouter(logger *zap.Logger, deps *Dependencies) (*gin.Engine, error) {
	if err := validation.NewRules(deps.Inference.EducationTypes, deps.Inference.OrganizationTypes).RegisterBinding(); err != nil {
		return nil, err
	}

	predictionService := services.NewPredictionService(services.PredictionServiceConfig{
		Logger:      logger,
		Model:       deps.Model,
		Explainer:   deps.Explainer,
		Transformer: features.NewTransformer(deps.Inference),
		Threshold:   deps.Inference.Threshold,
		TopN:        deps.Inference.TopN,
	})
	predictionHandler := handlers.NewPredictionHandler(logger, predictionService)
	baseHandler := handlers.NewBaseHandler(logger, len(deps.Model.FeatureNames()))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(deps.ServiceName))
	r.Use(middleware.TraceID())
	r.Use(middleware.Metrics())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	baseHandler.RegisterRoutes(r)

	// unversioned route kept for existing clients
	predictionHandler.RegisterRoutes(r)
	api := r.Group("/api/v1")
	predictionHandler.RegisterRoutes(api)

	return r, nil
}

// NewApp wires dependencies, builds the Gin engine, and returns an *http.Server.
// Tracing must be set up before calling it so the pipeline picks up the real tracer.
func NewApp(ctx context.Context, logger *zap.Logger, cfg *configs.Config) (*http.Server, error) {
	pkg.ExposeErrorDetails = cfg.ExposeErrorDetails

	deps, err := LoadDependencies(logger, cfg)
	if err != nil {
		return nil, err
	}
	r, err := NewRouter(logger, deps)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	return srv, nil
}
