package configs

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/nimeshabuddhika/credit-risk-api/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const ServiceName = "credit-risk-api"

// Config holds application configuration for risk-api.
type Config struct {
	Port                string `mapstructure:"PORT" validate:"required"`
	ServiceName         string `mapstructure:"SERVICE_NAME" validate:"required"`
	ModelPath           string `mapstructure:"MODEL_PATH" validate:"required"`
	ExplainerPath       string `mapstructure:"EXPLAINER_PATH" validate:"required"`
	InferenceConfigPath string `mapstructure:"INFERENCE_CONFIG_PATH" validate:"required"`
	ExposeErrorDetails  bool   `mapstructure:"EXPOSE_ERROR_DETAILS"`
	OtelCollectorURL    string `mapstructure:"OTEL_COLLECTOR_URL"` // tracing disabled when empty
}

func Load(logger *zap.Logger) (*Config, error) {
	// .env is optional, real env vars win
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded_env_file")
	}

	viper.SetEnvPrefix("app") // Prefix for env vars
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("SERVICE_NAME", ServiceName)
	viper.SetDefault("MODEL_PATH", "models/model.json")
	viper.SetDefault("EXPLAINER_PATH", "models/explainer.json")
	viper.SetDefault("INFERENCE_CONFIG_PATH", "services/risk-api/configs/inference_config.yaml")
	viper.SetDefault("EXPOSE_ERROR_DETAILS", false)

	// Optional: Read from config.yaml if exists
	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running_in_test_mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running_in_development_mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./services/risk-api/configs")
	_ = viper.ReadInConfig() // Ignore if no file

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}

	// Validate after unmarshal
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, utils.FormatConfigErrors(logger, err, cfg)
	}
	return &cfg, nil
}
