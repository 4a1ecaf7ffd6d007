package pkg

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// NewLogger builds a JSON production logger in gin release mode and a colored
// console logger otherwise. Every entry carries the service name.
func NewLogger(ginMode, service string) (*zap.Logger, error) {
	var config zap.Config
	if gin.ReleaseMode == ginMode {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if service != "" {
		config.InitialFields = map[string]interface{}{"service": service}
	}
	return config.Build(zap.AddStacktrace(zap.DPanicLevel))
}

// InitLogger initializes the global Logger for the current gin mode.
func InitLogger(service string) {
	logger, err := NewLogger(gin.Mode(), service)
	if err != nil {
		panic(err)
	}
	Logger = logger
}
