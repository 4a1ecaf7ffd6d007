package configs

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	gin.SetMode(gin.TestMode)
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_EXPOSE_ERROR_DETAILS", "true")

	cfg, err := Load(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.ExposeErrorDetails)
	assert.Equal(t, ServiceName, cfg.ServiceName)
	assert.Equal(t, "models/model.json", cfg.ModelPath)
	assert.Equal(t, "models/explainer.json", cfg.ExplainerPath)
	assert.Empty(t, cfg.OtelCollectorURL)
}
