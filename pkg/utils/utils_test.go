package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nimeshabuddhika/credit-risk-api/pkg"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testConfig struct {
	Port      string `mapstructure:"PORT" validate:"required"`
	ModelPath string `mapstructure:"MODEL_PATH" validate:"required"`
	Internal  string
}

func TestParseStructEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("PORT", "9000")
	t.Setenv("MODEL_PATH", "m.json")

	var cfg testConfig
	require.NoError(t, ParseStructEnv(&cfg))
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "m.json", cfg.ModelPath)
}

func TestFormatConfigErrors(t *testing.T) {
	cfg := testConfig{Port: "8000"}
	err := validator.New().Struct(cfg)
	require.Error(t, err)

	out := FormatConfigErrors(zap.NewNop(), err, cfg)
	assert.EqualError(t, out, "invalid config: MODEL_PATH: failed 'required'")
}

func TestGetTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetTraceID(c)
	assert.Error(t, err)

	c.Set(pkg.TraceId, "t-1")
	id, err := GetTraceID(c)
	require.NoError(t, err)
	assert.Equal(t, "t-1", id)
}
