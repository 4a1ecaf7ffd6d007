package pkg

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	for _, mode := range []string{gin.ReleaseMode, gin.DebugMode, gin.TestMode} {
		logger, err := NewLogger(mode, "credit-risk-api")
		require.NoError(t, err, mode)
		assert.NotNil(t, logger)
	}
}

func TestInitLogger(t *testing.T) {
	InitLogger("credit-risk-api")
	assert.NotNil(t, Logger)
}
