package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger       *zap.Logger
	featureCount int
}

func NewBaseHandler(logger *zap.Logger, featureCount int) *BaseHandler {
	return &BaseHandler{logger: logger, featureCount: featureCount}
}

func (b *BaseHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", b.Index)
	r.GET("/health", b.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Index godoc
// @Summary      API docs
// @Description  Redirects to the interactive API documentation
// @Tags         base
// @Success      307
// @Router       / [get]
func (b *BaseHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "/swagger/index.html")
}

// GetHealth godoc
// @Summary      Health check
// @Tags         base
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (b *BaseHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"features": b.featureCount,
	})
}
