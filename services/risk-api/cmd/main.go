package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nimeshabuddhika/credit-risk-api/pkg"
	"github.com/nimeshabuddhika/credit-risk-api/pkg/tracing"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/app"
	"github.com/nimeshabuddhika/credit-risk-api/services/risk-api/configs"
	"go.uber.org/zap"
)

// @title        Credit Risk API
// @version      0.1
// @description  API to predict credit risk
// @BasePath     /
func main() {
	// Initialize logger
	pkg.InitLogger(configs.ServiceName)
	logger := pkg.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := configs.Load(logger)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	shutdownTracing, err := tracing.Setup(ctx, logger, cfg.ServiceName, cfg.OtelCollectorURL)
	if err != nil {
		logger.Fatal("failed to set up tracing", zap.Error(err))
	}

	srv, err := app.NewApp(ctx, logger, cfg)
	if err != nil {
		logger.Fatal("failed to start risk-api", zap.Error(err))
	}

	// Start a server in goroutine to allow signal handling
	go func() {
		logger.Info("risk-api started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Timeout context for draining connections (align with K8s terminationGracePeriodSeconds)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer shutdown error", zap.Error(err))
	}

	// Flush logs before exit
	if err := logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) {
		_, _ = os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
	}
}
