package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"covidcast/internal/config"
	"covidcast/internal/logger"
	"covidcast/internal/server"
	"covidcast/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	deploymentMode := resolveDeploymentMode(cfg)

	logger.Infof("Starting covidcast v%s on port %s", config.GetVersion(), cfg.Port)
	logger.Infof("Environment: %s, deployment mode: %s", cfg.Environment, deploymentMode)
	if deploymentMode == storage.DeploymentLocal {
		logger.Infof("Reports directory: %s", cfg.LocalReportsDir)
	} else {
		logger.Infof("GCS bucket: %s", cfg.GCSBucket)
	}

	srv, err := server.NewServer(ctx, cfg, deploymentMode)
	if err != nil {
		logger.Fatal("Failed to create server", err)
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Report generation can take minutes
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}

// resolveDeploymentMode picks GCS storage when a bucket is configured,
// local filesystem storage otherwise
func resolveDeploymentMode(cfg *config.Config) storage.DeploymentMode {
	if cfg.GCSBucket != "" {
		return storage.DeploymentGCS
	}
	return storage.DeploymentLocal
}
