package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"covidcast/internal/config"
	"covidcast/internal/fetchers"
	"covidcast/internal/llm"
	"covidcast/internal/logger"
	"covidcast/internal/mocks"
	"covidcast/internal/reports"
	"covidcast/internal/storage"
)

// local-runner generates a single report into the local reports directory
// without starting the HTTP server. With MOCKUP_MODE=true it runs fully
// offline from the embedded sample data.
func main() {
	ctx := context.Background()
	startTime := time.Now()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	storageClient, err := storage.NewStorageClient(ctx, storage.DeploymentLocal, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize local storage", err)
	}
	defer storageClient.Close()

	reportGenerator, err := reports.NewReportGenerator(cfg.RollingWindow, cfg.Series)
	if err != nil {
		logger.Fatal("Failed to initialize report generator", err)
	}

	var llmClient *llm.OpenAIClient
	if cfg.OpenAIAPIKey != "" {
		llmClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		logger.Info("OPENAI_API_KEY not set, analyst commentary disabled")
	}

	var mockService *mocks.MockService
	if cfg.MockupMode {
		mockService = mocks.NewMockService()
		logger.Info("Mockup mode enabled, using embedded sample data")
	}

	orchestrator := reports.NewStorageOrchestrator(storageClient)
	result, err := reportGenerator.GenerateCompleteReport(
		ctx, cfg, fetchers.NewDataFetcher(), llmClient, mockService, orchestrator)
	if err != nil {
		logger.Fatal("Report generation failed", err)
	}

	result["duration_ms"] = time.Since(startTime).Milliseconds()

	summaryJSON, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(os.Stdout, string(summaryJSON))

	logger.Infof("Report saved under %s", cfg.LocalReportsDir)
}
