package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"covidcast/internal/config"
	"covidcast/internal/fetchers"
	"covidcast/internal/llm"
	"covidcast/internal/logger"
	"covidcast/internal/mocks"
	"covidcast/internal/reports"
	"covidcast/internal/storage"
)

// Server represents the main application server
type Server struct {
	Config          *config.Config
	Fetcher         *fetchers.DataFetcher
	LLMClient       *llm.OpenAIClient
	ReportGenerator *reports.ReportGenerator
	Storage         storage.StorageClient
	MockService     *mocks.MockService
	DeploymentMode  storage.DeploymentMode

	generateMutex sync.Mutex
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config, deploymentMode storage.DeploymentMode) (*Server, error) {
	storageClient, err := storage.NewStorageClient(ctx, deploymentMode, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	reportGenerator, err := reports.NewReportGenerator(cfg.RollingWindow, cfg.Series)
	if err != nil {
		storageClient.Close()
		return nil, fmt.Errorf("failed to initialize report generator: %w", err)
	}

	server := &Server{
		Config:          cfg,
		Fetcher:         fetchers.NewDataFetcher(),
		ReportGenerator: reportGenerator,
		Storage:         storageClient,
		DeploymentMode:  deploymentMode,
	}

	if cfg.OpenAIAPIKey != "" {
		server.LLMClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		logger.Info("OPENAI_API_KEY not set, analyst commentary disabled")
	}

	if cfg.MockupMode {
		server.MockService = mocks.NewMockService()
		logger.Info("Mockup mode enabled, using embedded sample data")
	}

	return server, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/generate", s.HandleGenerate)
	mux.HandleFunc("/reports", s.HandleListReports)
	mux.HandleFunc("/files/", s.HandleFileProxy)

	// Root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
