package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"covidcast/internal/logger"
	"covidcast/internal/reports"
	"covidcast/internal/storage"
)

// HandleRoot redirects to the most recent report page
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	latestReportURL, err := s.findLatestReportURL()
	if err != nil {
		logger.Debugf("No reports available yet: %v", err)
		s.serveInitialPage(w)
		return
	}

	w.Header().Set("Location", latestReportURL)
	w.WriteHeader(http.StatusFound)
}

// serveInitialPage shows an initial page if no reports are available
func (s *Server) serveInitialPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>COVID-19 Situation Reports</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #f5f5f5; }
        .container { max-width: 800px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #333; text-align: center; }
        .endpoints { background: #f8f9fa; padding: 20px; border-radius: 5px; margin: 20px 0; }
        .endpoint { margin: 10px 0; }
        .note { background: #fff3cd; padding: 15px; border-radius: 5px; margin: 20px 0; border-left: 4px solid #ffc107; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#129440; COVID-19 Situation Reports</h1>
        <div class="note">
            <strong>Note:</strong> No reports have been generated yet. Generate the first one with the /generate endpoint.
        </div>
        <div class="endpoints">
            <h3>Available Endpoints:</h3>
            <div class="endpoint"><strong>GET /health</strong> - Service health check</div>
            <div class="endpoint"><strong>POST /generate</strong> - Generate a new situation report</div>
            <div class="endpoint"><strong>GET /reports</strong> - List recent reports</div>
        </div>
    </div>
</body>
</html>`)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"storage": "ok",
			"config":  "ok",
		},
		"deployment_mode": string(s.DeploymentMode),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleGenerate generates a new situation report (HTTP handler)
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Only one generation at a time
	if !s.generateMutex.TryLock() {
		logger.Warn("Report generation already in progress, rejecting new request")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		response := map[string]interface{}{
			"error":   "Report generation already in progress",
			"message": "Another report generation is currently running. Please wait for it to complete before starting a new one.",
			"status":  "conflict",
		}
		json.NewEncoder(w).Encode(response)
		return
	}
	defer s.generateMutex.Unlock()

	ctx := r.Context()

	logger.Info("Starting report generation...")

	storageOrchestrator := reports.NewStorageOrchestrator(s.Storage)
	result, err := s.ReportGenerator.GenerateCompleteReport(
		ctx,
		s.Config,
		s.Fetcher,
		s.LLMClient,
		s.MockService,
		storageOrchestrator,
	)
	if err != nil {
		logger.Error("Report generation failed", err)
		http.Error(w, "Report generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Info("Report generation completed successfully")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// HandleFileProxy serves report artifacts from local storage or GCS
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// URL shape: /files/2020/03/05/CovidReport-.../index.html
	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}

	// Prevent directory traversal
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	fileData, err := s.Storage.GetFile(ctx, filePath)
	if err != nil {
		logger.Debugf("Failed to get file %s from storage: %v", filePath, err)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(fileData)
}

// HandleListReports lists recent reports
func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	// Get limit from query parameter (default 10)
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := fmt.Sscanf(limitStr, "%d", &limit); err != nil || parsedLimit != 1 {
			limit = 10
		}
		if limit > 100 {
			limit = 100 // Cap at 100
		}
	}

	reportList, err := s.Storage.ListReports(ctx, limit)
	if err != nil {
		logger.Error("Failed to list reports", err)
		http.Error(w, "Failed to list reports: "+err.Error(), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"reports":   reportList,
		"count":     len(reportList),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// findLatestReportURL finds the URL of the latest report
func (s *Server) findLatestReportURL() (string, error) {
	latest, err := s.Storage.GetLatestReport()
	if err != nil {
		return "", fmt.Errorf("no reports available: %w", err)
	}
	return "/files/" + latest, nil
}
