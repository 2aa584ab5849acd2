package reports

import (
	"context"
	"fmt"
	"time"

	"covidcast/internal/charts"
	"covidcast/internal/config"
	"covidcast/internal/dataset"
	"covidcast/internal/fetchers"
	"covidcast/internal/llm"
	"covidcast/internal/logger"
	"covidcast/internal/mocks"
	"covidcast/internal/models"
)

// StorageInterface defines the interface for storage operations
type StorageInterface interface {
	StoreAllFiles(ctx context.Context, files *GeneratedFiles, timestamp time.Time) error
}

// ReportGenerator handles report generation and HTML conversion
type ReportGenerator struct {
	chartGen    *charts.Generator
	htmlBuilder *HTMLBuilder
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(window int, seriesNames []string) (*ReportGenerator, error) {
	chartGen, err := charts.NewGenerator(window, seriesNames)
	if err != nil {
		return nil, err
	}
	return &ReportGenerator{
		chartGen:    chartGen,
		htmlBuilder: NewHTMLBuilder(),
	}, nil
}

// GenerateReport builds the complete HTML report page: assembles all chart
// fragments and folds the markdown narrative into the page template
func (rg *ReportGenerator) GenerateReport(table *dataset.Table, summary *models.PandemicSummary, markdownContent string) (string, error) {
	logger.Info("Starting report generation...")

	chartSet, err := rg.chartGen.GenerateCharts(table, summary)
	if err != nil {
		return "", fmt.Errorf("failed to generate charts: %w", err)
	}

	finalHTML, err := rg.htmlBuilder.BuildCompleteHTML(markdownContent, summary, chartSet)
	if err != nil {
		return "", fmt.Errorf("failed to build complete HTML: %w", err)
	}

	logger.Infof("Report generation completed (%d characters)", len(finalHTML))
	return finalHTML, nil
}

// GenerateCompleteReport runs the full pipeline: fetch (or mock) the data,
// normalize it, compose the narrative, render the page, and store every
// artifact. The returned map is the /generate handler's JSON response body.
func (rg *ReportGenerator) GenerateCompleteReport(ctx context.Context,
	cfg *config.Config,
	fetcher *fetchers.DataFetcher,
	llmClient *llm.OpenAIClient,
	mockService *mocks.MockService,
	storageOrchestrator StorageInterface) (map[string]interface{}, error) {

	sourceData, commentary, err := rg.acquireData(ctx, cfg, fetcher, llmClient, mockService)
	if err != nil {
		return nil, err
	}

	table, summary := fetchers.Normalize(sourceData, cfg.DefaultCountry, cfg.TopCountries)
	if commentary == "" && llmClient != nil && !cfg.MockupMode {
		commentary = rg.generateCommentary(ctx, llmClient, summary)
	}
	markdown := ComposeMarkdown(summary, commentary)

	fileGenerator := NewFileGenerator(rg)
	files, err := fileGenerator.GenerateAllFiles(table, summary, sourceData, markdown, cfg.DefaultCountry, cfg.RollingWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to generate files: %w", err)
	}

	if err := storageOrchestrator.StoreAllFiles(ctx, files, summary.Timestamp); err != nil {
		return nil, fmt.Errorf("failed to store files: %w", err)
	}

	return map[string]interface{}{
		"status":     "success",
		"message":    "Report generated successfully",
		"reportURL":  "/files/" + files.FolderPath + "/index.html",
		"timestamp":  summary.Timestamp.Format(time.RFC3339),
		"countries":  len(summary.Countries),
		"latestDate": summary.LatestDate.Format("2006-01-02"),
		"folderPath": files.FolderPath,
	}, nil
}

// acquireData loads the source payloads, either from the live sources or
// from the embedded mock data
func (rg *ReportGenerator) acquireData(ctx context.Context,
	cfg *config.Config,
	fetcher *fetchers.DataFetcher,
	llmClient *llm.OpenAIClient,
	mockService *mocks.MockService) (*models.SourceData, string, error) {

	if cfg.MockupMode && mockService != nil {
		logger.Info("Using mock data for report generation...")
		sourceData, err := mockService.LoadMockSourceData()
		if err != nil {
			return nil, "", fmt.Errorf("mock data loading failed: %w", err)
		}
		commentary, err := mockService.LoadMockCommentary()
		if err != nil {
			return nil, "", fmt.Errorf("mock commentary loading failed: %w", err)
		}
		return sourceData, commentary, nil
	}

	sourceData, err := fetcher.FetchAllData(ctx, cfg.CovidDataURL, cfg.GDPDataURL, cfg.NewsRSSURL)
	if err != nil {
		return nil, "", fmt.Errorf("data fetching failed: %w", err)
	}
	return sourceData, "", nil
}

// generateCommentary asks the LLM for commentary, degrading to the computed
// narrative on any failure
func (rg *ReportGenerator) generateCommentary(ctx context.Context, llmClient *llm.OpenAIClient, summary *models.PandemicSummary) string {
	commentary, err := llmClient.GenerateCommentary(ctx, summary)
	if err != nil {
		logger.Warnf("Commentary generation failed, continuing without it: %v", err)
		return ""
	}
	return commentary
}

// MarkdownToHTML converts markdown to HTML
func (rg *ReportGenerator) MarkdownToHTML(markdownText string) string {
	htmlContent, err := rg.htmlBuilder.ConvertMarkdownToHTML(markdownText)
	if err != nil {
		logger.Warnf("Error converting markdown to HTML: %v", err)
		return markdownText
	}
	return htmlContent
}
