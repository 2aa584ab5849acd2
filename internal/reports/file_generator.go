package reports

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"covidcast/internal/charts"
	"covidcast/internal/dataset"
	"covidcast/internal/logger"
	"covidcast/internal/models"
	"covidcast/internal/storage"
)

// GeneratedFiles contains all files generated for a report
type GeneratedFiles struct {
	HTMLContent string
	JSONFiles   map[string][]byte
	AssetFiles  map[string][]byte // PNG charts, markdown
	FolderPath  string
}

// FileGenerator handles generation of all report files
type FileGenerator struct {
	reportGenerator *ReportGenerator
}

// NewFileGenerator creates a new file generator
func NewFileGenerator(reportGenerator *ReportGenerator) *FileGenerator {
	return &FileGenerator{
		reportGenerator: reportGenerator,
	}
}

// GenerateAllFiles creates all report files: the HTML page, JSON artifacts
// of every source, the normalized summary, and the static trend chart
func (fg *FileGenerator) GenerateAllFiles(
	table *dataset.Table,
	summary *models.PandemicSummary,
	sourceData *models.SourceData,
	markdown string,
	defaultSubject string,
	window int) (*GeneratedFiles, error) {

	files := &GeneratedFiles{
		JSONFiles:  make(map[string][]byte),
		AssetFiles: make(map[string][]byte),
		FolderPath: storage.GenerateReportFolderPath(summary.Timestamp),
	}

	if err := fg.generateSourceJSONFiles(sourceData, files); err != nil {
		logger.Warnf("Failed to generate source JSON files: %v", err)
	}
	if err := fg.generateSummaryJSON(summary, files); err != nil {
		logger.Warnf("Failed to generate summary JSON: %v", err)
	}
	files.AssetFiles["report.md"] = []byte(markdown)

	if err := fg.generateTrendPNG(table, defaultSubject, window, files); err != nil {
		logger.Warnf("Failed to generate trend chart PNG: %v", err)
	}

	html, err := fg.reportGenerator.GenerateReport(table, summary, markdown)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}
	files.HTMLContent = html

	return files, nil
}

// generateSourceJSONFiles stores each raw source payload as its own artifact
func (fg *FileGenerator) generateSourceJSONFiles(sourceData *models.SourceData, files *GeneratedFiles) error {
	if sourceData == nil {
		return nil
	}
	if len(sourceData.Covid) > 0 {
		data, _ := json.MarshalIndent(sourceData.Covid, "", "  ")
		files.JSONFiles["covid_data.json"] = data
		logger.Debugf("Generated case data JSON (%d bytes)", len(data))
	}
	if len(sourceData.GDP) > 0 {
		data, _ := json.MarshalIndent(sourceData.GDP, "", "  ")
		files.JSONFiles["gdp_data.json"] = data
		logger.Debugf("Generated GDP data JSON (%d bytes)", len(data))
	}
	if len(sourceData.News) > 0 {
		data, _ := json.MarshalIndent(sourceData.News, "", "  ")
		files.JSONFiles["news.json"] = data
		logger.Debugf("Generated news JSON (%d bytes)", len(data))
	}
	return nil
}

// generateSummaryJSON stores the normalized summary alongside the page
func (fg *FileGenerator) generateSummaryJSON(summary *models.PandemicSummary, files *GeneratedFiles) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	files.JSONFiles["summary.json"] = data
	return nil
}

// generateTrendPNG renders the default country's static trend chart into a
// temp dir and folds the bytes into the asset set
func (fg *FileGenerator) generateTrendPNG(table *dataset.Table, subject string, window int, files *GeneratedFiles) error {
	tempDir, err := os.MkdirTemp("", fmt.Sprintf("covidcast_chart_%d", time.Now().Unix()))
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pg := charts.NewPNGGenerator(tempDir)
	path, err := pg.GenerateCountryTrendPNG(table, subject, window)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read generated chart: %w", err)
	}
	files.AssetFiles[filepath.Base(path)] = data
	logger.Debugf("Generated trend chart PNG (%d bytes)", len(data))
	return nil
}
