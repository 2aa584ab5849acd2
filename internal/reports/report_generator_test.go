package reports

import (
	"context"
	"strings"
	"testing"

	"covidcast/internal/config"
	"covidcast/internal/fetchers"
	"covidcast/internal/mocks"
	"covidcast/internal/storage"
)

func mockPipelineInputs(t *testing.T) (*config.Config, *mocks.MockService) {
	t.Helper()
	cfg := &config.Config{
		DefaultCountry: "United States of America",
		RollingWindow:  7,
		TopCountries:   5,
		Series:         []string{"New_cases", "New_deaths", "Cumulative_cases", "Cumulative_deaths"},
		MockupMode:     true,
	}
	return cfg, mocks.NewMockService()
}

func TestGenerateReportFromMockData(t *testing.T) {
	cfg, mockService := mockPipelineInputs(t)
	sourceData, err := mockService.LoadMockSourceData()
	if err != nil {
		t.Fatalf("LoadMockSourceData failed: %v", err)
	}
	table, summary := fetchers.Normalize(sourceData, cfg.DefaultCountry, cfg.TopCountries)

	rg, err := NewReportGenerator(cfg.RollingWindow, cfg.Series)
	if err != nil {
		t.Fatalf("NewReportGenerator failed: %v", err)
	}

	markdown := ComposeMarkdown(summary, "")
	html, err := rg.GenerateReport(table, summary, markdown)
	if err != nil {
		t.Fatalf("GenerateReport failed: %v", err)
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"COVID-19 Situation Report",
		"country-explorer",
		"echarts.min.js",
		"Hardest-hit countries",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report page missing %q", want)
		}
	}
}

func TestComposeMarkdown(t *testing.T) {
	_, mockService := mockPipelineInputs(t)
	sourceData, err := mockService.LoadMockSourceData()
	if err != nil {
		t.Fatalf("LoadMockSourceData failed: %v", err)
	}
	_, summary := fetchers.Normalize(sourceData, "Italy", 3)

	md := ComposeMarkdown(summary, "")
	if !strings.Contains(md, "## Situation as of") {
		t.Error("markdown missing situation heading")
	}
	if !strings.Contains(md, "| Country |") {
		t.Error("markdown missing country table")
	}
	if !strings.Contains(md, "Latest outbreak news") {
		t.Error("markdown missing news section")
	}
	if strings.Contains(md, "Analyst Commentary") {
		t.Error("commentary section should be absent without commentary")
	}

	withCommentary := ComposeMarkdown(summary, "Things are developing.")
	if !strings.Contains(withCommentary, "## Analyst Commentary") {
		t.Error("commentary section missing")
	}
	if !strings.Contains(withCommentary, "Things are developing.") {
		t.Error("commentary text missing")
	}
}

func TestGenerateAllFiles(t *testing.T) {
	cfg, mockService := mockPipelineInputs(t)
	sourceData, err := mockService.LoadMockSourceData()
	if err != nil {
		t.Fatalf("LoadMockSourceData failed: %v", err)
	}
	table, summary := fetchers.Normalize(sourceData, cfg.DefaultCountry, cfg.TopCountries)

	rg, err := NewReportGenerator(cfg.RollingWindow, cfg.Series)
	if err != nil {
		t.Fatalf("NewReportGenerator failed: %v", err)
	}

	fg := NewFileGenerator(rg)
	files, err := fg.GenerateAllFiles(table, summary, sourceData, ComposeMarkdown(summary, ""), cfg.DefaultCountry, cfg.RollingWindow)
	if err != nil {
		t.Fatalf("GenerateAllFiles failed: %v", err)
	}

	if files.HTMLContent == "" {
		t.Error("HTML content is empty")
	}
	for _, name := range []string{"covid_data.json", "gdp_data.json", "news.json", "summary.json"} {
		if len(files.JSONFiles[name]) == 0 {
			t.Errorf("missing JSON artifact %s", name)
		}
	}
	if len(files.AssetFiles["report.md"]) == 0 {
		t.Error("missing markdown artifact")
	}
	if files.FolderPath == "" {
		t.Error("missing folder path")
	}
}

func TestGenerateCompleteReportMockMode(t *testing.T) {
	cfg, mockService := mockPipelineInputs(t)
	cfg.LocalReportsDir = t.TempDir()

	rg, err := NewReportGenerator(cfg.RollingWindow, cfg.Series)
	if err != nil {
		t.Fatalf("NewReportGenerator failed: %v", err)
	}

	client, err := storage.NewLocalStorageClient(cfg.LocalReportsDir)
	if err != nil {
		t.Fatalf("NewLocalStorageClient failed: %v", err)
	}
	orchestrator := NewStorageOrchestrator(client)

	result, err := rg.GenerateCompleteReport(context.Background(), cfg, nil, nil, mockService, orchestrator)
	if err != nil {
		t.Fatalf("GenerateCompleteReport failed: %v", err)
	}

	if result["status"] != "success" {
		t.Errorf("status = %v", result["status"])
	}

	latest, err := client.GetLatestReport()
	if err != nil {
		t.Fatalf("no report stored: %v", err)
	}
	page, err := client.GetFile(context.Background(), latest)
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if !strings.Contains(string(page), "country-explorer") {
		t.Error("stored page missing the country explorer")
	}
	// mock mode includes the canned commentary
	if !strings.Contains(string(page), "Analyst Commentary") {
		t.Error("stored page missing the commentary section")
	}
}

func TestFormatMetric(t *testing.T) {
	if got := formatMetric(nil); got != "n/a" {
		t.Errorf("formatMetric(nil) = %q", got)
	}
	v := 1234567.0
	if got := formatMetric(&v); got != "1,234,567" {
		t.Errorf("formatMetric = %q", got)
	}
}

func TestGroupDigits(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		1234567: "1,234,567",
	}
	for in, want := range cases {
		if got := groupDigits(in); got != want {
			t.Errorf("groupDigits(%d) = %q, want %q", in, got, want)
		}
	}
}
