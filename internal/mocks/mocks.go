package mocks

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"covidcast/internal/fetchers"
	"covidcast/internal/models"
)

//go:embed testdata/sample_covid.csv
var sampleCovidCSV []byte

//go:embed testdata/sample_gdp.csv
var sampleGDPCSV []byte

//go:embed testdata/sample_news.xml
var sampleNewsXML []byte

//go:embed testdata/sample_commentary.md
var sampleCommentary []byte

// MockService serves embedded sample data so the report pipeline can run
// without network access or API keys
type MockService struct{}

// NewMockService creates a new mock service
func NewMockService() *MockService {
	return &MockService{}
}

// LoadMockSourceData parses the embedded sample sources through the same
// parsers the live fetchers use
func (m *MockService) LoadMockSourceData() (*models.SourceData, error) {
	covid, err := fetchers.ParseCovidCSV(bytes.NewReader(sampleCovidCSV))
	if err != nil {
		return nil, fmt.Errorf("failed to parse mock case data: %w", err)
	}
	gdp, err := fetchers.ParseGDPCSV(bytes.NewReader(sampleGDPCSV))
	if err != nil {
		return nil, fmt.Errorf("failed to parse mock GDP data: %w", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(sampleNewsXML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse mock news feed: %w", err)
	}
	var news []models.NewsItem
	for _, item := range feed.Items {
		published := time.Time{}
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}
		news = append(news, models.NewsItem{
			Title:     item.Title,
			Link:      item.Link,
			Published: published,
		})
	}

	return &models.SourceData{
		Covid: covid,
		GDP:   gdp,
		News:  news,
	}, nil
}

// LoadMockCommentary returns the canned analyst commentary
func (m *MockService) LoadMockCommentary() (string, error) {
	return string(sampleCommentary), nil
}
