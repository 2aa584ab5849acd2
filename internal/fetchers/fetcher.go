package fetchers

import (
	"context"
	"fmt"
	"time"

	"covidcast/internal/logger"
	"covidcast/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// DataFetcher handles fetching data from all external sources
type DataFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
}

// NewDataFetcher creates a new data fetcher instance
func NewDataFetcher() *DataFetcher {
	client := resty.New()
	client.SetTimeout(60 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)

	return &DataFetcher{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// FetchAllData fetches the case data, the GDP indicator, and the news feed
// concurrently. Case data is mandatory; GDP and news failures degrade the
// report instead of failing it.
func (f *DataFetcher) FetchAllData(ctx context.Context, covidURL, gdpURL, newsURL string) (*models.SourceData, error) {
	logger.Info("Starting data fetch from all sources...")

	covidChan := make(chan []models.CovidRecord, 1)
	gdpChan := make(chan []models.GDPRecord, 1)
	newsChan := make(chan []models.NewsItem, 1)
	errChan := make(chan error, 3)

	go func() {
		data, err := f.fetchCovidData(ctx, covidURL)
		if err != nil {
			errChan <- fmt.Errorf("case data fetch failed: %w", err)
			return
		}
		covidChan <- data
	}()

	go func() {
		data, err := f.fetchGDPData(ctx, gdpURL)
		if err != nil {
			errChan <- fmt.Errorf("GDP fetch failed: %w", err)
			return
		}
		gdpChan <- data
	}()

	go func() {
		data, err := f.fetchNews(ctx, newsURL)
		if err != nil {
			errChan <- fmt.Errorf("news fetch failed: %w", err)
			return
		}
		newsChan <- data
	}()

	var covidData []models.CovidRecord
	var gdpData []models.GDPRecord
	var newsData []models.NewsItem
	var covidErr error

	completed := 0
	for completed < 3 {
		select {
		case data := <-covidChan:
			covidData = data
			completed++
		case data := <-gdpChan:
			gdpData = data
			completed++
		case data := <-newsChan:
			newsData = data
			completed++
		case err := <-errChan:
			logger.Warnf("Data fetch error: %v", err)
			if covidErr == nil {
				covidErr = err
			}
			completed++
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if len(covidData) == 0 {
		if covidErr != nil {
			return nil, covidErr
		}
		return nil, fmt.Errorf("case data source returned no records")
	}

	logger.Infof("Fetched %d case records, %d GDP records, %d headlines",
		len(covidData), len(gdpData), len(newsData))

	return &models.SourceData{
		Covid: covidData,
		GDP:   gdpData,
		News:  newsData,
	}, nil
}
