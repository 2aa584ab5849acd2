package fetchers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"covidcast/internal/models"
)

const maxHeadlines = 10

// fetchNews downloads the outbreak news RSS feed and keeps the most recent
// headlines, newest first
func (f *DataFetcher) fetchNews(ctx context.Context, url string) ([]models.NewsItem, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch news feed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	var items []models.NewsItem
	for _, item := range feed.Items {
		published := time.Time{}
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}
		items = append(items, models.NewsItem{
			Title:     item.Title,
			Link:      item.Link,
			Published: published,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})
	if len(items) > maxHeadlines {
		items = items[:maxHeadlines]
	}
	return items, nil
}
