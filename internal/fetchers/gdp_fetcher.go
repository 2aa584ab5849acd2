package fetchers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"covidcast/internal/logger"
	"covidcast/internal/models"
)

// fetchGDPData downloads and parses the GDP per capita indicator CSV.
// Each country keeps only its most recent year with a reported value.
func (f *DataFetcher) fetchGDPData(ctx context.Context, url string) ([]models.GDPRecord, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv").
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch GDP data: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("GDP data source returned status %d", resp.StatusCode())
	}

	return ParseGDPCSV(strings.NewReader(string(resp.Body())))
}

// ParseGDPCSV parses the indicator CSV. The file starts with a few metadata
// lines before the real header row, and year columns run from the header's
// first four-digit column to the end.
func ParseGDPCSV(r io.Reader) ([]models.GDPRecord, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var header []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("GDP data has no header row")
		}
		if err != nil {
			continue
		}
		if len(row) > 0 && strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff")) == "Country Name" {
			header = row
			break
		}
	}

	firstYear := -1
	for i, name := range header {
		if _, err := strconv.Atoi(strings.TrimSpace(name)); err == nil {
			firstYear = i
			break
		}
	}
	if firstYear < 0 {
		return nil, fmt.Errorf("GDP data header has no year columns")
	}

	var records []models.GDPRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(row) < firstYear {
			continue
		}

		// walk years backwards to find the most recent reported value
		for i := len(row) - 1; i >= firstYear; i-- {
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			year, err := strconv.Atoi(strings.TrimSpace(header[i]))
			if err != nil {
				continue
			}
			records = append(records, models.GDPRecord{
				Country:      strings.TrimSpace(row[0]),
				CountryCode:  strings.TrimSpace(row[1]),
				Year:         year,
				GDPPerCapita: value,
			})
			break
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("GDP data contained no parseable rows")
	}
	logger.Debugf("Parsed GDP per capita for %d countries", len(records))
	return records, nil
}
