package fetchers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"covidcast/internal/logger"
	"covidcast/internal/models"
)

// Column headers of the daily case reporting CSV
const (
	colDateReported     = "Date_reported"
	colCountryCode      = "Country_code"
	colCountry          = "Country"
	colWHORegion        = "WHO_region"
	colNewCases         = "New_cases"
	colCumulativeCases  = "Cumulative_cases"
	colNewDeaths        = "New_deaths"
	colCumulativeDeaths = "Cumulative_deaths"
)

// fetchCovidData downloads and parses the daily case reporting CSV.
// Empty numeric cells become nil, never zero: a country that skipped a
// reporting day must render as a gap.
func (f *DataFetcher) fetchCovidData(ctx context.Context, url string) ([]models.CovidRecord, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/csv").
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch case data: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("case data source returned status %d", resp.StatusCode())
	}

	return ParseCovidCSV(strings.NewReader(string(resp.Body())))
}

// ParseCovidCSV parses the case reporting CSV by header name, so column
// reordering upstream does not break the import
func ParseCovidCSV(r io.Reader) ([]models.CovidRecord, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read case data header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, required := range []string{colDateReported, colCountryCode, colCountry} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("case data missing required column %q", required)
		}
	}

	var records []models.CovidRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		date, err := time.Parse("2006-01-02", cell(row, idx, colDateReported))
		if err != nil {
			skipped++
			continue
		}

		records = append(records, models.CovidRecord{
			Date:             date,
			CountryCode:      cell(row, idx, colCountryCode),
			Country:          cell(row, idx, colCountry),
			WHORegion:        cell(row, idx, colWHORegion),
			NewCases:         numericCell(row, idx, colNewCases),
			CumulativeCases:  numericCell(row, idx, colCumulativeCases),
			NewDeaths:        numericCell(row, idx, colNewDeaths),
			CumulativeDeaths: numericCell(row, idx, colCumulativeDeaths),
		})
	}

	if skipped > 0 {
		logger.Warnf("Skipped %d unparseable case data rows", skipped)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("case data contained no parseable rows")
	}
	return records, nil
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// numericCell parses a numeric cell, returning nil for empty or malformed
// values rather than substituting zero
func numericCell(row []string, idx map[string]int, name string) *float64 {
	s := cell(row, idx, name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
