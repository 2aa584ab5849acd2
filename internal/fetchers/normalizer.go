package fetchers

import (
	"sort"
	"time"

	"covidcast/internal/dataset"
	"covidcast/internal/models"
)

// Normalize joins the raw source payloads into the chart-ready table and the
// headline summary
func Normalize(source *models.SourceData, defaultSubject string, topN int) (*dataset.Table, *models.PandemicSummary) {
	table := dataset.New(source.Covid, source.GDP, defaultSubject)
	summary := buildSummary(table, source.News, topN)
	return table, summary
}

// buildSummary derives per-country latest figures and global totals from the
// joined table. A figure nobody reported stays nil in the summary too.
func buildSummary(table *dataset.Table, news []models.NewsItem, topN int) *models.PandemicSummary {
	summary := &models.PandemicSummary{
		Timestamp:  time.Now().UTC(),
		LatestDate: table.LatestDate(),
		Headlines:  news,
	}

	latestDay := table.LatestDate()
	var globalNew, globalCases, globalDeaths *float64

	for _, subject := range table.Subjects() {
		rows, err := table.SubjectRows(subject)
		if err != nil || len(rows) == 0 {
			continue
		}

		cs := models.CountrySummary{Country: subject}
		// cumulative figures carry forward, so take the last reported one
		for i := len(rows) - 1; i >= 0; i-- {
			if cs.CumulativeCases == nil && rows[i].CumulativeCases != nil {
				cs.CumulativeCases = rows[i].CumulativeCases
			}
			if cs.CumulativeDeaths == nil && rows[i].CumulativeDeaths != nil {
				cs.CumulativeDeaths = rows[i].CumulativeDeaths
			}
			if cs.CumulativeCases != nil && cs.CumulativeDeaths != nil {
				break
			}
		}
		if gdp, ok := table.GDPPerCapita(subject); ok {
			cs.GDPPerCapita = models.Float(gdp)
		}
		cs.CountryCode = table.CountryCode(subject)

		last := rows[len(rows)-1]
		if last.Date.Equal(latestDay) && last.NewCases != nil {
			globalNew = addTo(globalNew, *last.NewCases)
		}
		if cs.CumulativeCases != nil {
			globalCases = addTo(globalCases, *cs.CumulativeCases)
		}
		if cs.CumulativeDeaths != nil {
			globalDeaths = addTo(globalDeaths, *cs.CumulativeDeaths)
		}

		summary.Countries = append(summary.Countries, cs)
	}

	summary.GlobalNewCases = globalNew
	summary.CumulativeCases = globalCases
	summary.CumulativeDeaths = globalDeaths
	summary.TopCountries = rankByCases(summary.Countries, topN)
	return summary
}

// rankByCases returns the topN countries by cumulative cases, descending.
// Countries that never reported cases rank last.
func rankByCases(countries []models.CountrySummary, topN int) []models.CountrySummary {
	ranked := make([]models.CountrySummary, len(countries))
	copy(ranked, countries)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].CumulativeCases, ranked[j].CumulativeCases
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func addTo(sum *float64, v float64) *float64 {
	if sum == nil {
		return &v
	}
	total := *sum + v
	return &total
}
