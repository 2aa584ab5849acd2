package models

import "time"

// CovidRecord represents one country's reported COVID-19 figures for a single day.
// Numeric fields are pointers: a nil value means the country did not report
// that figure for that day, which is not the same as reporting zero.
type CovidRecord struct {
	Date             time.Time `json:"date"`
	CountryCode      string    `json:"country_code"`
	Country          string    `json:"country"`
	WHORegion        string    `json:"who_region"`
	NewCases         *float64  `json:"new_cases"`
	CumulativeCases  *float64  `json:"cumulative_cases"`
	NewDeaths        *float64  `json:"new_deaths"`
	CumulativeDeaths *float64  `json:"cumulative_deaths"`
}

// GDPRecord represents a country's GDP per capita for its most recent
// reported year (World Bank indicator NY.GDP.PCAP.CD)
type GDPRecord struct {
	Country      string  `json:"country"`
	CountryCode  string  `json:"country_code"`
	Year         int     `json:"year"`
	GDPPerCapita float64 `json:"gdp_per_capita"`
}

// NewsItem represents a headline from the outbreak news feed
type NewsItem struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
}

// SourceData holds the raw per-source payloads so they can be stored as
// report artifacts alongside the rendered HTML
type SourceData struct {
	Covid []CovidRecord `json:"covid"`
	GDP   []GDPRecord   `json:"gdp"`
	News  []NewsItem    `json:"news"`
}

// PandemicSummary represents normalized headline figures derived from all
// sources. Global totals are nil when no country reported the figure at all.
type PandemicSummary struct {
	Timestamp        time.Time        `json:"timestamp"`
	LatestDate       time.Time        `json:"latest_date"`
	Countries        []CountrySummary `json:"countries"`
	GlobalNewCases   *float64         `json:"global_new_cases,omitempty"`  // latest reporting day
	CumulativeCases  *float64         `json:"cumulative_cases,omitempty"`  // all countries
	CumulativeDeaths *float64         `json:"cumulative_deaths,omitempty"` // all countries
	TopCountries     []CountrySummary `json:"top_countries"`               // by cumulative cases, descending
	Headlines        []NewsItem       `json:"headlines"`
}

// CountrySummary is one country's latest cumulative figures plus its GDP per
// capita when the join found one. Nil figures were never reported.
type CountrySummary struct {
	Country          string   `json:"country"`
	CountryCode      string   `json:"country_code"`
	CumulativeCases  *float64 `json:"cumulative_cases,omitempty"`
	CumulativeDeaths *float64 `json:"cumulative_deaths,omitempty"`
	GDPPerCapita     *float64 `json:"gdp_per_capita,omitempty"`
}

// Float returns a pointer to v, for building records in place
func Float(v float64) *float64 {
	return &v
}
