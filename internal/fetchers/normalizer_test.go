package fetchers

import (
	"strings"
	"testing"

	"covidcast/internal/models"
)

func sampleSourceData(t *testing.T) *models.SourceData {
	t.Helper()
	covid, err := ParseCovidCSV(strings.NewReader(sampleCovidCSV))
	if err != nil {
		t.Fatalf("ParseCovidCSV failed: %v", err)
	}
	gdp, err := ParseGDPCSV(strings.NewReader(sampleGDPCSV))
	if err != nil {
		t.Fatalf("ParseGDPCSV failed: %v", err)
	}
	return &models.SourceData{
		Covid: covid,
		GDP:   gdp,
		News:  []models.NewsItem{{Title: "Situation report"}},
	}
}

func TestNormalize(t *testing.T) {
	table, summary := Normalize(sampleSourceData(t), "United States of America", 10)

	subjects := table.Subjects()
	if len(subjects) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(subjects))
	}
	if subjects[0] != "United States of America" {
		t.Errorf("default subject not first: %v", subjects)
	}

	if len(summary.Countries) != 2 {
		t.Fatalf("expected 2 country summaries, got %d", len(summary.Countries))
	}
	if summary.LatestDate.Format("2006-01-02") != "2020-03-03" {
		t.Errorf("latest date = %v", summary.LatestDate)
	}
	if len(summary.Headlines) != 1 {
		t.Errorf("headlines = %d, want 1", len(summary.Headlines))
	}
}

func TestNormalizeJoinsGDPByName(t *testing.T) {
	// The GDP source uses three-letter codes and its own country names, so
	// the United States row only joins via the name fallback for Italy.
	table, _ := Normalize(sampleSourceData(t), "Italy", 10)

	if gdp, ok := table.GDPPerCapita("Italy"); !ok || gdp != 33190 {
		t.Errorf("Italy GDP = %v/%v, want 33190", gdp, ok)
	}
	// "United States" vs "United States of America" does not match either key
	if _, ok := table.GDPPerCapita("United States of America"); ok {
		t.Error("expected no GDP join for mismatched name and code")
	}
}

func TestBuildSummaryGlobalTotals(t *testing.T) {
	_, summary := Normalize(sampleSourceData(t), "Italy", 10)

	if summary.CumulativeCases == nil || *summary.CumulativeCases != 134+2602 {
		t.Errorf("global cumulative cases = %v, want %v", summary.CumulativeCases, 134+2602)
	}
	if summary.CumulativeDeaths == nil || *summary.CumulativeDeaths != 4+57 {
		t.Errorf("global cumulative deaths = %v, want %v", summary.CumulativeDeaths, 4+57)
	}
	// latest day new cases: US 45 + Italy 347
	if summary.GlobalNewCases == nil || *summary.GlobalNewCases != 45+347 {
		t.Errorf("global new cases = %v, want %v", summary.GlobalNewCases, 45+347)
	}
}

func TestRankByCases(t *testing.T) {
	countries := []models.CountrySummary{
		{Country: "A", CumulativeCases: models.Float(10)},
		{Country: "B", CumulativeCases: nil},
		{Country: "C", CumulativeCases: models.Float(300)},
		{Country: "D", CumulativeCases: models.Float(50)},
	}

	ranked := rankByCases(countries, 2)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked countries, got %d", len(ranked))
	}
	if ranked[0].Country != "C" || ranked[1].Country != "D" {
		t.Errorf("ranking = %q, %q, want C, D", ranked[0].Country, ranked[1].Country)
	}

	all := rankByCases(countries, 10)
	if len(all) != 4 {
		t.Fatalf("expected all countries, got %d", len(all))
	}
	if all[3].Country != "B" {
		t.Errorf("country without cases should rank last, got %q", all[3].Country)
	}

	// the input order is untouched
	if countries[0].Country != "A" {
		t.Error("rankByCases must not mutate its input")
	}
}

func TestNormalizeTopCountries(t *testing.T) {
	_, summary := Normalize(sampleSourceData(t), "Italy", 1)
	if len(summary.TopCountries) != 1 {
		t.Fatalf("expected 1 top country, got %d", len(summary.TopCountries))
	}
	if summary.TopCountries[0].Country != "Italy" {
		t.Errorf("top country = %q, want Italy", summary.TopCountries[0].Country)
	}
}
