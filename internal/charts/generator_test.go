package charts

import (
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"covidcast/internal/models"
)

func testSummary() *models.PandemicSummary {
	countries := []models.CountrySummary{
		{Country: "Aland", CountryCode: "AA", CumulativeCases: models.Float(800), CumulativeDeaths: models.Float(40), GDPPerCapita: models.Float(45000)},
		{Country: "Borland", CountryCode: "BB", CumulativeCases: models.Float(1600), CumulativeDeaths: models.Float(80), GDPPerCapita: models.Float(30000)},
		{Country: "Cogland", CountryCode: "CC", CumulativeCases: models.Float(2400), CumulativeDeaths: models.Float(160), GDPPerCapita: models.Float(15000)},
		{Country: "Dataland", CountryCode: "DD", CumulativeCases: models.Float(3200), CumulativeDeaths: models.Float(320), GDPPerCapita: models.Float(8000)},
		{Country: "Errland", CountryCode: "EE", CumulativeCases: models.Float(500), CumulativeDeaths: nil, GDPPerCapita: nil},
	}
	return &models.PandemicSummary{
		Timestamp:        time.Now().UTC(),
		LatestDate:       time.Date(2020, 3, 8, 0, 0, 0, 0, time.UTC),
		Countries:        countries,
		GlobalNewCases:   models.Float(100),
		CumulativeCases:  models.Float(8500),
		CumulativeDeaths: models.Float(600),
		TopCountries:     countries[:4],
	}
}

func TestGenerateChartsFullSet(t *testing.T) {
	gen, err := NewGenerator(3, []string{"New_cases", "New_deaths"})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	result, err := gen.GenerateCharts(testTable(), testSummary())
	if err != nil {
		t.Fatalf("GenerateCharts failed: %v", err)
	}

	if result.Explorer == nil {
		t.Fatal("explorer snippet is mandatory")
	}
	if result.GDPScatter == nil {
		t.Error("expected GDP scatter snippet")
	}
	if result.Histogram == nil {
		t.Error("expected histogram snippet")
	}
	if result.TopCountries == "" {
		t.Error("expected top countries chart")
	}
	if result.GlobalTrend == "" {
		t.Error("expected global trend chart")
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	if _, err := NewGenerator(0, []string{"New_cases"}); err == nil {
		t.Error("expected error for zero window")
	}
	if _, err := NewGenerator(7, nil); err == nil {
		t.Error("expected error for empty series list")
	}
}

func TestGenerateChartsRejectsUnknownSeries(t *testing.T) {
	gen, err := NewGenerator(7, []string{"Recoveries"})
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	if _, err := gen.GenerateCharts(testTable(), testSummary()); err == nil {
		t.Fatal("expected error for unknown series name")
	}
}

func TestGDPScatterChart(t *testing.T) {
	snippet, err := GDPScatterChart(testSummary())
	if err != nil {
		t.Fatalf("GDPScatterChart failed: %v", err)
	}
	if !strings.Contains(snippet.HTML, "scatter") {
		t.Error("snippet missing scatter series")
	}
	if !strings.Contains(snippet.HTML, "Linear fit") {
		t.Error("snippet missing regression line")
	}
	// Errland has no GDP and must be excluded, not defaulted to zero
	if strings.Contains(snippet.HTML, "Errland") {
		t.Error("country without GDP should not appear in scatter")
	}
}

func TestGDPScatterChartTooFewPoints(t *testing.T) {
	summary := &models.PandemicSummary{
		Countries: []models.CountrySummary{
			{Country: "Aland", GDPPerCapita: models.Float(45000), CumulativeDeaths: models.Float(40)},
		},
	}
	if _, err := GDPScatterChart(summary); err == nil {
		t.Fatal("expected error with too few data points")
	}
}

func TestFitLinePointsGeometricSampling(t *testing.T) {
	alpha, beta := 100.0, 2.0
	points := fitLinePoints(alpha, beta, 100, 10000, 50)

	if len(points) != 51 {
		t.Fatalf("expected 51 samples, got %d", len(points))
	}

	first := points[0][0].(float64)
	mid := points[25][0].(float64)
	last := points[50][0].(float64)
	if math.Abs(first-100) > 1e-9 || math.Abs(last-10000) > 1e-9 {
		t.Errorf("endpoints = %v, %v; want 100, 10000", first, last)
	}
	// geometric spacing: the midpoint sits at sqrt(minX*maxX)
	if math.Abs(mid-1000) > 1e-6 {
		t.Errorf("midpoint = %v, want 1000", mid)
	}

	for _, p := range points {
		x := p[0].(float64)
		y := p[1].(float64)
		if math.Abs(y-(alpha+beta*x)) > 1e-6 {
			t.Fatalf("sample (%v, %v) is off the fit line", x, y)
		}
	}
}

func TestFitLinePointsDegenerateRange(t *testing.T) {
	points := fitLinePoints(1, 1, 50, 50, 50)
	if len(points) != 2 {
		t.Fatalf("expected endpoint fallback for a degenerate range, got %d points", len(points))
	}
}

func TestRegressionLine(t *testing.T) {
	_, beta, r, n := RegressionLine(testSummary())
	if n != 4 {
		t.Fatalf("regression used %d countries, want 4", n)
	}
	if beta >= 0 {
		t.Errorf("slope = %v, want negative (deaths fall as GDP rises in fixture)", beta)
	}
	if math.IsNaN(r) || r >= 0 {
		t.Errorf("correlation = %v, want negative", r)
	}
}

func TestDeathsHistogram(t *testing.T) {
	snippet, err := DeathsHistogram(testSummary())
	if err != nil {
		t.Fatalf("DeathsHistogram failed: %v", err)
	}
	if !strings.Contains(snippet.HTML, "bar") {
		t.Error("histogram must render as bars")
	}
}

func TestTopCountriesChart(t *testing.T) {
	html, err := TopCountriesChart(testSummary())
	if err != nil {
		t.Fatalf("TopCountriesChart failed: %v", err)
	}
	for _, code := range []string{"AA", "BB", "CC", "DD"} {
		if !strings.Contains(html, code) {
			t.Errorf("chart missing country %s", code)
		}
	}

	if _, err := TopCountriesChart(&models.PandemicSummary{}); err == nil {
		t.Error("expected error for empty ranking")
	}
}

func TestGlobalTrendChart(t *testing.T) {
	table := testTable()
	dates, cases, err := table.GlobalSeries("New_cases")
	if err != nil {
		t.Fatalf("GlobalSeries failed: %v", err)
	}
	_, deaths, err := table.GlobalSeries("New_deaths")
	if err != nil {
		t.Fatalf("GlobalSeries failed: %v", err)
	}

	html, err := GlobalTrendChart(dates, cases, deaths, 3)
	if err != nil {
		t.Fatalf("GlobalTrendChart failed: %v", err)
	}
	if !strings.Contains(html, "New cases") || !strings.Contains(html, "New deaths") {
		t.Error("chart missing series")
	}

	if _, err := GlobalTrendChart(dates, cases, deaths, 0); err == nil {
		t.Error("expected error for non-positive window")
	}
}

func TestGenerateCountryTrendPNG(t *testing.T) {
	dir := t.TempDir()
	pg := NewPNGGenerator(dir)

	path, err := pg.GenerateCountryTrendPNG(testTable(), "Aland", 3)
	if err != nil {
		t.Fatalf("GenerateCountryTrendPNG failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}

	if _, err := pg.GenerateCountryTrendPNG(testTable(), "Atlantis", 3); err == nil {
		t.Error("expected error for unknown country")
	}
}

func TestHumanCount(t *testing.T) {
	cases := map[float64]string{
		12:      "12",
		4300:    "4k",
		2500000: "2.5M",
	}
	for in, want := range cases {
		if got := humanCount(in); got != want {
			t.Errorf("humanCount(%v) = %q, want %q", in, got, want)
		}
	}
}
