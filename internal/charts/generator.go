package charts

import (
	"fmt"

	"covidcast/internal/dataset"
	"covidcast/internal/logger"
	"covidcast/internal/models"
)

// ReportCharts holds every chart fragment the report page embeds
type ReportCharts struct {
	Explorer     *ChartSnippet
	GDPScatter   *ChartSnippet
	Histogram    *ChartSnippet
	TopCountries string
	GlobalTrend  string
}

// Generator builds the full chart set for a report
type Generator struct {
	window      int
	seriesNames []string
}

// NewGenerator creates a chart generator. The rolling window is validated
// once here so a bad configuration fails before any data work starts.
func NewGenerator(window int, seriesNames []string) (*Generator, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rolling window must be positive, got %d", window)
	}
	if len(seriesNames) == 0 {
		return nil, fmt.Errorf("at least one series name is required")
	}
	return &Generator{window: window, seriesNames: seriesNames}, nil
}

// GenerateCharts builds all interactive chart fragments for the report.
// The country explorer is mandatory; the supplementary charts degrade to
// placeholders if their data is unusable.
func (g *Generator) GenerateCharts(table *dataset.Table, summary *models.PandemicSummary) (*ReportCharts, error) {
	defs, err := SeriesDefsFromNames(g.seriesNames)
	if err != nil {
		return nil, fmt.Errorf("invalid series configuration: %w", err)
	}

	assembler, err := NewAssembler(table, g.window)
	if err != nil {
		return nil, err
	}
	spec, err := assembler.Assemble("Country Explorer", defs)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble country explorer: %w", err)
	}
	explorer, err := RenderExplorer("country-explorer", spec)
	if err != nil {
		return nil, fmt.Errorf("failed to render country explorer: %w", err)
	}
	logger.Infof("Assembled country explorer: %d traces, %d subjects", len(spec.Traces), len(spec.SubjectSelector.Entries))

	result := &ReportCharts{Explorer: explorer}

	if scatter, err := GDPScatterChart(summary); err != nil {
		logger.Warnf("GDP scatter chart unavailable: %v", err)
	} else {
		result.GDPScatter = scatter
	}

	if hist, err := DeathsHistogram(summary); err != nil {
		logger.Warnf("Deaths histogram unavailable: %v", err)
	} else {
		result.Histogram = hist
	}

	if top, err := TopCountriesChart(summary); err != nil {
		logger.Warnf("Top countries chart unavailable: %v", err)
	} else {
		result.TopCountries = top
	}

	dates, cases, err := table.GlobalSeries(dataset.ColNewCases)
	if err != nil {
		return nil, err
	}
	_, deaths, err := table.GlobalSeries(dataset.ColNewDeaths)
	if err != nil {
		return nil, err
	}
	if trend, err := GlobalTrendChart(dates, cases, deaths, g.window); err != nil {
		logger.Warnf("Global trend chart unavailable: %v", err)
	} else {
		result.GlobalTrend = trend
	}

	return result, nil
}
