package charts

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"covidcast/internal/models"
)

// TopCountriesChart renders a bar chart of the hardest-hit countries by
// cumulative cases, using the pre-ranked list from the summary
func TopCountriesChart(summary *models.PandemicSummary) (string, error) {
	if len(summary.TopCountries) == 0 {
		return "", fmt.Errorf("summary has no ranked countries")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "900px",
			Height: "450px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Top %d Countries by Cumulative Cases", len(summary.TopCountries)),
			Subtitle: fmt.Sprintf("As of %s", summary.LatestDate.Format("2006-01-02")),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Country",
			AxisLabel: &opts.AxisLabel{Rotate: 45, Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Cases",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
	)

	xAxis := make([]string, 0, len(summary.TopCountries))
	caseData := make([]opts.BarData, 0, len(summary.TopCountries))
	deathData := make([]opts.BarData, 0, len(summary.TopCountries))
	for _, c := range summary.TopCountries {
		xAxis = append(xAxis, c.CountryCode)
		var cases, deaths float64
		if c.CumulativeCases != nil {
			cases = *c.CumulativeCases
		}
		if c.CumulativeDeaths != nil {
			deaths = *c.CumulativeDeaths
		}
		caseData = append(caseData, opts.BarData{Value: cases})
		deathData = append(deathData, opts.BarData{Value: deaths})
	}

	bar.SetXAxis(xAxis).
		AddSeries("Cumulative cases", caseData).
		AddSeries("Cumulative deaths", deathData)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render top countries chart: %w", err)
	}
	return buf.String(), nil
}
