package charts

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"covidcast/internal/dataset"
)

// GlobalTrendChart renders worldwide daily new cases and deaths as smoothed
// lines. Both series pass through the same rolling-mean transform as the
// country explorer, so gaps stay gaps.
func GlobalTrendChart(dates []string, newCases, newDeaths []*float64, window int) (string, error) {
	if len(dates) == 0 {
		return "", fmt.Errorf("no global data points")
	}

	smoothCases, err := dataset.RollingMean(newCases, window)
	if err != nil {
		return "", err
	}
	smoothDeaths, err := dataset.RollingMean(newDeaths, window)
	if err != nil {
		return "", err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "900px",
			Height: "450px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Global Daily Trend",
			Subtitle: fmt.Sprintf("%d-day rolling average", window),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Date",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Count",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
	)

	line.SetXAxis(dates).
		AddSeries("New cases", lineData(smoothCases)).
		AddSeries("New deaths", lineData(smoothDeaths)).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: false}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render global trend chart: %w", err)
	}
	return buf.String(), nil
}

// lineData converts nullable values to go-echarts points, keeping gaps as
// nil values rather than zeros
func lineData(values []*float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = opts.LineData{Value: nil}
			continue
		}
		out[i] = opts.LineData{Value: *v}
	}
	return out
}
