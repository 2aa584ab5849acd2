package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"covidcast/internal/models"
)

// GDPScatterChart plots GDP per capita against cumulative deaths per country,
// with an OLS fit line over the points that have both values
func GDPScatterChart(summary *models.PandemicSummary) (*ChartSnippet, error) {
	var xs, ys []float64
	points := make([][]interface{}, 0, len(summary.Countries))
	for _, c := range summary.Countries {
		if c.GDPPerCapita == nil || c.CumulativeDeaths == nil {
			continue
		}
		gdp := *c.GDPPerCapita
		deaths := *c.CumulativeDeaths
		if gdp <= 0 || deaths < 0 {
			continue
		}
		xs = append(xs, gdp)
		ys = append(ys, deaths)
		points = append(points, []interface{}{gdp, deaths, c.Country})
	}
	if len(points) < 3 {
		return nil, fmt.Errorf("not enough countries with both GDP and deaths data (%d)", len(points))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r := stat.Correlation(xs, ys, nil)

	minX, maxX := xs[0], xs[0]
	for _, v := range xs {
		minX = math.Min(minX, v)
		maxX = math.Max(maxX, v)
	}
	fit := fitLinePoints(alpha, beta, minX, maxX, fitSamples)

	option := map[string]interface{}{
		"title": map[string]interface{}{
			"text":    "GDP per capita vs cumulative deaths",
			"subtext": fmt.Sprintf("Pearson r = %.2f across %d countries", r, len(points)),
			"left":    "center",
		},
		"tooltip": map[string]interface{}{
			"trigger":   "item",
			"formatter": "{@[2]}<br/>GDP: {@[0]}<br/>Deaths: {@[1]}",
		},
		"xAxis": map[string]interface{}{
			"type": "log",
			"name": "GDP per capita (USD)",
		},
		"yAxis": map[string]interface{}{
			"type": "value",
			"name": "Cumulative deaths",
		},
		"series": []map[string]interface{}{
			{
				"name":       "Countries",
				"type":       "scatter",
				"data":       points,
				"symbolSize": 8,
				"itemStyle":  map[string]interface{}{"color": "#5470c6", "opacity": 0.7},
			},
			{
				"name":       "Linear fit",
				"type":       "line",
				"data":       fit,
				"showSymbol": false,
				"lineStyle":  map[string]interface{}{"color": "#ee6666", "type": "dashed"},
			},
		},
	}

	return renderOptionSnippet("gdp-scatter", "GDP vs outcomes", option)
}

const fitSamples = 50

// fitLinePoints samples the fit y = alpha + beta*x at n+1 positions spaced
// geometrically between minX and maxX, so the line stays true to the fit on
// the log-scaled x-axis.
func fitLinePoints(alpha, beta, minX, maxX float64, n int) [][]interface{} {
	if n < 1 || minX <= 0 || maxX <= minX {
		return [][]interface{}{
			{minX, alpha + beta*minX},
			{maxX, alpha + beta*maxX},
		}
	}
	logMin, logMax := math.Log(minX), math.Log(maxX)
	points := make([][]interface{}, 0, n+1)
	for i := 0; i <= n; i++ {
		x := math.Exp(logMin + (logMax-logMin)*float64(i)/float64(n))
		points = append(points, []interface{}{x, alpha + beta*x})
	}
	return points
}

// RegressionLine exposes the fit parameters for the report commentary
func RegressionLine(summary *models.PandemicSummary) (alpha, beta, r float64, n int) {
	var xs, ys []float64
	for _, c := range summary.Countries {
		if c.GDPPerCapita == nil || c.CumulativeDeaths == nil || *c.GDPPerCapita <= 0 {
			continue
		}
		xs = append(xs, *c.GDPPerCapita)
		ys = append(ys, *c.CumulativeDeaths)
	}
	if len(xs) < 2 {
		return 0, 0, 0, len(xs)
	}
	alpha, beta = stat.LinearRegression(xs, ys, nil, false)
	r = stat.Correlation(xs, ys, nil)
	return alpha, beta, r, len(xs)
}
