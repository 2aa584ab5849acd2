package charts

import (
	"fmt"
	"math"

	"covidcast/internal/models"
)

// DeathsHistogram bins countries by cumulative deaths (log10 scale) to show
// how outcomes are distributed across the world
func DeathsHistogram(summary *models.PandemicSummary) (*ChartSnippet, error) {
	var values []float64
	for _, c := range summary.Countries {
		if c.CumulativeDeaths == nil || *c.CumulativeDeaths <= 0 {
			continue
		}
		values = append(values, math.Log10(*c.CumulativeDeaths))
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no countries with positive cumulative deaths")
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	const bins = 12
	width := (maxV - minV) / bins
	if width == 0 {
		width = 1
	}
	counts := make([]int, bins)
	labels := make([]string, bins)
	for _, v := range values {
		idx := int((v - minV) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	for i := range labels {
		lo := math.Pow(10, minV+float64(i)*width)
		labels[i] = humanCount(lo)
	}

	option := map[string]interface{}{
		"title": map[string]interface{}{
			"text":    "Distribution of cumulative deaths",
			"subtext": fmt.Sprintf("%d countries, log scale bins", len(values)),
			"left":    "center",
		},
		"tooltip": map[string]interface{}{"trigger": "axis"},
		"xAxis": map[string]interface{}{
			"type": "category",
			"data": labels,
			"name": "Deaths (bin lower bound)",
		},
		"yAxis": map[string]interface{}{
			"type": "value",
			"name": "Countries",
		},
		"series": []map[string]interface{}{
			{
				"name":      "Countries",
				"type":      "bar",
				"data":      counts,
				"barWidth":  "90%",
				"itemStyle": map[string]interface{}{"color": "#91cc75"},
			},
		},
	}

	return renderOptionSnippet("deaths-histogram", "Outcome distribution", option)
}

// humanCount abbreviates a count for axis labels
func humanCount(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.0fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
