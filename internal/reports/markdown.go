package reports

import (
	"fmt"
	"strings"

	"covidcast/internal/charts"
	"covidcast/internal/models"
)

// ComposeMarkdown builds the report narrative from the normalized figures.
// When LLM commentary is available it is appended as its own section, so a
// missing API key degrades to a fully computed report.
func ComposeMarkdown(summary *models.PandemicSummary, commentary string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("## Situation as of %s\n\n", summary.LatestDate.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("%d countries and territories reported figures. ", len(summary.Countries)))
	if summary.GlobalNewCases != nil {
		b.WriteString(fmt.Sprintf("On the latest reporting day, **%s new cases** were recorded worldwide. ", formatMetric(summary.GlobalNewCases)))
	}
	if summary.CumulativeCases != nil && summary.CumulativeDeaths != nil {
		b.WriteString(fmt.Sprintf("Cumulative totals stand at **%s cases** and **%s deaths**.",
			formatMetric(summary.CumulativeCases), formatMetric(summary.CumulativeDeaths)))
	}
	b.WriteString("\n\n")

	if len(summary.TopCountries) > 0 {
		b.WriteString("### Hardest-hit countries\n\n")
		b.WriteString("| Country | Cumulative cases | Cumulative deaths | GDP per capita |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, c := range summary.TopCountries {
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				c.Country,
				formatMetric(c.CumulativeCases),
				formatMetric(c.CumulativeDeaths),
				formatGDP(c.GDPPerCapita)))
		}
		b.WriteString("\n")
	}

	if _, beta, r, n := charts.RegressionLine(summary); n >= 3 {
		direction := "higher"
		if beta < 0 {
			direction = "lower"
		}
		b.WriteString("### Income and outcomes\n\n")
		b.WriteString(fmt.Sprintf(
			"Across the %d countries with both figures, higher GDP per capita is associated with %s cumulative deaths (Pearson r = %.2f). Correlation is not causation; reporting capacity itself varies with income.\n\n",
			n, direction, r))
	}

	if len(summary.Headlines) > 0 {
		b.WriteString("### Latest outbreak news\n\n")
		for _, item := range summary.Headlines {
			if item.Link != "" {
				b.WriteString(fmt.Sprintf("- [%s](%s)\n", item.Title, item.Link))
			} else {
				b.WriteString(fmt.Sprintf("- %s\n", item.Title))
			}
		}
		b.WriteString("\n")
	}

	if commentary != "" {
		b.WriteString("## Analyst Commentary\n\n")
		b.WriteString(commentary)
		b.WriteString("\n")
	}

	return b.String()
}

func formatGDP(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return "$" + groupDigits(int64(*v))
}
