package reports

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"covidcast/internal/charts"
	"covidcast/internal/config"
	"covidcast/internal/models"
)

// HTMLBuilder handles HTML generation with goldmark
type HTMLBuilder struct {
	goldmark goldmark.Markdown
	tmpl     *template.Template
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(), // Allow raw HTML in markdown
		),
	)

	return &HTMLBuilder{
		goldmark: md,
		tmpl:     template.Must(template.New("report").Parse(reportTemplate)),
	}
}

// TemplateData represents the data structure for the HTML template
type TemplateData struct {
	Date             string
	GeneratedAt      string
	Version          string
	CountryCount     string
	GlobalNewCases   string
	CumulativeCases  string
	CumulativeDeaths string
	Content          template.HTML

	EChartsHeader     template.HTML
	ExplorerChart     template.HTML
	GlobalTrendChart  template.HTML
	TopCountriesChart template.HTML
	GDPScatterChart   template.HTML
	HistogramChart    template.HTML
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// BuildCompleteHTML assembles the final report page from the converted
// markdown content, the headline figures, and the chart fragments
func (h *HTMLBuilder) BuildCompleteHTML(markdownContent string, summary *models.PandemicSummary, chartSet *charts.ReportCharts) (string, error) {
	content, err := h.ConvertMarkdownToHTML(markdownContent)
	if err != nil {
		return "", err
	}

	data := TemplateData{
		Date:             summary.LatestDate.Format("2006-01-02"),
		GeneratedAt:      summary.Timestamp.Format("2006-01-02 15:04 UTC"),
		Version:          config.GetVersion(),
		CountryCount:     fmt.Sprintf("%d", len(summary.Countries)),
		GlobalNewCases:   formatMetric(summary.GlobalNewCases),
		CumulativeCases:  formatMetric(summary.CumulativeCases),
		CumulativeDeaths: formatMetric(summary.CumulativeDeaths),
		Content:          template.HTML(content),
		EChartsHeader:    template.HTML(charts.EChartsHeader()),
	}
	if chartSet != nil {
		if chartSet.Explorer != nil {
			data.ExplorerChart = template.HTML(chartSet.Explorer.HTML)
		}
		if chartSet.GDPScatter != nil {
			data.GDPScatterChart = template.HTML(chartSet.GDPScatter.HTML)
		}
		if chartSet.Histogram != nil {
			data.HistogramChart = template.HTML(chartSet.Histogram.HTML)
		}
		data.GlobalTrendChart = template.HTML(chartSet.GlobalTrend)
		data.TopCountriesChart = template.HTML(chartSet.TopCountries)
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.String(), nil
}

// formatMetric renders a headline figure, showing a dash when nobody
// reported the figure at all
func formatMetric(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return groupDigits(int64(*v))
}

// groupDigits formats an integer with comma separators
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
