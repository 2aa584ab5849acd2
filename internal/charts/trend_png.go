package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"covidcast/internal/dataset"
)

// PNGGenerator creates static chart images for the report archive
type PNGGenerator struct {
	outputDir string
}

// NewPNGGenerator creates a PNG chart generator writing into outputDir
func NewPNGGenerator(outputDir string) *PNGGenerator {
	return &PNGGenerator{outputDir: outputDir}
}

// GenerateCountryTrendPNG renders one country's smoothed new-cases series as
// a PNG file and returns its path. Runs of missing data split the line into
// separate segments so gaps stay visible breaks.
func (pg *PNGGenerator) GenerateCountryTrendPNG(table *dataset.Table, subject string, window int) (string, error) {
	rows, err := table.SubjectRows(subject)
	if err != nil {
		return "", err
	}
	raw, err := dataset.Values(rows, dataset.ColNewCases)
	if err != nil {
		return "", err
	}
	smoothed, err := dataset.RollingMean(raw, window)
	if err != nil {
		return "", err
	}

	segments := contiguousSegments(rows, smoothed)
	if len(segments) == 0 {
		return "", fmt.Errorf("no plottable data for %s", subject)
	}

	lineColor := drawing.Color{R: 51, G: 102, B: 204, A: 255}
	series := make([]chart.Series, 0, len(segments))
	for i, seg := range segments {
		name := ""
		if i == 0 {
			name = fmt.Sprintf("New cases (%d-day avg)", window)
		}
		series = append(series, chart.TimeSeries{
			Name: name,
			Style: chart.Style{
				StrokeColor: lineColor,
				StrokeWidth: 2,
			},
			XValues: seg.x,
			YValues: seg.y,
		})
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("%s Daily New Cases", subject),
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   70,
				Right:  20,
				Bottom: 60,
			},
		},
		Height: 350,
		Width:  700,
		XAxis: chart.XAxis{
			Name: "Date",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 9,
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return chart.TimeFromFloat64(f).Format("2006-01")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Cases",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
		Series: series,
	}

	filename := filepath.Join(pg.outputDir, fmt.Sprintf("%s_trend.png", sanitizeID(subject)))
	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create trend chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render trend chart: %w", err)
	}
	return filename, nil
}

type segment struct {
	x []time.Time
	y []float64
}

// contiguousSegments splits the series at every gap. go-chart has no notion
// of a null point, so each run of present values becomes its own series.
func contiguousSegments(rows []dataset.Row, values []*float64) []segment {
	var segs []segment
	var cur segment
	for i, v := range values {
		if v == nil {
			if len(cur.x) > 1 {
				segs = append(segs, cur)
			}
			cur = segment{}
			continue
		}
		cur.x = append(cur.x, rows[i].Date)
		cur.y = append(cur.y, *v)
	}
	if len(cur.x) > 1 {
		segs = append(segs, cur)
	}
	return segs
}
