package charts

import (
	"encoding/json"
	"fmt"

	"covidcast/internal/logger"
)

// ChartSnippet holds a rendered chart ready for embedding in the report page
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

const echartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// EChartsHeader returns the script tag the report page needs once,
// regardless of how many snippets it embeds
func EChartsHeader() string {
	return fmt.Sprintf(`<script src="%s"></script>`, echartsCDN)
}

// renderOptionSnippet turns a raw ECharts option into an embeddable snippet.
// The option is marshaled as-is, so callers control every chart detail.
func renderOptionSnippet(chartID, title string, option map[string]interface{}) (*ChartSnippet, error) {
	optionJSON, err := json.Marshal(option)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart option for %s: %w", chartID, err)
	}

	div := fmt.Sprintf(`<div id="%s" class="chart-container" style="width:100%%;height:420px;"></div>`, chartID)
	script := fmt.Sprintf(`<script>
(function() {
  var chart = echarts.init(document.getElementById('%s'));
  chart.setOption(%s);
  window.addEventListener('resize', function() { chart.resize(); });
})();
</script>`, chartID, optionJSON)

	logger.Debugf("Rendered chart snippet %s (%d bytes of option JSON)", chartID, len(optionJSON))

	return &ChartSnippet{
		ID:     chartID,
		Title:  title,
		Div:    div,
		Script: script,
		HTML:   div + "\n" + script,
	}, nil
}
