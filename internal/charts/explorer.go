package charts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// explorerPayload is the JSON bridge between the assembled chart spec and
// the embedded control script. Subject entries keep trace order so the
// script can replace series data positionally.
type explorerPayload struct {
	SeriesLabels []string            `json:"seriesLabels"`
	Visibility   [][]bool            `json:"visibility"`
	Subjects     []string            `json:"subjects"`
	Data         map[string][]TraceData `json:"data"`
	Default      string              `json:"default"`
	Active       int                 `json:"active"`
}

// RenderExplorer turns an assembled ChartSpec into a self-contained snippet:
// the chart div, a control strip, and a script wiring both control types.
// Series buttons only flip legend visibility; the subject dropdown replaces
// every trace's data in one setOption call. The tooltip reads the active
// subject's per-point labels, so it follows subject switches.
func RenderExplorer(chartID string, spec *ChartSpec) (*ChartSnippet, error) {
	option, err := explorerOption(spec)
	if err != nil {
		return nil, err
	}
	optionJSON, err := json.Marshal(option)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal explorer option: %w", err)
	}

	payload := explorerPayload{
		SeriesLabels: make([]string, 0, len(spec.SeriesSelector.Buttons)),
		Visibility:   make([][]bool, 0, len(spec.SeriesSelector.Buttons)),
		Subjects:     make([]string, 0, len(spec.SubjectSelector.Entries)),
		Data:         make(map[string][]TraceData, len(spec.SubjectSelector.Entries)),
		Default:      spec.DefaultSubject,
		Active:       spec.SeriesSelector.Active,
	}
	for _, b := range spec.SeriesSelector.Buttons {
		payload.SeriesLabels = append(payload.SeriesLabels, b.Label)
		payload.Visibility = append(payload.Visibility, b.Visibility)
	}
	for _, e := range spec.SubjectSelector.Entries {
		payload.Subjects = append(payload.Subjects, e.Subject)
		payload.Data[e.Subject] = e.Data
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal explorer payload: %w", err)
	}

	div := fmt.Sprintf(`<div class="explorer">
  <div class="explorer-controls">
    <span id="%[1]s-buttons" class="series-buttons"></span>
    <select id="%[1]s-subject" class="subject-select"></select>
  </div>
  <div id="%[1]s" class="chart-container" style="width:100%%;height:480px;"></div>
</div>`, chartID)

	script := fmt.Sprintf(`<script>
(function() {
  var chart = echarts.init(document.getElementById('%[1]s'));
  var payload = %[3]s;
  var current = payload.data[payload.default];
  chart.setOption(%[2]s);
  chart.setOption({tooltip: {formatter: function(params) {
    var items = Array.isArray(params) ? params : [params];
    return items.map(function(p) {
      return current[p.seriesIndex].labels[p.dataIndex];
    }).join('<br/>');
  }}});

  function selectedMap(visibility) {
    var sel = {};
    for (var i = 0; i < payload.seriesLabels.length; i++) {
      sel[payload.seriesLabels[i]] = visibility[i];
    }
    return sel;
  }

  var buttonsEl = document.getElementById('%[1]s-buttons');
  payload.seriesLabels.forEach(function(label, i) {
    var btn = document.createElement('button');
    btn.textContent = label;
    btn.className = i === payload.active ? 'active' : '';
    btn.addEventListener('click', function() {
      chart.setOption({legend: {selected: selectedMap(payload.visibility[i])}});
      buttonsEl.querySelectorAll('button').forEach(function(b) { b.className = ''; });
      btn.className = 'active';
    });
    buttonsEl.appendChild(btn);
  });

  var subjectEl = document.getElementById('%[1]s-subject');
  payload.subjects.forEach(function(name) {
    var opt = document.createElement('option');
    opt.value = name;
    opt.textContent = name;
    if (name === payload.default) { opt.selected = true; }
    subjectEl.appendChild(opt);
  });
  subjectEl.addEventListener('change', function() {
    var entry = payload.data[subjectEl.value];
    if (!entry) {
      console.error('unknown subject: ' + subjectEl.value);
      return;
    }
    current = entry;
    chart.setOption({
      xAxis: {data: entry[0].x},
      series: entry.map(function(d) { return {data: d.y}; })
    });
  });

  window.addEventListener('resize', function() { chart.resize(); });
})();
</script>`, chartID, optionJSON, payloadJSON)

	return &ChartSnippet{
		ID:     chartID,
		Title:  spec.Title,
		Div:    div,
		Script: script,
		HTML:   div + "\n" + script,
	}, nil
}

// explorerOption builds the initial ECharts option from the default subject's
// traces. Gaps stay null and connectNulls is off, so missing days render as
// breaks in the line.
func explorerOption(spec *ChartSpec) (map[string]interface{}, error) {
	if len(spec.Traces) == 0 {
		return nil, fmt.Errorf("explorer chart has no traces")
	}

	selected := make(map[string]bool, len(spec.Traces))
	series := make([]map[string]interface{}, 0, len(spec.Traces))
	for _, tr := range spec.Traces {
		selected[tr.Name] = tr.Visible
		s := map[string]interface{}{
			"name":         tr.Name,
			"type":         "line",
			"data":         tr.Y,
			"connectNulls": false,
			"showSymbol":   false,
			"smooth":       false,
			"lineStyle":    map[string]interface{}{"color": tr.Color, "width": 2},
			"itemStyle":    map[string]interface{}{"color": tr.Color},
		}
		if tr.Fill {
			s["areaStyle"] = map[string]interface{}{"opacity": 0.25}
		}
		series = append(series, s)
	}

	title := spec.Title
	if spec.RollingWindow > 1 {
		title = fmt.Sprintf("%s (%d-day average)", spec.Title, spec.RollingWindow)
	}

	return map[string]interface{}{
		"title": map[string]interface{}{
			"text": title,
			"left": "center",
		},
		"tooltip": map[string]interface{}{
			"trigger": "axis",
		},
		"legend": map[string]interface{}{
			"show":     false,
			"selected": selected,
			"data":     seriesNames(spec.Traces),
		},
		"grid": map[string]interface{}{
			"left": "3%", "right": "4%", "bottom": "3%", "containLabel": true,
		},
		"xAxis": map[string]interface{}{
			"type": "category",
			"data": spec.Traces[0].X,
		},
		"yAxis": map[string]interface{}{
			"type": "value",
		},
		"series": series,
	}, nil
}

func seriesNames(traces []Trace) []string {
	names := make([]string, len(traces))
	for i, tr := range traces {
		names[i] = tr.Name
	}
	return names
}

// sanitizeID makes a string safe for use as an HTML element id
func sanitizeID(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
