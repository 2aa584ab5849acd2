package reports

// reportTemplate is the complete report page. Chart fragments arrive
// pre-rendered; the template only lays them out.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>COVID-19 Situation Report - {{.Date}}</title>
    {{.EChartsHeader}}
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
            text-align: center;
        }
        .header h1 {
            margin: 0;
            font-size: 2.5em;
        }
        .header .timestamp {
            opacity: 0.9;
            margin-top: 10px;
        }
        .summary-cards {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .card {
            background: white;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            border-left: 4px solid #667eea;
        }
        .card h3 {
            margin-top: 0;
            color: #667eea;
        }
        .metric {
            font-size: 1.5em;
            font-weight: bold;
            color: #333;
        }
        .content, .charts-section {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            margin-bottom: 30px;
        }
        .chart-container {
            margin-bottom: 40px;
        }
        .explorer-controls {
            margin-bottom: 15px;
            display: flex;
            justify-content: space-between;
            align-items: center;
            flex-wrap: wrap;
            gap: 10px;
        }
        .series-buttons button {
            border: 1px solid #667eea;
            background: white;
            color: #667eea;
            padding: 6px 14px;
            margin-right: 6px;
            border-radius: 4px;
            cursor: pointer;
        }
        .series-buttons button.active {
            background: #667eea;
            color: white;
        }
        .subject-select {
            padding: 6px 10px;
            border: 1px solid #ccc;
            border-radius: 4px;
        }
        .footer {
            text-align: center;
            color: #666;
            font-size: 0.9em;
            margin-top: 30px;
        }
        h1, h2, h3 { color: #333; }
        h2 { border-bottom: 2px solid #667eea; padding-bottom: 5px; }
        table { border-collapse: collapse; width: 100%; margin: 20px 0; }
        th, td { border: 1px solid #ddd; padding: 12px; text-align: left; }
        th { background-color: #f8f9fa; font-weight: bold; }
        blockquote { border-left: 4px solid #667eea; margin: 0; padding-left: 20px; color: #666; }
    </style>
</head>
<body>
    <div class="header">
        <h1>🦠 COVID-19 Situation Report</h1>
        <div class="timestamp">Data through {{.Date}} | Generated: {{.GeneratedAt}}</div>
    </div>

    <div class="summary-cards">
        <div class="card">
            <h3>Countries Reporting</h3>
            <div class="metric">{{.CountryCount}}</div>
        </div>
        <div class="card">
            <h3>New Cases</h3>
            <div class="metric">{{.GlobalNewCases}}</div>
            <div>Latest reporting day, worldwide</div>
        </div>
        <div class="card">
            <h3>Cumulative Cases</h3>
            <div class="metric">{{.CumulativeCases}}</div>
        </div>
        <div class="card">
            <h3>Cumulative Deaths</h3>
            <div class="metric">{{.CumulativeDeaths}}</div>
        </div>
    </div>

    <div class="charts-section">
        <h2>📈 Country Explorer</h2>
        <div class="chart-container">
            {{.ExplorerChart}}
        </div>
    </div>

    <div class="content">
        {{.Content}}
    </div>

    <div class="charts-section">
        <h2>📊 Worldwide Picture</h2>
        {{if .GlobalTrendChart}}<div class="chart-container">{{.GlobalTrendChart}}</div>{{end}}
        {{if .TopCountriesChart}}<div class="chart-container">{{.TopCountriesChart}}</div>{{end}}
        {{if .GDPScatterChart}}<div class="chart-container">{{.GDPScatterChart}}</div>{{end}}
        {{if .HistogramChart}}<div class="chart-container">{{.HistogramChart}}</div>{{end}}
    </div>

    <div class="footer">
        <p>Data sources: WHO COVID-19 daily reporting, World Bank GDP per capita (NY.GDP.PCAP.CD)</p>
        <p>covidcast v{{.Version}}</p>
    </div>
</body>
</html>`
