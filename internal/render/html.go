package render

import (
	"html/template"
	"io"

	"eve-dashboard/internal/models"
	"eve-dashboard/internal/widget"
)

const (
	// Title заголовок виджета
	Title = "Alerts by Signature"
	// Caption пояснение под графиком
	Caption = "This polar area chart displays the number of alerts generated by each signature. " +
		"Understanding the distribution of alerts by signature helps in identifying the most frequent types of alerts " +
		"and can guide further investigation and mitigation efforts."
	// LoadingText текст состояния Loading
	LoadingText = "Loading chart..."
	// DatasetLabel подпись набора данных
	DatasetLabel = "Number of Alerts"
)

type pageData struct {
	Title        string
	State        string
	Message      string
	Series       models.ChartSeries
	Caption      string
	LoadingText  string
	DatasetLabel string
}

var pageTemplate = template.Must(template.New("widget").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body { background: #1e1e1e; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; }
        .container { padding: 20px; background-color: #2c2c2c; border-radius: 8px; box-shadow: 0 0 10px rgba(0, 0, 0, 0.1); color: #ffffff; max-width: 800px; margin: 0 auto; }
        .title { margin-bottom: 20px; text-align: center; font-size: 28px; color: #ffffff; }
        .text { margin: 20px 0; font-size: 16px; line-height: 1.5; color: #dddddd; }
        .loading { text-align: center; font-size: 18px; color: #ffffff; }
        .error { text-align: center; font-size: 18px; color: red; }
    </style>
</head>
<body>
    <div class="container" data-state="{{.State}}">
        <h2 class="title">{{.Title}}</h2>
{{- if eq .State "loading"}}
        <div class="loading"><p>{{.LoadingText}}</p></div>
{{- else if eq .State "error"}}
        <div class="error"><p>Error: {{.Message}}</p></div>
{{- else}}
        <canvas id="alerts-by-signature"></canvas>
        <p class="text">{{.Caption}}</p>
        <script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
        <script>
            const series = {{.Series}};
            new Chart(document.getElementById('alerts-by-signature'), {
                type: 'polarArea',
                data: {
                    labels: series.labels,
                    datasets: [{ label: {{.DatasetLabel}}, data: series.counts, backgroundColor: series.colors }]
                },
                options: {
                    responsive: true,
                    plugins: {
                        legend: { position: 'top', labels: { color: '#ffffff', font: { size: 14 } } },
                        tooltip: {
                            callbacks: {
                                label: (ctx) => (ctx.label ? ctx.label + ': ' : '') + series.counts[ctx.dataIndex]
                            }
                        }
                    },
                    scales: {
                        r: {
                            ticks: { backdropColor: 'rgba(0, 0, 0, 0)', color: '#ffffff', font: { size: 12 } },
                            pointLabels: { color: '#ffffff', font: { size: 14 } }
                        }
                    }
                }
            });
        </script>
{{- end}}
    </div>
</body>
</html>
`))

// HTML отрисовывает страницу виджета для текущего состояния
func HTML(w io.Writer, snap widget.Snapshot) error {
	return pageTemplate.Execute(w, pageData{
		Title:        Title,
		State:        snap.State.String(),
		Message:      snap.Message,
		Series:       snap.Series,
		Caption:      Caption,
		LoadingText:  LoadingText,
		DatasetLabel: DatasetLabel,
	})
}
