package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"eve-dashboard/internal/models"
)

// ErrNoData возвращается, если в серии нет ни одного сектора
var ErrNoData = errors.New("series has no signatures")

var (
	backgroundColor = drawing.ColorFromHex("2c2c2c")
	textColor       = drawing.ColorWhite
)

// PNG отрисовывает серию круговой диаграммой.
// Секторы подписаны как "<label>: <count>" и окрашены SliceColor.
func PNG(w io.Writer, series models.ChartSeries, width, height int) error {
	if series.Len() == 0 {
		return ErrNoData
	}

	f, err := Font()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	values := make([]chart.Value, 0, series.Len())
	for i := range series.Labels {
		col := SliceColor(i)
		values = append(values, chart.Value{
			Label: series.Tooltip(i),
			Value: float64(series.Counts[i]),
			Style: chart.Style{
				FillColor:   col,
				StrokeColor: backgroundColor,
				StrokeWidth: 2,
				FontColor:   textColor,
				FontSize:    10,
			},
		})
	}

	pie := chart.PieChart{
		Title:      Title,
		Width:      width,
		Height:     height,
		Font:       f,
		Background: chart.Style{FillColor: backgroundColor},
		Canvas:     chart.Style{FillColor: backgroundColor},
		TitleStyle: chart.Style{FontColor: textColor, FontSize: 16},
		Values:     values,
	}

	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
