// Package analytics реализует агрегацию EVE-записей по сигнатурам
// и детерминированное назначение цветов секторам графика
package analytics

import (
	"fmt"

	"eve-dashboard/internal/models"
)

const (
	// HueStep шаг поворота оттенка между соседними секторами (градусы)
	HueStep = 30
	// Saturation насыщенность цвета сектора (%)
	Saturation = 70
	// Lightness светлота цвета сектора (%)
	Lightness = 50
)

// Count строит частотную таблицу сигнатур.
// Записи без сигнатуры пропускаются, входной срез не изменяется.
func Count(records []models.Record) *models.SignatureCount {
	counts := models.NewSignatureCount()
	for _, r := range records {
		if sig, ok := r.Signature(); ok {
			counts.Add(sig)
		}
	}
	return counts
}

// Aggregate преобразует записи в серию для графика
func Aggregate(records []models.Record) models.ChartSeries {
	return Series(Count(records))
}

// Series проецирует частотную таблицу в параллельные срезы labels/counts/colors
func Series(counts *models.SignatureCount) models.ChartSeries {
	series := models.ChartSeries{
		Labels: make([]string, 0, counts.Len()),
		Counts: make([]int, 0, counts.Len()),
	}
	counts.Each(func(signature string, n int) {
		series.Labels = append(series.Labels, signature)
		series.Counts = append(series.Counts, n)
	})
	series.Colors = Palette(len(series.Labels))
	return series
}

// HueColor возвращает цвет сектора с индексом i.
// Зависит только от индекса; после 12 секторов оттенок выходит за 360 и повторяется.
func HueColor(i int) string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", i*HueStep, Saturation, Lightness)
}

// Palette возвращает первые n цветов последовательности HueColor
func Palette(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = HueColor(i)
	}
	return colors
}
