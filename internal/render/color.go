package render

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"eve-dashboard/internal/analytics"
)

// SliceColor возвращает RGB эквивалент analytics.HueColor(i)
func SliceColor(i int) drawing.Color {
	return HSLToRGB(float64(i*analytics.HueStep), analytics.Saturation/100.0, analytics.Lightness/100.0)
}

// HSLToRGB переводит цвет из HSL (h в градусах, s и l в [0,1]) в RGB.
// Оттенок приводится по модулю 360.
func HSLToRGB(h, s, l float64) drawing.Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return drawing.Color{
		R: toByte(r + m),
		G: toByte(g + m),
		B: toByte(b + m),
		A: 255,
	}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
