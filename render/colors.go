package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette colors
var (
	Background = colorful.Color{R: 0.53, G: 0.75, B: 0.92} // Sky
	Ground     = colorful.Color{R: 0.29, G: 0.43, B: 0.24}

	RgbHUD       = tcell.NewRGBColor(230, 230, 230)
	RgbHUDDim    = tcell.NewRGBColor(120, 120, 130)
	RgbHUDAlert  = tcell.NewRGBColor(255, 200, 50)
	RgbTornado   = tcell.NewRGBColor(90, 90, 100)
	RgbCrosshair = tcell.NewRGBColor(255, 255, 255)
)

// toTcell converts a clamped colorful color to a truecolor tcell color
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// shade blends c toward the background by transparency, then by distance fog
func shade(c, bg colorful.Color, transparency, fog float64) colorful.Color {
	c = c.BlendRgb(bg, clamp01(transparency))
	return c.BlendLab(bg, clamp01(fog))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
