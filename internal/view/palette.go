package view

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette returns n evenly spaced hues.
func Palette(n int) []string {
	out := make([]string, n)
	for i := range out {
		h := 360 * float64(i) / float64(max(n, 1))
		out[i] = colorful.Hcl(h, 0.6, 0.75).Clamped().Hex()
	}
	return out
}

// Colors keeps every valid configured colour and fills the rest from a
// palette.
func Colors(configured []string) []string {
	pal := Palette(len(configured))
	out := make([]string, len(configured))
	for i, c := range configured {
		if _, err := colorful.Hex(c); err == nil {
			out[i] = c
		} else {
			out[i] = pal[i]
		}
	}
	return out
}

// RGBA parses a hex colour, falling back to white.
func RGBA(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Fade blends a colour toward black; t=1 is black.
func Fade(hex string, t float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendLab(colorful.Color{}, t).Clamped().Hex()
}
