// Package view maps simulation coordinates onto a screen. Both the terminal
// and the window front ends share it.
package view

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	MaxZoom = 3
	MinZoom = -3
)

// Viewport holds the screen size and the current zoom. Each zoom level
// doubles or halves the scale; Base is pixels per metre at level zero.
type Viewport struct {
	Width, Height int
	Base          float64
	Centre        r2.Vec

	zoom   int
	spring harmonica.Spring
	level  float64
	vel    float64
}

func NewViewport(width, height int, base float64, fps int) *Viewport {
	return &Viewport{
		Width:  width,
		Height: height,
		Base:   base,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

func (v *Viewport) Zoom() int { return v.zoom }

// ZoomIn reports whether the level changed.
func (v *Viewport) ZoomIn() bool {
	if v.zoom == MaxZoom {
		return false
	}
	v.zoom++
	return true
}

func (v *Viewport) ZoomOut() bool {
	if v.zoom == MinZoom {
		return false
	}
	v.zoom--
	return true
}

// Reset returns to level zero without animating.
func (v *Viewport) Reset() {
	v.zoom = 0
	v.Snap()
}

// Snap jumps the animated scale to its target.
func (v *Viewport) Snap() {
	v.level = float64(v.zoom)
	v.vel = 0
}

// Update advances the zoom animation by one frame.
func (v *Viewport) Update() {
	v.level, v.vel = v.spring.Update(v.level, v.vel, float64(v.zoom))
}

// Target is the scale the animation is heading for.
func (v *Viewport) Target() float64 {
	return v.Base * math.Pow(2, float64(v.zoom))
}

// Current is the scale to draw with this frame.
func (v *Viewport) Current() float64 {
	return v.Base * math.Pow(2, v.level)
}

// ToScreen places the Centre in the middle of the screen. Screen y grows
// downward with world y.
func (v *Viewport) ToScreen(p r2.Vec) (float64, float64) {
	s := v.Current()
	rel := r2.Sub(p, v.Centre)
	return rel.X*s + float64(v.Width)/2, rel.Y*s + float64(v.Height)/2
}

// Visible reports whether a screen point lies inside the viewport.
func (v *Viewport) Visible(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(v.Width) && y < float64(v.Height)
}
