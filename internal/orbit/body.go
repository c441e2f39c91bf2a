package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is one gravitating point mass. Positions are metres relative to a
// fixed origin, velocities metres per second, mass kilograms.
type Body struct {
	Name   string
	Mass   float64
	Pos    r2.Vec
	Vel    r2.Vec
	Anchor bool

	trail      *Trail
	anchorDist float64
}

// BodySpec is the construction input for a Body.
type BodySpec struct {
	Name   string
	Mass   float64
	Pos    r2.Vec
	Vel    r2.Vec
	Anchor bool
}

func (s BodySpec) validate() error {
	if !(s.Mass > 0) || math.IsInf(s.Mass, 0) {
		return ErrInvalidMass
	}
	if !finite(s.Pos) || !finite(s.Vel) {
		return ErrNonFinite
	}
	return nil
}

// Trail returns the recorded positions, oldest first.
func (b *Body) Trail() []r2.Vec {
	return b.trail.Points()
}

// TrailLen is the number of stored trail samples.
func (b *Body) TrailLen() int {
	return b.trail.Len()
}

// DistanceToAnchor is the anchor distance cached by the latest force
// evaluation. It is 0 before the first tick and for the anchor itself.
func (b *Body) DistanceToAnchor() float64 {
	return b.anchorDist
}

func (b *Body) Momentum() r2.Vec {
	return r2.Scale(b.Mass, b.Vel)
}

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r2.Norm2(b.Vel)
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
