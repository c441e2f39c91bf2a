package orbit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Registry owns the ordered set of bodies in a simulation. Order is stable
// and decides iteration only.
type Registry struct {
	bodies []*Body
	trail  TrailConfig
	anchor int
}

func NewRegistry(trail TrailConfig) *Registry {
	return &Registry{trail: trail, anchor: -1}
}

// Add validates spec and appends a new body.
func (r *Registry) Add(spec BodySpec) (*Body, error) {
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("body %q: %w", spec.Name, err)
	}
	if spec.Anchor && r.anchor >= 0 {
		return nil, fmt.Errorf("body %q: %w", spec.Name, ErrDuplicateAnchor)
	}

	b := &Body{
		Name:   spec.Name,
		Mass:   spec.Mass,
		Pos:    spec.Pos,
		Vel:    spec.Vel,
		Anchor: spec.Anchor,
		trail:  NewTrail(r.trail.Cap, r.trail.Every),
	}
	if spec.Anchor {
		r.anchor = len(r.bodies)
	}
	r.bodies = append(r.bodies, b)
	return b, nil
}

func (r *Registry) Len() int         { return len(r.bodies) }
func (r *Registry) Body(i int) *Body { return r.bodies[i] }
func (r *Registry) Bodies() []*Body  { return r.bodies }
func (r *Registry) AnchorIndex() int { return r.anchor }

// Anchor returns the distinguished body, if any.
func (r *Registry) Anchor() (*Body, bool) {
	if r.anchor < 0 {
		return nil, false
	}
	return r.bodies[r.anchor], true
}

// Lookup finds a body by name.
func (r *Registry) Lookup(name string) (*Body, bool) {
	for _, b := range r.bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Momentum is the total linear momentum Σ m·v.
func (r *Registry) Momentum() r2.Vec {
	var p r2.Vec
	for _, b := range r.bodies {
		p = r2.Add(p, b.Momentum())
	}
	return p
}

// AngularMomentum is the z component of Σ m·(r × v) about the origin.
func (r *Registry) AngularMomentum() float64 {
	L := 0.0
	for _, b := range r.bodies {
		L += b.Mass * r2.Cross(b.Pos, b.Vel)
	}
	return L
}

// Energy is kinetic plus gravitational potential energy for constant g.
// Coincident pairs contribute -Inf.
func (r *Registry) Energy(g float64) float64 {
	ke, pe := 0.0, 0.0
	n := len(r.bodies)
	for i := 0; i < n; i++ {
		bi := r.bodies[i]
		ke += bi.KineticEnergy()
		for j := i + 1; j < n; j++ {
			bj := r.bodies[j]
			d := r2.Norm(r2.Sub(bj.Pos, bi.Pos))
			if d == 0 {
				return math.Inf(-1)
			}
			pe -= g * bi.Mass * bj.Mass / d
		}
	}
	return ke + pe
}

// CenterOfMass is the mass-weighted mean position.
func (r *Registry) CenterOfMass() r2.Vec {
	var sum r2.Vec
	total := 0.0
	for _, b := range r.bodies {
		sum = r2.Add(sum, r2.Scale(b.Mass, b.Pos))
		total += b.Mass
	}
	if total == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/total, sum)
}

// Positions copies every body's position in registry order.
func (r *Registry) Positions() []r2.Vec {
	out := make([]r2.Vec, len(r.bodies))
	for i, b := range r.bodies {
		out[i] = b.Pos
	}
	return out
}

// ResetTrails clears every body's history.
func (r *Registry) ResetTrails() {
	for _, b := range r.bodies {
		b.trail.Reset()
	}
}
