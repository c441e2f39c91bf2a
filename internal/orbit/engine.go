package orbit

import (
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// G is the gravitational constant in N·m²/kg².
	G = 6.67428e-11

	// Day is the default timestep: one simulated day per tick.
	Day = 86400.0

	// minParallelBodies is the body count below which the force sum
	// always runs on the calling goroutine.
	minParallelBodies = 16
)

// Ordering selects which positions the force sum of a tick reads.
type Ordering int

const (
	// Snapshot computes every force from start-of-tick positions.
	Snapshot Ordering = iota
	// Sequential updates bodies one at a time in registry order, so later
	// bodies see positions already moved this tick.
	Sequential
)

func (o Ordering) String() string {
	switch o {
	case Snapshot:
		return "snapshot"
	case Sequential:
		return "sequential"
	}
	return "unknown"
}

// Scheme is the fixed-step update rule.
type Scheme int

const (
	// SemiImplicitEuler updates velocity from force, then position from
	// the new velocity.
	SemiImplicitEuler Scheme = iota
	// Leapfrog is kick-drift-kick: two force evaluations per tick.
	Leapfrog
)

func (s Scheme) String() string {
	switch s {
	case SemiImplicitEuler:
		return "euler"
	case Leapfrog:
		return "leapfrog"
	}
	return "unknown"
}

// Engine computes pairwise gravity and advances a Registry by one tick.
type Engine struct {
	G        float64
	Dt       float64
	Ordering Ordering
	Scheme   Scheme
	// Workers > 1 splits the force sum across goroutines.
	Workers int

	pos    []r2.Vec
	vel    []r2.Vec
	forces []r2.Vec
	dists  []float64
	errs   []error
}

func NewEngine(g, dt float64) *Engine {
	return &Engine{G: g, Dt: dt}
}

// DefaultEngine uses the real gravitational constant and a one-day step.
func DefaultEngine() *Engine {
	return NewEngine(G, Day)
}

func (e *Engine) Validate() error {
	if !(e.Dt > 0) || math.IsInf(e.Dt, 0) {
		return ErrInvalidTimestep
	}
	if !(e.G > 0) || math.IsInf(e.G, 0) {
		return ErrInvalidGravity
	}
	if e.Scheme == Leapfrog && e.Ordering != Snapshot {
		return ErrIncompatibleScheme
	}
	return nil
}

// Advance moves every body in reg forward by dt under constant g using
// semi-implicit Euler on start-of-tick positions.
func Advance(reg *Registry, dt, g float64) error {
	return NewEngine(g, dt).Step(reg)
}

// Record appends the body's current position to its trail.
func Record(b *Body) {
	b.trail.Record(b.Pos)
}

// Force returns the attraction of body j on body i and their distance.
func (e *Engine) Force(reg *Registry, i, j int) (r2.Vec, float64, error) {
	return e.attraction(reg.bodies, reg.bodies[i].Pos, reg.bodies[j].Pos, i, j)
}

func (e *Engine) attraction(bodies []*Body, pi, pj r2.Vec, i, j int) (r2.Vec, float64, error) {
	dx := pj.X - pi.X
	dy := pj.Y - pi.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return r2.Vec{}, 0, &StepError{Body: i, Other: j, Wrapped: ErrDegenerateDistance}
	}

	mag := e.G * bodies[i].Mass * bodies[j].Mass / (dist * dist)
	theta := math.Atan2(dy, dx)
	return r2.Vec{X: mag * math.Cos(theta), Y: mag * math.Sin(theta)}, dist, nil
}

// netForce sums the attraction of every other body on body i reading
// positions from pos. It also returns the distance to the anchor.
func (e *Engine) netForce(bodies []*Body, pos []r2.Vec, anchor, i int) (r2.Vec, float64, error) {
	var total r2.Vec
	anchorDist := 0.0
	for j := range pos {
		if j == i {
			continue
		}
		f, d, err := e.attraction(bodies, pos[i], pos[j], i, j)
		if err != nil {
			return r2.Vec{}, 0, err
		}
		if j == anchor {
			anchorDist = d
		}
		total.X += f.X
		total.Y += f.Y
	}
	return total, anchorDist, nil
}

// Forces returns the net force on every body at the current positions.
func (e *Engine) Forces(reg *Registry) ([]r2.Vec, error) {
	e.ensureScratch(reg.Len())
	for i, b := range reg.bodies {
		e.pos[i] = b.Pos
	}
	if err := e.computeForces(reg.bodies, reg.anchor); err != nil {
		return nil, err
	}
	out := make([]r2.Vec, len(e.forces))
	copy(out, e.forces)
	return out, nil
}

func (e *Engine) ensureScratch(n int) {
	if len(e.pos) != n {
		e.pos = make([]r2.Vec, n)
		e.vel = make([]r2.Vec, n)
		e.forces = make([]r2.Vec, n)
		e.dists = make([]float64, n)
		e.errs = make([]error, n)
	}
}

// computeForces fills e.forces and e.dists from e.pos. Each body owns its
// slot, so workers never share a write target. The reported error is the
// one for the lowest body index regardless of scheduling.
func (e *Engine) computeForces(bodies []*Body, anchor int) error {
	n := len(e.pos)
	span := func(start, end int) {
		for i := start; i < end; i++ {
			e.forces[i], e.dists[i], e.errs[i] = e.netForce(bodies, e.pos, anchor, i)
		}
	}

	if e.Workers <= 1 || n < minParallelBodies {
		span(0, n)
	} else {
		workers := e.Workers
		if workers > n {
			workers = n
		}
		chunk := (n + workers - 1) / workers

		var g errgroup.Group
		g.SetLimit(workers)
		for start := 0; start < n; start += chunk {
			end := start + chunk
			if end > n {
				end = n
			}
			start := start
			g.Go(func() error {
				span(start, end)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i := 0; i < n; i++ {
		if e.errs[i] != nil {
			return e.errs[i]
		}
	}
	return nil
}

// Step advances reg by one tick. On error nothing in reg changes.
func (e *Engine) Step(reg *Registry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	n := reg.Len()
	if n == 0 {
		return nil
	}
	e.ensureScratch(n)

	var err error
	switch {
	case e.Ordering == Sequential:
		err = e.stepSequential(reg)
	case e.Scheme == Leapfrog:
		err = e.stepLeapfrog(reg)
	default:
		err = e.stepEuler(reg)
	}
	if err != nil {
		return err
	}

	for _, b := range reg.bodies {
		Record(b)
	}
	return nil
}

func (e *Engine) stepEuler(reg *Registry) error {
	for i, b := range reg.bodies {
		e.pos[i] = b.Pos
	}
	if err := e.computeForces(reg.bodies, reg.anchor); err != nil {
		return err
	}

	dt := e.Dt
	for i, b := range reg.bodies {
		f := e.forces[i]
		v := r2.Vec{X: b.Vel.X + f.X/b.Mass*dt, Y: b.Vel.Y + f.Y/b.Mass*dt}
		p := r2.Vec{X: b.Pos.X + v.X*dt, Y: b.Pos.Y + v.Y*dt}
		if !finite(v) || !finite(p) {
			return &StepError{Body: i, Other: -1, Wrapped: ErrNumericOverflow}
		}
		e.vel[i] = v
		e.pos[i] = p
	}

	e.commit(reg)
	return nil
}

// stepSequential mirrors the naive loop where each body moves as soon as
// its force is known. Previous state is kept to roll back a failed tick.
func (e *Engine) stepSequential(reg *Registry) error {
	n := reg.Len()
	prevPos := make([]r2.Vec, n)
	prevVel := make([]r2.Vec, n)
	for i, b := range reg.bodies {
		prevPos[i] = b.Pos
		prevVel[i] = b.Vel
		e.pos[i] = b.Pos
	}

	rollback := func() {
		for i, b := range reg.bodies {
			b.Pos = prevPos[i]
			b.Vel = prevVel[i]
		}
	}

	dt := e.Dt
	for i, b := range reg.bodies {
		f, d, err := e.netForce(reg.bodies, e.pos, reg.anchor, i)
		if err != nil {
			rollback()
			return err
		}
		b.Vel.X += f.X / b.Mass * dt
		b.Vel.Y += f.Y / b.Mass * dt
		b.Pos.X += b.Vel.X * dt
		b.Pos.Y += b.Vel.Y * dt
		if !finite(b.Vel) || !finite(b.Pos) {
			rollback()
			return &StepError{Body: i, Other: -1, Wrapped: ErrNumericOverflow}
		}
		e.pos[i] = b.Pos
		e.dists[i] = d
	}

	for i, b := range reg.bodies {
		b.anchorDist = e.dists[i]
	}
	return nil
}

func (e *Engine) stepLeapfrog(reg *Registry) error {
	for i, b := range reg.bodies {
		e.pos[i] = b.Pos
	}
	if err := e.computeForces(reg.bodies, reg.anchor); err != nil {
		return err
	}

	halfDt := 0.5 * e.Dt
	for i, b := range reg.bodies {
		f := e.forces[i]
		e.vel[i] = r2.Vec{X: b.Vel.X + f.X/b.Mass*halfDt, Y: b.Vel.Y + f.Y/b.Mass*halfDt}
		e.pos[i] = r2.Vec{X: b.Pos.X + e.vel[i].X*e.Dt, Y: b.Pos.Y + e.vel[i].Y*e.Dt}
		if !finite(e.vel[i]) || !finite(e.pos[i]) {
			return &StepError{Body: i, Other: -1, Wrapped: ErrNumericOverflow}
		}
	}

	if err := e.computeForces(reg.bodies, reg.anchor); err != nil {
		return err
	}
	for i, b := range reg.bodies {
		f := e.forces[i]
		e.vel[i].X += f.X / b.Mass * halfDt
		e.vel[i].Y += f.Y / b.Mass * halfDt
		if !finite(e.vel[i]) {
			return &StepError{Body: i, Other: -1, Wrapped: ErrNumericOverflow}
		}
	}

	e.commit(reg)
	return nil
}

func (e *Engine) commit(reg *Registry) {
	for i, b := range reg.bodies {
		b.Vel = e.vel[i]
		b.Pos = e.pos[i]
		b.anchorDist = e.dists[i]
	}
}
