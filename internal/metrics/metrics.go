package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/orbit"
)

// Metric accumulates one scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(reg *orbit.Registry, t float64)
	Value() float64
	Reset()
}

// EnergyDrift tracks the largest relative change in total energy.
type EnergyDrift struct {
	g        float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(g float64) *EnergyDrift {
	return &EnergyDrift{g: g}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(reg *orbit.Registry, t float64) {
	energy := reg.Energy(e.g)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 && !math.IsInf(energy, 0) {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the largest change in total momentum relative to
// the sum of the bodies' momentum magnitudes at the first sample.
type MomentumDrift struct {
	initial  r2.Vec
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(reg *orbit.Registry, t float64) {
	p := reg.Momentum()
	if m.samples == 0 {
		m.initial = p
		for _, b := range reg.Bodies() {
			m.scale += r2.Norm(b.Momentum())
		}
	}
	m.samples++

	if m.scale > 0 {
		m.maxDrift = math.Max(m.maxDrift, r2.Norm(r2.Sub(p, m.initial))/m.scale)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = r2.Vec{}
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}

// AnchorDistance tracks how far one body's anchor distance strays from its
// first observed value, as a fraction of that value.
type AnchorDistance struct {
	body      string
	initial   float64
	maxExcess float64
	samples   int
}

func NewAnchorDistance(body string) *AnchorDistance {
	return &AnchorDistance{body: body}
}

func (a *AnchorDistance) Name() string { return "anchor_distance_" + a.body }

func (a *AnchorDistance) Observe(reg *orbit.Registry, t float64) {
	b, ok := reg.Lookup(a.body)
	if !ok {
		return
	}
	d := b.DistanceToAnchor()
	if d == 0 {
		return
	}
	if a.samples == 0 {
		a.initial = d
	}
	a.samples++
	a.maxExcess = math.Max(a.maxExcess, math.Abs(d-a.initial)/a.initial)
}

func (a *AnchorDistance) Value() float64 { return a.maxExcess }

func (a *AnchorDistance) Reset() {
	a.initial = 0
	a.maxExcess = 0
	a.samples = 0
}

// Set feeds a group of metrics from simulation ticks.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnTick(tick int, t float64, reg *orbit.Registry) {
	for _, m := range s.metrics {
		m.Observe(reg, t)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Values returns every metric keyed by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Default returns the standard metrics for a run: energy and momentum
// drift plus anchor distance for every non-anchor body.
func Default(reg *orbit.Registry, g float64) *Set {
	s := NewSet(NewEnergyDrift(g), NewMomentumDrift())
	for _, b := range reg.Bodies() {
		if !b.Anchor && b.Name != "" {
			s.Add(NewAnchorDistance(b.Name))
		}
	}
	return s
}
