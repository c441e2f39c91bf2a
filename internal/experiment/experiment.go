package experiment

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/config"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/metrics"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/orbit"
)

// Config selects a scenario and how densely a headless run is sampled.
type Config struct {
	Scenario *config.Config
	Ticks    int
	// Sample keeps one recorded frame every Sample ticks.
	Sample int
}

// Result is what a headless run produced.
type Result struct {
	Names     []string
	Anchor    int
	Times     []float64
	Tracks    [][]r2.Vec  // Tracks[frame][body]
	Distances [][]float64 // Distances[frame][body], anchor distance
	Metrics   map[string]float64
	Ticks     int
	Err       error
}

// Track returns one body's positions across every frame.
func (r *Result) Track(body int) []r2.Vec {
	out := make([]r2.Vec, len(r.Tracks))
	for i, frame := range r.Tracks {
		out[i] = frame[body]
	}
	return out
}

// Distance returns one body's anchor distance across every frame.
func (r *Result) Distance(body int) []float64 {
	out := make([]float64, len(r.Distances))
	for i, frame := range r.Distances {
		out[i] = frame[body]
	}
	return out
}

type Experiment struct {
	cfg      Config
	sim      *orbit.Simulation
	recorder *Recorder
	metrics  *metrics.Set
}

func New(cfg Config) *Experiment {
	if cfg.Sample < 1 {
		cfg.Sample = 1
	}
	return &Experiment{cfg: cfg}
}

// Setup builds the simulation and attaches the recorder and metrics.
func (e *Experiment) Setup() error {
	if e.cfg.Scenario == nil {
		return fmt.Errorf("experiment has no scenario")
	}
	if e.cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", e.cfg.Ticks)
	}

	sim, err := e.cfg.Scenario.Build()
	if err != nil {
		return err
	}

	e.sim = sim
	e.recorder = NewRecorder(e.cfg.Sample, e.cfg.Ticks)
	e.recorder.Capture(0, 0, sim.Registry())
	e.metrics = metrics.Default(sim.Registry(), e.cfg.Scenario.G)

	sim.AddObserver(e.recorder)
	sim.AddObserver(e.metrics)
	return nil
}

// Run steps the simulation. A failed tick ends the run early; the frames
// recorded so far are returned with the error in Result.Err.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.sim == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	runErr := e.sim.Run(ctx, e.cfg.Ticks)
	if runErr == ctx.Err() && runErr != nil {
		return nil, runErr
	}

	reg := e.sim.Registry()
	names := make([]string, reg.Len())
	for i, b := range reg.Bodies() {
		names[i] = b.Name
	}

	return &Result{
		Names:     names,
		Anchor:    reg.AnchorIndex(),
		Times:     e.recorder.Times,
		Tracks:    e.recorder.Tracks,
		Distances: e.recorder.Distances,
		Metrics:   e.metrics.Values(),
		Ticks:     e.sim.Tick(),
		Err:       runErr,
	}, nil
}

// Simulation exposes the underlying simulation for extra observers.
func (e *Experiment) Simulation() *orbit.Simulation {
	return e.sim
}

// Recorder samples positions and anchor distances every N ticks.
type Recorder struct {
	every     int
	Times     []float64
	Tracks    [][]r2.Vec
	Distances [][]float64
}

func NewRecorder(every, ticks int) *Recorder {
	if every < 1 {
		every = 1
	}
	n := ticks/every + 1
	return &Recorder{
		every:     every,
		Times:     make([]float64, 0, n),
		Tracks:    make([][]r2.Vec, 0, n),
		Distances: make([][]float64, 0, n),
	}
}

func (r *Recorder) OnTick(tick int, t float64, reg *orbit.Registry) {
	if tick%r.every != 0 {
		return
	}
	r.Capture(tick, t, reg)
}

// Capture records the registry unconditionally.
func (r *Recorder) Capture(tick int, t float64, reg *orbit.Registry) {
	dists := make([]float64, reg.Len())
	for i, b := range reg.Bodies() {
		dists[i] = b.DistanceToAnchor()
	}
	r.Times = append(r.Times, t)
	r.Tracks = append(r.Tracks, reg.Positions())
	r.Distances = append(r.Distances, dists)
}
