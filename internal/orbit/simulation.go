package orbit

import (
	"context"
	"errors"
)

// Observer is notified after every successful tick.
type Observer interface {
	OnTick(tick int, t float64, reg *Registry)
}

// Simulation owns a Registry and the Engine that advances it.
type Simulation struct {
	reg       *Registry
	eng       *Engine
	tick      int
	elapsed   float64
	observers []Observer
}

func New(reg *Registry, eng *Engine) *Simulation {
	return &Simulation{
		reg:       reg,
		eng:       eng,
		observers: make([]Observer, 0),
	}
}

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Registry() *Registry { return s.reg }
func (s *Simulation) Engine() *Engine     { return s.eng }
func (s *Simulation) Tick() int           { return s.tick }
func (s *Simulation) Elapsed() float64    { return s.elapsed }

// Step advances one tick. A failed tick is not counted and leaves the
// registry untouched.
func (s *Simulation) Step() error {
	if err := s.eng.Step(s.reg); err != nil {
		var se *StepError
		if errors.As(err, &se) {
			se.Tick = s.tick + 1
		}
		return err
	}

	s.tick++
	s.elapsed += s.eng.Dt
	for _, obs := range s.observers {
		obs.OnTick(s.tick, s.elapsed, s.reg)
	}
	return nil
}

// Run performs ticks steps, stopping early on error or cancellation.
func (s *Simulation) Run(ctx context.Context, ticks int) error {
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}
