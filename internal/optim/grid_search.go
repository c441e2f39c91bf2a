package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/experiment"
)

var ErrNoTrials = errors.New("optim: no trial succeeded")

// Builder returns a ready (set up) experiment for one parameter point.
type Builder func(params map[string]float64) (*experiment.Experiment, error)

type Trial struct {
	Params map[string]float64
	Value  float64
	Ticks  int
	Err    error
}

type Outcome struct {
	Best   map[string]float64
	Value  float64
	Trials []Trial
}

// GridSearch runs one experiment per point of the cartesian product of
// ranges and keeps the point with the lowest metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64, workers int) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, workers: max(workers, 1)}
}

// Points enumerates the grid with the last parameter varying fastest.
func (g *GridSearch) Points() []map[string]float64 {
	points := []map[string]float64{{}}
	for i, name := range g.paramNames {
		next := make([]map[string]float64, 0, len(points)*len(g.ranges[i]))
		for _, p := range points {
			for _, v := range g.ranges[i] {
				q := make(map[string]float64, len(p)+1)
				for k, pv := range p {
					q[k] = pv
				}
				q[name] = v
				next = append(next, q)
			}
		}
		points = next
	}
	return points
}

// Search runs every point. Failed trials are reported but never win; ties
// go to the earlier point.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string) (*Outcome, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("optim: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	points := g.Points()
	trials := make([]Trial, len(points))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, p := range points {
		i, p := i, p
		eg.Go(func() error {
			trials[i] = g.trial(ctx, build, p, metricName)
			return ctx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &Outcome{Value: math.Inf(1), Trials: trials}
	for _, t := range trials {
		if t.Err == nil && t.Value < out.Value {
			out.Value = t.Value
			out.Best = t.Params
		}
	}
	if out.Best == nil {
		return out, ErrNoTrials
	}
	return out, nil
}

func (g *GridSearch) trial(ctx context.Context, build Builder, params map[string]float64, metricName string) Trial {
	t := Trial{Params: params}

	exp, err := build(params)
	if err != nil {
		t.Err = err
		return t
	}
	result, err := exp.Run(ctx)
	if err != nil {
		t.Err = err
		return t
	}

	t.Ticks = result.Ticks
	if result.Err != nil {
		t.Err = result.Err
		return t
	}
	v, ok := result.Metrics[metricName]
	if !ok {
		t.Err = fmt.Errorf("optim: no metric %q (have %v)", metricName, keys(result.Metrics))
		return t
	}
	t.Value = v
	return t
}

func keys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
