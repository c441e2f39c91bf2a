package orbit

import "gonum.org/v1/gonum/spatial/r2"

// TrailConfig bounds trail memory. Cap == 0 keeps every sample; Every > 1
// keeps one sample out of every Every recorded positions.
type TrailConfig struct {
	Cap   int
	Every int
}

// Trail is an append-only position history backed by a ring buffer once
// a cap is set.
type Trail struct {
	points []r2.Vec
	head   int
	full   bool
	cap    int
	every  int
	calls  int
}

func NewTrail(capacity, every int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	if every < 1 {
		every = 1
	}
	t := &Trail{cap: capacity, every: every}
	if capacity > 0 {
		t.points = make([]r2.Vec, 0, capacity)
	}
	return t
}

// Record appends p, evicting the oldest sample when the trail is full.
func (t *Trail) Record(p r2.Vec) {
	t.calls++
	if (t.calls-1)%t.every != 0 {
		return
	}

	if t.cap == 0 {
		t.points = append(t.points, p)
		return
	}

	if !t.full {
		t.points = append(t.points, p)
		if len(t.points) == t.cap {
			t.full = true
		}
		return
	}

	t.points[t.head] = p
	t.head = (t.head + 1) % t.cap
}

// Points returns a copy of the samples, oldest first.
func (t *Trail) Points() []r2.Vec {
	out := make([]r2.Vec, len(t.points))
	if !t.full {
		copy(out, t.points)
		return out
	}
	n := copy(out, t.points[t.head:])
	copy(out[n:], t.points[:t.head])
	return out
}

// Last returns the newest sample.
func (t *Trail) Last() (r2.Vec, bool) {
	if len(t.points) == 0 {
		return r2.Vec{}, false
	}
	if !t.full || t.head == 0 {
		return t.points[len(t.points)-1], true
	}
	return t.points[t.head-1], true
}

func (t *Trail) Len() int { return len(t.points) }
func (t *Trail) Cap() int { return t.cap }

func (t *Trail) Reset() {
	t.points = t.points[:0]
	t.head = 0
	t.full = false
	t.calls = 0
}
