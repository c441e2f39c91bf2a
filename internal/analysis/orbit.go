package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	ErrShortTrack   = errors.New("analysis: tracks too short")
	ErrNoRevolution = errors.New("analysis: no complete revolution")
)

// OrbitalPeriod measures how long the body takes to sweep 2π around the
// anchor. Frames are dt apart; the crossing is linearly interpolated.
func OrbitalPeriod(track, anchor []r2.Vec, dt float64) (float64, error) {
	n := min(len(track), len(anchor))
	if n < 2 {
		return 0, ErrShortTrack
	}

	angle := func(i int) float64 {
		rel := r2.Sub(track[i], anchor[i])
		return math.Atan2(rel.Y, rel.X)
	}

	swept := 0.0
	prev := angle(0)
	for i := 1; i < n; i++ {
		cur := angle(i)
		delta := cur - prev
		if delta > math.Pi {
			delta -= 2 * math.Pi
		} else if delta < -math.Pi {
			delta += 2 * math.Pi
		}

		next := swept + delta
		if math.Abs(next) >= 2*math.Pi {
			frac := (2*math.Pi - math.Abs(swept)) / math.Abs(delta)
			return (float64(i-1) + frac) * dt, nil
		}
		swept = next
		prev = cur
	}
	return 0, ErrNoRevolution
}

// Apsides returns the smallest and largest non-zero distance in the series.
func Apsides(distances []float64) (peri, apo float64) {
	peri = math.Inf(1)
	for _, d := range distances {
		if d == 0 {
			continue
		}
		peri = math.Min(peri, d)
		apo = math.Max(apo, d)
	}
	if math.IsInf(peri, 1) {
		return 0, 0
	}
	return peri, apo
}

func Eccentricity(distances []float64) float64 {
	peri, apo := Apsides(distances)
	if apo == 0 {
		return 0
	}
	return (apo - peri) / (apo + peri)
}

// KeplerPeriod is the two-body period for semi-major axis a around mass m.
func KeplerPeriod(a, g, m float64) float64 {
	return 2 * math.Pi * math.Sqrt(a*a*a/(g*m))
}

func CircularSpeed(r, g, m float64) float64 {
	return math.Sqrt(g * m / r)
}
