package orbit

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	sunMass   = 1.989e30
	earthMass = 5.974e24
	au        = 1.496e11
)

func sunEarth(vy float64, trail TrailConfig) *Registry {
	reg := NewRegistry(trail)
	_, err := reg.Add(BodySpec{Name: "sun", Mass: sunMass, Anchor: true})
	Expect(err).NotTo(HaveOccurred())
	_, err = reg.Add(BodySpec{Name: "earth", Mass: earthMass, Pos: r2.Vec{X: au}, Vel: r2.Vec{Y: vy}})
	Expect(err).NotTo(HaveOccurred())
	return reg
}

func relative(reg *Registry) r2.Vec {
	return r2.Sub(reg.Body(1).Pos, reg.Body(0).Pos)
}

var _ = Describe("Engine", func() {
	Describe("circular two-body orbit", func() {
		var (
			reg    *Registry
			eng    *Engine
			kepler float64
		)

		BeforeEach(func() {
			v := math.Sqrt(G * sunMass / au)
			reg = sunEarth(v, TrailConfig{})
			eng = NewEngine(G, 3600)
			kepler = 2 * math.Pi * math.Sqrt(au*au*au/(G*sunMass))
		})

		It("keeps the radius within 1% over one period", func() {
			ticks := int(kepler / eng.Dt)
			for i := 0; i < ticks; i++ {
				Expect(eng.Step(reg)).To(Succeed())
				d := r2.Norm(relative(reg))
				Expect(d).To(BeNumerically("~", au, 0.01*au))
			}
		})

		It("matches the Kepler period within 2%", func() {
			prev := math.Atan2(relative(reg).Y, relative(reg).X)
			swept := 0.0
			ticks := 0
			for swept < 2*math.Pi && ticks < 20000 {
				Expect(eng.Step(reg)).To(Succeed())
				ticks++
				rel := relative(reg)
				a := math.Atan2(rel.Y, rel.X)
				da := a - prev
				if da < -math.Pi {
					da += 2 * math.Pi
				} else if da > math.Pi {
					da -= 2 * math.Pi
				}
				swept += da
				prev = a
			}
			period := float64(ticks) * eng.Dt
			Expect(period).To(BeNumerically("~", kepler, 0.02*kepler))
		})

		It("stays bounded with leapfrog", func() {
			eng.Scheme = Leapfrog
			ticks := int(kepler / eng.Dt)
			for i := 0; i < ticks; i++ {
				Expect(eng.Step(reg)).To(Succeed())
			}
			Expect(r2.Norm(relative(reg))).To(BeNumerically("~", au, 0.01*au))
		})
	})

	It("returns Earth near its starting distance after 365 daily ticks", func() {
		reg := sunEarth(29780, TrailConfig{})
		for i := 0; i < 365; i++ {
			Expect(Advance(reg, Day, G)).To(Succeed())
		}
		Expect(r2.Norm(relative(reg))).To(BeNumerically("~", au, 0.03*au))
		Expect(reg.Body(1).TrailLen()).To(Equal(365))
	})

	It("conserves total momentum", func() {
		reg := NewRegistry(TrailConfig{Cap: 10})
		specs := []BodySpec{
			{Name: "sun", Mass: sunMass, Anchor: true},
			{Name: "venus", Mass: 4.8685e24, Pos: r2.Vec{X: 0.723 * au}, Vel: r2.Vec{Y: -35020}},
			{Name: "earth", Mass: earthMass, Pos: r2.Vec{X: -au}, Vel: r2.Vec{Y: 29780}},
			{Name: "jupiter", Mass: 1.899e27, Pos: r2.Vec{X: 5.204 * au}, Vel: r2.Vec{Y: 13060}},
		}
		for _, s := range specs {
			_, err := reg.Add(s)
			Expect(err).NotTo(HaveOccurred())
		}

		scale := 0.0
		for _, b := range reg.Bodies() {
			scale += r2.Norm(b.Momentum())
		}
		p0 := reg.Momentum()

		eng := DefaultEngine()
		for i := 0; i < 1000; i++ {
			Expect(eng.Step(reg)).To(Succeed())
		}
		drift := r2.Norm(r2.Sub(reg.Momentum(), p0)) / scale
		Expect(drift).To(BeNumerically("<", 1e-9))
	})

	It("applies equal and opposite forces to every pair", func() {
		reg := NewRegistry(TrailConfig{})
		for i, p := range []r2.Vec{{X: 0, Y: 0}, {X: 3e10, Y: -4e10}, {X: -1e11, Y: 2e9}} {
			_, err := reg.Add(BodySpec{Mass: float64(i+1) * 1e27, Pos: p})
			Expect(err).NotTo(HaveOccurred())
		}

		eng := DefaultEngine()
		for i := 0; i < reg.Len(); i++ {
			for j := i + 1; j < reg.Len(); j++ {
				fij, dij, err := eng.Force(reg, i, j)
				Expect(err).NotTo(HaveOccurred())
				fji, dji, err := eng.Force(reg, j, i)
				Expect(err).NotTo(HaveOccurred())

				Expect(dij).To(Equal(dji))
				mag := r2.Norm(fij)
				Expect(r2.Norm(fji)).To(BeNumerically("~", mag, 1e-12*mag))
				Expect(r2.Norm(r2.Add(fij, fji))).To(BeNumerically("<", 1e-12*mag))
			}
		}
	})

	It("moves a lone body in a straight line", func() {
		reg := NewRegistry(TrailConfig{})
		b, err := reg.Add(BodySpec{Name: "probe", Mass: 1000, Pos: r2.Vec{X: 1, Y: 2}, Vel: r2.Vec{X: 10, Y: -5}})
		Expect(err).NotTo(HaveOccurred())

		eng := NewEngine(G, 1)
		for i := 0; i < 10; i++ {
			Expect(eng.Step(reg)).To(Succeed())
		}
		Expect(b.Vel).To(Equal(r2.Vec{X: 10, Y: -5}))
		Expect(b.Pos).To(Equal(r2.Vec{X: 101, Y: -48}))
		Expect(b.Trail()).To(HaveLen(10))
		Expect(b.Trail()[0]).To(Equal(r2.Vec{X: 11, Y: -3}))
	})

	It("keeps a lone body at rest", func() {
		reg := NewRegistry(TrailConfig{})
		b, err := reg.Add(BodySpec{Mass: 1, Pos: r2.Vec{X: 5}})
		Expect(err).NotTo(HaveOccurred())
		Expect(Advance(reg, Day, G)).To(Succeed())
		Expect(b.Pos).To(Equal(r2.Vec{X: 5}))
	})

	It("does nothing for an empty registry", func() {
		Expect(DefaultEngine().Step(NewRegistry(TrailConfig{}))).To(Succeed())
	})

	Describe("failures", func() {
		It("rejects coincident bodies without touching state", func() {
			reg := NewRegistry(TrailConfig{})
			_, err := reg.Add(BodySpec{Name: "a", Mass: 1e20, Pos: r2.Vec{X: 7, Y: 7}, Vel: r2.Vec{X: 1}})
			Expect(err).NotTo(HaveOccurred())
			_, err = reg.Add(BodySpec{Name: "b", Mass: 1e20, Pos: r2.Vec{X: 7, Y: 7}})
			Expect(err).NotTo(HaveOccurred())

			s := New(reg, DefaultEngine())
			for attempt := 0; attempt < 2; attempt++ {
				err = s.Step()
				Expect(err).To(MatchError(ErrDegenerateDistance))

				var se *StepError
				Expect(errors.As(err, &se)).To(BeTrue())
				Expect(se.Tick).To(Equal(1))
				Expect(se.Body).To(Equal(0))
				Expect(se.Other).To(Equal(1))
			}

			Expect(s.Tick()).To(Equal(0))
			for _, b := range reg.Bodies() {
				Expect(b.Pos).To(Equal(r2.Vec{X: 7, Y: 7}))
				Expect(b.TrailLen()).To(Equal(0))
			}
			Expect(reg.Body(0).Vel).To(Equal(r2.Vec{X: 1}))
		})

		It("rejects coincident bodies in sequential mode and rolls back", func() {
			reg := NewRegistry(TrailConfig{})
			_, err := reg.Add(BodySpec{Mass: 1e20, Pos: r2.Vec{X: -1e9}})
			Expect(err).NotTo(HaveOccurred())
			_, err = reg.Add(BodySpec{Mass: 1e20, Pos: r2.Vec{X: 3, Y: 3}})
			Expect(err).NotTo(HaveOccurred())
			_, err = reg.Add(BodySpec{Mass: 1e20, Pos: r2.Vec{X: 3, Y: 3}})
			Expect(err).NotTo(HaveOccurred())

			eng := DefaultEngine()
			eng.Ordering = Sequential
			Expect(eng.Step(reg)).To(MatchError(ErrDegenerateDistance))
			Expect(reg.Body(0).Pos).To(Equal(r2.Vec{X: -1e9}))
			Expect(reg.Body(0).Vel).To(Equal(r2.Vec{}))
		})

		It("reports overflow instead of propagating Inf", func() {
			reg := NewRegistry(TrailConfig{})
			_, err := reg.Add(BodySpec{Mass: 1e300})
			Expect(err).NotTo(HaveOccurred())
			_, err = reg.Add(BodySpec{Mass: 1e300, Pos: r2.Vec{X: 1}})
			Expect(err).NotTo(HaveOccurred())

			Expect(DefaultEngine().Step(reg)).To(MatchError(ErrNumericOverflow))
			Expect(reg.Body(1).Pos).To(Equal(r2.Vec{X: 1}))
			Expect(reg.Body(1).TrailLen()).To(Equal(0))
		})

		DescribeTable("rejects bad engine settings",
			func(g, dt float64, target error) {
				reg := sunEarth(29780, TrailConfig{})
				Expect(Advance(reg, dt, g)).To(MatchError(target))
			},
			Entry("zero dt", G, 0.0, ErrInvalidTimestep),
			Entry("negative dt", G, -1.0, ErrInvalidTimestep),
			Entry("infinite dt", G, math.Inf(1), ErrInvalidTimestep),
			Entry("zero G", 0.0, Day, ErrInvalidGravity),
			Entry("NaN G", math.NaN(), Day, ErrInvalidGravity),
		)

		It("refuses leapfrog with sequential ordering", func() {
			eng := DefaultEngine()
			eng.Scheme = Leapfrog
			eng.Ordering = Sequential
			Expect(eng.Validate()).To(MatchError(ErrIncompatibleScheme))
		})
	})

	Describe("ordering", func() {
		It("moves the first body identically and later bodies differently", func() {
			snap := sunEarth(29780, TrailConfig{})
			seq := sunEarth(29780, TrailConfig{})

			a := DefaultEngine()
			b := DefaultEngine()
			b.Ordering = Sequential

			Expect(a.Step(snap)).To(Succeed())
			Expect(b.Step(seq)).To(Succeed())

			Expect(seq.Body(0).Pos).To(Equal(snap.Body(0).Pos))
			Expect(seq.Body(1).Pos).NotTo(Equal(snap.Body(1).Pos))
		})
	})

	Describe("anchor distance", func() {
		It("is zero before the first tick and cached afterwards", func() {
			reg := sunEarth(29780, TrailConfig{})
			earth := reg.Body(1)
			Expect(earth.DistanceToAnchor()).To(Equal(0.0))

			Expect(Advance(reg, Day, G)).To(Succeed())
			Expect(earth.DistanceToAnchor()).To(Equal(au))
			Expect(reg.Body(0).DistanceToAnchor()).To(Equal(0.0))
		})
	})

	Describe("parallel force sum", func() {
		ring := func() *Registry {
			reg := NewRegistry(TrailConfig{})
			_, err := reg.Add(BodySpec{Name: "sun", Mass: sunMass, Anchor: true})
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i < 24; i++ {
				angle := float64(i) * 2 * math.Pi / 23
				r := au * (1 + 0.1*float64(i))
				v := math.Sqrt(G * sunMass / r)
				_, err := reg.Add(BodySpec{
					Mass: earthMass * float64(i),
					Pos:  r2.Vec{X: r * math.Cos(angle), Y: r * math.Sin(angle)},
					Vel:  r2.Vec{X: -v * math.Sin(angle), Y: v * math.Cos(angle)},
				})
				Expect(err).NotTo(HaveOccurred())
			}
			return reg
		}

		It("produces the same trajectory as the serial path", func() {
			serial, parallel := ring(), ring()
			a := DefaultEngine()
			b := DefaultEngine()
			b.Workers = 4

			for i := 0; i < 50; i++ {
				Expect(a.Step(serial)).To(Succeed())
				Expect(b.Step(parallel)).To(Succeed())
			}
			Expect(parallel.Positions()).To(Equal(serial.Positions()))
		})
	})
})

var _ = Describe("Simulation", func() {
	It("counts ticks and notifies observers", func() {
		s := New(sunEarth(29780, TrailConfig{}), DefaultEngine())
		obs := &countingObserver{}
		s.AddObserver(obs)

		Expect(s.Run(context.Background(), 5)).To(Succeed())
		Expect(s.Tick()).To(Equal(5))
		Expect(s.Elapsed()).To(Equal(5 * Day))
		Expect(obs.ticks).To(Equal([]int{1, 2, 3, 4, 5}))
	})

	It("stops on cancellation", func() {
		s := New(sunEarth(29780, TrailConfig{}), DefaultEngine())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(s.Run(ctx, 10)).To(MatchError(context.Canceled))
		Expect(s.Tick()).To(Equal(0))
	})
})

type countingObserver struct {
	ticks []int
}

func (c *countingObserver) OnTick(tick int, t float64, reg *Registry) {
	c.ticks = append(c.ticks, tick)
}
