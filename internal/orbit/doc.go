// Package orbit provides the gravitational core of planetsim.
//
// The package owns three pieces:
//
//   - [Registry]: the ordered set of [Body] values (mass, position,
//     velocity, anchor flag, trail)
//   - [Engine]: pairwise Newtonian forces and one fixed-step
//     semi-implicit Euler update per tick
//   - [Trail]: the per-body position history used for drawing orbits
//
// # Example
//
//	reg := orbit.NewRegistry(orbit.TrailConfig{Cap: 2000})
//	reg.Add(orbit.BodySpec{Name: "sun", Mass: 1.989e30, Anchor: true})
//	reg.Add(orbit.BodySpec{Name: "earth", Mass: 5.974e24,
//		Pos: r2.Vec{X: 1.496e11}, Vel: r2.Vec{Y: 29780}})
//	s := orbit.New(reg, orbit.DefaultEngine())
//	for i := 0; i < 365; i++ {
//		if err := s.Step(); err != nil {
//			return err
//		}
//	}
//
// # Thread Safety
//
// A Registry is owned by a single caller. [Engine] may fan the force sum
// out to several goroutines (see [Engine].Workers) but every goroutine writes
// only its own body's slot and all state changes happen after the merge.
package orbit
