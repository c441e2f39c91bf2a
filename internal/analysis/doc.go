// Package analysis extracts orbital quantities from recorded runs.
//
//   - [OrbitalPeriod]: time for one full revolution about the anchor
//   - [Apsides] and [Eccentricity]: closest and farthest approach
//   - [PowerSpectrum] and [DominantPeriod]: spectral view of a series
//   - [KeplerPeriod] and [CircularSpeed]: two-body reference values
//
// A measured period can be checked against Kepler's third law:
//
//	measured, _ := analysis.OrbitalPeriod(earth, sun, dt)
//	expected := analysis.KeplerPeriod(au, g, sunMass)
package analysis
