package config

import (
	"math"
	"sort"
)

// Presets are the built-in scenarios, keyed by name.
var Presets = map[string]func() *Config{
	"solar":     solarSystem,
	"inner":     innerPlanets,
	"earth-sun": earthSun,
	"binary":    binaryStar,
}

// Planets sit on alternating sides of the sun with
// velocities signed so that every body circles the same way.
func solarSystem() *Config {
	c := base("solar")
	c.Bodies = []BodyConfig{
		{Name: "sun", Mass: SunMass, Anchor: true, Color: "#d73806", Size: 40, Radius: SunRadius},
		{Name: "mercury", Mass: MercuryMass, X: 0.387, VY: -MercurySpeed, Color: "#7e7b7e", Size: 20, Radius: MercuryRadius},
		{Name: "venus", Mass: VenusMass, X: 0.723, VY: -VenusSpeed, Color: "#e3c853", Size: 20, Radius: VenusRadius},
		{Name: "earth", Mass: EarthMass, X: -1, VY: EarthSpeed, Color: "#525b99", Size: 20, Radius: EarthRadius},
		{Name: "mars", Mass: MarsMass, X: -1.542, VY: MarsSpeed, Color: "#ec7c5a", Size: 20, Radius: MarsRadius},
		{Name: "jupiter", Mass: JupiterMass, X: 5.204, VY: JupiterSpeed, Color: "#ede7da", Size: 20, Radius: JupiterRadius},
		{Name: "saturn", Mass: SaturnMass, X: 9.582, VY: SaturnSpeed, Color: "#c19156", Size: 20, Radius: SaturnRadius},
		{Name: "uranus", Mass: UranusMass, X: -19.23, VY: UranusSpeed, Color: "#d2f8fb", Size: 20, Radius: UranusRadius},
		{Name: "neptune", Mass: NeptuneMass, X: -30.10, VY: NeptuneSpeed, Color: "#7796be", Size: 20, Radius: NeptuneRadius},
	}
	c.Ticks = 365 * 165
	c.Scale = 10
	return c
}

func innerPlanets() *Config {
	c := solarSystem()
	c.Name = "inner"
	c.Bodies = c.Bodies[:5]
	c.Ticks = 365 * 2
	c.Scale = DefaultScale
	return c
}

func earthSun() *Config {
	c := base("earth-sun")
	c.Bodies = []BodyConfig{
		{Name: "sun", Mass: 1.989e30, Anchor: true, Color: "#d73806", Size: 40, Radius: SunRadius},
		{Name: "earth", Mass: 5.974e24, X: 1, VY: 29780, Color: "#525b99", Size: 20, Radius: EarthRadius},
	}
	c.Ticks = 365
	return c
}

// Two equal stars on a circular mutual orbit around their barycentre.
func binaryStar() *Config {
	c := base("binary")
	c.Bodies = []BodyConfig{
		{Name: "alpha", Mass: SunMass, X: -0.5, Anchor: true, Color: "#ffcc66", Size: 30},
		{Name: "beta", Mass: SunMass, X: 0.5, Color: "#66ccff", Size: 30},
		{Name: "planet", Mass: EarthMass, X: 4, Color: "#88ff88", Size: 12},
	}
	// Each star sits 0.5 AU from the barycentre: v² = G·M·r/d² with d = 1 AU.
	v := math.Sqrt(G * SunMass / (2 * AU))
	c.Bodies[0].VY = -v
	c.Bodies[1].VY = v
	c.Bodies[2].VY = math.Sqrt(G * 2 * SunMass / (4 * AU))
	c.Ticks = 365 * 10
	c.Scale = 60
	return c
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
