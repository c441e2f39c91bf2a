package config

// Astronomical constants used by the built-in scenarios.
const (
	AU  = 149.6e6 * 1000
	G   = 6.67428e-11
	Day = 3600 * 24

	SunMass     = 1.98892e30
	MercuryMass = 3.301e23
	VenusMass   = 4.8685e24
	EarthMass   = 5.9742e24
	MarsMass    = 6.417e23
	JupiterMass = 1.899e27
	SaturnMass  = 5.685e26
	UranusMass  = 8.682e25
	NeptuneMass = 1.024e26

	// Mean orbital speeds, m/s.
	MercurySpeed = 47.36 * 1000
	VenusSpeed   = 35.02 * 1000
	EarthSpeed   = 29.78 * 1000
	MarsSpeed    = 24.07 * 1000
	JupiterSpeed = 13.06 * 1000
	SaturnSpeed  = 9.68 * 1000
	UranusSpeed  = 6.80 * 1000
	NeptuneSpeed = 5.43 * 1000

	// Mean volumetric radii, m. Display only.
	SunRadius     = 695700 * 1000
	MercuryRadius = 2439.7 * 1000
	VenusRadius   = 6051.8 * 1000
	EarthRadius   = 6371 * 1000
	MarsRadius    = 3389.5 * 1000
	JupiterRadius = 69911 * 1000
	SaturnRadius  = 58232 * 1000
	UranusRadius  = 25362 * 1000
	NeptuneRadius = 24622 * 1000
)
