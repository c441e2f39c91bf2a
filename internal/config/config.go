package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/orbit"
)

const (
	DefaultTicks    = 3650
	DefaultTrailCap = 1000
	DefaultScale    = 150 // pixels per AU
	DefaultWidth    = 1200
	DefaultHeight   = 800
)

var ErrUnknownFormat = errors.New("config: unknown file format (want .yaml, .yml or .toml)")

// Config describes one scenario: constants, engine options, presentation
// hints and the initial bodies. AutoOrbit gives every non-anchor body with
// zero velocity the circular speed around the anchor.
type Config struct {
	Name      string       `yaml:"name" toml:"name"`
	G         float64      `yaml:"g" toml:"g"`
	Dt        float64      `yaml:"dt" toml:"dt"`
	Ticks     int          `yaml:"ticks" toml:"ticks"`
	Trail     TrailConfig  `yaml:"trail" toml:"trail"`
	Ordering  string       `yaml:"ordering" toml:"ordering"`
	Scheme    string       `yaml:"scheme" toml:"scheme"`
	Workers   int          `yaml:"workers" toml:"workers"`
	AutoOrbit bool         `yaml:"auto_orbit" toml:"auto_orbit"`
	Scale     float64      `yaml:"scale" toml:"scale"`
	Bodies    []BodyConfig `yaml:"bodies" toml:"bodies"`
}

type TrailConfig struct {
	Cap   int `yaml:"cap" toml:"cap"`
	Every int `yaml:"every" toml:"every"`
}

// BodyConfig positions are in AU, velocities in m/s.
type BodyConfig struct {
	Name   string  `yaml:"name" toml:"name"`
	Mass   float64 `yaml:"mass" toml:"mass"`
	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	VX     float64 `yaml:"vx" toml:"vx"`
	VY     float64 `yaml:"vy" toml:"vy"`
	Anchor bool    `yaml:"anchor" toml:"anchor"`
	Color  string  `yaml:"color" toml:"color"`
	Size   float64 `yaml:"size" toml:"size"`
	Radius float64 `yaml:"radius" toml:"radius"`
}

// DefaultConfig is the full solar system.
func DefaultConfig() *Config {
	return solarSystem()
}

// base returns a config with every scalar defaulted and no bodies.
func base(name string) *Config {
	return &Config{
		Name:     name,
		G:        G,
		Dt:       Day,
		Ticks:    DefaultTicks,
		Trail:    TrailConfig{Cap: DefaultTrailCap, Every: 1},
		Ordering: orbit.Snapshot.String(),
		Scheme:   orbit.SemiImplicitEuler.String(),
		Workers:  1,
		Scale:    DefaultScale,
	}
}

// Load reads a scenario, choosing the decoder by file extension. Fields
// missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := base(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err = toml.Decode(string(data), cfg)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".toml":
		var b strings.Builder
		err = toml.NewEncoder(&b).Encode(cfg)
		data = []byte(b.String())
	default:
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ParseOrdering(s string) (orbit.Ordering, error) {
	switch strings.ToLower(s) {
	case "", "snapshot":
		return orbit.Snapshot, nil
	case "sequential":
		return orbit.Sequential, nil
	}
	return 0, fmt.Errorf("config: unknown ordering %q", s)
}

func ParseScheme(s string) (orbit.Scheme, error) {
	switch strings.ToLower(s) {
	case "", "euler":
		return orbit.SemiImplicitEuler, nil
	case "leapfrog":
		return orbit.Leapfrog, nil
	}
	return 0, fmt.Errorf("config: unknown scheme %q", s)
}

// Validate checks scalar settings. Body values are checked by the
// registry when the scenario is built.
func (c *Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if !(c.G > 0) {
		return fmt.Errorf("g must be positive, got %g", c.G)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", c.Ticks)
	}
	if c.Trail.Cap < 0 {
		return fmt.Errorf("trail cap must not be negative, got %d", c.Trail.Cap)
	}
	if len(c.Bodies) == 0 {
		return errors.New("scenario has no bodies")
	}
	if _, err := ParseOrdering(c.Ordering); err != nil {
		return err
	}
	if _, err := ParseScheme(c.Scheme); err != nil {
		return err
	}
	return nil
}

// Engine builds the engine described by c.
func (c *Config) Engine() (*orbit.Engine, error) {
	ord, err := ParseOrdering(c.Ordering)
	if err != nil {
		return nil, err
	}
	sch, err := ParseScheme(c.Scheme)
	if err != nil {
		return nil, err
	}

	eng := orbit.NewEngine(c.G, c.Dt)
	eng.Ordering = ord
	eng.Scheme = sch
	eng.Workers = c.Workers
	return eng, eng.Validate()
}

// Registry converts the bodies to SI units and registers them in order.
func (c *Config) Registry() (*orbit.Registry, error) {
	bodies := c.Bodies
	if c.AutoOrbit {
		bodies = c.withCircularVelocities()
	}

	reg := orbit.NewRegistry(orbit.TrailConfig{Cap: c.Trail.Cap, Every: c.Trail.Every})
	for _, b := range bodies {
		_, err := reg.Add(orbit.BodySpec{
			Name:   b.Name,
			Mass:   b.Mass,
			Pos:    r2.Vec{X: b.X * AU, Y: b.Y * AU},
			Vel:    r2.Vec{X: b.VX, Y: b.VY},
			Anchor: b.Anchor,
		})
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Build validates c and returns a ready simulation.
func (c *Config) Build() (*orbit.Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	eng, err := c.Engine()
	if err != nil {
		return nil, err
	}
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	return orbit.New(reg, eng), nil
}

func (c *Config) withCircularVelocities() []BodyConfig {
	out := make([]BodyConfig, len(c.Bodies))
	copy(out, c.Bodies)

	anchor := -1
	for i, b := range out {
		if b.Anchor {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return out
	}

	central := out[anchor]
	for i := range out {
		if i == anchor || out[i].VX != 0 || out[i].VY != 0 {
			continue
		}
		dx := (out[i].X - central.X) * AU
		dy := (out[i].Y - central.Y) * AU
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := math.Sqrt(c.G * central.Mass / r)
		out[i].VX = central.VX - dy/r*v
		out[i].VY = central.VY + dx/r*v
	}
	return out
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = make([]BodyConfig, len(c.Bodies))
	copy(cp.Bodies, c.Bodies)
	return &cp
}

// Names lists body names in registry order.
func (c *Config) Names() []string {
	names := make([]string, len(c.Bodies))
	for i, b := range c.Bodies {
		names[i] = b.Name
	}
	return names
}
