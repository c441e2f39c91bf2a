package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/orbit"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "solar" {
		t.Errorf("expected solar, got %s", cfg.Name)
	}
	if len(cfg.Bodies) != 9 {
		t.Errorf("expected 9 bodies, got %d", len(cfg.Bodies))
	}
	if cfg.Dt != 86400 {
		t.Errorf("expected one-day dt, got %f", cfg.Dt)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg == nil {
				t.Fatal("expected preset, got nil")
			}
			if _, err := cfg.Build(); err != nil {
				t.Errorf("build failed: %v", err)
			}
		})
	}
}

func TestGetPreset_Fresh(t *testing.T) {
	a := GetPreset("earth-sun")
	a.Bodies[1].Mass = 1
	b := GetPreset("earth-sun")
	if b.Bodies[1].Mass == 1 {
		t.Error("preset shared state between calls")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	want := []string{"binary", "earth-sun", "inner", "solar"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}
}

func TestLoadSave(t *testing.T) {
	for _, ext := range []string{".yaml", ".yml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenario"+ext)
			orig := GetPreset("inner")
			orig.Workers = 3
			orig.Ordering = "sequential"

			if err := Save(path, orig); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}

			if got.Name != "inner" || got.Workers != 3 || got.Ordering != "sequential" {
				t.Errorf("scalars not round-tripped: %+v", got)
			}
			if len(got.Bodies) != len(orig.Bodies) {
				t.Fatalf("expected %d bodies, got %d", len(orig.Bodies), len(got.Bodies))
			}
			if got.Bodies[3] != orig.Bodies[3] {
				t.Errorf("body mismatch: %+v vs %+v", got.Bodies[3], orig.Bodies[3])
			}
		})
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.toml")
	doc := `
ticks = 10

[[bodies]]
name = "star"
mass = 2e30
anchor = true

[[bodies]]
name = "rock"
mass = 1e20
x = 2.0
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Name != "tiny" {
		t.Errorf("expected name from file, got %q", cfg.Name)
	}
	if cfg.Dt != Day || cfg.G != G || cfg.Ticks != 10 {
		t.Errorf("defaults not kept: dt=%f g=%g ticks=%d", cfg.Dt, cfg.G, cfg.Ticks)
	}
	if len(cfg.Bodies) != 2 || cfg.Bodies[1].X != 2 {
		t.Errorf("bodies not decoded: %+v", cfg.Bodies)
	}
}

func TestLoad_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative g", func(c *Config) { c.G = -1 }},
		{"negative ticks", func(c *Config) { c.Ticks = -1 }},
		{"negative trail", func(c *Config) { c.Trail.Cap = -5 }},
		{"no bodies", func(c *Config) { c.Bodies = nil }},
		{"bad ordering", func(c *Config) { c.Ordering = "random" }},
		{"bad scheme", func(c *Config) { c.Scheme = "rk4" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetPreset("earth-sun")
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBuild_InvalidMass(t *testing.T) {
	cfg := GetPreset("earth-sun")
	cfg.Bodies[1].Mass = 0
	if _, err := cfg.Build(); !errors.Is(err, orbit.ErrInvalidMass) {
		t.Errorf("expected ErrInvalidMass, got %v", err)
	}
}

func TestBuild_Engine(t *testing.T) {
	cfg := GetPreset("earth-sun")
	cfg.Ordering = "sequential"
	cfg.Workers = 2

	s, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	eng := s.Engine()
	if eng.Ordering != orbit.Sequential || eng.Workers != 2 || eng.Dt != Day {
		t.Errorf("engine not configured: %+v", eng)
	}

	earth := s.Registry().Body(1)
	if earth.Pos.X != AU || earth.Vel.Y != 29780 {
		t.Errorf("unit conversion wrong: pos=%v vel=%v", earth.Pos, earth.Vel)
	}
}

func TestBuild_LeapfrogSequentialRejected(t *testing.T) {
	cfg := GetPreset("earth-sun")
	cfg.Ordering = "sequential"
	cfg.Scheme = "leapfrog"
	if _, err := cfg.Build(); !errors.Is(err, orbit.ErrIncompatibleScheme) {
		t.Errorf("expected ErrIncompatibleScheme, got %v", err)
	}
}

func TestAutoOrbit(t *testing.T) {
	cfg := base("auto")
	cfg.AutoOrbit = true
	cfg.Bodies = []BodyConfig{
		{Name: "star", Mass: SunMass, Anchor: true},
		{Name: "planet", Mass: EarthMass, Y: 2},
		{Name: "moving", Mass: EarthMass, X: 3, VY: 100},
	}

	reg, err := cfg.Registry()
	if err != nil {
		t.Fatal(err)
	}

	want := math.Sqrt(G * SunMass / (2 * AU))
	p := reg.Body(1)
	if math.Abs(p.Vel.X+want) > 1e-9 || p.Vel.Y != 0 {
		t.Errorf("planet velocity = %v, want (%f, 0)", p.Vel, -want)
	}
	if v := reg.Body(2).Vel; v.X != 0 || v.Y != 100 {
		t.Errorf("explicit velocity overwritten: %v", v)
	}
	if cfg.Bodies[1].VX != 0 {
		t.Error("AutoOrbit mutated the config")
	}
}
