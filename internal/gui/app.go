package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/config"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/orbit"
	"github.com/YashShettigar/Basic-Planet-Simulation/internal/view"
)

const (
	fps       = 60
	btnWidth  = 100
	btnHeight = 40
)

var (
	ColBg      = rl.NewColor(0, 0, 0, 255)
	ColText    = rl.NewColor(255, 255, 255, 255)
	ColTextDim = rl.NewColor(140, 140, 140, 255)
	ColError   = rl.NewColor(255, 68, 68, 255)
)

// App holds everything the window loop needs between frames.
type App struct {
	Scenario *config.Config
	Sim      *orbit.Simulation
	View     *view.Viewport
	Colors   []rl.Color
	Sizes    []float32
	Running  bool
	Err      error

	ZoomInBtn  rl.Rectangle
	ZoomOutBtn rl.Rectangle
}

// NewApp builds the simulation and lays out the window. It does not open
// the window.
func NewApp(scenario *config.Config) (*App, error) {
	sim, err := scenario.Build()
	if err != nil {
		return nil, err
	}

	hex := make([]string, len(scenario.Bodies))
	sizes := make([]float32, len(scenario.Bodies))
	for i, b := range scenario.Bodies {
		hex[i] = b.Color
		sizes[i] = float32(b.Size) / 2
		if sizes[i] <= 0 {
			sizes[i] = 8
		}
	}
	colors := make([]rl.Color, len(hex))
	for i, c := range view.Colors(hex) {
		colors[i] = view.RGBA(c)
	}

	w, h := config.DefaultWidth, config.DefaultHeight
	btnY := float32(h - 2*btnHeight - 10)
	return &App{
		Scenario:   scenario,
		Sim:        sim,
		View:       view.NewViewport(w, h, scenario.Scale/config.AU, fps),
		Colors:     colors,
		Sizes:      sizes,
		Running:    true,
		ZoomInBtn:  rl.NewRectangle(float32(w)/2-btnWidth, btnY, btnWidth, btnHeight),
		ZoomOutBtn: rl.NewRectangle(float32(w)/2, btnY, btnWidth, btnHeight),
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(scenario *config.Config) error {
	app, err := NewApp(scenario)
	if err != nil {
		return err
	}

	rl.InitWindow(int32(app.View.Width), int32(app.View.Height), fmt.Sprintf("Planet Simulation: %s", scenario.Name))
	defer rl.CloseWindow()
	rl.SetTargetFPS(fps)

	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update applies input and advances one tick.
func (a *App) Update() {
	// the wheel zooms in when scrolled toward the user
	if wheel := rl.GetMouseWheelMove(); wheel < 0 {
		a.View.ZoomIn()
	} else if wheel > 0 {
		a.View.ZoomOut()
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		mouse := rl.GetMousePosition()
		switch {
		case rl.CheckCollisionPointRec(mouse, a.ZoomInBtn):
			a.View.ZoomIn()
		case rl.CheckCollisionPointRec(mouse, a.ZoomOutBtn):
			a.View.ZoomOut()
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		if a.Err == nil {
			a.Running = !a.Running
		}
	case rl.IsKeyPressed(rl.KeyR):
		a.reset()
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		a.View.ZoomIn()
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		a.View.ZoomOut()
	}

	if a.Running {
		if err := a.Sim.Step(); err != nil {
			a.Err = err
			a.Running = false
		}
	}
	a.View.Update()
}

func (a *App) reset() {
	sim, err := a.Scenario.Build()
	if err != nil {
		a.Err = err
		return
	}
	a.Sim, a.Err, a.Running = sim, nil, true
	a.View.Reset()
}
