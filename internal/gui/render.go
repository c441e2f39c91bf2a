package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/config"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawTrails()
	a.drawBodies()
	a.drawButtons()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawTrails() {
	for i, b := range a.Sim.Registry().Bodies() {
		pts := b.Trail()
		if len(pts) < 3 {
			continue
		}
		strip := make([]rl.Vector2, len(pts))
		for j, p := range pts {
			x, y := a.View.ToScreen(p)
			strip[j] = rl.NewVector2(float32(x), float32(y))
		}
		rl.DrawLineStrip(strip, a.Colors[i])
	}
}

func (a *App) drawBodies() {
	for i, b := range a.Sim.Registry().Bodies() {
		x, y := a.View.ToScreen(b.Pos)
		rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), a.Sizes[i], a.Colors[i])
	}
}

func (a *App) drawButtons() {
	for _, btn := range []struct {
		rect  rl.Rectangle
		label string
	}{{a.ZoomInBtn, "+"}, {a.ZoomOutBtn, "-"}} {
		rl.DrawRectangleLinesEx(btn.rect, 2, ColText)
		w := rl.MeasureText(btn.label, 30)
		rl.DrawText(btn.label,
			int32(btn.rect.X+btn.rect.Width/2)-w/2,
			int32(btn.rect.Y+btn.rect.Height/2)-15,
			30, ColText)
	}
}

func (a *App) drawHUD() {
	days := a.Sim.Elapsed() / config.Day
	rl.DrawText(fmt.Sprintf("%s  day %.0f  zoom %+d", a.Scenario.Name, days, a.View.Zoom()), 10, 10, 20, ColTextDim)

	anchor := a.Sim.Registry().AnchorIndex()
	for i, b := range a.Sim.Registry().Bodies() {
		if i == anchor {
			continue
		}
		x, y := a.View.ToScreen(b.Pos)
		if !a.View.Visible(x, y) {
			continue
		}
		label := fmt.Sprintf("%.0f km", b.DistanceToAnchor()/1000)
		w := rl.MeasureText(label, 14)
		rl.DrawText(label, int32(x)-w/2, int32(y)+int32(a.Sizes[i])+4, 14, ColText)
	}

	if a.Err != nil {
		rl.DrawText(a.Err.Error(), 10, 40, 20, ColError)
	} else if !a.Running {
		rl.DrawText("PAUSED", 10, 40, 20, ColTextDim)
	}
}
