package export

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/viz"
)

func TestTrailsToSVG(t *testing.T) {
	tracks := [][]r2.Vec{
		{{X: 0, Y: 0}},
		{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}},
	}
	svg := TrailsToSVG([]string{"sun", "a<b"}, tracks, []string{"#d73806", ""}, 400, 300)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if n := strings.Count(svg, "<path"); n != 1 {
		t.Errorf("expected 1 path, got %d", n)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 markers, got %d", n)
	}
	if !strings.Contains(svg, "a&lt;b") {
		t.Error("legend name not escaped")
	}
	if !strings.Contains(svg, `stroke="#ffffff"`) {
		t.Error("missing colour did not fall back to white")
	}
}

func TestTrailsToSVGSharedScale(t *testing.T) {
	// a square track must map to a square in the image
	tracks := [][]r2.Vec{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}}
	svg := TrailsToSVG(nil, tracks, nil, 240, 120)
	if !strings.Contains(svg, "M70.0,10.0 L170.0,10.0 L170.0,110.0") {
		t.Errorf("unexpected path in %s", svg)
	}
}

func TestTrailsToSVGEmpty(t *testing.T) {
	if svg := TrailsToSVG(nil, [][]r2.Vec{{}, {}}, nil, 100, 100); svg != "" {
		t.Error("expected empty output")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG([]r2.Vec{{X: 1}}, 100, 100, "#fff") != "" {
		t.Error("single point should give empty output")
	}
	svg := TrajectoryToSVG([]r2.Vec{{X: 0}, {X: 5, Y: 5}}, 100, 100, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke colour missing")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Pen("#123456")
	c.Set(0, 0)
	c.Pen("")
	c.Set(3, 3)

	svg := CanvasToSVG(c, 2)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `fill="#123456"`) || !strings.Contains(svg, `fill="#00ff00"`) {
		t.Error("dot colours wrong")
	}
	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("unexpected size")
	}
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should give empty output")
	}
}
