package export

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG, keeping cell colours.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	pw, ph := canvas.Pixels()
	width := float64(pw) * scale
	height := float64(ph) * scale

	var sb strings.Builder
	header(&sb, width, height)

	dotRadius := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fill := canvas.Colors[y/4][x/2]
			if fill == "" {
				fill = "#00ff00"
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, fill)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG draws one path scaled to fill the image.
func TrajectoryToSVG(points []r2.Vec, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}
	return TrailsToSVG(nil, [][]r2.Vec{points}, []string{strokeColor}, width, height)
}

// TrailsToSVG draws every body's track on shared axes. tracks[i] is body
// i's path; its last point is marked with a dot. Names, when given, form a
// legend.
func TrailsToSVG(names []string, tracks [][]r2.Vec, colors []string, width, height int) string {
	b, ok := bounds(tracks)
	if !ok {
		return ""
	}

	// equal scale on both axes so orbits stay round
	s := math.Min(float64(width)/b.w, float64(height)/b.h)
	ox := (float64(width) - b.w*s) / 2
	oy := (float64(height) - b.h*s) / 2
	project := func(p r2.Vec) (float64, float64) {
		return ox + (p.X-b.minX)*s, oy + (p.Y-b.minY)*s
	}

	var sb strings.Builder
	header(&sb, float64(width), float64(height))

	for i, track := range tracks {
		if len(track) == 0 {
			continue
		}
		color := "#ffffff"
		if i < len(colors) && colors[i] != "" {
			color = colors[i]
		}

		if len(track) > 1 {
			fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
			for j, p := range track {
				x, y := project(p)
				if j == 0 {
					fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
				} else {
					fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
				}
			}
			sb.WriteString("\"/>\n")
		}

		x, y := project(track[len(track)-1])
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"4\" fill=\"%s\"/>\n", x, y, color)

		if i < len(names) {
			fmt.Fprintf(&sb, "<text x=\"10\" y=\"%d\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\">%s</text>\n",
				20+16*i, color, escape(names[i]))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

type box struct {
	minX, minY, w, h float64
}

// bounds covers every point with 10% padding on each side.
func bounds(tracks [][]r2.Vec) (box, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	n := 0
	for _, track := range tracks {
		for _, p := range track {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
			n++
		}
	}
	if n == 0 {
		return box{}, false
	}

	w, h := maxX-minX, maxY-minY
	if w == 0 {
		w = math.Max(h, 1)
	}
	if h == 0 {
		h = w
	}
	return box{minX: minX - w*0.1, minY: minY - h*0.1, w: w * 1.2, h: h * 1.2}, true
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
