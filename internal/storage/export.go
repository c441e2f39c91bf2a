package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/experiment"
)

type ExportData struct {
	Scenario  string             `json:"scenario"`
	Dt        float64            `json:"dt"`
	Ticks     int                `json:"ticks"`
	Bodies    []string           `json:"bodies"`
	Anchor    int                `json:"anchor"`
	Times     []float64          `json:"times"`
	Tracks    [][][2]float64     `json:"tracks"`
	Distances [][]float64        `json:"distances"`
	Metrics   map[string]float64 `json:"metrics"`
	Error     string             `json:"error,omitempty"`
}

// ExportJSON writes a whole run as one indented JSON document.
func ExportJSON(w io.Writer, scenario string, dt float64, result *experiment.Result) error {
	data := ExportData{
		Scenario:  scenario,
		Dt:        dt,
		Ticks:     result.Ticks,
		Bodies:    result.Names,
		Anchor:    result.Anchor,
		Times:     result.Times,
		Tracks:    make([][][2]float64, len(result.Tracks)),
		Distances: result.Distances,
		Metrics:   result.Metrics,
	}
	if result.Err != nil {
		data.Error = result.Err.Error()
	}

	for i, frame := range result.Tracks {
		data.Tracks[i] = make([][2]float64, len(frame))
		for j, p := range frame {
			data.Tracks[i][j] = [2]float64{p.X, p.Y}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteCSV writes one row per frame: time, then x, y and anchor distance
// for every body.
func WriteCSV(w io.Writer, result *experiment.Result) error {
	cw := csv.NewWriter(w)

	header := []string{"time"}
	for _, name := range result.Names {
		header = append(header, name+"_x", name+"_y", name+"_dist")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, frame := range result.Tracks {
		row := make([]string, 0, len(header))
		row = append(row, format(result.Times[i]))
		for j, p := range frame {
			row = append(row, format(p.X), format(p.Y), format(result.Distances[i][j]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
