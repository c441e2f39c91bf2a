package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/YashShettigar/Basic-Planet-Simulation/internal/experiment"
)

var ErrMalformedTracks = errors.New("storage: malformed tracks file")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Ticks     int                `json:"ticks"`
	Sample    int                `json:"sample"`
	Ordering  string             `json:"ordering"`
	Scheme    string             `json:"scheme"`
	G         float64            `json:"g"`
	Bodies    []string           `json:"bodies"`
	Masses    []float64          `json:"masses"`
	Colors    []string           `json:"colors"`
	Anchor    int                `json:"anchor"`
	Error     string             `json:"error,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and tracks.csv under a new run directory.
// Bodies, Anchor, Ticks, Metrics and Error are taken from result.
func (s *Store) Save(meta RunMetadata, result *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Bodies = result.Names
	meta.Anchor = result.Anchor
	meta.Ticks = result.Ticks
	meta.Metrics = result.Metrics
	if result.Err != nil {
		meta.Error = result.Err.Error()
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "tracks.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteCSV(f, result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTracks reads a run back as a Result. Metadata fields are filled in
// from metadata.json.
func (s *Store) LoadTracks(runID string) (*experiment.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, "tracks.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	n := len(meta.Bodies)
	result := &experiment.Result{
		Names:   meta.Bodies,
		Anchor:  meta.Anchor,
		Ticks:   meta.Ticks,
		Metrics: meta.Metrics,
	}
	if meta.Error != "" {
		result.Err = errors.New(meta.Error)
	}
	if len(records) < 2 {
		return result, nil
	}
	if len(records[0]) != 1+3*n {
		return nil, fmt.Errorf("%w: %d columns for %d bodies", ErrMalformedTracks, len(records[0]), n)
	}

	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedTracks, line+2, err)
			}
			vals[j] = v
		}

		frame := make([]r2.Vec, n)
		dists := make([]float64, n)
		for i := 0; i < n; i++ {
			frame[i] = r2.Vec{X: vals[1+3*i], Y: vals[2+3*i]}
			dists[i] = vals[3+3*i]
		}
		result.Times = append(result.Times, vals[0])
		result.Tracks = append(result.Tracks, frame)
		result.Distances = append(result.Distances, dists)
	}
	return result, nil
}

// Delete removes a run directory.
func (s *Store) Delete(runID string) error {
	if runID == "" || strings.ContainsAny(runID, `/\`) {
		return fmt.Errorf("invalid run id %q", runID)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}
