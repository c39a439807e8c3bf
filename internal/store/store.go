// Package store persists runs on disk, one directory per run holding
// metadata.json and the sampled trace as trace.csv.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mzhv/oscil/internal/motion"
)

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
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	TMax      float64            `json:"tmax"`
	H         float64            `json:"h"`
	X0        float64            `json:"x0"`
	V0        float64            `json:"v0"`
	Steps     int                `json:"steps"`
	FinalX    float64            `json:"final_x"`
	FinalV    float64            `json:"final_v"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes a completed run under a fresh ID derived from the name and the
// current time, and returns that ID.
func (s *Store) Save(name string, p motion.Params, res motion.Result, trace *motion.Trace, metricVals map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		TMax:      p.TMax,
		H:         p.H,
		X0:        p.X0,
		V0:        p.V0,
		Steps:     res.Steps,
		FinalX:    res.X,
		FinalV:    res.V,
		Metrics:   metricVals,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, trace); err != nil {
		return "", err
	}

	return runID, nil
}

// List scans the data directory for runs. Directories without a readable
// metadata file are skipped.
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

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

// LoadTrace reads a saved trace back. Any malformed row is an error.
func (s *Store) LoadTrace(runID string) (*motion.Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return &motion.Trace{}, nil
	}

	trace := &motion.Trace{
		Times:      make([]float64, 0, len(records)-1),
		Positions:  make([]float64, 0, len(records)-1),
		Velocities: make([]float64, 0, len(records)-1),
	}

	for i, rec := range records[1:] {
		if len(rec) != 3 {
			return nil, fmt.Errorf("trace row %d: expected 3 fields, got %d", i+1, len(rec))
		}
		var vals [3]float64
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("trace row %d: %w", i+1, err)
			}
			vals[j] = v
		}
		trace.Times = append(trace.Times, vals[0])
		trace.Positions = append(trace.Positions, vals[1])
		trace.Velocities = append(trace.Velocities, vals[2])
	}

	return trace, nil
}
