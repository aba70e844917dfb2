package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/model"
	"github.com/CodesByChris/resilience-lifecycle-dashboard/internal/solve"
)

// Store keeps solved runs on disk, one directory per run with
// metadata.json next to samples.csv. Purely a CLI convenience; the
// solver itself never touches it.
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
	ID             string             `json:"id"`
	Variant        string             `json:"variant"`
	Stepper        string             `json:"stepper"`
	Timestamp      time.Time          `json:"timestamp"`
	TMax           float64            `json:"t_max"`
	StepSize       float64            `json:"step_size"`
	Params         map[string]float64 `json:"params"`
	InitialR       float64            `json:"initial_robustness"`
	InitialA       float64            `json:"initial_adaptivity"`
	Samples        int                `json:"samples"`
	FiniteFraction float64            `json:"finite_fraction"`
}

// Save writes one run and returns its ID.
func (s *Store) Save(p *model.ParameterSet, initial model.State, stepper string, tr *solve.Trajectory, finiteFraction float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", p.Variant(), time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Variant:        p.Variant().String(),
		Stepper:        stepper,
		Timestamp:      time.Now(),
		TMax:           p.TMax,
		StepSize:       p.StepSize,
		Params:         p.Params(),
		InitialR:       initial.R,
		InitialA:       initial.A,
		Samples:        tr.Len(),
		FiniteFraction: finiteFraction,
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

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, tr); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteCSV writes the three aligned columns in the export format shared
// by the store and the export-csv command.
func WriteCSV(f io.Writer, tr *solve.Trajectory) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "robustness", "adaptivity"}); err != nil {
		return err
	}
	for i := 0; i < tr.Len(); i++ {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'g', -1, 64),
			strconv.FormatFloat(tr.Robustness[i], 'g', -1, 64),
			strconv.FormatFloat(tr.Adaptivity[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Load reads one run's metadata.
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

// LoadSamples reads one run's trajectory back.
func (s *Store) LoadSamples(runID string) (*solve.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty samples file for run %s", runID)
	}

	tr := &solve.Trajectory{
		Times:      make([]float64, 0, len(records)-1),
		Robustness: make([]float64, 0, len(records)-1),
		Adaptivity: make([]float64, 0, len(records)-1),
	}
	for _, rec := range records[1:] {
		if len(rec) != 3 {
			return nil, fmt.Errorf("malformed sample row in run %s", runID)
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		r, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, err
		}
		a, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, err
		}
		tr.Times = append(tr.Times, t)
		tr.Robustness = append(tr.Robustness, r)
		tr.Adaptivity = append(tr.Adaptivity, a)
	}
	return tr, nil
}

// List returns all stored runs, newest first.
func (s *Store) List() ([]*RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]*RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // skip foreign directories
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}
