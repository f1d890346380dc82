// Package storage persists simulation runs as per-run directories holding
// metadata.json and signal.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
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

type ModeInfo struct {
	Freq float64 `json:"freq"`
	Ampl float64 `json:"ampl"`
	Eta  float64 `json:"eta"`
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	KickFactor   float64            `json:"kick_factor"`
	KickTimestep float64            `json:"kick_timestep"`
	WarmupKicks  int                `json:"warmup_kicks"`
	Flux         float64            `json:"flux"`
	Samples      int                `json:"samples"`
	Modes        []ModeInfo         `json:"modes"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes a run directory and returns its id. The flux series may be
// nil when no flux rescaling was configured.
func (s *Store) Save(meta RunMetadata, times, signal, flux []float64) (string, error) {
	runID := fmt.Sprintf("osc_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Samples = len(signal)

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

	csvFile, err := os.Create(filepath.Join(runDir, "signal.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"time", "signal"}
	if flux != nil {
		header = append(header, "flux")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for j := range signal {
		row := []string{
			strconv.FormatFloat(times[j], 'g', -1, 64),
			strconv.FormatFloat(signal[j], 'g', -1, 64),
		}
		if flux != nil {
			row = append(row, strconv.FormatFloat(flux[j], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return runID, w.Error()
}

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

// LoadSignal reads the persisted series back. The flux column is nil when
// the run was saved without one.
func (s *Store) LoadSignal(runID string) (times, signal, flux []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "signal.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, nil, nil
	}

	hasFlux := len(records[0]) > 2
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		signal = append(signal, v)

		if hasFlux && len(record) > 2 {
			f, err := strconv.ParseFloat(record[2], 64)
			if err == nil {
				flux = append(flux, f)
			}
		}
	}

	return times, signal, flux, nil
}
