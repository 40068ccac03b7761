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
	"time"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID          string    `json:"id"`
	Preset      string    `json:"preset"`
	Timestamp   time.Time `json:"timestamp"`
	Nodes       int       `json:"nodes"`
	Lines       int       `json:"lines"`
	Steps       int       `json:"steps"`
	Gap         float32   `json:"gap"`
	Div         float64   `json:"div"`
	Delay       string    `json:"delay"`
	Taps        int       `json:"taps"`
	IgnoredTaps int       `json:"ignored_taps"`
	Ticks       int       `json:"ticks"`
	Completions int       `json:"completions"`
	Skipped     int       `json:"skipped"`
}

// Save writes meta and the trace into a new run directory and returns
// its id. ID and Timestamp are assigned here.
func (s *Store) Save(meta RunMetadata, trace []Sample) (string, error) {
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now

	err := writeFile(filepath.Join(runDir, "metadata.json"), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", err
	}

	err = writeFile(filepath.Join(runDir, "frames.csv"), func(f *os.File) error {
		w := csv.NewWriter(f)

		header := []string{"tick", "current", "dir"}
		for i := 0; i < meta.Nodes; i++ {
			header = append(header, fmt.Sprintf("s%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}

		for _, smp := range trace {
			row := []string{
				strconv.Itoa(smp.Tick),
				strconv.Itoa(smp.Current),
				strconv.Itoa(smp.Dir),
			}
			for _, v := range smp.Scales {
				row = append(row, strconv.FormatFloat(float64(v), 'f', 6, 32))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}

		w.Flush()
		return w.Error()
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}

// writeFile creates path, runs write and reports the first of the write
// and close errors.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
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
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrace reads the frames.csv of a run back into samples. Rows that
// fail to parse are skipped.
func (s *Store) LoadTrace(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	trace := make([]Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		var smp Sample
		var perr error
		if smp.Tick, perr = strconv.Atoi(record[0]); perr != nil {
			continue
		}
		if smp.Current, perr = strconv.Atoi(record[1]); perr != nil {
			continue
		}
		if smp.Dir, perr = strconv.Atoi(record[2]); perr != nil {
			continue
		}
		smp.Scales = make([]float32, 0, len(record)-3)
		for _, field := range record[3:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				continue
			}
			smp.Scales = append(smp.Scales, float32(v))
		}
		trace = append(trace, smp)
	}
	return trace, nil
}
