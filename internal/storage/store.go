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

	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/iterate"
)

const (
	metadataFile = "metadata.json"
	tableFile    = "table.csv"
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

// RunMetadata describes one produced artifact.
type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Map       string             `json:"map"`
	Timestamp time.Time          `json:"timestamp"`
	X0        float64            `json:"x0"`
	Start     float64            `json:"start"`
	Stop      float64            `json:"stop"`
	Params    int                `json:"params"`
	Rows      int                `json:"rows"`
	FirstStep int                `json:"first_step"`
	Output    string             `json:"output,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save records a run directory holding meta and, when table is non-nil,
// its states in long form: param,index,state. index counts map
// applications from x0.
func (s *Store) Save(meta RunMetadata, table *iterate.Table) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%s_%d", meta.Kind, meta.Map, now.UnixNano())
	meta.Timestamp = now
	if table != nil {
		meta.Params = table.NumCols()
		meta.Rows = table.NumRows()
		meta.FirstStep = table.Start
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if table == nil {
		return meta.ID, nil
	}
	if err := writeTableCSV(filepath.Join(runDir, tableFile), table); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTableCSV(path string, table *iterate.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"param", "index", "state"}); err != nil {
		f.Close()
		return err
	}
	for _, p := range table.Points() {
		row := []string{
			strconv.FormatFloat(p.R, 'g', -1, 64),
			strconv.Itoa(table.Start + p.Index),
			strconv.FormatFloat(p.X, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// ErrNoTable is returned by LoadTable for runs saved without states.
var ErrNoTable = errors.New("run has no recorded table")

// LoadTable rebuilds the table saved with a run.
func (s *Store) LoadTable(runID string) (*iterate.Table, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, tableFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoTable
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, ErrNoTable
	}

	if meta.Params <= 0 || meta.Rows <= 0 || len(records)-1 != meta.Params*meta.Rows {
		return nil, fmt.Errorf("run %s: table has %d cells, metadata says %dx%d",
			runID, len(records)-1, meta.Rows, meta.Params)
	}

	params := make(dynamo.State, meta.Params)
	rows := make([][]float64, meta.Rows)
	for i := range rows {
		rows[i] = make([]float64, meta.Params)
	}

	// Points are written row by row, so cell n sits at (n / params, n % params).
	for n, record := range records[1:] {
		r, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, n+2, err)
		}
		x, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, n+2, err)
		}
		i, k := n/meta.Params, n%meta.Params
		if i == 0 {
			params[k] = r
		}
		rows[i][k] = x
	}

	return iterate.NewTable(params, meta.FirstStep, rows)
}
