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

	"github.com/google/uuid"

	"github.com/san-kum/tixyva/internal/canvas"
)

var ErrNotFound = errors.New("storage: snapshot not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Snapshot describes a saved canvas and the script that produced it.
type Snapshot struct {
	ID        string       `json:"id"`
	Source    string       `json:"source"`
	Time      float64      `json:"t"`
	Frames    int          `json:"frames,omitempty"`
	Volume    float64      `json:"volume"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Timestamp time.Time    `json:"timestamp"`
	Stats     canvas.Stats `json:"stats"`
}

// Save writes metadata.json and cells.csv into a new snapshot directory and
// returns the completed metadata.
func (s *Store) Save(meta Snapshot, c canvas.Canvas) (Snapshot, error) {
	meta.ID = uuid.NewString()
	meta.Width, meta.Height = c.Width, c.Height
	meta.Timestamp = time.Now()
	meta.Stats = c.Stats()

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Snapshot{}, err
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return Snapshot{}, err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return Snapshot{}, err
	}

	csvFile, err := os.Create(filepath.Join(dir, "cells.csv"))
	if err != nil {
		return Snapshot{}, err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	row := make([]string, c.Width)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			row[x] = strconv.FormatFloat(c.At(x, y), 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return Snapshot{}, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Snapshot{}, err
	}

	return meta, nil
}

// List returns all snapshots, oldest first.
func (s *Store) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
		return nil, err
	}

	snaps := make([]Snapshot, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Timestamp.Before(snaps[j].Timestamp)
	})
	return snaps, nil
}

func (s *Store) Load(id string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta Snapshot
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadCanvas reads the cells of a snapshot back into a canvas.
func (s *Store) LoadCanvas(id string) (canvas.Canvas, error) {
	meta, err := s.Load(id)
	if err != nil {
		return canvas.Canvas{}, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, id, "cells.csv"))
	if err != nil {
		return canvas.Canvas{}, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return canvas.Canvas{}, err
	}
	if len(records) != meta.Height {
		return canvas.Canvas{}, fmt.Errorf("snapshot %s: %d rows, want %d", id, len(records), meta.Height)
	}

	c := canvas.New(meta.Width, meta.Height)
	for y, record := range records {
		if len(record) != meta.Width {
			return canvas.Canvas{}, fmt.Errorf("snapshot %s: row %d has %d cells, want %d", id, y, len(record), meta.Width)
		}
		for x, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return canvas.Canvas{}, fmt.Errorf("snapshot %s: cell (%d,%d): %w", id, x, y, err)
			}
			c.Cells[c.Index(x, y)] = v
		}
	}
	return c, nil
}
