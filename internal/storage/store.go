package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/magsetup/internal/setup"
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

// RecordMetadata describes one saved resolution.
type RecordMetadata struct {
	ID          string          `json:"id"`
	Selection   setup.Selection `json:"selection"`
	Timestamp   time.Time       `json:"timestamp"`
	MaterialDef []string        `json:"material_def"`
	Templates   int             `json:"templates"`
}

// now is the clock used for record ids and timestamps.
var now = time.Now

// Save writes a resolved descriptor as metadata.json and templates.csv
// under a new record directory, and returns the record id. A record that
// cannot be written completely is removed.
func (s *Store) Save(sel setup.Selection, d *setup.Descriptor) (string, error) {
	ts := now()
	id := fmt.Sprintf("%s_%s_%d", sel.Method, sel.Model, ts.UnixNano())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	paths := d.Paths()
	meta := RecordMetadata{
		ID:          id,
		Selection:   sel,
		Timestamp:   ts,
		MaterialDef: d.MaterialDef,
		Templates:   len(paths),
	}
	if err := writeRecord(dir, meta, paths); err != nil {
		os.RemoveAll(dir)
		return "", err
	}
	return id, nil
}

func writeRecord(dir string, meta RecordMetadata, paths []setup.SlotPath) error {
	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(dir, "templates.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"slot", "path"}); err != nil {
		return err
	}
	for _, p := range paths {
		if err := w.Write([]string{p.Slot, p.Path}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the saved records, oldest first. Unreadable entries are skipped.
func (s *Store) List() ([]RecordMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RecordMetadata{}, nil
		}
		return nil, err
	}

	records := make([]RecordMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		records = append(records, *meta)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}

func (s *Store) Load(id string) (*RecordMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RecordMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadDescriptor rebuilds the descriptor saved under id.
func (s *Store) LoadDescriptor(id string) (*setup.Descriptor, error) {
	meta, err := s.Load(id)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, id, "templates.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	d := &setup.Descriptor{Stats: []string{}, MaterialDef: meta.MaterialDef}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		slot, path := rec[0], rec[1]
		if slot == setup.SlotStats {
			d.Stats = append(d.Stats, path)
			continue
		}
		if !d.Set(slot, path) {
			return nil, fmt.Errorf("record %s: unknown slot %q", id, slot)
		}
	}
	return d, nil
}
