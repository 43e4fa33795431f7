package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the dashboard's process-wide state: every dataset, the
// derived summary, and each dataset's JSON form. It is built once before
// the server starts and never modified, so any number of requests may read
// it concurrently.
type Snapshot struct {
	ID       uuid.UUID
	LoadedAt time.Time

	datasets *Collection
	summary  Summary
	json     map[string][]byte
}

// Load reads every dataset in reg from dir and builds a snapshot from them.
func Load(ctx context.Context, dir string, reg *Registry) (*Snapshot, error) {
	c, err := LoadAll(ctx, dir, reg)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(c)
}

// NewSnapshot aggregates c and serializes each dataset.
func NewSnapshot(c *Collection) (*Snapshot, error) {
	s := &Snapshot{
		ID:       uuid.New(),
		LoadedAt: time.Now().UTC(),
		datasets: c,
		summary:  Aggregate(c),
		json:     make(map[string][]byte),
	}

	for _, ds := range c.All() {
		records := ds.Records()
		if records == nil {
			records = []Record{}
		}
		b, err := json.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("serialize dataset %s: %w", ds.Key(), err)
		}
		s.json[ds.Key()] = b
	}

	return s, nil
}

// Datasets returns the loaded datasets.
func (s *Snapshot) Datasets() *Collection {
	return s.datasets
}

// Dataset returns one dataset by key, or nil.
func (s *Snapshot) Dataset(key string) *Dataset {
	return s.datasets.Get(key)
}

// Summary returns the derived statistics and grouping.
func (s *Snapshot) Summary() Summary {
	return s.summary
}

// Stats is shorthand for Summary().Stats.
func (s *Snapshot) Stats() Stats {
	return s.summary.Stats
}

// JSON returns the serialized records of one dataset, or nil for an
// unknown key. The returned slice must not be modified.
func (s *Snapshot) JSON(key string) []byte {
	return s.json[key]
}

// TotalRows returns the number of data rows across all datasets.
func (s *Snapshot) TotalRows() int {
	n := 0
	for _, ds := range s.datasets.All() {
		n += ds.Len()
	}
	return n
}
