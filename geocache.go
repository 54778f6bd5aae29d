package main

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SampleStore persists a compiled sample sequence between runs.
type SampleStore interface {
	// Load returns the stored sequence; ok is false when nothing is stored.
	Load() (samples []Sample, ok bool, err error)
	Save(samples []Sample) error
}

// fileSampleStore keeps the compiled samples in a gob file co-located with
// the dataset.
type fileSampleStore struct {
	path string
}

// newFileSampleStore creates a store at the cache path derived from the
// dataset path.
func newFileSampleStore(datasetPath string) *fileSampleStore {
	return &fileSampleStore{path: cachePathFor(datasetPath)}
}

// cachePathFor swaps the dataset's extension for the cache extension.
func cachePathFor(datasetPath string) string {
	ext := filepath.Ext(datasetPath)
	return strings.TrimSuffix(datasetPath, ext) + ".bin"
}

// Load reads the cached sequence. A missing file is not an error.
func (s *fileSampleStore) Load() ([]Sample, bool, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to open sample cache %s: %v", s.path, err)
	}
	defer f.Close()

	var samples []Sample
	if err := gob.NewDecoder(f).Decode(&samples); err != nil {
		return nil, false, fmt.Errorf("failed to decode sample cache %s: %v", s.path, err)
	}
	return samples, true, nil
}

// Save writes the compiled sequence back for the next run. The sequence is
// encoded up front and written in one shot; a half-written cache would be
// trusted on presence alone by the next run.
func (s *fileSampleStore) Save(samples []Sample) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(samples); err != nil {
		return fmt.Errorf("failed to encode sample cache %s: %v", s.path, err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write sample cache %s: %v", s.path, err)
	}
	return nil
}

// openLocationIndex builds the index from the store when a compiled
// sequence is present, otherwise parses the dataset and saves the result
// back through the store. The cache is trusted on presence alone; there is
// no freshness check against the dataset's content.
func openLocationIndex(datasetPath string, store SampleStore) (*LocationIndex, error) {
	if store != nil {
		samples, ok, err := store.Load()
		if err != nil {
			return nil, err
		}
		if ok {
			return indexFromSamples(samples), nil
		}
	}

	idx, err := loadLocationHistory(datasetPath)
	if err != nil {
		return nil, err
	}
	if store != nil {
		if err := store.Save(idx.Samples()); err != nil {
			return nil, fmt.Errorf("failed to write sample cache: %v", err)
		}
	}
	return idx, nil
}
