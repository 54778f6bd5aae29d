package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// Search failure modes. Each one is fatal to the photo being processed,
// never to the batch.
var (
	ErrInsufficientData     = errors.New("fewer than two location samples available")
	ErrNoBracketingInterval = errors.New("timestamp outside the recorded location history")
	ErrToleranceExceeded    = errors.New("nearest location samples exceed the allowed time delta")
)

// Sample is one observation from the location history.
type Sample struct {
	Timestamp int64   // seconds since epoch
	Lat       float64 // decimal degrees, positive north
	Lng       float64 // decimal degrees, positive east
}

// LocationIndex answers nearest-timestamp queries over a location history.
// Samples are collected into a working set, then frozen into a sorted
// sequence by Compile. Queries assume the compiled order.
type LocationIndex struct {
	working map[Sample]struct{}
	samples []Sample
}

// NewLocationIndex creates an empty index.
func NewLocationIndex() *LocationIndex {
	return &LocationIndex{
		working: make(map[Sample]struct{}),
	}
}

// indexFromSamples rebuilds an index from a previously compiled sequence.
func indexFromSamples(samples []Sample) *LocationIndex {
	idx := NewLocationIndex()
	for _, s := range samples {
		idx.Add(s)
	}
	idx.Compile()
	return idx
}

// Add records a sample. Identical (timestamp, lat, lng) triples collapse to
// a single entry.
func (idx *LocationIndex) Add(s Sample) {
	idx.working[s] = struct{}{}
}

// Len returns the number of distinct samples.
func (idx *LocationIndex) Len() int {
	return len(idx.working)
}

// Compile freezes the working set into a sequence sorted ascending by
// timestamp. Idempotent: calling it any number of times yields the same
// sequence.
func (idx *LocationIndex) Compile() {
	samples := make([]Sample, 0, len(idx.working))
	for s := range idx.working {
		samples = append(samples, s)
	}
	sort.Slice(samples, func(i, j int) bool {
		a, b := samples[i], samples[j]
		if a.Timestamp != b.Timestamp {
			return a.Timestamp < b.Timestamp
		}
		if a.Lat != b.Lat {
			return a.Lat < b.Lat
		}
		return a.Lng < b.Lng
	})
	idx.samples = samples
}

// Samples returns a copy of the compiled sequence. The internal sequence
// stays immutable after Compile.
func (idx *LocationIndex) Samples() []Sample {
	return append([]Sample(nil), idx.samples...)
}

// Search finds the coordinate recorded nearest in time to ts. The query
// must fall inside a bracketing pair of consecutive samples, and at least
// one end of the bracket must be within maxDelta seconds. Ties between the
// two ends resolve to the earlier sample. Read-only.
func (idx *LocationIndex) Search(ts, maxDelta int64) (lat, lng float64, err error) {
	samples := idx.samples
	n := len(samples)
	if n < 2 {
		return 0, 0, ErrInsufficientData
	}

	// First index with samples[lo].Timestamp >= ts. The slice is sorted,
	// so the binary search lands on the first bracketing pair a pairwise
	// scan would reach, including runs of duplicate timestamps.
	lo := sort.Search(n, func(k int) bool { return samples[k].Timestamp >= ts })
	var i int
	switch {
	case lo == n:
		return 0, 0, ErrNoBracketingInterval
	case lo == 0:
		if samples[0].Timestamp != ts {
			return 0, 0, ErrNoBracketingInterval
		}
		i = 0
	default:
		i = lo - 1
	}

	prev, next := samples[i], samples[i+1]
	dPrev := ts - prev.Timestamp
	dNext := next.Timestamp - ts
	if dPrev > maxDelta && dNext > maxDelta {
		return 0, 0, ErrToleranceExceeded
	}
	if dPrev <= dNext {
		return prev.Lat, prev.Lng, nil
	}
	return next.Lat, next.Lng, nil
}

// rawLocation mirrors one entry of a Google Takeout location history
// document: millisecond timestamp plus 1e-7 degree fixed-point coordinates.
type rawLocation struct {
	TimestampMs string `json:"timestampMs"`
	LatitudeE7  *int64 `json:"latitudeE7"`
	LongitudeE7 *int64 `json:"longitudeE7"`
}

// locationHistory is the top-level history document.
type locationHistory struct {
	Locations []rawLocation `json:"locations"`
}

// loadLocationHistory parses the history document into a compiled index.
// A missing required field fails the whole load.
func loadLocationHistory(path string) (*LocationIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read location history: %v", err)
	}

	var doc locationHistory
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse location history %s: %v", path, err)
	}

	idx := NewLocationIndex()
	for i, loc := range doc.Locations {
		if loc.TimestampMs == "" || loc.LatitudeE7 == nil || loc.LongitudeE7 == nil {
			return nil, fmt.Errorf("location entry %d is missing a required field", i)
		}
		ms, err := strconv.ParseInt(loc.TimestampMs, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("location entry %d has an invalid timestamp: %v", i, err)
		}
		idx.Add(Sample{
			Timestamp: ms / 1000,
			Lat:       float64(*loc.LatitudeE7) / 1e7,
			Lng:       float64(*loc.LongitudeE7) / 1e7,
		})
	}
	idx.Compile()
	return idx, nil
}
