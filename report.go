package main

import (
	"fmt"
	"time"
)

// mapsPreviewURL builds the map-preview link reported with every resolved
// coordinate.
func mapsPreviewURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps?z=14&q=loc:%v,%v", lat, lng)
}

// outcomeLine formats the per-photo report: the photo, its resolved
// timestamp, the resolved coordinate and a preview link.
func outcomeLine(path string, ts int64, lat, lng float64, zone *time.Location) string {
	when := time.Unix(ts, 0).In(zone).Format(time.ANSIC)
	return fmt.Sprintf("[%s] %s (%v, %v) %s", path, when, lat, lng, mapsPreviewURL(lat, lng))
}

// runSummary tallies per-photo outcomes across a tag run.
type runSummary struct {
	tagged  int
	skipped int
	failed  int
}

// print writes the end-of-run totals.
func (s *runSummary) print(dryRun bool) {
	fmt.Printf("\n📊 Geotag Summary:\n")
	if dryRun {
		fmt.Printf("✅ Photos resolved: %d\n", s.tagged)
	} else {
		fmt.Printf("✅ Photos tagged:   %d\n", s.tagged)
	}
	fmt.Printf("⏭️  Photos skipped:  %d\n", s.skipped)
	fmt.Printf("⚠️  Photos failed:   %d\n", s.failed)
}
