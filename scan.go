package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	goexif "github.com/rwcarlsen/goexif/exif"
)

// isPhotoFile checks for the JPEG extensions the geotag writer supports
func isPhotoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return true
	}
	return false
}

// collectPhotoFiles expands file and directory arguments into a
// deterministic, naturally ordered list of photo files.
func collectPhotoFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %v", arg, err)
		}

		if !info.IsDir() {
			if !isPhotoFile(arg) {
				fmt.Printf("⚠️  Skipping non-photo file: %s\n", arg)
				continue
			}
			files = append(files, arg)
			continue
		}

		err = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if isPhotoFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %v", arg, err)
		}
	}

	sort.Sort(natural.StringSlice(files))
	return files, nil
}

// probePhoto does a cheap read-only check for a capture timestamp and an
// existing geotag.
func probePhoto(path string) (hasTime, hasGeo bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return false, false, err
	}
	defer f.Close()

	x, err := goexif.Decode(f)
	if err != nil {
		return false, false, fmt.Errorf("no readable EXIF data: %v", err)
	}

	if _, err := x.Get(goexif.DateTimeOriginal); err == nil {
		hasTime = true
	} else if _, err := x.Get(goexif.DateTimeDigitized); err == nil {
		hasTime = true
	}
	if _, err := x.Get(goexif.GPSLatitude); err == nil {
		hasGeo = true
	} else if _, err := x.Get(goexif.GPSLongitude); err == nil {
		hasGeo = true
	}
	return hasTime, hasGeo, nil
}

// scanPhotos reports timestamp and geotag presence for a batch without
// modifying anything.
func scanPhotos(args []string) error {
	files, err := collectPhotoFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("⚠️  No photo files found.")
		return nil
	}

	fmt.Printf("🔍 Scanning %d photo(s)...\n\n", len(files))

	var taggable, alreadyTagged, noTimestamp, unreadable int
	for _, path := range files {
		hasTime, hasGeo, err := probePhoto(path)
		switch {
		case err != nil:
			fmt.Printf("⚠️  %s: %v\n", path, err)
			unreadable++
		case hasGeo:
			fmt.Printf("📍 %s: already geotagged\n", path)
			alreadyTagged++
		case !hasTime:
			fmt.Printf("❓ %s: no capture timestamp\n", path)
			noTimestamp++
		default:
			fmt.Printf("📷 %s: ready for geotagging\n", path)
			taggable++
		}
	}

	fmt.Printf("\n📊 Scan Summary:\n")
	fmt.Printf("📷 Ready for geotagging: %d\n", taggable)
	fmt.Printf("📍 Already geotagged:    %d\n", alreadyTagged)
	fmt.Printf("❓ Missing timestamp:    %d\n", noTimestamp)
	fmt.Printf("⚠️  Unreadable:           %d\n", unreadable)
	return nil
}
