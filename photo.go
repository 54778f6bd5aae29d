package main

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// exifTimeLayout is the fixed timestamp pattern used by the EXIF date tags.
const exifTimeLayout = "2006:01:02 15:04:05"

// ErrMissingTimestamp means neither capture timestamp field is present.
var ErrMissingTimestamp = errors.New("no capture timestamp in photo metadata")

// ErrAlreadyGeotagged marks a photo whose metadata already carries GPS
// tags. It is a skip condition, not a failure.
var ErrAlreadyGeotagged = errors.New("photo already has GPS data")

// TimestampMismatchError reports disagreeing original and digitized
// capture times. The disagreement is a data-integrity problem and is never
// reconciled silently.
type TimestampMismatchError struct {
	Original  time.Time
	Digitized time.Time
}

func (e *TimestampMismatchError) Error() string {
	return fmt.Sprintf("original:%s != digitized:%s",
		e.Original.Format(exifTimeLayout), e.Digitized.Format(exifTimeLayout))
}

// isTimestampMismatch checks if the error is a capture time disagreement
func isTimestampMismatch(err error) bool {
	_, ok := err.(*TimestampMismatchError)
	return ok
}

// isAlreadyGeotagged checks if the error is the skip condition for photos
// that already carry GPS data
func isAlreadyGeotagged(err error) bool {
	return err == ErrAlreadyGeotagged
}

// Photo is one photograph under processing. Metadata is decoded lazily and
// the resolved capture timestamp is memoized for the photo's lifetime.
type Photo struct {
	Path string

	zone *time.Location
	meta Metadata

	ts    int64
	tsSet bool

	offsetOriginal  string
	offsetDigitized string
}

// NewPhoto creates a photo whose metadata is read from the file on first
// use. Timestamps parse against the given zone.
func NewPhoto(path string, zone *time.Location) *Photo {
	return &Photo{Path: path, zone: zone}
}

// newPhotoWithMetadata creates a photo over an already decoded metadata
// source.
func newPhotoWithMetadata(path string, meta Metadata, zone *time.Location) *Photo {
	return &Photo{Path: path, zone: zone, meta: meta}
}

// metadata returns the photo's tag dictionary, decoding it on first use.
func (p *Photo) metadata() (Metadata, error) {
	if p.meta == nil {
		m, err := openExifFile(p.Path)
		if err != nil {
			return nil, err
		}
		p.meta = m
	}
	return p.meta, nil
}

// Timestamp resolves the photo's capture instant as epoch seconds, using
// local-clock semantics in the photo's zone. The digitized field wins when
// present; both fields must agree when both are present. The per-field UTC
// offset tags are read but not folded into the result.
func (p *Photo) Timestamp() (int64, error) {
	if p.tsSet {
		return p.ts, nil
	}

	meta, err := p.metadata()
	if err != nil {
		return 0, err
	}

	var original, digitized *time.Time

	if s, ok := meta.DateTimeOriginal(); ok {
		t, err := parseExifTime(s, p.zone)
		if err != nil {
			return 0, fmt.Errorf("invalid DateTimeOriginal %q: %v", s, err)
		}
		original = &t
	}
	if off, ok := meta.OffsetTimeOriginal(); ok {
		p.offsetOriginal = off
	}

	if s, ok := meta.DateTimeDigitized(); ok {
		t, err := parseExifTime(s, p.zone)
		if err != nil {
			return 0, fmt.Errorf("invalid DateTimeDigitized %q: %v", s, err)
		}
		digitized = &t
	}
	if off, ok := meta.OffsetTimeDigitized(); ok {
		p.offsetDigitized = off
	}

	if original == nil && digitized == nil {
		return 0, ErrMissingTimestamp
	}
	if original != nil && digitized != nil && !original.Equal(*digitized) {
		return 0, &TimestampMismatchError{Original: *original, Digitized: *digitized}
	}

	picked := original
	if digitized != nil {
		picked = digitized
	}
	p.ts = picked.Unix()
	p.tsSet = true
	return p.ts, nil
}

// Offsets returns the UTC offset tag values read alongside the timestamps.
// Empty strings mean the tag was absent.
func (p *Photo) Offsets() (original, digitized string) {
	return p.offsetOriginal, p.offsetDigitized
}

// HasGeo reports whether the metadata already carries a latitude or
// longitude tag. An unreadable or missing tag dictionary reads as no
// geotag rather than an error.
func (p *Photo) HasGeo() bool {
	meta, err := p.metadata()
	if err != nil {
		return false
	}
	return meta.HasGPS()
}

// WriteLatLng encodes the coordinate and replaces the photo's GPS block in
// place. Photos that already carry GPS data are left untouched and report
// ErrAlreadyGeotagged.
func (p *Photo) WriteLatLng(lat, lng float64) error {
	if p.HasGeo() {
		return ErrAlreadyGeotagged
	}
	meta, err := p.metadata()
	if err != nil {
		return err
	}
	return meta.SetGPS(encodeCoordinate(lat, lng))
}

// parseExifTime parses the fixed EXIF timestamp pattern in the given zone.
// An hour value of 24 is normalized to 00 with the date advanced one day.
func parseExifTime(s string, zone *time.Location) (time.Time, error) {
	addDay := false
	if strings.Index(s, " 24:") > 0 {
		s = strings.Replace(s, " 24:", " 00:", 1)
		addDay = true
	}
	t, err := time.ParseInLocation(exifTimeLayout, s, zone)
	if err != nil {
		return time.Time{}, err
	}
	if addDay {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}
