package main

import (
	"bytes"
	"fmt"
	"os"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// Metadata is the narrow contract this tool needs from the EXIF codec: the
// two capture timestamp fields with their UTC offsets, GPS presence, and a
// wholesale GPS block write. It decouples the core from the codec's native
// tag schema.
type Metadata interface {
	DateTimeOriginal() (string, bool)
	OffsetTimeOriginal() (string, bool)
	DateTimeDigitized() (string, bool)
	OffsetTimeDigitized() (string, bool)
	HasGPS() bool
	SetGPS(block GPSBlock) error
}

// gpsIfdPath is the fully-qualified path of the GPS IFD in the tag tree.
const gpsIfdPath = "IFD/GPSInfo"

// exifFile is the codec-backed Metadata implementation. The tag dictionary
// is decoded once per file.
type exifFile struct {
	path string
	tags map[string]string
}

// openExifFile decodes the photo's EXIF tag dictionary.
func openExifFile(path string) (*exifFile, error) {
	rawExif, err := exif.SearchFileAndExtractExif(path)
	if err != nil {
		return nil, fmt.Errorf("no EXIF data in %s: %v", path, err)
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EXIF data in %s: %v", path, err)
	}

	tags := make(map[string]string, len(entries))
	for _, entry := range entries {
		if _, seen := tags[entry.TagName]; !seen {
			tags[entry.TagName] = entry.FormattedFirst
		}
	}
	return &exifFile{path: path, tags: tags}, nil
}

// lookup fetches a decoded tag value by name.
func (f *exifFile) lookup(name string) (string, bool) {
	v, ok := f.tags[name]
	return v, ok
}

func (f *exifFile) DateTimeOriginal() (string, bool)    { return f.lookup("DateTimeOriginal") }
func (f *exifFile) OffsetTimeOriginal() (string, bool)  { return f.lookup("OffsetTimeOriginal") }
func (f *exifFile) DateTimeDigitized() (string, bool)   { return f.lookup("DateTimeDigitized") }
func (f *exifFile) OffsetTimeDigitized() (string, bool) { return f.lookup("OffsetTimeDigitized") }

// HasGPS reports whether a latitude or longitude tag was decoded.
func (f *exifFile) HasGPS() bool {
	_, lat := f.tags["GPSLatitude"]
	_, lng := f.tags["GPSLongitude"]
	return lat || lng
}

// SetGPS replaces the photo's GPS IFD with the given block and rewrites
// the file in place. No backup is taken; unrelated segments and tags are
// carried over untouched by the codec.
func (f *exifFile) SetGPS(block GPSBlock) error {
	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseFile(f.path)
	if err != nil {
		return fmt.Errorf("failed to parse JPEG structure of %s: %v", f.path, err)
	}
	sl := intfc.(*jpegstructure.SegmentList)

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		return fmt.Errorf("failed to build EXIF tree for %s: %v", f.path, err)
	}
	if err := applyGPSBlock(rootIb, block); err != nil {
		return fmt.Errorf("failed to replace GPS block in %s: %v", f.path, err)
	}

	if err := sl.SetExif(rootIb); err != nil {
		return fmt.Errorf("failed to attach EXIF tree to %s: %v", f.path, err)
	}

	var buf bytes.Buffer
	if err := sl.Write(&buf); err != nil {
		return fmt.Errorf("failed to serialize %s: %v", f.path, err)
	}
	if err := os.WriteFile(f.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to rewrite %s: %v", f.path, err)
	}
	return nil
}

// applyGPSBlock drops any existing GPS IFD from the builder chain and
// attaches a fresh one holding exactly the version marker, the two
// coordinates and their hemisphere references. The builder chain copies
// every tag from the file, so without the drop stale GPS tags (altitude,
// timestamp) would survive beside the new coordinates.
func applyGPSBlock(rootIb *exif.IfdBuilder, block GPSBlock) error {
	if _, err := rootIb.DeleteAll(exifcommon.IfdGpsInfoStandardIfdIdentity.TagId()); err != nil {
		return fmt.Errorf("failed to drop existing GPS IFD: %v", err)
	}
	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, gpsIfdPath)
	if err != nil {
		return fmt.Errorf("failed to create GPS IFD: %v", err)
	}

	version := block.Version
	if err := gpsIb.SetStandardWithName("GPSVersionID", version[:]); err != nil {
		return fmt.Errorf("failed to set GPSVersionID: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLatitudeRef", block.Latitude.Ref); err != nil {
		return fmt.Errorf("failed to set GPSLatitudeRef: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLatitude", exifRationals(block.Latitude)); err != nil {
		return fmt.Errorf("failed to set GPSLatitude: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitudeRef", block.Longitude.Ref); err != nil {
		return fmt.Errorf("failed to set GPSLongitudeRef: %v", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitude", exifRationals(block.Longitude)); err != nil {
		return fmt.Errorf("failed to set GPSLongitude: %v", err)
	}
	return nil
}

// exifRationals converts one DMS axis into the codec's rational triple.
func exifRationals(d DMS) []exifcommon.Rational {
	return []exifcommon.Rational{
		{Numerator: uint32(d.Degrees.Numerator), Denominator: uint32(d.Degrees.Denominator)},
		{Numerator: uint32(d.Minutes.Numerator), Denominator: uint32(d.Minutes.Denominator)},
		{Numerator: uint32(d.Seconds.Numerator), Denominator: uint32(d.Seconds.Denominator)},
	}
}
