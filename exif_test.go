package main

import (
	"testing"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// GPS IFD tag IDs involved in the block replacement.
const (
	gpsVersionIDTagId    = 0x0000
	gpsLatitudeRefTagId  = 0x0001
	gpsLatitudeTagId     = 0x0002
	gpsLongitudeRefTagId = 0x0003
	gpsLongitudeTagId    = 0x0004
	gpsAltitudeTagId     = 0x0006
)

func newTestRootIb() *exif.IfdBuilder {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		panic(err)
	}
	ti := exif.NewTagIndex()
	return exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
}

func TestApplyGPSBlockReplacesWholesale(t *testing.T) {
	rootIb := newTestRootIb()

	// Seed a GPS IFD carrying a tag the new block never writes.
	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, gpsIfdPath)
	if err != nil {
		t.Fatalf("seed GPS IFD: %v", err)
	}
	altitude := []exifcommon.Rational{{Numerator: 1234, Denominator: 10}}
	if err := gpsIb.SetStandardWithName("GPSAltitude", altitude); err != nil {
		t.Fatalf("seed GPSAltitude: %v", err)
	}

	if err := applyGPSBlock(rootIb, encodeCoordinate(-33.456, 151.2)); err != nil {
		t.Fatalf("apply: %v", err)
	}

	gpsIb, err = exif.GetOrCreateIbFromRootIb(rootIb, gpsIfdPath)
	if err != nil {
		t.Fatalf("reopen GPS IFD: %v", err)
	}

	if tags := gpsIb.Tags(); len(tags) != 5 {
		t.Fatalf("expected exactly 5 GPS tags after replacement, got %d", len(tags))
	}
	for _, tagId := range []uint16{
		gpsVersionIDTagId,
		gpsLatitudeRefTagId,
		gpsLatitudeTagId,
		gpsLongitudeRefTagId,
		gpsLongitudeTagId,
	} {
		if _, err := gpsIb.Find(tagId); err != nil {
			t.Fatalf("GPS tag 0x%04x missing from replaced block: %v", tagId, err)
		}
	}
	if _, err := gpsIb.Find(gpsAltitudeTagId); err == nil {
		t.Fatal("stale GPSAltitude survived the block replacement")
	}
}

func TestApplyGPSBlockFreshIfd(t *testing.T) {
	rootIb := newTestRootIb()

	if err := applyGPSBlock(rootIb, encodeCoordinate(40.748817, -73.985428)); err != nil {
		t.Fatalf("apply: %v", err)
	}

	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, gpsIfdPath)
	if err != nil {
		t.Fatalf("reopen GPS IFD: %v", err)
	}
	if tags := gpsIb.Tags(); len(tags) != 5 {
		t.Fatalf("expected exactly 5 GPS tags, got %d", len(tags))
	}
}
