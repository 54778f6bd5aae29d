package main

import (
	"math"
	"math/big"
	"strconv"
)

// Rational is an exact numerator/denominator pair as stored in the EXIF
// GPS tags.
type Rational struct {
	Numerator   int64
	Denominator int64
}

// DMS is one coordinate axis split into sign-free degrees, minutes and
// seconds plus a hemisphere reference letter.
type DMS struct {
	Degrees Rational
	Minutes Rational
	Seconds Rational
	Ref     string
}

// GPSBlock is the complete geotag payload written into a photo.
type GPSBlock struct {
	Version   [4]byte
	Latitude  DMS
	Longitude DMS
}

// gpsVersion is the GPSVersionID marker written with every block.
var gpsVersion = [4]byte{2, 0, 0, 0}

// encodeCoordinate converts a decimal (lat, lng) pair into the rational
// DMS form of the GPS tag block.
func encodeCoordinate(lat, lng float64) GPSBlock {
	return GPSBlock{
		Version:   gpsVersion,
		Latitude:  encodeAxis(lat, "S", "N"),
		Longitude: encodeAxis(lng, "W", "E"),
	}
}

// encodeAxis splits decimal degrees into degrees, minutes and seconds. The
// hemisphere reference is the negative-side letter below zero, the
// positive-side letter above, and empty at exactly zero. Seconds are
// rounded to 5 decimal places.
func encodeAxis(value float64, negRef, posRef string) DMS {
	ref := ""
	if value < 0 {
		ref = negRef
	} else if value > 0 {
		ref = posRef
	}

	abs := math.Abs(value)
	deg := math.Floor(abs)
	t1 := (abs - deg) * 60
	min := math.Floor(t1)
	sec := math.Round((t1-min)*60*1e5) / 1e5

	return DMS{
		Degrees: rationalize(deg),
		Minutes: rationalize(min),
		Seconds: rationalize(sec),
		Ref:     ref,
	}
}

// rationalize reduces v to a minimal fraction. The reduction goes through
// the decimal string form, not the float's binary representation, so the
// stored fraction matches the printed value exactly.
func rationalize(v float64) Rational {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		// FormatFloat always emits a valid rational literal
		return Rational{Numerator: int64(v), Denominator: 1}
	}
	return Rational{
		Numerator:   r.Num().Int64(),
		Denominator: r.Denom().Int64(),
	}
}
