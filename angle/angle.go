// Package angle implements degree-minute-second arithmetic and the
// normalization and formatting conventions shared by every other
// sextantfix package: Angle is always carried as a plain signed degree
// value at the package boundary and converted to github.com/soniakeys/unit
// Angle values (radian-backed) only where a computation needs them.
package angle

import (
	"fmt"
	"math"
)

// DMS combines a signed degrees value with minutes and seconds of arc
// into a single decimal-degrees value. The sign is carried entirely by d;
// m and s are added as plain positive offsets, matching how navigators
// read off a sextant scale (degrees, then minutes, then seconds, no
// separate sign per field).
func DMS(d, m, s float64) float64 {
	return d + m/60 + s/3600
}

// wrapPositive reduces x into [0, period).
func wrapPositive(x, period float64) float64 {
	r := math.Mod(x, period)
	if r < 0 {
		r += period
	}
	return r
}

// Normalize maps a degrees value into (-180, 180].
func Normalize(a float64) float64 {
	return 180 - wrapPositive(180-a, 360)
}

// FormatDM renders a into degrees and decimal minutes to one decimal
// place, e.g. " 46°36.5′N", with posSign used for a >= 0 and negSign for
// a < 0. Rounding to tenths of an arcminute is half-to-even, matching the
// navigational convention of never biasing a rounded fix in one
// direction.
func FormatDM(a float64, posSign, negSign string) string {
	sign := posSign
	v := a
	if v < 0 {
		sign = negSign
		v = -v
	}
	deg := math.Floor(v)
	min := math.RoundToEven((v-deg)*600) / 10
	if min >= 60 {
		min -= 60
		deg++
	}
	return fmt.Sprintf("%3d°%04.1f′%s", int(deg), min, sign)
}

// FormatCoord renders a (lat, lon) pair as two FormatDM fields, latitude
// first, joined by one space, e.g. " 29°41.0′N  36°57.3′W", matching the
// fixed-width convention navigators use to log a fix in a voyage plan.
func FormatCoord(lat, lon float64) string {
	return fmt.Sprintf("%s %s", FormatDM(lat, "N", "S"), FormatDM(lon, "E", "W"))
}
