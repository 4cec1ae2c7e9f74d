// Package navtime implements the time collaborator contract: construction
// of UT1 instants from wall-clock tuples and differencing of instants into
// fractional days, on top of the Julian day arithmetic in package julian.
package navtime

import (
	"time"

	"github.com/ehalsey/sextantfix/julian"
)

// Instant is a UT1 instant, represented internally as a Julian day so
// downstream sidereal and nutation calculations can consume it directly.
type Instant struct {
	jd float64
}

// UT1 constructs an Instant from a wall-clock tuple and a whole-hour
// timezone offset. Fractional-hour offsets are out of scope; tzHours is a
// whole number of hours.
func UT1(year, month, day, hour, minute int, second float64, tzHours int) Instant {
	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC)
	t = t.Add(-time.Duration(tzHours) * time.Hour)
	jd := julian.TimeToJD(t) + second/86400
	return Instant{jd: jd}
}

// FromJD wraps a raw Julian day as an Instant, for callers (catalogs,
// test fixtures) that already work in JD.
func FromJD(jd float64) Instant {
	return Instant{jd: jd}
}

// JD returns the underlying Julian day.
func (i Instant) JD() float64 {
	return i.jd
}

// Sub returns the signed difference i - u, in fractional days.
func (i Instant) Sub(u Instant) float64 {
	return i.jd - u.jd
}

// Before reports whether i occurs strictly before u.
func (i Instant) Before(u Instant) bool {
	return i.jd < u.jd
}

// Time returns the equivalent Go time.Time, UTC.
func (i Instant) Time() time.Time {
	return julian.JDToTime(i.jd)
}
