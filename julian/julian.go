// Copyright 2012 Sonia Keys
// License: MIT

// Package julian converts between Julian day numbers and civil calendar
// dates, Gregorian only: the rest of this module only ever needs to turn a
// UT1 wall-clock instant into a Julian day and back (see package navtime),
// not the full Julian/Gregorian calendar bookkeeping (leap years, day of
// year, day of week) the teacher's chapter package also covered.
package julian

import (
	"math"
	"time"

	"github.com/ehalsey/sextantfix/mathutil"
)

// CalendarGregorianToJD converts a Gregorian year, month, and day of month
// to Julian day.
//
// Negative years are valid, back to JD 0.  The result is not valid for
// dates before JD 0.
func CalendarGregorianToJD(y, m int, d float64) float64 {
	switch m {
	case 1, 2:
		y--
		m += 12
	}
	a := mathutil.FloorDiv(y, 100)
	b := 2 - a + mathutil.FloorDiv(a, 4)
	// (7.1) p. 61
	return float64(mathutil.FloorDiv64(36525*(int64(y+4716)), 100)) +
		float64(mathutil.FloorDiv(306*(m+1), 10)+b) + d - 1524.5
}

// jdToCalendarGregorian returns the Gregorian calendar date for the given jd.
//
// Note that it returns a Gregorian date even for dates before the start of
// the Gregorian calendar.  The function is useful when working with Go
// time.Time values because they are always based on the Gregorian calendar.
func jdToCalendarGregorian(jd float64) (year, month int, day float64) {
	zf, f := math.Modf(jd + .5)
	z := int64(zf)
	α := mathutil.FloorDiv64(z*100-186721625, 3652425)
	a := z + 1 + α - mathutil.FloorDiv64(α, 4)
	b := a + 1524
	c := mathutil.FloorDiv64(b*100-12210, 36525)
	d := mathutil.FloorDiv64(36525*c, 100)
	e := int(mathutil.FloorDiv64((b-d)*1e4, 306001))
	// compute return values
	day = float64(int(b-d)-mathutil.FloorDiv(306001*e, 1e4)) + f
	switch e {
	default:
		month = e - 1
	case 14, 15:
		month = e - 13
	}
	switch month {
	default:
		year = int(c) - 4716
	case 1, 2:
		year = int(c) - 4715
	}
	return
}

// JDToTime takes a JD and returns a Go time.Time value.
func JDToTime(jd float64) time.Time {
	// time.Time is always Gregorian
	y, m, d := jdToCalendarGregorian(jd)
	t := time.Date(y, time.Month(m), 0, 0, 0, 0, 0, time.UTC)
	return t.Add(time.Duration(d * 24 * float64(time.Hour)))
}

// TimeToJD takes a Go time.Time and returns a JD as float64.
//
// Any time zone offset in the time.Time is ignored and the time is
// treated as UTC.
func TimeToJD(t time.Time) float64 {
	ut := t.UTC()
	y, m, _ := ut.Date()
	d := ut.Sub(time.Date(y, m, 0, 0, 0, 0, 0, time.UTC))
	// time.Time is always Gregorian
	return CalendarGregorianToJD(y, int(m), float64(d)/float64(24*time.Hour))
}
