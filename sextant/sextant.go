// Package sextant implements the sextant-altitude correction chain: index
// error, dip, atmospheric refraction (Bennett 1982, temperature and
// pressure scaled), and semidiameter, converting a sextant altitude (Hs)
// into an observed altitude (Ho).
package sextant

import (
	"math"

	"github.com/soniakeys/unit"
)

// Params holds instrument and environment configuration for the
// correction chain. The zero value has NeedsCorrection false, so a
// Params{} passes Hs through unchanged — convenient for synthetic test
// inputs that are already observed altitudes.
type Params struct {
	// IndexErrorMin is signed arcminutes; positive means the sextant
	// reads too high and is subtracted during correction.
	IndexErrorMin float64
	// EyeHeightM is the observer's height of eye above sea level, meters.
	EyeHeightM float64
	// SemidiameterCorrectionMin is signed arcminutes, applied additively
	// to apparent altitude. Zero for stars, since they are point sources;
	// plumbed through for extensibility to limb observations of the sun
	// or moon.
	SemidiameterCorrectionMin float64
	// TemperatureDegC and PressureHPa feed the refraction scaling. The
	// field historically carried the name pressure_Pa in the source this
	// was ported from, but the value it holds is hectopascals
	// (millibars), not pascals.
	TemperatureDegC float64
	PressureHPa     float64
	// NeedsCorrection gates the whole chain. When false, Correct returns
	// Hs unchanged — used for synthetic or already-corrected inputs.
	NeedsCorrection bool
}

// Dip returns the horizon-dip correction for the given height of eye, in
// degrees. It is always non-positive and grows (more negative) with eye
// height.
func Dip(eyeHeightM float64) float64 {
	return -1.76 * math.Sqrt(eyeHeightM) / 60
}

// cotd is the cotangent of an angle given in degrees.
func cotd(deg float64) float64 {
	return 1 / math.Tan(deg*math.Pi/180)
}

// refraction returns the Bennett-1982 refraction correction, in degrees,
// for an apparent altitude Ha (degrees), scaled for temperature and
// pressure. The result is <= 0 for Ha in (0°, 90°].
func refraction(haDeg, tempDegC, pressureHPa float64) float64 {
	rMean := cotd(haDeg + 7.31/(haDeg+4.4)) // arcminutes
	if rMean < 0 {
		// Bennett's cotangent turns negative within about 0.08° of the
		// zenith; refraction there is zero.
		rMean = 0
	}
	r := rMean * (pressureHPa - 80) / 930 / (1 + 8e-5*(rMean+30)*(tempDegC-10))
	return -r / 60
}

// Correct converts a sextant altitude Hs into an observed altitude Ho.
func Correct(hs unit.Angle, p Params) unit.Angle {
	if !p.NeedsCorrection {
		return hs
	}
	ha := hs.Deg() - p.IndexErrorMin/60 + Dip(p.EyeHeightM)
	ho := ha + refraction(ha, p.TemperatureDegC, p.PressureHPa) + p.SemidiameterCorrectionMin/60
	return unit.AngleFromDeg(ho)
}
