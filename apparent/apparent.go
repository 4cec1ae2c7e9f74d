// Package apparent computes the apparent place of a star: its catalog
// (mean) right ascension and declination corrected for nutation and
// annual aberration. This is a thin, self-contained stand-in for the
// full ephemeris provider the sextantfix system treats as an external
// collaborator (package ephemeris); it supplies enough precision to
// drive the GP resolver and its tests without pulling in a full solar
// and precession model.
package apparent

import (
	"github.com/ehalsey/sextantfix/mathutil"
	"github.com/ehalsey/sextantfix/nutation"
	"github.com/soniakeys/unit"
)

// Nutation returns corrections due to nutation for equatorial coordinates
// of an object. Results are invalid for objects very near the celestial
// poles.
func Nutation(α unit.RA, δ unit.Angle, jd float64) (Δα1 unit.HourAngle, Δδ1 unit.Angle) {
	ε := nutation.MeanObliquity(jd)
	sε, cε := ε.Sincos()
	Δψ, Δε := nutation.Nutation(jd)
	sα, cα := α.Sincos()
	tδ := δ.Tan()
	// (23.1) p. 151
	Δα1 = unit.HourAngle((cε+sε*sα*tδ)*Δψ.Rad() - cα*tδ*Δε.Rad())
	Δδ1 = Δψ.Mul(sε*cα) + Δε.Mul(sα)
	return
}

// κ is the constant of aberration.
var κ = unit.AngleFromSec(20.49552)

// perihelion returns the longitude of perihelion of Earth's orbit.
func perihelion(T float64) unit.Angle {
	return unit.AngleFromDeg(mathutil.Horner(T, 102.93735, 1.71946, .00046))
}

// eccentricity returns the eccentricity of Earth's orbit.
func eccentricity(T float64) float64 {
	// (25.4) p. 163
	return mathutil.Horner(T, 0.016708634, -0.000042037, -0.0000001267)
}

// sunTrueLongitude returns the Sun's true geometric longitude, low
// precision (25.2 / 25.4 / table 25.A first three terms), sufficient for
// the aberration correction which itself contributes only tens of
// arcseconds.
func sunTrueLongitude(T float64) unit.Angle {
	L0 := mathutil.Horner(T, 280.46646, 36000.76983, 0.0003032)
	M := unit.AngleFromDeg(mathutil.Horner(T, 357.52911, 35999.05029, -0.0001537))
	sM, _ := M.Sincos()
	s2M, _ := (M * 2).Sincos()
	s3M, _ := (M * 3).Sincos()
	C := mathutil.Horner(T, 1.914602, -0.004817, -0.000014)*sM +
		mathutil.Horner(T, 0.019993, -0.000101)*s2M +
		0.000289*s3M
	return unit.AngleFromDeg(L0 + C)
}

// Aberration returns corrections due to annual aberration for equatorial
// coordinates of an object.
func Aberration(α unit.RA, δ unit.Angle, jd float64) (Δα2 unit.HourAngle, Δδ2 unit.Angle) {
	ε := nutation.MeanObliquity(jd)
	T := mathutil.J2000Century(jd)
	s := sunTrueLongitude(T)
	e := eccentricity(T)
	π := perihelion(T)
	sα, cα := α.Sincos()
	sδ, cδ := δ.Sincos()
	ss, cs := s.Sincos()
	sπ, cπ := π.Sincos()
	cε := ε.Cos()
	tε := ε.Tan()
	q1 := cα * cε
	// (23.3) p. 152
	Δα2 = unit.HourAngle(κ.Rad() * (e*(q1*cπ+sα*sπ) - (q1*cs + sα*ss)) / cδ)
	q2 := cε * (tε*cδ - sα*sδ)
	q3 := cα * sδ
	Δδ2 = κ.Mul(e*(cπ*q2+sπ*q3) - (cs*q2 + ss*q3))
	return
}

// Position returns the apparent place of a mean catalog position at the
// given Julian day: nutation and aberration applied, in that order.
func Position(α unit.RA, δ unit.Angle, jd float64) (unit.RA, unit.Angle) {
	Δα1, Δδ1 := Nutation(α, δ, jd)
	Δα2, Δδ2 := Aberration(α, δ, jd)
	return α.Add(Δα1 + Δα2), δ + Δδ1 + Δδ2
}
