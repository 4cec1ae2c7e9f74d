package planefix_test

import (
	"math"
	"testing"

	"github.com/ehalsey/sextantfix/coord"
	"github.com/ehalsey/sextantfix/planefix"
	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
)

// altitudeAt returns the altitude of GP gp as seen from true position pos:
// sin(h) = x·ĝ, the same dot product the solver itself inverts.
func altitudeAt(pos, gp coord.Coordinate) unit.Angle {
	px, py, pz := pos.ToVec()
	gx, gy, gz := gp.ToVec()
	sinAlt := px*gx + py*gy + pz*gz
	if sinAlt > 1 {
		sinAlt = 1
	}
	if sinAlt < -1 {
		sinAlt = -1
	}
	return unit.Angle(math.Asin(sinAlt))
}

func TestPlaneIntersectionExactness(t *testing.T) {
	truth := coord.Coordinate{Lat: unit.AngleFromDeg(30), Lon: unit.AngleFromDeg(-40)}
	gps := []coord.Coordinate{
		{Lat: unit.AngleFromDeg(10), Lon: unit.AngleFromDeg(20)},
		{Lat: unit.AngleFromDeg(60), Lon: unit.AngleFromDeg(-100)},
		{Lat: unit.AngleFromDeg(-20), Lon: unit.AngleFromDeg(150)},
	}

	var obs []planefix.Observation
	for _, gp := range gps {
		obs = append(obs, planefix.Observation{GP: gp, AltObserved: altitudeAt(truth, gp)})
	}

	result, err := planefix.Solve(obs)
	assert.NoError(t, err)
	assert.InDelta(t, truth.Lat.Deg(), result.Position.Lat.Deg(), 1e-6)
	assert.InDelta(t, truth.Lon.Deg(), result.Position.Lon.Deg(), 1e-6)
	assert.InDelta(t, 1.0, result.Radius, 1e-6)
}

func TestAntipodalDegeneracy(t *testing.T) {
	gpA := coord.Coordinate{Lat: unit.AngleFromDeg(10), Lon: unit.AngleFromDeg(20)}
	gpB := coord.Coordinate{Lat: unit.AngleFromDeg(-10), Lon: unit.AngleFromDeg(-160)}
	obs := []planefix.Observation{
		{GP: gpA, AltObserved: unit.AngleFromDeg(45)},
		{GP: gpB, AltObserved: unit.AngleFromDeg(45)},
		{GP: gpA, AltObserved: unit.AngleFromDeg(50)},
	}
	_, err := planefix.Solve(obs)
	assert.ErrorIs(t, err, planefix.ErrUnderdetermined)
}

func TestTwoObservationsUnderdetermined(t *testing.T) {
	gpA := coord.Coordinate{Lat: unit.AngleFromDeg(10), Lon: unit.AngleFromDeg(20)}
	gpB := coord.Coordinate{Lat: unit.AngleFromDeg(60), Lon: unit.AngleFromDeg(-100)}
	obs := []planefix.Observation{
		{GP: gpA, AltObserved: unit.AngleFromDeg(45)},
		{GP: gpB, AltObserved: unit.AngleFromDeg(50)},
	}
	_, err := planefix.Solve(obs)
	assert.ErrorIs(t, err, planefix.ErrUnderdetermined)
}
