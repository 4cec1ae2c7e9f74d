// Package coord implements the spherical/Cartesian coordinate primitives
// shared by the plane-intersection solver (package planefix) and the
// navigation model (package navmodel): a Coordinate pair of latitude and
// longitude, and the round-tripping conversions to and from a unit vector
// in three-space.
package coord

import (
	"errors"
	"math"

	"github.com/ehalsey/sextantfix/angle"
	"github.com/soniakeys/unit"
)

// ErrDegenerateVector is returned by VecToCoord when given a zero-norm
// vector, which carries no direction and therefore no coordinate.
var ErrDegenerateVector = errors.New("coord: degenerate vector")

// Coordinate is a geographic position: latitude in [-90°, 90°], longitude
// in (-180°, 180°]. At the poles longitude is undefined and may carry an
// arbitrary value.
type Coordinate struct {
	Lat, Lon unit.Angle
}

// Normalize returns c with its longitude reduced to (-180°, 180°].
// Latitude is left untouched; callers are responsible for keeping it in
// range, since normalization on a circle does not apply to a quantity
// that saturates at the poles.
func (c Coordinate) Normalize() Coordinate {
	return Coordinate{
		Lat: c.Lat,
		Lon: unit.AngleFromDeg(angle.Normalize(c.Lon.Deg())),
	}
}

// ToVec converts a Coordinate to a unit vector in three-space, with
// x = cos(lat)cos(lon), y = cos(lat)sin(lon), z = sin(lat).
func (c Coordinate) ToVec() (x, y, z float64) {
	sLat, cLat := c.Lat.Sincos()
	sLon, cLon := c.Lon.Sincos()
	return cLat * cLon, cLat * sLon, sLat
}

// VecToCoord normalizes v and recovers the corresponding Coordinate via
// lat = asin(z), lon = atan2(y, x), both reduced to their canonical
// ranges. It fails with ErrDegenerateVector if v has zero norm.
func VecToCoord(x, y, z float64) (Coordinate, error) {
	n := math.Sqrt(x*x + y*y + z*z)
	if n == 0 {
		return Coordinate{}, ErrDegenerateVector
	}
	x, y, z = x/n, y/n, z/n
	lat := math.Asin(clamp(z, -1, 1))
	lon := math.Atan2(y, x)
	return Coordinate{
		Lat: unit.Angle(lat),
		Lon: unit.AngleFromDeg(angle.Normalize(unit.Angle(lon).Deg())),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
