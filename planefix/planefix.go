// Package planefix implements the coarse global fix: a circle of equal
// altitude around a star's GP ĝ at observed altitude h is the
// intersection of the unit sphere with the plane {x : x·ĝ = sin(h)}.
// Three or more such planes intersect, in the least-squares sense, at a
// point recovered here by solving the 3x3 normal equations in closed
// form — the same determinant-expansion idiom as a small multiple
// regression, just applied to direction vectors instead of basis
// functions.
package planefix

import (
	"errors"
	"math"

	"github.com/ehalsey/sextantfix/coord"
	"github.com/soniakeys/unit"
)

// ErrUnderdetermined is returned when fewer than three independent GPs
// are available: two observations leave the problem intrinsically
// underdetermined (the two circles meet at two points, and nothing here
// resolves that ambiguity), and an antipodal pair of GPs contributes only
// one independent direction, so three observations that include one have
// rank two.
var ErrUnderdetermined = errors.New("planefix: underdetermined")

// Observation is the minimal input the solver needs from a fix-log
// entry: a GP and its corresponding observed altitude.
type Observation struct {
	GP          coord.Coordinate
	AltObserved unit.Angle
}

// Result carries the resolved coarse position along with ‖x*‖ before
// normalization, a diagnostic of total observation error (1 is optimal;
// large deviations indicate noisy or inconsistent sights).
type Result struct {
	Position coord.Coordinate
	Radius   float64
}

// detEpsilon is the threshold below which the normal-equations matrix is
// treated as singular (rank < 3).
const detEpsilon = 1e-9

// Solve runs the plane-intersection least squares fit over obs.
func Solve(obs []Observation) (Result, error) {
	if len(obs) < 3 {
		return Result{}, ErrUnderdetermined
	}

	// Normal equations: A x = c, where A = Σ gᵢgᵢᵀ and c = Σ gᵢ sin(hᵢ).
	var a [3][3]float64
	var c [3]float64
	for _, o := range obs {
		gx, gy, gz := o.GP.ToVec()
		g := [3]float64{gx, gy, gz}
		s := o.AltObserved.Sin()
		for i := 0; i < 3; i++ {
			c[i] += g[i] * s
			for j := 0; j < 3; j++ {
				a[i][j] += g[i] * g[j]
			}
		}
	}

	x, ok := solve3x3(a, c)
	if !ok {
		return Result{}, ErrUnderdetermined
	}

	radius := math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2])
	if radius < detEpsilon {
		return Result{}, ErrUnderdetermined
	}
	xhat := [3]float64{x[0] / radius, x[1] / radius, x[2] / radius}

	pos, err := coord.VecToCoord(xhat[0], xhat[1], xhat[2])
	if err != nil {
		return Result{}, err
	}
	return Result{Position: pos, Radius: radius}, nil
}

// det3 returns the determinant of a 3x3 matrix.
func det3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// solve3x3 solves Ax = b by Cramer's rule, reporting ok=false if A is
// singular to within detEpsilon (rank < 3).
func solve3x3(a [3][3]float64, b [3]float64) (x [3]float64, ok bool) {
	d := det3(a)
	if math.Abs(d) < detEpsilon {
		return x, false
	}
	for k := 0; k < 3; k++ {
		m := a
		for i := 0; i < 3; i++ {
			m[i][k] = b[i]
		}
		x[k] = det3(m) / d
	}
	return x, true
}
