// Package navmodel implements the fine local fix: a small differentiable
// navigation model (haversine great-circle distance, rhumb-line dead
// reckoning, and a per-observation zenith-distance residual) optimized
// by gradient descent with decoupled weight decay and AMSGrad-style
// second-moment tracking. Gradients come from the tape-based reverse
// mode automatic differentiation in tape.go; nothing here calls a
// numerical-differencing or symbolic library.
package navmodel

import (
	"errors"
	"math"

	"github.com/ehalsey/sextantfix/coord"
	"github.com/ehalsey/sextantfix/fixlog"
	"github.com/soniakeys/unit"
)

// ErrPastPole is returned when rhumb-line dead reckoning integrates a
// leg whose bearing and distance would carry the track across a pole,
// where the rhumb-line parameterization is undefined.
var ErrPastPole = errors.New("navmodel: rhumb-line integration crossed a pole")

// rNM is the radius of the earth in nautical miles under the
// definition that one nautical mile equals one minute of arc.
const rNM = 360 * 60 / (2 * math.Pi)

// Config gates optional terms in the loss. MagneticWeight is zero by
// default: the magnetic-bearing residual is implemented but inert
// unless a caller opts in.
type Config struct {
	MagneticWeight float64
}

// State is the fine fix's differentiable parameter vector: a starting
// position and a shared additive altitude bias in degrees.
type State struct {
	Phi0    float64 // radians
	Lambda0 float64 // radians
	EpsDeg  float64
}

// Result is the outcome of Optimize: the final replayed track, the
// resolved fix (the track's last position), the final bias estimate,
// and the loss recorded at every iteration for diagnostic reporting.
type Result struct {
	Positions      []coord.Coordinate
	Position       coord.Coordinate
	FinalEpsDeg    float64
	LossTrajectory []float64
	Residuals      []float64
}

// forwardPass replays entries from (phi0, lambda0) with bias eps,
// recording the track, the per-observation residuals, and the
// accumulated loss, all as tape Vars so Backward can differentiate the
// whole thing at once.
func forwardPass(tape *Tape, phi0, lambda0, eps Var, entries []fixlog.Entry, cfg Config) ([]Var2, []Var, Var, error) {
	phi, lambda := phi0, lambda0
	positions := []Var2{{phi, lambda}}
	var residuals []Var
	loss := tape.Const(0)

	for _, e := range entries {
		switch {
		case e.Obs != nil:
			o := e.Obs
			gpPhi := tape.Const(o.GP.Lat.Rad())
			gpLambda := tape.Const(o.GP.Lon.Rad())

			dPhi := gpPhi.Sub(phi)
			dLambda := gpLambda.Sub(lambda)
			sinHalfDPhi := dPhi.MulConst(0.5).Sin()
			sinHalfDLambda := dLambda.MulConst(0.5).Sin()
			a := sinHalfDPhi.Square().Add(
				phi.Cos().Mul(gpPhi.Cos()).Mul(sinHalfDLambda.Square()),
			)
			dRad := a.Sqrt().Atan2With(a.tape.Const(1).Sub(a).Sqrt()).MulConst(2)
			dNM := dRad.MulConst(180 / math.Pi * 60)

			hDeg := tape.Const(o.AltObserved.Deg())
			zNM := tape.Const(90).Sub(hDeg.Add(eps)).MulConst(60)

			r := zNM.Sub(dNM)
			residuals = append(residuals, r)
			loss = loss.Add(r.Square())

			if cfg.MagneticWeight != 0 && o.Mag != nil {
				bearingToGP := Atan2(
					dLambda.Sin().Mul(gpPhi.Cos()),
					phi.Cos().Mul(gpPhi.Sin()).Sub(phi.Sin().Mul(gpPhi.Cos()).Mul(dLambda.Cos())),
				)
				magDeg := tape.Const(o.Mag.Deg())
				bearingDeg := bearingToGP.MulConst(180 / math.Pi)
				magResidual := magDeg.Sub(bearingDeg).wrapPM180()
				loss = loss.Add(magResidual.Square().MulConst(cfg.MagneticWeight))
			}

		case e.Move != nil:
			m := e.Move
			beta := tape.Const(m.Bearing.Rad())
			dNM := tape.Const(m.DistanceNM())
			dr := dNM.MulConst(1 / rNM)

			phiNew := phi.Add(beta.Neg().Cos().Mul(dr))
			if math.Abs(phiNew.Value()) > math.Pi/2 {
				return nil, nil, Var{}, ErrPastPole
			}

			quarterPi := math.Pi / 4
			mStretch := phiNew.MulConst(0.5).AddConst(quarterPi).Tan().Log().Sub(
				phi.MulConst(0.5).AddConst(quarterPi).Tan().Log(),
			)

			var q Var
			if math.Abs(mStretch.Value()) < 1e-12 {
				q = phi.Cos()
			} else {
				q = phiNew.Sub(phi).Div(mStretch)
			}
			lambdaNew := lambda.Sub(beta.Neg().Sin().Mul(dr).Div(q))

			phi, lambda = phiNew, lambdaNew
			positions = append(positions, Var2{phi, lambda})
		}
	}

	return positions, residuals, loss, nil
}

// Var2 is a (phi, lambda) pair of tape Vars — the track's position at
// one point in the replay.
type Var2 struct {
	Phi, Lambda Var
}

// Atan2With is sugar for Atan2(a, b) with receiver-style call order,
// matching how it reads inline in the haversine formula above.
func (a Var) Atan2With(b Var) Var {
	return Atan2(a, b)
}

// adamState tracks the first and second raw moments, and the AMSGrad
// running maximum of the second moment, for one scalar parameter, plus
// the step count needed to bias-correct both moments.
type adamState struct {
	m, v, vMax float64
	t          int
}

func (s *adamState) step(g, lr, param float64) float64 {
	const (
		beta1       = 0.9
		beta2       = 0.999
		epsAdam     = 1e-8
		weightDecay = 0.001
	)
	s.t++
	s.m = beta1*s.m + (1-beta1)*g
	s.v = beta2*s.v + (1-beta2)*g*g
	if s.v > s.vMax {
		s.vMax = s.v
	}
	mHat := s.m / (1 - math.Pow(beta1, float64(s.t)))
	vHat := s.vMax / (1 - math.Pow(beta2, float64(s.t)))
	param -= lr * weightDecay * param
	param -= lr * mHat / (math.Sqrt(vHat) + epsAdam)
	return param
}

const (
	iterations = 1000
	lr0        = 1e-4
	lrDecay    = 0.99
)

// Optimize runs the fixed 1000-iteration AdamW/AMSGrad descent over the
// forward pass, starting from initial and replaying entries at every
// step. It returns ErrPastPole immediately if any iteration's dead
// reckoning would cross a pole — a symptom of a diverging fit, since
// seeded-correct tracks never approach one in practice.
func Optimize(initial State, entries []fixlog.Entry, cfg Config) (Result, error) {
	phi0, lambda0, eps := initial.Phi0, initial.Lambda0, initial.EpsDeg
	var sPhi0, sLambda0, sEps adamState

	var lossTrajectory []float64
	var finalPositions []Var2
	var finalResiduals []float64

	for i := 0; i < iterations; i++ {
		tape := NewTape()
		phi0V := tape.Const(phi0)
		lambda0V := tape.Const(lambda0)
		epsV := tape.Const(eps)

		positions, residuals, loss, err := forwardPass(tape, phi0V, lambda0V, epsV, entries, cfg)
		if err != nil {
			return Result{}, err
		}
		lossTrajectory = append(lossTrajectory, loss.Value())
		finalPositions = positions
		finalResiduals = make([]float64, len(residuals))
		for k, r := range residuals {
			finalResiduals[k] = r.Value()
		}

		grad := tape.Backward(loss)
		lr := lr0 * math.Pow(lrDecay, float64(i))

		phi0 = sPhi0.step(grad[phi0V.idx], lr, phi0)
		lambda0 = sLambda0.step(grad[lambda0V.idx], lr, lambda0)
		eps = sEps.step(grad[epsV.idx], lr, eps)
	}

	positions := make([]coord.Coordinate, len(finalPositions))
	for i, p := range finalPositions {
		positions[i] = coord.Coordinate{
			Lat: unit.Angle(p.Phi.Value()),
			Lon: unit.Angle(p.Lambda.Value()),
		}.Normalize()
	}

	result := Result{
		Positions:      positions,
		FinalEpsDeg:    eps,
		LossTrajectory: lossTrajectory,
		Residuals:      finalResiduals,
	}
	if len(positions) > 0 {
		result.Position = positions[len(positions)-1]
	}
	return result, nil
}
