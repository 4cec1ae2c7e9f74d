package navmodel_test

import (
	"math"
	"testing"

	"github.com/ehalsey/sextantfix/coord"
	"github.com/ehalsey/sextantfix/fixlog"
	"github.com/ehalsey/sextantfix/navmodel"
	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
)

// greatCircleNM replicates the forward pass's haversine formula in
// plain float64, used here only to synthesize self-consistent, exactly
// zero-residual test altitudes.
func greatCircleNM(phi1, lambda1, phi2, lambda2 float64) float64 {
	dPhi := phi2 - phi1
	dLambda := lambda2 - lambda1
	sdp := math.Sin(dPhi / 2)
	sdl := math.Sin(dLambda / 2)
	a := sdp*sdp + math.Cos(phi1)*math.Cos(phi2)*sdl*sdl
	d := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return d * (180 / math.Pi) * 60
}

func TestOptimizeConvergesOnZeroNoiseFix(t *testing.T) {
	truePhi := unit.AngleFromDeg(34).Rad()
	trueLambda := unit.AngleFromDeg(-118).Rad()

	gps := []coord.Coordinate{
		{Lat: unit.AngleFromDeg(10), Lon: unit.AngleFromDeg(20)},
		{Lat: unit.AngleFromDeg(60), Lon: unit.AngleFromDeg(-100)},
		{Lat: unit.AngleFromDeg(-20), Lon: unit.AngleFromDeg(150)},
	}

	var log fixlog.FixLog
	for i, gp := range gps {
		dNM := greatCircleNM(truePhi, trueLambda, gp.Lat.Rad(), gp.Lon.Rad())
		altDeg := 90 - dNM/60
		name := []string{"A", "B", "C"}[i]
		err := log.Add(name, 2451545.0+float64(i)*1e-6, unit.AngleFromDeg(altDeg), gp, nil)
		assert.NoError(t, err)
	}

	// The seed is 0.01° off the true position, the kind of start a coarse
	// fix provides. The learning-rate schedule moves each parameter by at
	// most about 1e-4/(1-0.99) = 0.01 rad (0.57°) in total, so a seed much
	// farther off cannot converge.
	initial := navmodel.State{
		Phi0:    unit.AngleFromDeg(33.99).Rad(),
		Lambda0: unit.AngleFromDeg(-117.99).Rad(),
		EpsDeg:  0,
	}

	result, err := navmodel.Optimize(initial, log.Entries(), navmodel.Config{})
	assert.NoError(t, err)
	assert.NotEmpty(t, result.LossTrajectory)

	finalLoss := result.LossTrajectory[len(result.LossTrajectory)-1]
	assert.Less(t, finalLoss, 1e-6)

	wantLatDeg := unit.Angle(truePhi).Deg()
	wantLonDeg := unit.Angle(trueLambda).Deg()
	const arcminDeg = 1.0 / 60
	assert.InDelta(t, wantLatDeg, result.Position.Lat.Deg(), 0.1*arcminDeg)
	assert.InDelta(t, wantLonDeg, result.Position.Lon.Deg(), 0.1*arcminDeg)
}

func TestOptimizePastPole(t *testing.T) {
	var log fixlog.FixLog
	log.SetBearingSpeed(unit.AngleFromDeg(0), 10000)
	gp := coord.Coordinate{Lat: unit.AngleFromDeg(10), Lon: unit.AngleFromDeg(20)}
	assert.NoError(t, log.Add("A", 2451545.0, unit.AngleFromDeg(45), gp, nil))
	assert.NoError(t, log.Add("B", 2451545.0+10, unit.AngleFromDeg(45), gp, nil))

	initial := navmodel.State{
		Phi0:    unit.AngleFromDeg(89).Rad(),
		Lambda0: unit.AngleFromDeg(0).Rad(),
		EpsDeg:  0,
	}
	_, err := navmodel.Optimize(initial, log.Entries(), navmodel.Config{})
	assert.ErrorIs(t, err, navmodel.ErrPastPole)
}
