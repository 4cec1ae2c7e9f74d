package apparent_test

import (
	"testing"

	"github.com/ehalsey/sextantfix/apparent"
	"github.com/ehalsey/sextantfix/julian"
	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"time"
)

func TestPositionSmallCorrection(t *testing.T) {
	jd := julian.TimeToJD(time.Date(2018, 11, 15, 8, 28, 15, 0, time.UTC))
	α := unit.NewRA(10, 8, 22.3) // Regulus, approx
	δ := unit.NewAngle(' ', 11, 58, 2)
	α2, δ2 := apparent.Position(α, δ, jd)
	// Nutation + aberration perturb RA/Dec by at most a few tens of
	// arcseconds; verify we stay in that neighborhood, not that we
	// reproduce a specific almanac value (that belongs to ephemeris).
	assert.InDelta(t, δ.Deg(), δ2.Deg(), 30.0/3600)
	assert.InDelta(t, α.Deg(), α2.Deg(), 30.0/3600*15)
}
