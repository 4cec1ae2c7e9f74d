// Package fix implements the orchestrator that ties the other
// components together into a single celestial fix session: correct a
// sextant sight, resolve the star's geographic position, log it, and
// run the coarse-then-fine solve on demand.
package fix

import (
	"github.com/ehalsey/sextantfix/coord"
	"github.com/ehalsey/sextantfix/ephemeris"
	"github.com/ehalsey/sextantfix/fixlog"
	"github.com/ehalsey/sextantfix/navlog"
	"github.com/ehalsey/sextantfix/navmodel"
	"github.com/ehalsey/sextantfix/navtime"
	"github.com/ehalsey/sextantfix/planefix"
	"github.com/ehalsey/sextantfix/sextant"
	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// CelestialFix is one navigation session: a fix log plus the sextant
// correction parameters and ephemeris collaborators used to populate
// it, and the knobs controlling the fine fix's optional terms.
type CelestialFix struct {
	log    fixlog.FixLog
	params sextant.Params

	catalog  ephemeris.Catalog
	observer ephemeris.StarObserver
	gast     ephemeris.GASTSource

	modelConfig navmodel.Config
	logger      *navlog.Logger
}

// NewCelestialFix starts a session with the given sextant correction
// parameters, using the process-wide default star catalog and a
// sidereal-time-derived GAST source. params is copied by value: later
// mutation of the caller's copy has no effect on the session.
func NewCelestialFix(params sextant.Params) *CelestialFix {
	cat := ephemeris.DefaultCatalog()
	return &CelestialFix{
		params:   params,
		catalog:  cat,
		observer: cat,
		gast:     ephemeris.SiderealGAST{},
		logger:   navlog.New(navlog.Info),
	}
}

// SetLogger overrides the session's diagnostic logger.
func (f *CelestialFix) SetLogger(l *navlog.Logger) {
	f.logger = l
}

// SetMagneticWeight enables the magnetic-bearing residual term in the
// fine fix by giving it a nonzero loss weight. It is zero (disabled) by
// default.
func (f *CelestialFix) SetMagneticWeight(w float64) {
	f.modelConfig.MagneticWeight = w
}

// SetBearingSpeed updates the ambient dead-reckoning motion applied to
// observations added after this call.
func (f *CelestialFix) SetBearingSpeed(bearing unit.Angle, speedKnots float64) {
	f.log.SetBearingSpeed(bearing, speedKnots)
}

// AddObservation corrects a raw sextant altitude, resolves the named
// star's geographic position at instant, and appends the result (and,
// if applicable, a synthesized movement leg) to the session's fix log.
func (f *CelestialFix) AddObservation(name string, instant navtime.Instant, altSextant unit.Angle, mag *unit.Angle) error {
	corrected := sextant.Correct(altSextant, f.params)
	gp, err := ephemeris.StarGP(name, instant, f.catalog, f.observer, f.gast)
	if err != nil {
		return err
	}
	return f.log.Add(name, instant.JD(), corrected, gp, mag)
}

// Fix runs the coarse global fix followed by the fine local fix,
// logging diagnostics along the way, and returns the resolved position.
func (f *CelestialFix) Fix() (coord.Coordinate, error) {
	coarse, err := f.fixGlobalRough()
	if err != nil {
		f.logger.Errorf("coarse fix failed: %v", err)
		return coord.Coordinate{}, err
	}
	f.logger.Infof("coarse fix: %s %s (radius %.6f)",
		sexa.FmtAngle(coarse.Position.Lat), sexa.FmtAngle(coarse.Position.Lon), coarse.Radius)

	fine, err := f.fixLocalFine(coarse)
	if err != nil {
		f.logger.Errorf("fine fix failed: %v", err)
		return coord.Coordinate{}, err
	}

	obs := f.log.Observations()
	for i, r := range fine.Residuals {
		name := "?"
		if i < len(obs) {
			name = obs[i].StarName
		}
		f.logger.Debugf("residual[%s] = %.3f nm", name, r)
	}
	f.logger.Infof("estimated bias: %.3f%s", absEps(fine.FinalEpsDeg), epsArrow(fine.FinalEpsDeg))
	f.logger.Debugf("final track: %v", fine.Positions)

	return fine.Position, nil
}

// fixGlobalRough runs the plane-intersection coarse fix (C5) over the
// log's observations, ignoring movement legs.
func (f *CelestialFix) fixGlobalRough() (planefix.Result, error) {
	obs := f.log.Observations()
	planeObs := make([]planefix.Observation, len(obs))
	for i, o := range obs {
		planeObs[i] = planefix.Observation{GP: o.GP, AltObserved: o.AltObserved}
	}
	return planefix.Solve(planeObs)
}

// fixLocalFine runs the gradient-based fine fix (C6), seeded at the
// coarse position with zero bias.
func (f *CelestialFix) fixLocalFine(coarse planefix.Result) (navmodel.Result, error) {
	initial := navmodel.State{
		Phi0:    coarse.Position.Lat.Rad(),
		Lambda0: coarse.Position.Lon.Rad(),
		EpsDeg:  0,
	}
	return navmodel.Optimize(initial, f.log.Entries(), f.modelConfig)
}

// absEps and epsArrow implement the estimated-error reporting
// convention: the magnitude is printed with an arrow indicating whether
// the shared bias is pushing observed altitudes up or down.
func absEps(eps float64) float64 {
	if eps < 0 {
		return -eps
	}
	return eps
}

func epsArrow(eps float64) string {
	if eps < 0 {
		return "° (↓)"
	}
	return "° (↑)"
}
