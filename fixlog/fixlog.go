// Package fixlog implements the ordered sequence of observations and
// rhumb-line motion legs that a Fix session accumulates: the tagged-sum
// FixLog described for the navigation model's forward pass. Time order is
// enforced only while the log is under nonzero speed.
package fixlog

import (
	"errors"

	"github.com/ehalsey/sextantfix/coord"
	"github.com/soniakeys/unit"
)

// ErrTimeWentBackward is returned by Add when an observation's time
// precedes its predecessor's while the log is under nonzero set speed.
var ErrTimeWentBackward = errors.New("fixlog: time went backward")

// Observation is a single corrected sextant sight: the star's name, its
// geographic position frozen at the instant of observation, the
// corrected (observed) altitude, and an optional magnetic bearing.
type Observation struct {
	StarName    string
	GP          coord.Coordinate
	AltObserved unit.Angle
	Mag         *unit.Angle
	JD          float64
}

// RhumbLineMovement is a synthesized dead-reckoning leg between two
// observations: a bearing, speed, and duration, from which distance
// follows directly.
type RhumbLineMovement struct {
	Bearing     unit.Angle
	SpeedKnots  float64
	DurationHrs float64
}

// DistanceNM returns the rhumb-line distance covered by the leg, in
// nautical miles.
func (m RhumbLineMovement) DistanceNM() float64 {
	return m.SpeedKnots * m.DurationHrs
}

// Entry is one element of a FixLog: either an Observation or a
// RhumbLineMovement. Exactly one of Obs or Move is non-nil.
type Entry struct {
	Obs  *Observation
	Move *RhumbLineMovement
}

// FixLog is the ordered sequence of log entries accumulated during a Fix
// session. Movement legs never appear before the first observation or
// after the last; that invariant is maintained by construction in Add,
// which is the log's only mutator.
type FixLog struct {
	entries []Entry

	haveBearing bool
	bearing     unit.Angle
	speedKnots  float64

	havePrev bool
	prevJD   float64
}

// SetBearingSpeed updates the ambient motion state applied to
// observations added after this call. It has no effect on entries
// already in the log.
func (l *FixLog) SetBearingSpeed(bearing unit.Angle, speedKnots float64) {
	l.haveBearing = true
	l.bearing = bearing
	l.speedKnots = speedKnots
}

// Add appends an observation to the log. If a prior observation exists
// and the ambient speed is nonzero, it first synthesizes and appends a
// RhumbLineMovement leg spanning the elapsed time, using the
// currently-set bearing and speed. Time moving backward under nonzero
// speed is an error; a repeated or out-of-order instant with speed zero
// is tolerated, matching simultaneous-sight scenarios.
func (l *FixLog) Add(starName string, jd float64, altObserved unit.Angle, gp coord.Coordinate, mag *unit.Angle) error {
	if l.havePrev && l.speedKnots != 0 {
		Δh := (jd - l.prevJD) * 24
		if Δh < 0 {
			return ErrTimeWentBackward
		}
		move := RhumbLineMovement{
			Bearing:     l.bearing,
			SpeedKnots:  l.speedKnots,
			DurationHrs: Δh,
		}
		l.entries = append(l.entries, Entry{Move: &move})
	}
	obs := Observation{
		StarName:    starName,
		GP:          gp,
		AltObserved: altObserved,
		Mag:         mag,
		JD:          jd,
	}
	l.entries = append(l.entries, Entry{Obs: &obs})
	l.havePrev = true
	l.prevJD = jd
	return nil
}

// Entries returns the log's entries in insertion (time) order. The
// returned slice must not be mutated by the caller.
func (l *FixLog) Entries() []Entry {
	return l.entries
}

// Observations returns only the Observation entries, in order, ignoring
// movement legs. Used by the coarse global-fix solver, which works from
// simultaneous (or motion-ignored) circles only.
func (l *FixLog) Observations() []Observation {
	var obs []Observation
	for _, e := range l.entries {
		if e.Obs != nil {
			obs = append(obs, *e.Obs)
		}
	}
	return obs
}
