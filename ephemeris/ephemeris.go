// Package ephemeris implements the external collaborators the GP
// resolver depends on: a star catalog mapping names to catalog entries,
// a star observer producing apparent right ascension and declination at
// an instant, and a GAST source. It also implements the resolver itself,
// star_gp, which combines them with the Greenwich hour angle formula.
package ephemeris

import (
	"errors"
	"sync"

	"github.com/ehalsey/sextantfix/angle"
	"github.com/ehalsey/sextantfix/apparent"
	"github.com/ehalsey/sextantfix/coord"
	"github.com/ehalsey/sextantfix/navtime"
	"github.com/ehalsey/sextantfix/sidereal"
	"github.com/soniakeys/unit"
)

// ErrUnknownStar is returned by Catalog.Lookup when a star name has no
// catalog entry.
var ErrUnknownStar = errors.New("ephemeris: unknown star")

// StarID identifies a star within a catalog.
type StarID string

// Catalog maps human-readable star names to catalog identifiers.
type Catalog interface {
	Lookup(name string) (StarID, error)
}

// StarObserver yields a star's apparent right ascension and declination,
// of date, at a given instant: aberration and nutation included.
type StarObserver interface {
	ObserveStar(id StarID, instant navtime.Instant) (ra unit.RA, dec unit.Angle, err error)
}

// GASTSource yields Greenwich apparent sidereal time at a given instant.
type GASTSource interface {
	GAST(instant navtime.Instant) unit.Time
}

// StarGP resolves a star's geographic position at the given instant:
// latitude is its apparent declination; longitude is normalize(-GHA)
// where GHA = mod(GAST*15 - RA*15, 360), both GAST and RA in hours.
func StarGP(name string, instant navtime.Instant, cat Catalog, obs StarObserver, gast GASTSource) (coord.Coordinate, error) {
	id, err := cat.Lookup(name)
	if err != nil {
		return coord.Coordinate{}, err
	}
	ra, dec, err := obs.ObserveStar(id, instant)
	if err != nil {
		return coord.Coordinate{}, err
	}
	g := gast.GAST(instant)
	gha := angle.Normalize(g.Hour()*15 - ra.Hour()*15)
	if gha < 0 {
		gha += 360
	}
	lon := angle.Normalize(-gha)
	return coord.Coordinate{
		Lat: dec,
		Lon: unit.AngleFromDeg(lon),
	}, nil
}

// CatalogEntry is a mean (J2000) equatorial position for a named star.
type CatalogEntry struct {
	ID  StarID
	RA  unit.RA
	Dec unit.Angle
}

// MeanCatalog is a small in-memory star catalog with apparent-place
// computation via package apparent. It implements both Catalog and
// StarObserver, and is safe for concurrent lookups since its table is
// fixed at construction.
type MeanCatalog struct {
	byName map[string]CatalogEntry
}

// NewMeanCatalog builds a MeanCatalog from a list of entries keyed by
// name.
func NewMeanCatalog(entries map[string]CatalogEntry) *MeanCatalog {
	m := make(map[string]CatalogEntry, len(entries))
	for name, e := range entries {
		m[name] = e
	}
	return &MeanCatalog{byName: m}
}

// Lookup implements Catalog.
func (c *MeanCatalog) Lookup(name string) (StarID, error) {
	e, ok := c.byName[name]
	if !ok {
		return "", ErrUnknownStar
	}
	return e.ID, nil
}

// ObserveStar implements StarObserver by looking up the mean position by
// ID and applying nutation and aberration for the given instant. No
// precession is applied: the result is the J2000 mean position plus those
// two corrections, not a full apparent place of date.
func (c *MeanCatalog) ObserveStar(id StarID, instant navtime.Instant) (unit.RA, unit.Angle, error) {
	for _, e := range c.byName {
		if e.ID == id {
			ra, dec := apparent.Position(e.RA, e.Dec, instant.JD())
			return ra, dec, nil
		}
	}
	return 0, 0, ErrUnknownStar
}

// SiderealGAST implements GASTSource using package sidereal.
type SiderealGAST struct{}

// GAST implements GASTSource.
func (SiderealGAST) GAST(instant navtime.Instant) unit.Time {
	return sidereal.Apparent(instant.JD())
}

// Navstar is a standard Nautical Almanac table of bright navigational
// stars with mean J2000 positions (sources: Astronomical Almanac), used
// to build the process-wide default catalog.
var Navstar = map[string]CatalogEntry{
	"Regulus":         {ID: "regulus", RA: unit.NewRA(10, 8, 22.31), Dec: unit.NewAngle(' ', 11, 58, 1.9)},
	"Arcturus":        {ID: "arcturus", RA: unit.NewRA(14, 15, 39.67), Dec: unit.NewAngle(' ', 19, 10, 56.7)},
	"Dubhe":           {ID: "dubhe", RA: unit.NewRA(11, 3, 43.67), Dec: unit.NewAngle(' ', 61, 45, 3.7)},
	"Capella":         {ID: "capella", RA: unit.NewRA(5, 16, 41.36), Dec: unit.NewAngle(' ', 45, 59, 52.8)},
	"Vega":            {ID: "vega", RA: unit.NewRA(18, 36, 56.34), Dec: unit.NewAngle(' ', 38, 47, 1.3)},
	"Alkaid":          {ID: "alkaid", RA: unit.NewRA(13, 47, 32.44), Dec: unit.NewAngle(' ', 49, 18, 47.8)},
	"Rigil Kentaurus": {ID: "rigil_kentaurus", RA: unit.NewRA(14, 39, 36.5), Dec: unit.NewAngle('-', 60, 50, 2.3)},
	"Rigel":           {ID: "rigel", RA: unit.NewRA(5, 14, 32.27), Dec: unit.NewAngle('-', 8, 12, 5.9)},
	"Aldebaran":       {ID: "aldebaran", RA: unit.NewRA(4, 35, 55.24), Dec: unit.NewAngle(' ', 16, 30, 33.5)},
	"Polaris":         {ID: "polaris", RA: unit.NewRA(2, 31, 49.09), Dec: unit.NewAngle(' ', 89, 15, 50.8)},
	"Procyon":         {ID: "procyon", RA: unit.NewRA(7, 39, 18.12), Dec: unit.NewAngle(' ', 5, 13, 30)},
	"Alphard":         {ID: "alphard", RA: unit.NewRA(9, 27, 35.24), Dec: unit.NewAngle('-', 8, 39, 31)},
	"Acrux":           {ID: "acrux", RA: unit.NewRA(12, 26, 35.9), Dec: unit.NewAngle('-', 63, 5, 56.7)},
	"Peacock":         {ID: "peacock", RA: unit.NewRA(20, 25, 38.86), Dec: unit.NewAngle('-', 56, 44, 6.3)},
}

var (
	defaultOnce sync.Once
	defaultCat  *MeanCatalog
)

// DefaultCatalog returns the process-wide, lazily-initialized default
// catalog built from Navstar. Initialization is idempotent: repeated
// calls return the same shared, immutable instance.
func DefaultCatalog() *MeanCatalog {
	defaultOnce.Do(func() {
		defaultCat = NewMeanCatalog(Navstar)
	})
	return defaultCat
}
