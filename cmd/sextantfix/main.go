// Command sextantfix constructs a celestial fix session from a list of
// sextant observations given on the command line and prints the
// resolved position.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ehalsey/sextantfix/angle"
	"github.com/ehalsey/sextantfix/fix"
	"github.com/ehalsey/sextantfix/navlog"
	"github.com/ehalsey/sextantfix/navtime"
	"github.com/ehalsey/sextantfix/sextant"
	"github.com/soniakeys/unit"
)

// sighting is one -obs flag value: star name, UT1 timestamp, sextant
// altitude in decimal degrees, and an optional magnetic bearing.
type sighting struct {
	name    string
	instant navtime.Instant
	altDeg  float64
	mag     *unit.Angle
}

// sightingList accumulates repeated -obs flags in the order given.
type sightingList struct {
	items []sighting
}

func (l *sightingList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(l.items))
	for i, s := range l.items {
		parts[i] = s.name
	}
	return strings.Join(parts, ",")
}

// Set parses "name,RFC3339-UTC-timestamp,altDeg[,magDeg]".
func (l *sightingList) Set(s string) error {
	fields := strings.Split(s, ",")
	if len(fields) < 3 {
		return fmt.Errorf("sextantfix: -obs %q: expected name,time,altDeg[,magDeg]", s)
	}
	t, err := time.Parse(time.RFC3339, fields[1])
	if err != nil {
		return fmt.Errorf("sextantfix: -obs %q: %w", s, err)
	}
	alt, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("sextantfix: -obs %q: %w", s, err)
	}
	sg := sighting{
		name:    fields[0],
		instant: navtime.UT1(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), float64(t.Second()), 0),
		altDeg:  alt,
	}
	if len(fields) > 3 {
		mag, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return fmt.Errorf("sextantfix: -obs %q: %w", s, err)
		}
		m := unit.AngleFromDeg(mag)
		sg.mag = &m
	}
	l.items = append(l.items, sg)
	return nil
}

func main() {
	var obs sightingList
	flag.Var(&obs, "obs", "observation name,RFC3339-UTC-time,altDeg[,magDeg] (repeatable)")

	indexError := flag.Float64("index-error", 0, "sextant index error, arcminutes")
	eyeHeight := flag.Float64("eye-height", 0, "height of eye above the waterline, meters")
	temperature := flag.Float64("temp", 10, "air temperature, Celsius")
	pressure := flag.Float64("pressure", 1010, "atmospheric pressure, hPa")
	bearing := flag.Float64("bearing", 0, "true bearing of travel, degrees")
	speed := flag.Float64("speed", 0, "speed made good, knots")
	verbose := flag.Bool("v", false, "enable info-level diagnostics")
	debug := flag.Bool("vv", false, "enable debug-level diagnostics")
	flag.Parse()

	level := navlog.Quiet
	if *verbose {
		level = navlog.Info
	}
	if *debug {
		level = navlog.Debug
	}

	if len(obs.items) == 0 {
		log.Fatal("sextantfix: at least one -obs is required")
	}

	session := fix.NewCelestialFix(sextant.Params{
		IndexErrorMin:   *indexError,
		EyeHeightM:      *eyeHeight,
		TemperatureDegC: *temperature,
		PressureHPa:     *pressure,
		NeedsCorrection: true,
	})
	session.SetLogger(navlog.New(level))
	if *speed != 0 {
		session.SetBearingSpeed(unit.AngleFromDeg(*bearing), *speed)
	}

	for _, s := range obs.items {
		if err := session.AddObservation(s.name, s.instant, unit.AngleFromDeg(s.altDeg), s.mag); err != nil {
			log.Fatalf("sextantfix: %s: %v", s.name, err)
		}
	}

	pos, err := session.Fix()
	if err != nil {
		log.Fatalf("sextantfix: %v", err)
	}
	fmt.Println(angle.FormatCoord(pos.Lat.Deg(), pos.Lon.Deg()))
}
