// Package navlog is a small leveled wrapper over the standard library's
// log package: fix diagnostics (coarse radius, per-star residual,
// estimated bias, final track) are worth seeing at one verbosity and
// worth suppressing at another, which plain log.Printf does not
// distinguish.
package navlog

import "log"

// Level selects which calls to Logger actually reach the underlying
// log.Logger.
type Level int

const (
	// Quiet suppresses everything but Error.
	Quiet Level = iota
	// Info surfaces the fix's headline diagnostics.
	Info
	// Debug surfaces per-observation detail in addition to Info.
	Debug
)

// Logger gates log lines by Level against a configured threshold.
type Logger struct {
	level Level
	out   *log.Logger
}

// New returns a Logger at the given level, writing through the
// standard library's default logger destination.
func New(level Level) *Logger {
	return &Logger{level: level, out: log.Default()}
}

// Infof logs at Info level.
func (l *Logger) Infof(format string, args ...any) {
	if l.level >= Info {
		l.out.Printf(format, args...)
	}
}

// Debugf logs at Debug level.
func (l *Logger) Debugf(format string, args ...any) {
	if l.level >= Debug {
		l.out.Printf(format, args...)
	}
}

// Errorf always logs, regardless of level.
func (l *Logger) Errorf(format string, args ...any) {
	l.out.Printf(format, args...)
}
