// Package interval implements the named start/stop measurement unit at the
// heart of the timer: pick a clock kind and a default unit, bracket the code
// under test with Start and Stop, then ask for the elapsed value.
package interval

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benchtick/benchtick/pkg/clock"
	"github.com/benchtick/benchtick/pkg/logging"
	"github.com/benchtick/benchtick/pkg/timespec"
	"github.com/benchtick/benchtick/pkg/units"
)

var (
	// ErrNotStarted is returned when elapsed time is requested before a
	// start timestamp has been captured.
	ErrNotStarted = errors.New("interval not started")

	// ErrNotStopped is returned when elapsed time is requested before a
	// stop timestamp has been captured.
	ErrNotStopped = errors.New("interval not stopped")
)

// Config carries the per-interval settings that used to be process-wide in
// older timer designs. The zero value is usable: wall clock, seconds, and a
// default error-level logger.
type Config struct {
	Clock  clock.Kind
	Unit   units.Unit
	Logger *logging.Logger
}

// DefaultConfig returns the recommended benchmarking configuration: the
// monotonic clock (immune to wall-clock jumps) reported in seconds.
func DefaultConfig() Config {
	return Config{Clock: clock.Monotonic, Unit: units.Seconds}
}

// Interval is a single named measurement. Its methods are safe for
// concurrent use: a live observer may call Snapshot or Running while another
// goroutine drives Start and Stop.
type Interval struct {
	name  string
	clock clock.Kind
	unit  units.Unit
	log   *logging.Logger

	mu      sync.Mutex
	start   timespec.Timestamp
	stop    timespec.Timestamp
	started bool
	stopped bool
}

// New creates an unstarted interval. Out-of-range clock or unit values in
// cfg are recovered locally: the clock falls back to realtime and the unit
// to seconds, each with a diagnostic. New itself never fails.
func New(name string, cfg Config) *Interval {
	log := cfg.Logger
	if log == nil {
		log = logging.NewLogger(logging.ERROR)
	}

	k := clock.Resolve(cfg.Clock, log)

	u := cfg.Unit
	if !u.Valid() {
		log.Error("invalid time unit, using seconds", map[string]interface{}{
			"interval": name,
			"unit":     int(u),
		})
		u = units.Seconds
	}

	return &Interval{
		name:  name,
		clock: k,
		unit:  u,
		log:   log,
	}
}

// Name returns the interval's display name. It may be empty for anonymous
// intervals.
func (iv *Interval) Name() string {
	return iv.name
}

// Clock returns the interval's clock kind.
func (iv *Interval) Clock() clock.Kind {
	return iv.clock
}

// Unit returns the interval's default reporting unit.
func (iv *Interval) Unit() units.Unit {
	return iv.unit
}

// Start captures the current time of the configured clock as the start
// timestamp. On a clock read failure the start timestamp stays unset.
func (iv *Interval) Start() error {
	ts, err := clock.Read(iv.clock, iv.log)
	if err != nil {
		return fmt.Errorf("interval %q start: %w", iv.name, err)
	}
	iv.mu.Lock()
	iv.start = ts
	iv.started = true
	iv.mu.Unlock()
	iv.log.Debug("interval started", map[string]interface{}{
		"interval": iv.name,
		"clock":    iv.clock.String(),
	})
	return nil
}

// Stop captures the current time of the configured clock as the stop
// timestamp. No ordering against Start is enforced: stopping an interval
// that was never started, or that was started later, yields a negative
// elapsed value. Correct ordering is the caller's precondition.
func (iv *Interval) Stop() error {
	ts, err := clock.Read(iv.clock, iv.log)
	if err != nil {
		return fmt.Errorf("interval %q stop: %w", iv.name, err)
	}
	iv.mu.Lock()
	iv.stop = ts
	iv.stopped = true
	iv.mu.Unlock()
	iv.log.Debug("interval stopped", map[string]interface{}{
		"interval": iv.name,
		"clock":    iv.clock.String(),
	})
	return nil
}

// Elapsed returns stop - start converted to the interval's default unit.
// It fails with ErrNotStarted or ErrNotStopped if either timestamp is
// missing; it never reads uncaptured timestamps.
func (iv *Interval) Elapsed() (float64, error) {
	return iv.ElapsedIn(units.Default)
}

// ElapsedIn is Elapsed with a unit override. Passing units.Default, or any
// value that is not a concrete unit, uses the interval's own unit; a
// non-sentinel invalid override additionally logs a diagnostic.
func (iv *Interval) ElapsedIn(u units.Unit) (float64, error) {
	d, err := iv.diff()
	if err != nil {
		return 0, err
	}
	if !u.Valid() {
		if u != units.Default {
			iv.log.Error("invalid unit override, using interval unit", map[string]interface{}{
				"interval": iv.name,
				"unit":     int(u),
			})
		}
		u = iv.unit
	}
	return units.Convert(d, u), nil
}

// Snapshot returns the raw elapsed duration. For a completed interval it is
// stop - start; for a running one it is the distance from start to a fresh
// clock read, so live observers can export progress without stopping the
// measurement.
func (iv *Interval) Snapshot() (timespec.Timestamp, error) {
	iv.mu.Lock()
	started, stopped := iv.started, iv.stopped
	start, stop := iv.start, iv.stop
	iv.mu.Unlock()

	if !started {
		return timespec.Timestamp{}, ErrNotStarted
	}
	if stopped {
		return timespec.Diff(stop, start), nil
	}
	now, err := clock.Read(iv.clock, iv.log)
	if err != nil {
		return timespec.Timestamp{}, fmt.Errorf("interval %q snapshot: %w", iv.name, err)
	}
	return timespec.Diff(now, start), nil
}

// Running reports whether the interval has been started but not stopped.
func (iv *Interval) Running() bool {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.started && !iv.stopped
}

// SetSpan overwrites both timestamps with the given values, marking the
// interval started and stopped. It exists for synthetic intervals built from
// recorded timestamps; live measurement goes through Start and Stop.
func (iv *Interval) SetSpan(start, stop timespec.Timestamp) {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.start = start
	iv.stop = stop
	iv.started = true
	iv.stopped = true
}

func (iv *Interval) diff() (timespec.Timestamp, error) {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if !iv.started {
		return timespec.Timestamp{}, ErrNotStarted
	}
	if !iv.stopped {
		return timespec.Timestamp{}, ErrNotStopped
	}
	return timespec.Diff(iv.stop, iv.start), nil
}
