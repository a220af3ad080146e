// Package units converts raw timespec durations into the scale a report is
// rendered in (seconds, milliseconds, microseconds or nanoseconds).
package units

import (
	"fmt"

	"github.com/benchtick/benchtick/pkg/timespec"
)

// Unit selects the scale an elapsed duration is reported in.
type Unit int

const (
	Seconds Unit = iota
	Milliseconds
	Microseconds
	Nanoseconds

	// Default defers to the owning interval's configured unit. It is a
	// sentinel for elapsed-time calls, never a concrete scale.
	Default Unit = -1
)

// Valid reports whether u is one of the four concrete units.
func (u Unit) Valid() bool {
	return u >= Seconds && u <= Nanoseconds
}

// Label returns the short unit label used in reports: s, ms, us, ns.
// Out-of-range values label as seconds, matching Convert's fallback.
func (u Unit) Label() string {
	switch u {
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "us"
	case Nanoseconds:
		return "ns"
	default:
		return "s"
	}
}

// String implements fmt.Stringer with the spelled-out unit name.
func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Milliseconds:
		return "milliseconds"
	case Microseconds:
		return "microseconds"
	case Nanoseconds:
		return "nanoseconds"
	case Default:
		return "default"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// Parse maps a configuration string to a Unit. It accepts both the
// spelled-out names and the short labels.
func Parse(s string) (Unit, error) {
	switch s {
	case "seconds", "s", "sec":
		return Seconds, nil
	case "milliseconds", "ms", "msec":
		return Milliseconds, nil
	case "microseconds", "us", "usec":
		return Microseconds, nil
	case "nanoseconds", "ns", "nsec":
		return Nanoseconds, nil
	default:
		return Seconds, fmt.Errorf("unknown time unit %q", s)
	}
}

// Convert scales a normalized duration to a float in the requested unit.
// Conversion never fails: an out-of-range unit converts as seconds, so a
// numeric result always comes back even on bad enum input. The fallback is
// silent here; callers that accept unit values from outside validate and
// log before converting (interval.New, Interval.ElapsedIn).
func Convert(d timespec.Timestamp, u Unit) float64 {
	switch u {
	case Milliseconds:
		return float64(d.Sec)*1e3 + float64(d.Nsec)/1e6
	case Microseconds:
		return float64(d.Sec)*1e6 + float64(d.Nsec)/1e3
	case Nanoseconds:
		return float64(d.Sec)*1e9 + float64(d.Nsec)
	case Seconds:
		return d.Seconds()
	default:
		return d.Seconds()
	}
}
