// Package timespec provides the raw (seconds, nanoseconds) timestamp pair
// used by the clock and interval packages, together with the normalized
// subtraction that elapsed-time computation is built on.
package timespec

import "time"

// nsPerSec is the nanosecond range of the Nsec field.
const nsPerSec = 1_000_000_000

// Timestamp is a point in time as reported by a POSIX clock: whole seconds
// plus a nanosecond remainder. A normalized Timestamp keeps Nsec in
// [0, 1e9); the sign of a negative duration lives entirely in Sec.
type Timestamp struct {
	Sec  int64 `json:"sec" yaml:"sec"`
	Nsec int64 `json:"nsec" yaml:"nsec"`
}

// Diff returns end - begin as a normalized Timestamp.
//
// The subtraction borrows whole seconds so that Nsec stays in [0, 1e9).
// The result may be negative (Sec < 0) when end precedes begin; no ordering
// is enforced here.
func Diff(end, begin Timestamp) Timestamp {
	sec := end.Sec - begin.Sec
	nsec := end.Nsec - begin.Nsec

	// One borrow/carry is enough for normalized inputs. Loop anyway so
	// hand-built timestamps with out-of-range Nsec still normalize.
	for nsec < 0 {
		nsec += nsPerSec
		sec--
	}
	for nsec >= nsPerSec {
		nsec -= nsPerSec
		sec++
	}

	return Timestamp{Sec: sec, Nsec: nsec}
}

// Seconds returns the timestamp as a floating-point number of seconds.
func (t Timestamp) Seconds() float64 {
	return float64(t.Sec) + float64(t.Nsec)/float64(nsPerSec)
}

// Duration converts the timestamp to a time.Duration. Durations longer than
// ~292 years overflow; callers measuring benchmark intervals never get there.
func (t Timestamp) Duration() time.Duration {
	return time.Duration(t.Sec)*time.Second + time.Duration(t.Nsec)
}

// FromTime converts a wall-clock time.Time to a Timestamp.
func FromTime(t time.Time) Timestamp {
	return Timestamp{Sec: t.Unix(), Nsec: int64(t.Nanosecond())}
}
