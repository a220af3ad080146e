//go:build !linux

package clock

import (
	"time"

	"github.com/benchtick/benchtick/pkg/logging"
	"github.com/benchtick/benchtick/pkg/timespec"
)

// Without clock_gettime the platform layer offers two real sources: the
// wall clock and Go's monotonic reading. Every monotonic-flavoured kind maps
// onto the latter; CPU-time kinds fall back to it with a diagnostic.

// monotonicBase anchors monotonic readings. Only differences between two
// reads are meaningful, so any fixed base works.
var monotonicBase = time.Now()

func readPlatform(k Kind, log *logging.Logger) (timespec.Timestamp, error) {
	switch k {
	case Realtime, RealtimeCoarse:
		return timespec.FromTime(time.Now()), nil
	case Monotonic, MonotonicCoarse, MonotonicRaw, Boottime:
		return monotonicNow(), nil
	default:
		log.Error("clock unavailable on this platform, falling back to monotonic", map[string]interface{}{
			"clock": k.String(),
		})
		return monotonicNow(), nil
	}
}

func monotonicNow() timespec.Timestamp {
	d := time.Since(monotonicBase)
	return timespec.Timestamp{
		Sec:  int64(d / time.Second),
		Nsec: int64(d % time.Second),
	}
}

func resolutionPlatform(k Kind, log *logging.Logger) (timespec.Timestamp, error) {
	// time.Time carries nanosecond granularity; the true hardware
	// resolution is not observable without clock_getres.
	return timespec.Timestamp{Sec: 0, Nsec: 1}, nil
}

func supportedPlatform(k Kind) bool {
	switch k {
	case Realtime, RealtimeCoarse, Monotonic, MonotonicCoarse, MonotonicRaw, Boottime:
		return true
	default:
		return false
	}
}
