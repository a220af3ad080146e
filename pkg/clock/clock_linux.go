//go:build linux

package clock

import (
	"golang.org/x/sys/unix"

	"github.com/benchtick/benchtick/pkg/logging"
	"github.com/benchtick/benchtick/pkg/timespec"
)

// clockID maps a valid Kind to its Linux clockid. Callers pass kinds
// through Resolve first, so the default arm is unreachable in practice.
func clockID(k Kind) int32 {
	switch k {
	case RealtimeCoarse:
		return unix.CLOCK_REALTIME_COARSE
	case Monotonic:
		return unix.CLOCK_MONOTONIC
	case MonotonicCoarse:
		return unix.CLOCK_MONOTONIC_COARSE
	case MonotonicRaw:
		return unix.CLOCK_MONOTONIC_RAW
	case Boottime:
		return unix.CLOCK_BOOTTIME
	case ProcessCPU:
		return unix.CLOCK_PROCESS_CPUTIME_ID
	case ThreadCPU:
		return unix.CLOCK_THREAD_CPUTIME_ID
	default:
		return unix.CLOCK_REALTIME
	}
}

func readPlatform(k Kind, log *logging.Logger) (timespec.Timestamp, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(clockID(k), &ts); err != nil {
		// The kernel may reject optional clocks (boottime on old
		// kernels). Retry with monotonic semantics before giving up.
		if k != Realtime && k != Monotonic {
			log.Error("clock unavailable, falling back to monotonic", map[string]interface{}{
				"clock": k.String(),
				"errno": err.Error(),
			})
			if err2 := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err2 == nil {
				return timespec.Timestamp{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}, nil
			}
		}
		return timespec.Timestamp{}, &ReadError{Kind: k, Op: "clock_gettime", Err: err}
	}
	return timespec.Timestamp{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}, nil
}

func resolutionPlatform(k Kind, log *logging.Logger) (timespec.Timestamp, error) {
	var ts unix.Timespec
	if err := unix.ClockGetres(clockID(k), &ts); err != nil {
		return timespec.Timestamp{}, &ReadError{Kind: k, Op: "clock_getres", Err: err}
	}
	return timespec.Timestamp{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}, nil
}

func supportedPlatform(k Kind) bool {
	var ts unix.Timespec
	return unix.ClockGettime(clockID(k), &ts) == nil
}
