// Package clock maps logical clock kinds onto the operating system's time
// sources and reads raw (sec, nsec) timestamps from them.
//
// Kinds differ in monotonicity, precision and suspend-awareness. Resolution
// of a kind never fails: unknown kinds fall back to the wall clock and
// platform-unsupported kinds fall back to monotonic semantics, each with a
// diagnostic, so a misconfigured interval still measures something sane.
package clock

import (
	"fmt"

	"github.com/benchtick/benchtick/pkg/logging"
	"github.com/benchtick/benchtick/pkg/timespec"
)

// Kind selects a logical clock source. The values mirror the POSIX clocks
// they resolve to on Linux.
type Kind int

const (
	Realtime Kind = iota
	RealtimeCoarse
	Monotonic
	MonotonicCoarse
	MonotonicRaw
	Boottime
	ProcessCPU
	ThreadCPU
)

// Kinds returns all logical clock kinds in resolution order.
func Kinds() []Kind {
	return []Kind{
		Realtime, RealtimeCoarse,
		Monotonic, MonotonicCoarse, MonotonicRaw,
		Boottime, ProcessCPU, ThreadCPU,
	}
}

// Valid reports whether k is one of the defined clock kinds.
func (k Kind) Valid() bool {
	return k >= Realtime && k <= ThreadCPU
}

func (k Kind) String() string {
	switch k {
	case Realtime:
		return "realtime"
	case RealtimeCoarse:
		return "realtime_coarse"
	case Monotonic:
		return "monotonic"
	case MonotonicCoarse:
		return "monotonic_coarse"
	case MonotonicRaw:
		return "monotonic_raw"
	case Boottime:
		return "boottime"
	case ProcessCPU:
		return "process_cpu_time"
	case ThreadCPU:
		return "thread_cpu_time"
	default:
		return fmt.Sprintf("clock(%d)", int(k))
	}
}

// Parse maps a configuration string to a Kind.
func Parse(s string) (Kind, error) {
	switch s {
	case "realtime":
		return Realtime, nil
	case "realtime_coarse":
		return RealtimeCoarse, nil
	case "monotonic":
		return Monotonic, nil
	case "monotonic_coarse":
		return MonotonicCoarse, nil
	case "monotonic_raw":
		return MonotonicRaw, nil
	case "boottime":
		return Boottime, nil
	case "process_cpu_time", "process_cpu":
		return ProcessCPU, nil
	case "thread_cpu_time", "thread_cpu":
		return ThreadCPU, nil
	default:
		return Realtime, fmt.Errorf("unknown clock kind %q", s)
	}
}

// Resolve normalizes a kind to one the platform layer can read. Unknown or
// out-of-range values resolve to the wall clock with a diagnostic; Resolve
// itself never fails.
func Resolve(k Kind, log *logging.Logger) Kind {
	if !k.Valid() {
		log.Error("invalid clock kind, using realtime", map[string]interface{}{
			"clock": int(k),
		})
		return Realtime
	}
	return k
}

// Read returns the current time of the given clock kind.
//
// Unknown kinds read the wall clock; kinds the platform does not support at
// runtime (boottime on old kernels, CPU-time clocks outside Linux) fall back
// to monotonic. Both fallbacks log a diagnostic. A failure of the underlying
// clock itself surfaces as *ReadError.
func Read(k Kind, log *logging.Logger) (timespec.Timestamp, error) {
	return readPlatform(Resolve(k, log), log)
}

// Resolution returns the precision of the given clock kind, or an error if
// the platform cannot report it.
func Resolution(k Kind, log *logging.Logger) (timespec.Timestamp, error) {
	return resolutionPlatform(Resolve(k, log), log)
}

// Supported reports whether the kind can currently be read without falling
// back to another clock. It is a runtime probe, not a compile-time fact:
// boottime availability depends on the kernel.
func Supported(k Kind) bool {
	if !k.Valid() {
		return false
	}
	return supportedPlatform(k)
}

// ReadError reports a failed read of an OS clock. It is returned only when
// the clock call itself failed, never for recoverable configuration issues.
type ReadError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s failed for clock %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
