package clock

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benchtick/benchtick/pkg/logging"
)

func testLogger(buf *bytes.Buffer) *logging.Logger {
	log := logging.NewLogger(logging.ERROR)
	log.SetOutput(buf)
	return log
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"realtime", Realtime, false},
		{"realtime_coarse", RealtimeCoarse, false},
		{"monotonic", Monotonic, false},
		{"monotonic_coarse", MonotonicCoarse, false},
		{"monotonic_raw", MonotonicRaw, false},
		{"boottime", Boottime, false},
		{"process_cpu_time", ProcessCPU, false},
		{"thread_cpu_time", ThreadCPU, false},
		{"sundial", Realtime, true},
		{"", Realtime, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := Parse(k.String())
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", k.String(), err)
			continue
		}
		if parsed != k {
			t.Errorf("Parse(String(%v)) = %v", k, parsed)
		}
	}
}

func TestResolveInvalidFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	if got := Resolve(Kind(99), log); got != Realtime {
		t.Errorf("Resolve(99) = %v, want realtime", got)
	}
	if !strings.Contains(buf.String(), "invalid clock kind") {
		t.Errorf("expected a diagnostic, got %q", buf.String())
	}
}

func TestResolveValidIsIdentity(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	for _, k := range Kinds() {
		if got := Resolve(k, log); got != k {
			t.Errorf("Resolve(%v) = %v", k, got)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected diagnostics: %q", buf.String())
	}
}

func TestReadAllKinds(t *testing.T) {
	// Every kind must read without a hard failure: unsupported kinds fall
	// back to monotonic, so only a broken platform clock errors out.
	var buf bytes.Buffer
	log := testLogger(&buf)

	for _, k := range Kinds() {
		ts, err := Read(k, log)
		if err != nil {
			t.Errorf("Read(%v) failed: %v", k, err)
			continue
		}
		if ts.Nsec < 0 || ts.Nsec >= 1_000_000_000 {
			t.Errorf("Read(%v).Nsec = %d, out of range", k, ts.Nsec)
		}
	}
}

func TestReadInvalidKindFallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	if _, err := Read(Kind(42), log); err != nil {
		t.Fatalf("Read with invalid kind should fall back, got error: %v", err)
	}
	if !strings.Contains(buf.String(), "invalid clock kind") {
		t.Errorf("expected a diagnostic, got %q", buf.String())
	}
}

func TestMonotonicNeverDecreases(t *testing.T) {
	var buf bytes.Buffer
	log := testLogger(&buf)

	prev, err := Read(Monotonic, log)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	for i := 0; i < 100; i++ {
		cur, err := Read(Monotonic, log)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if cur.Sec < prev.Sec || (cur.Sec == prev.Sec && cur.Nsec < prev.Nsec) {
			t.Fatalf("monotonic clock went backwards: %v -> %v", prev, cur)
		}
		prev = cur
	}
}

func TestSupported(t *testing.T) {
	// Realtime and monotonic exist everywhere benchtick runs.
	if !Supported(Realtime) {
		t.Error("realtime should be supported")
	}
	if !Supported(Monotonic) {
		t.Error("monotonic should be supported")
	}
	if Supported(Kind(77)) {
		t.Error("invalid kind should not be supported")
	}
}
