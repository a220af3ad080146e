package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/benchtick/benchtick/internal/sysinfo"
	"github.com/benchtick/benchtick/pkg/interval"
	"github.com/benchtick/benchtick/pkg/report"
	"github.com/benchtick/benchtick/pkg/timespec"
	"github.com/benchtick/benchtick/pkg/units"
)

func spanInterval(name string, u units.Unit, start, stop timespec.Timestamp) *interval.Interval {
	iv := interval.New(name, interval.Config{Unit: u})
	iv.SetSpan(start, stop)
	return iv
}

func withOutputFormat(t *testing.T, format string) {
	t.Helper()
	prev := outputFormat
	outputFormat = format
	t.Cleanup(func() { outputFormat = prev })
}

func TestPrintReportStatsPlacement(t *testing.T) {
	intervals := []*interval.Interval{
		spanInterval("total", units.Seconds,
			timespec.Timestamp{Sec: 10}, timespec.Timestamp{Sec: 11}),
	}
	stats := &sysinfo.Snapshot{CPUPercent: 12.5, NumCPU: 8}

	tests := []struct {
		format     string
		wantStdout bool
	}{
		{"human", true},
		{"table", true},
		{"csv", false},
		{"yaml", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			withOutputFormat(t, tt.format)

			var out, errOut bytes.Buffer
			if err := printReport(&out, &errOut, []string{"true"}, 0, intervals, stats); err != nil {
				t.Fatalf("printReport failed: %v", err)
			}
			if got := strings.Contains(out.String(), "host:"); got != tt.wantStdout {
				t.Errorf("host line on stdout = %v, want %v\nstdout:\n%s",
					got, tt.wantStdout, out.String())
			}
			if !tt.wantStdout && !strings.Contains(errOut.String(), "host:") {
				t.Errorf("host line missing from stderr:\n%s", errOut.String())
			}
		})
	}
}

func TestPrintReportCSVStaysParseable(t *testing.T) {
	withOutputFormat(t, "csv")

	intervals := []*interval.Interval{
		spanInterval("Test1", units.Seconds,
			timespec.Timestamp{Sec: 10}, timespec.Timestamp{Sec: 11}),
		spanInterval("Test2", units.Milliseconds,
			timespec.Timestamp{Sec: 10}, timespec.Timestamp{Sec: 11, Nsec: 500000000}),
	}
	stats := &sysinfo.Snapshot{NumCPU: 4}

	var out, errOut bytes.Buffer
	if err := printReport(&out, &errOut, []string{"true"}, 0, intervals, stats); err != nil {
		t.Fatalf("printReport failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("csv output has %d lines, want 2:\n%s", len(lines), out.String())
	}
	if lines[1] != "1.000, 1500.000" {
		t.Errorf("csv values = %q", lines[1])
	}
}

func TestPrintReportYAMLStaysParseable(t *testing.T) {
	withOutputFormat(t, "yaml")

	intervals := []*interval.Interval{
		spanInterval("total", units.Seconds,
			timespec.Timestamp{Sec: 10}, timespec.Timestamp{Sec: 12}),
	}
	stats := &sysinfo.Snapshot{NumCPU: 4}

	var out, errOut bytes.Buffer
	if err := printReport(&out, &errOut, []string{"true"}, 0, intervals, stats); err != nil {
		t.Fatalf("printReport failed: %v", err)
	}

	var entries []report.Entry
	if err := yaml.Unmarshal(out.Bytes(), &entries); err != nil {
		t.Fatalf("yaml output does not parse: %v\n%s", err, out.String())
	}
	if len(entries) != 1 || entries[0].Name != "total" || entries[0].Elapsed != 2.0 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestPrintReportJSONEmbedsStats(t *testing.T) {
	withOutputFormat(t, "json")

	intervals := []*interval.Interval{
		spanInterval("total", units.Seconds,
			timespec.Timestamp{Sec: 10}, timespec.Timestamp{Sec: 11}),
	}
	stats := &sysinfo.Snapshot{NumCPU: 4}

	var out, errOut bytes.Buffer
	if err := printReport(&out, &errOut, []string{"sleep", "1"}, 0, intervals, stats); err != nil {
		t.Fatalf("printReport failed: %v", err)
	}

	var got runReport
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("json output does not parse: %v\n%s", err, out.String())
	}
	if got.Stats == nil || got.Stats.NumCPU != 4 {
		t.Errorf("stats not embedded: %+v", got.Stats)
	}
	if errOut.Len() != 0 {
		t.Errorf("json run wrote to stderr: %q", errOut.String())
	}
}
