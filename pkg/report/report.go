// Package report renders ordered sets of intervals as text: one-line human
// output, two-line CSV, an aligned table, or YAML. All renderers return the
// formatted string and leave I/O to the caller; none of them mutates the
// intervals they are given.
package report

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/benchtick/benchtick/pkg/interval"
)

// Entry is one rendered interval. YAML output marshals these directly.
type Entry struct {
	Name    string  `yaml:"name" json:"name"`
	Elapsed float64 `yaml:"elapsed" json:"elapsed"`
	Unit    string  `yaml:"unit" json:"unit"`
	Clock   string  `yaml:"clock" json:"clock"`
}

// Entries converts intervals into renderable rows, each in its own
// configured unit. An interval missing a timestamp fails the whole batch
// with its lifecycle error; callers wanting partial output filter first.
func Entries(intervals []*interval.Interval) ([]Entry, error) {
	entries := make([]Entry, 0, len(intervals))
	for _, iv := range intervals {
		v, err := iv.Elapsed()
		if err != nil {
			return nil, fmt.Errorf("interval %q: %w", iv.Name(), err)
		}
		entries = append(entries, Entry{
			Name:    iv.Name(),
			Elapsed: v,
			Unit:    iv.Unit().Label(),
			Clock:   iv.Clock().String(),
		})
	}
	return entries, nil
}

// Human renders one line per interval: "<name>: <value> <unit>" with three
// decimal places. Anonymous intervals print as "(anonymous)".
func Human(intervals []*interval.Interval) (string, error) {
	entries, err := Entries(intervals)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "(anonymous)"
		}
		fmt.Fprintf(&b, "%s: %.3f %s\n", name, e.Elapsed, e.Unit)
	}
	return b.String(), nil
}

// CSV renders a two-line record: a header of "<name> (<unit>)" columns
// prefixed by the comment marker, then the matching values with three
// decimal places. Columns are comma-space separated, each line ends with a
// newline.
func CSV(comment string, intervals []*interval.Interval) (string, error) {
	entries, err := Entries(intervals)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(comment)
	b.WriteString(" ")
	for i, e := range entries {
		fmt.Fprintf(&b, "%s (%s)", e.Name, e.Unit)
		if i < len(entries)-1 {
			b.WriteString(", ")
		}
	}
	b.WriteString("\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%.3f", e.Elapsed)
		if i < len(entries)-1 {
			b.WriteString(", ")
		}
	}
	b.WriteString("\n")
	return b.String(), nil
}

// Table renders an aligned table with name, elapsed value, unit and clock
// columns.
func Table(intervals []*interval.Interval) (string, error) {
	entries, err := Entries(intervals)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.Header("Name", "Elapsed", "Unit", "Clock")
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "(anonymous)"
		}
		table.Append(name, fmt.Sprintf("%.3f", e.Elapsed), e.Unit, e.Clock)
	}
	table.Render()
	return b.String(), nil
}

// YAML renders the intervals as a YAML sequence of entries.
func YAML(intervals []*interval.Interval) (string, error) {
	entries, err := Entries(intervals)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data), nil
}
