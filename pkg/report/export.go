package report

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/benchtick/benchtick/pkg/interval"
	"github.com/benchtick/benchtick/pkg/logging"
)

// Exporter serves registered intervals as Prometheus metrics. Elapsed values
// are always exported in seconds regardless of each interval's reporting
// unit; running intervals export their progress so far.
type Exporter struct {
	mu        sync.RWMutex
	startTime time.Time
	intervals []*interval.Interval
	log       *logging.Logger
}

// NewExporter creates an exporter with no registered intervals.
func NewExporter(log *logging.Logger) *Exporter {
	if log == nil {
		log = logging.NewLogger(logging.ERROR)
	}
	return &Exporter{
		startTime: time.Now(),
		log:       log,
	}
}

// Register adds an interval to the exported set. The exporter reads the
// interval on each scrape but does not own it; intervals may keep being
// started and stopped from other goroutines while scrapes are served.
func (e *Exporter) Register(iv *interval.Interval) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.intervals = append(e.intervals, iv)
}

// ServeHTTP serves Prometheus-compatible metrics at /metrics
func (e *Exporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	e.mu.RLock()
	intervals := make([]*interval.Interval, len(e.intervals))
	copy(intervals, e.intervals)
	e.mu.RUnlock()

	fmt.Fprintf(w, "# HELP benchtick_interval_elapsed_seconds Elapsed time per interval in seconds\n")
	fmt.Fprintf(w, "# TYPE benchtick_interval_elapsed_seconds gauge\n")
	for _, iv := range intervals {
		d, err := iv.Snapshot()
		if err != nil {
			// Unstarted intervals have nothing to report yet.
			fmt.Fprintf(w, "# interval %q skipped: %v\n", iv.Name(), err)
			continue
		}
		fmt.Fprintf(w, "benchtick_interval_elapsed_seconds{name=%q,clock=%q,running=\"%t\"} %.9f\n",
			iv.Name(), iv.Clock().String(), iv.Running(), d.Seconds())
	}

	fmt.Fprintf(w, "\n# HELP benchtick_exporter_uptime_seconds Exporter uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE benchtick_exporter_uptime_seconds gauge\n")
	fmt.Fprintf(w, "benchtick_exporter_uptime_seconds %.0f\n", time.Since(e.startTime).Seconds())

	// Append anything the host program registered with the default
	// client_golang registry.
	metricFamilies, err := promclient.DefaultGatherer.Gather()
	if err != nil {
		e.log.Error("failed to gather prometheus metrics", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	fmt.Fprintf(w, "\n")
	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range metricFamilies {
		if err := encoder.Encode(mf); err != nil {
			fmt.Fprintf(w, "# Error encoding metric %s: %v\n", mf.GetName(), err)
		}
	}
	w.Write(buf.Bytes())
}
