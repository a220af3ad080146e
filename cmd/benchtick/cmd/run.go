package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/benchtick/benchtick/internal/sysinfo"
	"github.com/benchtick/benchtick/pkg/clock"
	"github.com/benchtick/benchtick/pkg/interval"
	"github.com/benchtick/benchtick/pkg/logging"
	"github.com/benchtick/benchtick/pkg/report"
)

var (
	intervalName  string
	measureCPU    bool
	withStats     bool
	csvComment    string
	metricsListen string
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Run a command and report its elapsed time",
	Long: `Run spawns a command, brackets it with a timing interval on the
configured clock, and prints the elapsed time when it exits.

With --cpu a second interval on the process CPU-time clock measures how much
CPU this process tree consumed while waiting, next to the wall-clock total.

Example:
  benchtick run -- gzip -9 big.log
  benchtick run --clock monotonic_raw --unit ms -- ./bench.sh
  benchtick run --output csv --csv-comment '#' -- sleep 2
  benchtick run --metrics-listen :9090 -- ./long-benchmark.sh`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWorkload,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&intervalName, "name", "total", "name of the timing interval")
	runCmd.Flags().BoolVar(&measureCPU, "cpu", false, "also measure process CPU time")
	runCmd.Flags().BoolVar(&withStats, "stats", false, "append a host CPU/memory snapshot to the report")
	runCmd.Flags().StringVar(&csvComment, "csv-comment", "#", "comment marker for the CSV header line")
	runCmd.Flags().StringVar(&metricsListen, "metrics-listen", "", "serve live Prometheus metrics on this address while the command runs")
}

func runWorkload(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg := interval.Config{
		Clock:  resolveClock(log),
		Unit:   resolveUnit(log),
		Logger: log,
	}

	intervals := []*interval.Interval{interval.New(intervalName, cfg)}
	if measureCPU {
		cpuCfg := cfg
		cpuCfg.Clock = clock.ProcessCPU
		intervals = append(intervals, interval.New(intervalName+"_cpu", cpuCfg))
	}

	// Live metrics for long benchmarks.
	if metricsListen != "" {
		exporter := report.NewExporter(log)
		for _, iv := range intervals {
			exporter.Register(iv)
		}
		go serveMetrics(metricsListen, exporter, log)
	}

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[benchtick] received signal, stopping workload...")
		cancel()
	}()

	child := exec.CommandContext(ctx, args[0], args[1:]...)
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	// Own process group so a signal aimed at benchtick does not hit the
	// workload twice.
	child.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	for _, iv := range intervals {
		if err := iv.Start(); err != nil {
			return err
		}
	}

	runErr := child.Run()

	// Stop in reverse so the wall interval brackets the CPU one.
	for i := len(intervals) - 1; i >= 0; i-- {
		if err := intervals[i].Stop(); err != nil {
			return err
		}
	}

	exitCode := 0
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return fmt.Errorf("failed to run %s: %w", args[0], runErr)
		}
	}

	var stats *sysinfo.Snapshot
	if withStats {
		var err error
		stats, err = sysinfo.Collect()
		if err != nil {
			log.Error("host stats unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if err := printReport(os.Stdout, os.Stderr, args, exitCode, intervals, stats); err != nil {
		return err
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// runReport is the JSON shape of a run result.
type runReport struct {
	Command  []string          `json:"command"`
	ExitCode int               `json:"exit_code"`
	Timings  []report.Entry    `json:"timings"`
	Stats    *sysinfo.Snapshot `json:"stats,omitempty"`
}

func printReport(w, errOut io.Writer, command []string, exitCode int, intervals []*interval.Interval, stats *sysinfo.Snapshot) error {
	switch outputFormat {
	case "json":
		entries, err := report.Entries(intervals)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runReport{
			Command:  command,
			ExitCode: exitCode,
			Timings:  entries,
			Stats:    stats,
		})
	case "csv":
		out, err := report.CSV(csvComment, intervals)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
	case "table":
		out, err := report.Table(intervals)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
	case "yaml":
		out, err := report.YAML(intervals)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
	default:
		out, err := report.Human(intervals)
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
	}

	if stats != nil {
		// The CSV and YAML bodies must stay parseable, so the host line
		// goes to stderr for those formats.
		switch outputFormat {
		case "csv", "yaml":
			fmt.Fprintf(errOut, "host: %s\n", stats)
		default:
			fmt.Fprintf(w, "host: %s\n", stats)
		}
	}
	return nil
}

// serveMetrics exposes the exporter for the lifetime of the run. The server
// dies with the process; a benchmark CLI has no graceful shutdown story.
func serveMetrics(addr string, exporter *report.Exporter, log *logging.Logger) {
	router := mux.NewRouter()
	router.Handle("/metrics", exporter)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Debug("metrics listener starting", map[string]interface{}{"addr": addr})
	if err := srv.ListenAndServe(); err != nil {
		log.Error("metrics listener failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
