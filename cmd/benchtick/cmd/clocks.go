package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/benchtick/benchtick/pkg/clock"
)

// clocksCmd represents the clocks command
var clocksCmd = &cobra.Command{
	Use:   "clocks",
	Short: "List clock kinds and their availability",
	Long: `Probe every logical clock kind on this machine and show whether it can
be read and at what resolution. Availability is a runtime property: boottime
and the CPU-time clocks depend on the kernel and platform.`,
	RunE: runClocks,
}

func init() {
	rootCmd.AddCommand(clocksCmd)
}

type clockInfo struct {
	Kind          string `json:"kind"`
	Supported     bool   `json:"supported"`
	ResolutionNs  int64  `json:"resolution_ns,omitempty"`
	ResolutionErr string `json:"resolution_error,omitempty"`
}

func runClocks(cmd *cobra.Command, args []string) error {
	log := newLogger()

	infos := make([]clockInfo, 0, len(clock.Kinds()))
	for _, k := range clock.Kinds() {
		info := clockInfo{
			Kind:      k.String(),
			Supported: clock.Supported(k),
		}
		if res, err := clock.Resolution(k, log); err != nil {
			info.ResolutionErr = err.Error()
		} else {
			info.ResolutionNs = res.Sec*1_000_000_000 + res.Nsec
		}
		infos = append(infos, info)
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Kind", "Supported", "Resolution (ns)")
	for _, info := range infos {
		supported := "no"
		if info.Supported {
			supported = "yes"
		}
		resolution := "n/a"
		if info.ResolutionErr == "" {
			resolution = fmt.Sprintf("%d", info.ResolutionNs)
		}
		table.Append(info.Kind, supported, resolution)
	}
	table.Render()
	return nil
}
