// Package sysinfo captures a one-shot snapshot of host load so benchmark
// reports carry the context they were measured under.
package sysinfo

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot is a point-in-time view of host CPU and memory load.
type Snapshot struct {
	CPUPercent       float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryUsedBytes  uint64  `json:"memory_used_bytes" yaml:"memory_used_bytes"`
	MemoryTotalBytes uint64  `json:"memory_total_bytes" yaml:"memory_total_bytes"`
	NumCPU           int     `json:"num_cpu" yaml:"num_cpu"`
}

// Collect samples host CPU usage over a short window and reads current
// memory usage. Partial failures are best effort: whichever probe succeeds
// fills its fields, and only a total failure returns an error.
func Collect() (*Snapshot, error) {
	s := &Snapshot{NumCPU: runtime.NumCPU()}

	var cpuErr, memErr error
	if cpuPercent, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(cpuPercent) > 0 {
		s.CPUPercent = cpuPercent[0]
	} else {
		cpuErr = err
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		s.MemoryUsedBytes = memInfo.Used
		s.MemoryTotalBytes = memInfo.Total
	} else {
		memErr = err
	}

	if cpuErr != nil && memErr != nil {
		return nil, fmt.Errorf("failed to collect host stats: cpu: %v, mem: %v", cpuErr, memErr)
	}
	return s, nil
}

// String renders the snapshot as a single human-readable line.
func (s *Snapshot) String() string {
	return fmt.Sprintf("cpu: %.1f%% (%d cores), memory: %d/%d MB",
		s.CPUPercent, s.NumCPU,
		s.MemoryUsedBytes/(1024*1024), s.MemoryTotalBytes/(1024*1024))
}
