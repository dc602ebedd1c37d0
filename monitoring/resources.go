package monitoring

import (
	"os"

	"github.com/shirou/gopsutil/process"
)

// ResourceUsage reports this process's own CPU and memory consumption, the
// same two figures the teacher's Monitor exposes at /api/resource.
type ResourceUsage struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemoryRSS  uint64  `json:"memory_rss"`
}

// ResourceSampler samples the current process's resource usage via
// gopsutil, caching the *process.Process handle across calls since
// gopsutil's CPUPercent needs a previous sample to compare against.
type ResourceSampler struct {
	proc *process.Process
}

// NewResourceSampler creates a ResourceSampler for the current process.
func NewResourceSampler() *ResourceSampler {
	return &ResourceSampler{}
}

// Sample returns the current CPU and memory usage.
func (r *ResourceSampler) Sample() (ResourceUsage, error) {
	if r.proc == nil {
		p, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			return ResourceUsage{}, err
		}
		r.proc = p
	}

	cpuPercent, err := r.proc.CPUPercent()
	if err != nil {
		return ResourceUsage{}, err
	}

	mem, err := r.proc.MemoryInfo()
	if err != nil {
		return ResourceUsage{}, err
	}

	return ResourceUsage{
		CPUPercent: cpuPercent,
		MemoryRSS:  mem.RSS,
	}, nil
}
