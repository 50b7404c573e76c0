package renderer

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostInfo describes the machine the renderer runs on
type HostInfo struct {
	CPUModel     string
	LogicalCores int
	TotalMemory  uint64 // bytes
	FreeMemory   uint64 // bytes available to new allocations
}

// DetectHost queries CPU and memory information. Fields that cannot be read
// are left at their zero value; LogicalCores falls back to runtime.NumCPU.
func DetectHost() (HostInfo, error) {
	info := HostInfo{LogicalCores: runtime.NumCPU()}

	if cores, err := cpu.Counts(true); err == nil && cores > 0 {
		info.LogicalCores = cores
	}

	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return info, err
	}
	info.TotalMemory = memInfo.Total
	info.FreeMemory = memInfo.Available

	return info, nil
}

// DefaultWorkers returns the number of render workers to use when none is
// configured: one per logical core
func DefaultWorkers() int {
	if cores, err := cpu.Counts(true); err == nil && cores > 0 {
		return cores
	}
	return runtime.NumCPU()
}

// FrameBytes estimates the memory held by a framebuffer of the given size
func FrameBytes(width, height int) uint64 {
	const bytesPerPixel = 3*8 + 4 // float64 accumulator plus RGBA output
	return uint64(width) * uint64(height) * bytesPerPixel
}
