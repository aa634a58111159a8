package monitor

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"lumenflow/internal/transcoder"
	"lumenflow/pkg/models"
)

// SystemMonitor reports what this machine and its engine build can do.
type SystemMonitor struct {
	engine    *transcoder.Engine
	cachedCap models.EngineCapabilities
	once      sync.Once
}

func NewSystemMonitor(engine *transcoder.Engine) *SystemMonitor {
	return &SystemMonitor{engine: engine}
}

// GetCapabilities probes the engine once; the build doesn't change at runtime.
func (m *SystemMonitor) GetCapabilities(ctx context.Context) models.EngineCapabilities {
	m.once.Do(func() {
		m.cachedCap = m.engine.ProbeCapabilities(ctx)
	})
	return m.cachedCap
}

// Missing lists the encoders and filters a stage needs but the engine lacks.
func (m *SystemMonitor) Missing(ctx context.Context) []string {
	caps := m.GetCapabilities(ctx)
	var missing []string
	for _, name := range transcoder.ProbedEncoders {
		if !caps.Encoders[name] {
			missing = append(missing, "encoder "+name)
		}
	}
	for _, name := range transcoder.ProbedFilters {
		if !caps.Filters[name] {
			missing = append(missing, "filter "+name)
		}
	}
	return missing
}

// GetStaticSpecs gathers CPU and memory information for diagnostics.
func GetStaticSpecs(ctx context.Context) (models.StaticHardware, error) {
	specs := models.StaticHardware{
		CPUModel:     "Unknown CPU",
		TotalThreads: runtime.NumCPU(),
	}

	// 1. CPU model and logical thread count
	info, err := cpu.InfoWithContext(ctx)
	if err == nil && len(info) > 0 && info[0].ModelName != "" {
		specs.CPUModel = info[0].ModelName
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		specs.TotalThreads = n
	}

	// 2. Available memory
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return specs, fmt.Errorf("failed to get mem stats: %w", err)
	}
	specs.RAMFreeBytes = v.Available

	return specs, nil
}
