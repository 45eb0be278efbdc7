package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.opentelemetry.io/otel"
)

var perfMeter = otel.Meter("interview-harvest/perf_stats")
var cpuGauge, _ = perfMeter.Float64Gauge("cpu_usage")
var hostMemoryGauge, _ = perfMeter.Float64Gauge("host_memory_used_percent")
var allocatedGauge, _ = perfMeter.Int64Gauge("allocated_mb")
var goroutineGauge, _ = perfMeter.Int64Gauge("goroutine_count")

const perfStatsInterval = 30 * time.Second

// PerfSample is one reading of process and host load. Browser collectors
// drive a separate chromium process, so host memory is tracked alongside
// the Go heap.
type PerfSample struct {
	CpuPercent        float64
	HostMemoryPercent float64
	AllocatedMb       int64
	Goroutines        int64
}

func samplePerfStats(ctx context.Context) PerfSample {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	sample := PerfSample{
		AllocatedMb: int64(memStats.Alloc / 1_000_000),
		Goroutines:  int64(runtime.NumGoroutine()),
	}

	cpuUsage, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err == nil && len(cpuUsage) > 0 {
		sample.CpuPercent = cpuUsage[0]
	} else if err != nil {
		slog.DebugContext(ctx, "failed to read cpu usage", "err", err)
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err == nil {
		sample.HostMemoryPercent = vm.UsedPercent
	} else {
		slog.DebugContext(ctx, "failed to read host memory", "err", err)
	}
	return sample
}

func (s PerfSample) record(ctx context.Context) {
	cpuGauge.Record(ctx, s.CpuPercent)
	hostMemoryGauge.Record(ctx, s.HostMemoryPercent)
	allocatedGauge.Record(ctx, s.AllocatedMb)
	goroutineGauge.Record(ctx, s.Goroutines)
	slog.DebugContext(
		ctx, "perf stats",
		"cpu", s.CpuPercent,
		"host_memory", s.HostMemoryPercent,
		"allocated_mb", s.AllocatedMb,
		"goroutines", s.Goroutines,
	)
}

// InstrumentPerfStats records load gauges every 30 seconds until ctx is
// done.
func InstrumentPerfStats(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(perfStatsInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				samplePerfStats(ctx).record(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}
