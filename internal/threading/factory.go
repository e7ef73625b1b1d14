package threading

import (
	"raycaster/internal/threading/core"
	"raycaster/internal/threading/monitoring"
)

// Components holds the worker pool used for column work and the frame monitor.
type Components struct {
	Runner             core.Runner
	Pool               *core.WorkerPool // nil when running serially
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewComponents creates the threading components. With parallel false the
// pipeline runs on the caller's goroutine. workers <= 0 means one per CPU.
func NewComponents(parallel bool, workers int, targetFPS float64) *Components {
	monitor := monitoring.NewPerformanceMonitor()
	monitor.SetTargetFPS(targetFPS)

	tc := &Components{
		Runner:             core.Serial{},
		PerformanceMonitor: monitor,
	}
	if parallel {
		tc.Pool = core.NewWorkerPool(workers)
		tc.Pool.Start()
		tc.Runner = tc.Pool
	}
	return tc
}

// SyncWorkerMetrics copies the pool counters into the monitor.
func (tc *Components) SyncWorkerMetrics() {
	if tc.Pool == nil || tc.PerformanceMonitor == nil {
		return
	}
	tc.PerformanceMonitor.UpdateWorkerMetrics(tc.Pool.Stats())
}

// Shutdown gracefully shuts down all threading components
func (tc *Components) Shutdown() {
	if tc.Pool != nil {
		tc.Pool.Stop()
	}
}

// GetDetailedPerformanceStats returns detailed performance statistics
func (tc *Components) GetDetailedPerformanceStats() map[string]interface{} {
	if tc.PerformanceMonitor != nil {
		return tc.PerformanceMonitor.GetDetailedStats()
	}
	return nil
}

// CheckPerformanceAlerts returns any performance warnings
func (tc *Components) CheckPerformanceAlerts() []monitoring.PerformanceAlert {
	if tc.PerformanceMonitor != nil {
		return tc.PerformanceMonitor.CheckPerformanceAlerts()
	}
	return nil
}
