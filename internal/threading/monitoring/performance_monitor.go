package monitoring

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sasha-s/go-deadlock"
)

// smoothing is the weight of the newest sample in the running averages.
const smoothing = 0.1

// PerformanceMonitor tracks frame, casting and projection timings.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Pipeline metrics
	raycastTime    atomic.Uint64
	projectionTime atomic.Uint64

	// Threading metrics
	activeWorkers atomic.Int32
	queuedJobs    atomic.Int32
	completedJobs atomic.Uint64

	// Statistics
	mutex             deadlock.RWMutex
	avgFrameTime      float64
	avgRaycastTime    float64
	avgProjectionTime float64
	peakFrameTime     uint64
	startTime         time.Time
	targetFPS         float64

	// Configuration
	enableDetailed atomic.Bool
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	pm := &PerformanceMonitor{startTime: time.Now()}
	pm.enableDetailed.Store(true)
	return pm
}

// SetTargetFPS sets the rate below which CheckPerformanceAlerts reports low_fps.
func (pm *PerformanceMonitor) SetTargetFPS(fps float64) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.targetFPS = fps
}

func ema(avg float64, sample uint64) float64 {
	if avg == 0 {
		return float64(sample)
	}
	return avg + smoothing*(float64(sample)-avg)
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.RecordFrame(time.Since(ft.startTime))
}

// RecordFrame stores the duration of one whole frame.
func (pm *PerformanceMonitor) RecordFrame(d time.Duration) {
	ns := uint64(d.Nanoseconds())
	pm.frameTime.Store(ns)
	pm.frameCount.Add(1)

	if pm.enableDetailed.Load() {
		pm.mutex.Lock()
		pm.avgFrameTime = ema(pm.avgFrameTime, ns)
		pm.peakFrameTime = max(pm.peakFrameTime, ns)
		pm.mutex.Unlock()
	}
}

// RaycastTimer helps measure raycasting performance
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRaycast begins raycast timing
func (pm *PerformanceMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndRaycast completes raycast timing
func (rt *RaycastTimer) EndRaycast() {
	ns := uint64(time.Since(rt.startTime).Nanoseconds())
	rt.monitor.raycastTime.Store(ns)

	if rt.monitor.enableDetailed.Load() {
		rt.monitor.mutex.Lock()
		rt.monitor.avgRaycastTime = ema(rt.monitor.avgRaycastTime, ns)
		rt.monitor.mutex.Unlock()
	}
}

// ProjectionTimer measures one projection pass.
type ProjectionTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartProjection begins projection timing
func (pm *PerformanceMonitor) StartProjection() *ProjectionTimer {
	return &ProjectionTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndProjection completes projection timing
func (pt *ProjectionTimer) EndProjection() {
	ns := uint64(time.Since(pt.startTime).Nanoseconds())
	pt.monitor.projectionTime.Store(ns)

	if pt.monitor.enableDetailed.Load() {
		pt.monitor.mutex.Lock()
		pt.monitor.avgProjectionTime = ema(pt.monitor.avgProjectionTime, ns)
		pt.monitor.mutex.Unlock()
	}
}

// UpdateWorkerMetrics updates threading metrics
func (pm *PerformanceMonitor) UpdateWorkerMetrics(active, queued int32, completed uint64) {
	pm.activeWorkers.Store(active)
	pm.queuedJobs.Store(queued)
	pm.completedJobs.Store(completed)
}

// FrameMetrics is a point-in-time summary for the HUD.
type FrameMetrics struct {
	FrameCount        uint64
	FramesPerSecond   float64
	FrameTime         time.Duration
	AvgFrameTime      time.Duration
	AvgRaycastTime    time.Duration
	AvgProjectionTime time.Duration
	CompletedJobs     uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	fps := 0.0
	if pm.avgFrameTime > 0 {
		fps = float64(time.Second) / pm.avgFrameTime
	}

	return FrameMetrics{
		FrameCount:        pm.frameCount.Load(),
		FramesPerSecond:   fps,
		FrameTime:         time.Duration(pm.frameTime.Load()),
		AvgFrameTime:      time.Duration(pm.avgFrameTime),
		AvgRaycastTime:    time.Duration(pm.avgRaycastTime),
		AvgProjectionTime: time.Duration(pm.avgProjectionTime),
		CompletedJobs:     pm.completedJobs.Load(),
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	fps := 0.0
	if pm.avgFrameTime > 0 {
		fps = float64(time.Second) / pm.avgFrameTime
	}

	return map[string]interface{}{
		"uptime_seconds":         time.Since(pm.startTime).Seconds(),
		"frame_count":            pm.frameCount.Load(),
		"avg_frame_time_ms":      pm.avgFrameTime / 1e6,
		"peak_frame_time_ms":     float64(pm.peakFrameTime) / 1e6,
		"avg_raycast_time_ms":    pm.avgRaycastTime / 1e6,
		"avg_projection_time_ms": pm.avgProjectionTime / 1e6,
		"current_fps":            fps,
		"target_fps":             pm.targetFPS,
		"active_workers":         pm.activeWorkers.Load(),
		"queued_jobs":            pm.queuedJobs.Load(),
		"completed_jobs":         pm.completedJobs.Load(),
		"memory_alloc_mb":        memStats.Alloc / 1024 / 1024,
		"gc_cycles":              memStats.NumGC,
		"cpu_cores":              runtime.NumCPU(),
		"goroutines":             runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	pm.mutex.RLock()
	avg, target := pm.avgFrameTime, pm.targetFPS
	pm.mutex.RUnlock()

	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	if avg > 0 && target > 0 {
		fps := float64(time.Second) / avg
		if fps < target*0.9 {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below target",
				Value:     fps,
				Threshold: target,
				Timestamp: now,
			})
		}
	}

	if queued := pm.queuedJobs.Load(); queued > 100 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "queue_backlog",
			Message:   "Worker queue has more than 100 pending jobs",
			Value:     float64(queued),
			Threshold: 100,
			Timestamp: now,
		})
	}

	return alerts
}

// EnableDetailedLogging enables/disables running averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.enableDetailed.Store(enabled)
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.projectionTime.Store(0)
	pm.activeWorkers.Store(0)
	pm.queuedJobs.Store(0)
	pm.completedJobs.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.avgProjectionTime = 0
	pm.peakFrameTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
