package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Pass names a timed stage of the frame.
type Pass int

const (
	PassFloor Pass = iota
	PassWalls
	PassSprites
	PassOverlay
	PassUpdate
	passCount
)

func (p Pass) String() string {
	switch p {
	case PassFloor:
		return "floor"
	case PassWalls:
		return "walls"
	case PassSprites:
		return "sprites"
	case PassOverlay:
		return "overlay"
	case PassUpdate:
		return "update"
	}
	return "unknown"
}

// PerformanceMonitor tracks frame and render pass timings. All counters are
// atomics so render workers and the game loop can report without locking.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame
	frameTotal atomic.Uint64 // nanoseconds, all frames

	passTime  [passCount]atomic.Uint64
	passTotal [passCount]atomic.Uint64

	spritesDrawn atomic.Uint64
	raysCast     atomic.Uint64

	mutex     sync.RWMutex
	startTime time.Time
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{startTime: time.Now()}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{monitor: pm, startTime: time.Now()}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ns := uint64(time.Since(ft.startTime).Nanoseconds())
	ft.monitor.frameTime.Store(ns)
	ft.monitor.frameTotal.Add(ns)
	ft.monitor.frameCount.Add(1)
}

// Profile runs fn and records its duration under the pass.
func (pm *PerformanceMonitor) Profile(pass Pass, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if pass >= 0 && pass < passCount {
		pm.passTime[pass].Store(uint64(d.Nanoseconds()))
		pm.passTotal[pass].Add(uint64(d.Nanoseconds()))
	}
	return d
}

// AddRays counts cast rays.
func (pm *PerformanceMonitor) AddRays(n int) {
	pm.raysCast.Add(uint64(n))
}

// AddSprites counts sprites that reached the screen.
func (pm *PerformanceMonitor) AddSprites(n int) {
	pm.spritesDrawn.Add(uint64(n))
}

// Snapshot is a point-in-time summary suitable for logging.
type Snapshot struct {
	Frames        uint64
	FramesPerSec  float64
	AvgFrameMs    float64
	LastPassMs    map[string]float64
	AvgPassMs     map[string]float64
	RaysCast      uint64
	SpritesDrawn  uint64
	MemoryAllocMB uint64
	Goroutines    int
	UptimeSeconds float64
}

// Snapshot returns current performance metrics
func (pm *PerformanceMonitor) Snapshot() Snapshot {
	pm.mutex.RLock()
	start := pm.startTime
	pm.mutex.RUnlock()

	frames := pm.frameCount.Load()
	s := Snapshot{
		Frames:        frames,
		LastPassMs:    make(map[string]float64, passCount),
		AvgPassMs:     make(map[string]float64, passCount),
		RaysCast:      pm.raysCast.Load(),
		SpritesDrawn:  pm.spritesDrawn.Load(),
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: time.Since(start).Seconds(),
	}

	if last := pm.frameTime.Load(); last > 0 {
		s.FramesPerSec = 1e9 / float64(last)
	}
	if frames > 0 {
		s.AvgFrameMs = float64(pm.frameTotal.Load()) / float64(frames) / 1e6
	}
	for p := Pass(0); p < passCount; p++ {
		s.LastPassMs[p.String()] = float64(pm.passTime[p].Load()) / 1e6
		if frames > 0 {
			s.AvgPassMs[p.String()] = float64(pm.passTotal[p].Load()) / float64(frames) / 1e6
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	s.MemoryAllocMB = memStats.Alloc / 1024 / 1024

	return s
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
}

// CheckPerformanceAlerts reports a frame rate below minFPS
func (pm *PerformanceMonitor) CheckPerformanceAlerts(minFPS float64) []PerformanceAlert {
	var alerts []PerformanceAlert
	frameTime := pm.frameTime.Load()
	if frameTime > 0 {
		fps := 1e9 / float64(frameTime)
		if fps < minFPS {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below target",
				Value:     fps,
				Threshold: minFPS,
			})
		}
	}
	return alerts
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.frameTotal.Store(0)
	for p := range pm.passTime {
		pm.passTime[p].Store(0)
		pm.passTotal[p].Store(0)
	}
	pm.raysCast.Store(0)
	pm.spritesDrawn.Store(0)

	pm.mutex.Lock()
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
