package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks editor performance counters. All methods are safe
// for concurrent use.
type Metrics struct {
	// Input handling
	inputCount     atomic.Uint64
	inputUnhandled atomic.Uint64

	// Dispatch timing
	dispatchCount   atomic.Uint64
	dispatchTotalNs atomic.Int64
	dispatchMaxNs   atomic.Int64

	// Render timing
	renderCount   atomic.Uint64
	renderTotalNs atomic.Int64

	// Document and config activity
	saveCount   atomic.Uint64
	reloadCount atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordInput records one raw input event.
func (m *Metrics) RecordInput() {
	m.inputCount.Add(1)
}

// RecordUnhandled records an input event with no editing meaning.
func (m *Metrics) RecordUnhandled() {
	m.inputUnhandled.Add(1)
}

// RecordDispatch records one dispatched event and its duration.
func (m *Metrics) RecordDispatch(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.dispatchCount.Add(1)
	m.dispatchTotalNs.Add(ns)

	for {
		old := m.dispatchMaxNs.Load()
		if ns <= old {
			break
		}
		if m.dispatchMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordRender records one render pass and its duration.
func (m *Metrics) RecordRender(duration time.Duration) {
	m.renderCount.Add(1)
	m.renderTotalNs.Add(duration.Nanoseconds())
}

// RecordSave records a document save.
func (m *Metrics) RecordSave() {
	m.saveCount.Add(1)
}

// RecordConfigReload records a configuration reload.
func (m *Metrics) RecordConfigReload() {
	m.reloadCount.Add(1)
}

// Snapshot returns a point-in-time view of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	dispatchCount := m.dispatchCount.Load()
	renderCount := m.renderCount.Load()

	var avgDispatchNs int64
	if dispatchCount > 0 {
		avgDispatchNs = m.dispatchTotalNs.Load() / int64(dispatchCount)
	}

	var avgRenderNs int64
	if renderCount > 0 {
		avgRenderNs = m.renderTotalNs.Load() / int64(renderCount)
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		InputCount:     m.inputCount.Load(),
		InputUnhandled: m.inputUnhandled.Load(),
		DispatchCount:  dispatchCount,
		AvgDispatchNs:  avgDispatchNs,
		MaxDispatchNs:  m.dispatchMaxNs.Load(),
		RenderCount:    renderCount,
		AvgRenderNs:    avgRenderNs,
		SaveCount:      m.saveCount.Load(),
		ReloadCount:    m.reloadCount.Load(),
	}
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.inputCount.Store(0)
	m.inputUnhandled.Store(0)
	m.dispatchCount.Store(0)
	m.dispatchTotalNs.Store(0)
	m.dispatchMaxNs.Store(0)
	m.renderCount.Store(0)
	m.renderTotalNs.Store(0)
	m.saveCount.Store(0)
	m.reloadCount.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	InputCount     uint64
	InputUnhandled uint64
	DispatchCount  uint64
	AvgDispatchNs  int64
	MaxDispatchNs  int64
	RenderCount    uint64
	AvgRenderNs    int64
	SaveCount      uint64
	ReloadCount    uint64
}

// AvgDispatch returns the mean dispatch duration.
func (s MetricsSnapshot) AvgDispatch() time.Duration {
	return time.Duration(s.AvgDispatchNs)
}

// AvgRender returns the mean render duration.
func (s MetricsSnapshot) AvgRender() time.Duration {
	return time.Duration(s.AvgRenderNs)
}

// UnhandledRate returns the percentage of inputs with no editing
// meaning.
func (s MetricsSnapshot) UnhandledRate() float64 {
	if s.InputCount == 0 {
		return 0
	}
	return float64(s.InputUnhandled) / float64(s.InputCount) * 100
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Stop returns the elapsed time and resets the timer.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	t.start = time.Now()
	return elapsed
}
