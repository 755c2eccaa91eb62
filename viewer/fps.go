package viewer

import (
	"fmt"

	"github.com/achilleasa/pathview/types"
)

// Frame rate reporting interval in seconds.
const reportInterval = 1.0

// FrameRateMonitor counts frames and periodically produces a status line
// with the measured throughput.
type FrameRateMonitor struct {
	title    string
	clock    func() float64
	interval float64

	frames   int
	lastTime float64
}

// Create a new monitor. The clock returns the current time in seconds.
func NewFrameRateMonitor(title string, clock func() float64) *FrameRateMonitor {
	return &FrameRateMonitor{
		title:    title,
		clock:    clock,
		interval: reportInterval,
		lastTime: clock(),
	}
}

// Record a completed frame. When at least one reporting interval elapsed
// since the last report, Tick returns a status line with the throughput of
// the frames completed since then and, if pos is not nil, the camera
// position. The frame that crosses the interval is counted, so N frames
// completed before the crossing report (N+1)/elapsed.
func (m *FrameRateMonitor) Tick(pos *types.Vec3) (string, bool) {
	now := m.clock()
	elapsed := now - m.lastTime

	// Treat a clock going backwards as the start of a new sampling window
	if elapsed < 0 {
		m.lastTime = now
		m.frames = 0
		return "", false
	}

	m.frames++
	if elapsed < m.interval {
		return "", false
	}

	fps := float64(m.frames) / elapsed
	m.frames = 0
	m.lastTime = now

	if pos == nil {
		return fmt.Sprintf("%s  FPS:%4.2f", m.title, fps), true
	}
	return fmt.Sprintf("%s  FPS:%4.2f from:[%.2f, %.2f, %.2f]", m.title, fps, pos[0], pos[1], pos[2]), true
}
