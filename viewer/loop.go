package viewer

import (
	"sync"

	"github.com/achilleasa/pathview/log"
	"github.com/achilleasa/pathview/types"
)

type State uint8

const (
	Uninitialized State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Loop drives a Hooks implementation from a Platform until the platform
// requests the window to close. All hooks run on the goroutine that calls
// Run.
type Loop struct {
	logger   log.Logger
	platform Platform
	hooks    Hooks
	monitor  *FrameRateMonitor

	state State

	// Last logged loop error; repeats are suppressed.
	lastErr string

	// Tasks posted by other goroutines.
	taskMutex   sync.Mutex
	tasks       []func()
	tasksClosed bool
}

// Create a new loop. The window title is used as the prefix of the frame
// rate status line.
func NewLoop(platform Platform, hooks Hooks, title string) *Loop {
	return &Loop{
		logger:   log.New("loop"),
		platform: platform,
		hooks:    hooks,
		monitor:  NewFrameRateMonitor(title, platform.Time),
	}
}

// Get the loop state.
func (l *Loop) State() State {
	return l.state
}

// Perform the initial resize and install the platform event handler.
// Calling Start on a running loop is a no-op.
func (l *Loop) Start() error {
	switch l.state {
	case Running:
		return nil
	case Stopped:
		return ErrLoopStopped
	}

	width, height := l.platform.DrawableSize()
	l.hooks.OnResize(width, height)
	l.platform.SetHandler(l.hooks)

	l.state = Running
	l.logger.Debugf("loop started with a %dx%d drawable", width, height)
	return nil
}

// Run the loop until the platform requests the window to close. A stopped
// loop cannot be restarted.
func (l *Loop) Run() error {
	if err := l.Start(); err != nil {
		return err
	}

	for l.Step() {
	}
	return nil
}

// Execute one loop iteration and report whether the loop is still running.
// When the platform requests the window to close the loop is stopped.
func (l *Loop) Step() bool {
	if l.state != Running {
		return false
	}

	// Poll
	l.platform.PollEvents()
	l.runTasks()
	if l.platform.ShouldClose() {
		l.Stop()
		return false
	}

	// Sync and render. The back buffer is only swapped in when a frame was
	// drawn into it.
	if err := l.hooks.OnRender(); err != nil {
		l.logError("render", err)
	} else if err = l.hooks.OnDraw(); err != nil {
		l.logError("draw", err)
	} else {
		l.lastErr = ""
		l.platform.SwapBuffers()
	}

	// Instrument
	var pos *types.Vec3
	if reporter, ok := l.hooks.(PositionReporter); ok {
		p := reporter.CameraPosition()
		pos = &p
	}
	if status, ok := l.monitor.Tick(pos); ok {
		l.platform.SetTitle(status)
	}

	return true
}

// Stop the loop and release display and window resources.
func (l *Loop) Stop() {
	if l.state == Stopped {
		return
	}

	if l.state == Running {
		l.hooks.OnClose()
	}
	l.platform.Close()
	l.state = Stopped

	l.taskMutex.Lock()
	l.tasks = nil
	l.tasksClosed = true
	l.taskMutex.Unlock()
	l.logger.Debug("loop stopped")
}

// Queue fn for execution on the loop goroutine during the next poll. Post
// is safe to call from any goroutine. Tasks posted to a stopped loop are
// discarded.
func (l *Loop) Post(fn func()) {
	l.taskMutex.Lock()
	defer l.taskMutex.Unlock()
	if l.tasksClosed {
		return
	}
	l.tasks = append(l.tasks, fn)
}

func (l *Loop) runTasks() {
	l.taskMutex.Lock()
	tasks := l.tasks
	l.tasks = nil
	l.taskMutex.Unlock()

	for _, task := range tasks {
		task()
	}
}

func (l *Loop) logError(stage string, err error) {
	if msg := err.Error(); msg != l.lastErr {
		l.lastErr = msg
		l.logger.Errorf("%s failed: %s", stage, msg)
	}
}
