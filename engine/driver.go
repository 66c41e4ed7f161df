package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/glyphrain/parameter"
	"github.com/lixenwraith/glyphrain/status"
)

// State is the driver lifecycle state
type State int32

const (
	StateStopped State = iota
	StateRunning
	StateSuspended
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	default:
		return "stopped"
	}
}

// Driver issues repaint-aligned step callbacks at a capped rate and owns
// start/stop state. A panic inside one step is logged and swallowed so a
// single bad frame cannot halt the loop.
type Driver struct {
	interval time.Duration
	step     func(dt time.Duration)
	log      *zap.SugaredLogger

	mu       sync.Mutex
	state    atomic.Int32
	stopChan chan struct{}
	wg       sync.WaitGroup

	statFrames  *atomic.Int64
	statSkipped *atomic.Int64
	statPanics  *atomic.Int64
}

// NewDriver creates a stopped driver. fps caps the step rate; step is
// invoked with the elapsed time since the previous step.
func NewDriver(fps int, step func(dt time.Duration), log *zap.SugaredLogger, reg *status.Registry) *Driver {
	if fps < 1 {
		fps = parameter.FrameRateCap
	}
	return &Driver{
		interval:    time.Second / time.Duration(fps),
		step:        step,
		log:         log,
		statFrames:  reg.Ints.Get("driver.frames"),
		statSkipped: reg.Ints.Get("driver.skipped"),
		statPanics:  reg.Ints.Get("driver.panics"),
	}
}

// State returns the current lifecycle state
func (d *Driver) State() State {
	return State(d.state.Load())
}

// Start begins the frame loop; no-op if already running
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if State(d.state.Load()) == StateRunning {
		return
	}
	d.state.Store(int32(StateRunning))
	d.launchLocked()
}

// Stop halts the loop synchronously: no step fires after Stop returns.
// Idempotent.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.haltLocked()
	d.state.Store(int32(StateStopped))
}

// Suspend halts the loop while remembering that it should resume; no-op
// unless running
func (d *Driver) Suspend() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if State(d.state.Load()) != StateRunning {
		return
	}
	d.haltLocked()
	d.state.Store(int32(StateSuspended))
}

// Resume restarts a suspended loop; no-op unless suspended
func (d *Driver) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if State(d.state.Load()) != StateSuspended {
		return
	}
	d.state.Store(int32(StateRunning))
	d.launchLocked()
}

// launchLocked spawns the loop goroutine; caller holds d.mu
func (d *Driver) launchLocked() {
	d.stopChan = make(chan struct{})
	d.wg.Add(1)
	go d.loop(d.stopChan)
}

// haltLocked closes the loop and waits for it; caller holds d.mu. The
// loop goroutine never takes d.mu, so waiting under the lock is safe.
func (d *Driver) haltLocked() {
	if State(d.state.Load()) == StateStopped {
		return
	}
	if d.stopChan != nil {
		close(d.stopChan)
		d.stopChan = nil
	}
	d.wg.Wait()
}

func (d *Driver) loop(stop <-chan struct{}) {
	defer d.wg.Done()
	ticker := time.NewTicker(parameter.TickGranularity)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			if elapsed < d.interval {
				d.statSkipped.Add(1)
				continue
			}
			last = now
			d.safeStep(elapsed)
		}
	}
}

// safeStep invokes the step callback with panic containment
func (d *Driver) safeStep(dt time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			d.statPanics.Add(1)
			d.log.Errorw("frame step failed, continuing", "panic", r)
		}
	}()
	d.step(dt)
	d.statFrames.Add(1)
}
