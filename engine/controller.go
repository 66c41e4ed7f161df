package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/glyphrain/config"
	"github.com/lixenwraith/glyphrain/render"
	"github.com/lixenwraith/glyphrain/status"
)

// ErrNoSurface is returned when the controller is constructed without a
// target screen; the caller logs it and leaves the animation inert.
var ErrNoSurface = errors.New("target surface missing")

// Controller wires the frame driver and animators to a terminal screen:
// it polls environment events (pointer, resize, focus), debounces resize
// bursts, suspends the driver while the terminal is unfocused, and
// composites animator surfaces into one frame per step.
type Controller struct {
	screen tcell.Screen
	driver *Driver
	hub    *Hub
	clock  *Clock
	log    *zap.SugaredLogger

	animators []Animator
	compose   *render.Buffer

	resizeDebounce time.Duration
	resizeMu       sync.Mutex
	resizeTimer    *time.Timer
	pendingW       int
	pendingH       int

	// Environment events are funneled into the frame step so animator
	// state is only ever mutated from the driver goroutine
	events chan Event

	pollOnce    sync.Once
	pollDone    chan struct{}
	destroyOnce sync.Once
	done        chan struct{}
	doneOnce    sync.Once

	width  int
	height int

	statResizes  *atomic.Int64
	statSuspends *atomic.Int64
}

// NewController creates a controller over the given screen. The screen
// must already be initialized; mouse motion and focus reporting are
// enabled here.
func NewController(screen tcell.Screen, cfg config.Engine, log *zap.SugaredLogger, reg *status.Registry) (*Controller, error) {
	if screen == nil {
		return nil, ErrNoSurface
	}
	width, height := screen.Size()
	c := &Controller{
		screen:         screen,
		hub:            NewHub(),
		clock:          NewClock(),
		log:            log,
		compose:        render.NewBuffer(width, height),
		resizeDebounce: cfg.ResizeDebounce(),
		events:         make(chan Event, 256),
		pollDone:       make(chan struct{}),
		done:           make(chan struct{}),
		width:          width,
		height:         height,
	}
	c.driver = NewDriver(cfg.FPS, c.step, log, reg)
	c.statResizes = reg.Ints.Get("controller.resizes")
	c.statSuspends = reg.Ints.Get("controller.suspends")

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	return c, nil
}

// Hub exposes the event hub for subscription by engines and the host
func (c *Controller) Hub() *Hub { return c.hub }

// Clock exposes the pause-aware clock
func (c *Controller) Clock() *Clock { return c.clock }

// State returns the driver lifecycle state
func (c *Controller) State() State { return c.driver.State() }

// Done is closed when the user requests exit (Esc / Ctrl+C)
func (c *Controller) Done() <-chan struct{} { return c.done }

// Attach registers an animator and lays it out at the current size.
// Attach before Start; animators are not synchronized against a running
// driver.
func (c *Controller) Attach(a Animator) {
	a.Layout(c.width, c.height)
	c.animators = append(c.animators, a)
}

// Start begins the frame loop and event polling; idempotent
func (c *Controller) Start() {
	c.driver.Start()
	c.pollOnce.Do(func() {
		go c.pollLoop()
	})
}

// Stop halts the frame loop; idempotent, event polling continues so a
// later Start can resume
func (c *Controller) Stop() {
	c.driver.Stop()
}

// Destroy stops the driver, removes every registered listener, and
// finalizes the screen. No callbacks fire after Destroy returns.
func (c *Controller) Destroy() {
	c.destroyOnce.Do(func() {
		c.resizeMu.Lock()
		if c.resizeTimer != nil {
			c.resizeTimer.Stop()
			c.resizeTimer = nil
		}
		c.resizeMu.Unlock()

		c.driver.Stop()
		c.hub.Destroy()
		c.animators = nil

		// Fini unblocks PollEvent with a nil event, ending the poll loop
		c.screen.Fini()
		<-c.pollDone
		c.doneOnce.Do(func() { close(c.done) })
	})
}

// pollLoop translates terminal events into hub events until the screen is
// finalized
func (c *Controller) pollLoop() {
	defer close(c.pollDone)
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				c.doneOnce.Do(func() { close(c.done) })
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			c.post(Event{Kind: EventPointerMove, X: x, Y: y, When: ev.When()})
		case *tcell.EventResize:
			w, h := ev.Size()
			c.scheduleResize(w, h)
		case *tcell.EventFocus:
			c.handleVisibility(ev.Focused)
		}
	}
}

// post enqueues an event for the next frame step; events are dropped
// rather than blocking the poll loop when the queue is full
func (c *Controller) post(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}

// scheduleResize coalesces resize bursts into one re-layout after a quiet
// period
func (c *Controller) scheduleResize(w, h int) {
	c.resizeMu.Lock()
	defer c.resizeMu.Unlock()
	c.pendingW, c.pendingH = w, h
	if c.resizeTimer != nil {
		c.resizeTimer.Stop()
	}
	c.resizeTimer = time.AfterFunc(c.resizeDebounce, func() {
		c.resizeMu.Lock()
		w, h := c.pendingW, c.pendingH
		c.resizeMu.Unlock()
		c.post(Event{Kind: EventResize, Width: w, Height: h, When: time.Now()})
	})
}

// handleVisibility suspends the driver while the terminal is hidden or
// unfocused, preventing wasted CPU, and resumes it on return
func (c *Controller) handleVisibility(visible bool) {
	if visible {
		c.clock.Resume()
		c.driver.Resume()
	} else {
		c.statSuspends.Add(1)
		c.clock.Pause()
		c.driver.Suspend()
	}
	c.hub.Dispatch(Event{Kind: EventVisibility, Visible: visible, When: time.Now()})
}

// step runs one frame: drain queued environment events, update and draw
// every animator, composite, flush
func (c *Controller) step(dt time.Duration) {
	c.drainEvents()
	for _, a := range c.animators {
		a.Update(dt)
	}
	for _, a := range c.animators {
		a.Draw()
	}
	c.compose.Clear()
	for _, a := range c.animators {
		a.Surface().CompositeTo(c.compose)
	}
	c.flush()
}

func (c *Controller) drainEvents() {
	for {
		select {
		case ev := <-c.events:
			if ev.Kind == EventResize {
				c.applyResize(ev.Width, ev.Height)
			}
			c.hub.Dispatch(ev)
		default:
			return
		}
	}
}

// applyResize re-derives surface dimensions; animators reposition their
// live elements rather than resetting
func (c *Controller) applyResize(w, h int) {
	if w == c.width && h == c.height {
		return
	}
	c.statResizes.Add(1)
	c.width, c.height = w, h
	c.compose.Resize(w, h)
	for _, a := range c.animators {
		a.Layout(w, h)
	}
	c.screen.Sync()
}

// flush writes the composed frame to the terminal
func (c *Controller) flush() {
	for y := 0; y < c.compose.Height(); y++ {
		for x := 0; x < c.compose.Width(); x++ {
			cell, _ := c.compose.At(x, y)
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(cell.Fg.R), int32(cell.Fg.G), int32(cell.Fg.B))).
				Background(tcell.NewRGBColor(int32(cell.Bg.R), int32(cell.Bg.G), int32(cell.Bg.B)))
			c.screen.SetContent(x, y, r, nil, style)
		}
	}
	c.screen.Show()
}
