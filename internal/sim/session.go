package sim

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

const defaultTitle = "LedSim"

// Phase is the lifecycle of a session's render goroutine.
type Phase int32

const (
	Uninitialized Phase = iota
	Running
	Terminating
	Finished
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("Phase(%d)", int32(p))
}

// Options describe the simulated panel.
type Options struct {
	Title       string
	LedCount    int
	Rows        int
	Cols        int
	ButtonCount int
	// Layout defaults to DefaultLayout when left zero.
	Layout Layout
	// Palette defaults to DefaultPalette when left zero.
	Palette Palette
}

// Session is one running simulation. It is created by Start and lives until
// the window is closed or Stop is called.
type Session struct {
	title    string
	geometry Geometry
	store    *store
	buttons  *buttons
	renderer Renderer
	onFinish func()
	log      *log.Entry

	phase    atomic.Int32
	stop     chan struct{}
	stopOnce sync.Once
}

func contract(format string, args ...any) {
	log.Panicf("sim: "+format, args...)
}

func newSession(opts Options, r Renderer, onFinish func()) *Session {
	if onFinish == nil {
		contract("finish callback is required")
	}
	if r == nil {
		contract("renderer is required")
	}
	if opts.Rows <= 0 || opts.Cols <= 0 {
		contract("grid must have at least one row and column, got %dx%d", opts.Rows, opts.Cols)
	}
	if opts.LedCount < 0 || opts.ButtonCount < 0 {
		contract("negative led (%d) or button (%d) count", opts.LedCount, opts.ButtonCount)
	}
	if opts.LedCount > opts.Rows*opts.Cols {
		contract("%d leds do not fit in a %dx%d grid", opts.LedCount, opts.Rows, opts.Cols)
	}

	layout := opts.Layout
	if layout == (Layout{}) {
		layout = DefaultLayout()
	}
	palette := opts.Palette
	if palette == (Palette{}) {
		palette = DefaultPalette()
	}
	title := opts.Title
	if title == "" {
		title = defaultTitle
	}

	g := layout.Geometry(opts.LedCount, opts.Rows, opts.Cols, opts.ButtonCount)

	return &Session{
		title:    title,
		geometry: g,
		store:    newStore(opts.LedCount, opts.ButtonCount, palette),
		buttons:  newButtons(g.Buttons),
		renderer: r,
		onFinish: onFinish,
		stop:     make(chan struct{}),
		log: log.WithFields(log.Fields{
			"leds":    opts.LedCount,
			"buttons": opts.ButtonCount,
		}),
	}
}

// Start validates opts, allocates the panel and spawns the render goroutine.
// It returns immediately. Programmer errors (missing finish callback or
// renderer, more LEDs than grid cells) panic before anything is spawned.
//
// onFinish is called exactly once, on the render goroutine, after the
// renderer has been closed.
func Start(opts Options, r Renderer, onFinish func()) *Session {
	s := newSession(opts, r, onFinish)
	s.log.Infof("Starting %dx%d simulation", opts.Rows, opts.Cols)
	go s.run()
	return s
}

// SetLed sets the color of the LED at index. It is visible from the next
// frame on.
func (s *Session) SetLed(index int, c Color) {
	if index < 0 || index >= len(s.store.leds) {
		contract("led index %d out of range [0, %d)", index, len(s.store.leds))
	}
	s.store.setLed(index, c)
}

// RegisterButtonCallback sets the callback for the button at index,
// replacing any earlier one. userData is handed back to the callback
// untouched. A nil callback removes the registration.
func (s *Session) RegisterButtonCallback(index int, cb ButtonCallback, userData any) {
	if index < 0 || index >= len(s.store.hooks) {
		contract("button index %d out of range [0, %d)", index, len(s.store.hooks))
	}
	s.store.setHook(index, hook{callback: cb, userData: userData})
}

// SetPalette replaces the colors used for drawing from the next frame on.
func (s *Session) SetPalette(p Palette) {
	s.store.setPalette(p)
}

// Stop asks the render goroutine to shut down at the start of its next
// iteration. It does not wait; completion is signalled through the finish
// callback. Calling Stop more than once, or after the session finished, is a
// no-op.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.log.Debug("Stop requested")
		close(s.stop)
	})
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return Phase(s.phase.Load())
}

// Geometry returns the screen layout of the session.
func (s *Session) Geometry() Geometry {
	g := s.geometry
	g.Leds = append([]Point(nil), s.geometry.Leds...)
	g.Buttons = append([]Rect(nil), s.geometry.Buttons...)
	return g
}

func (s *Session) setPhase(p Phase) {
	s.phase.Store(int32(p))
}

func (s *Session) run() {
	// Windowing backends usually require all calls on one OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	g := s.geometry
	if err := s.renderer.Open(s.title, g.Width, g.Height); err != nil {
		s.log.WithError(err).Fatal("Unable to open the renderer")
		return
	}
	s.log.Debugf("Window opened (%dx%d)", g.Width, g.Height)
	s.setPhase(Running)

	f := newFrame(len(g.Leds), len(g.Buttons))
	for s.Phase() == Running {
		s.step(&f)
	}

	s.finish()
}

// step runs a single iteration of the render loop.
func (s *Session) step(f *Frame) {
	select {
	case <-s.stop:
		s.log.Info("Stopping simulation")
		s.setPhase(Terminating)
		return
	default:
	}

	if e, ok := s.renderer.PollEvent(); ok {
		if e.Kind == Quit {
			s.log.Info("Window closed")
			s.setPhase(Terminating)
			return
		}
		s.buttons.handle(e, s.fire)
	}

	s.store.snapshot(f)
	copy(f.Buttons, s.buttons.states)

	s.renderer.Clear(f.Palette.Background)
	Draw(s.renderer, s.geometry, *f)

	if err := s.renderer.Present(); err != nil {
		s.log.WithError(err).Error("Unable to present frame, terminating")
		s.setPhase(Terminating)
	}
}

func (s *Session) fire(index int, flag ButtonFlag) {
	s.log.Debugf("Button %d %v", index, flag)
	h := s.store.hook(index)
	if h.callback == nil {
		return
	}
	h.callback(flag, h.userData)
}

func (s *Session) finish() {
	if err := s.renderer.Close(); err != nil {
		s.log.WithError(err).Warn("Unable to close the renderer")
	}
	s.setPhase(Finished)
	s.log.Info("Simulation finished")
	s.onFinish()
}
