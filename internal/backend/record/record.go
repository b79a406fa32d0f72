// Package record provides an in-memory renderer that keeps the draw calls of
// the last presented frame and replays injected input events. It stands in
// for a real window in tests and headless runs.
package record

import (
	"errors"
	"sync"
	"time"

	"github.com/callebjorkell/ledsim/internal/sim"
	log "github.com/sirupsen/logrus"
)

// ErrNotOpen is returned by Present when the renderer was never opened or has
// been closed already.
var ErrNotOpen = errors.New("renderer is not open")

type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpRect
)

// Op is a single recorded draw call.
type Op struct {
	Kind   OpKind
	X, Y   float64
	Radius float64
	Rect   sim.Rect
	Color  sim.Color
}

// Renderer records frames. Events passed to Inject are handed out one per
// PollEvent call, in order.
type Renderer struct {
	// OpenErr, when set, is returned from Open.
	OpenErr error
	// Interval is slept in Present to stand in for the display refresh.
	Interval time.Duration

	events chan sim.Event

	mu      sync.Mutex
	title   string
	width   int
	height  int
	opened  bool
	closed  bool
	current []Op
	last    []Op
	frames  int
}

func New() *Renderer {
	return &Renderer{
		Interval: time.Millisecond,
		events:   make(chan sim.Event, 64),
	}
}

// Inject queues an input event for the render loop.
func (r *Renderer) Inject(e sim.Event) {
	r.events <- e
}

func (r *Renderer) Open(title string, width, height int) error {
	if r.OpenErr != nil {
		return r.OpenErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.title, r.width, r.height = title, width, height
	r.opened = true
	log.Debugf("record: opened %q (%dx%d)", title, width, height)
	return nil
}

func (r *Renderer) PollEvent() (sim.Event, bool) {
	select {
	case e := <-r.events:
		return e, true
	default:
		return sim.Event{}, false
	}
}

func (r *Renderer) Clear(c sim.Color) {
	r.record(Op{Kind: OpClear, Color: c})
}

func (r *Renderer) FillCircle(x, y, radius float64, c sim.Color) {
	r.record(Op{Kind: OpCircle, X: x, Y: y, Radius: radius, Color: c})
}

func (r *Renderer) FillRect(rect sim.Rect, c sim.Color) {
	r.record(Op{Kind: OpRect, Rect: rect, Color: c})
}

func (r *Renderer) record(op Op) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = append(r.current, op)
}

func (r *Renderer) Present() error {
	r.mu.Lock()
	if !r.opened || r.closed {
		r.mu.Unlock()
		return ErrNotOpen
	}
	r.last, r.current = r.current, nil
	r.frames++
	r.mu.Unlock()

	if r.Interval > 0 {
		time.Sleep(r.Interval)
	}
	return nil
}

func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	log.Debug("record: closed")
	return nil
}

// Frames returns the number of presented frames.
func (r *Renderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.frames
}

// LastFrame returns the draw calls of the most recently presented frame.
func (r *Renderer) LastFrame() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Op(nil), r.last...)
}

// Size returns the window size requested in Open.
func (r *Renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.width, r.height
}

func (r *Renderer) Title() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.title
}

func (r *Renderer) Opened() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.opened
}

func (r *Renderer) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.closed
}
