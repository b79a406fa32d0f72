package sim_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/callebjorkell/ledsim/internal/backend/record"
	"github.com/callebjorkell/ledsim/internal/sim"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

type finishCounter struct {
	calls atomic.Int32
	done  chan struct{}
}

func newFinishCounter() *finishCounter {
	return &finishCounter{done: make(chan struct{}, 10)}
}

func (f *finishCounter) onFinish() {
	f.calls.Add(1)
	f.done <- struct{}{}
}

func (f *finishCounter) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for the session to finish")
	}
}

func startSession(t *testing.T, opts sim.Options) (*sim.Session, *record.Renderer, *finishCounter) {
	t.Helper()
	r := record.New()
	f := newFinishCounter()
	s := sim.Start(opts, r, f.onFinish)
	require.Eventually(t, func() bool { return s.Phase() == sim.Running }, waitFor, time.Millisecond)
	return s, r, f
}

func TestStartRejectsTooManyLeds(t *testing.T) {
	r := record.New()
	f := newFinishCounter()

	assert.Panics(t, func() {
		sim.Start(sim.Options{LedCount: 10, Rows: 3, Cols: 3}, r, f.onFinish)
	})

	time.Sleep(20 * time.Millisecond)
	assert.False(t, r.Opened(), "no window may appear")
	assert.Zero(t, f.calls.Load())
}

func TestStartRequiresFinishCallback(t *testing.T) {
	r := record.New()
	assert.Panics(t, func() {
		sim.Start(sim.Options{LedCount: 1, Rows: 1, Cols: 1}, r, nil)
	})
	assert.Panics(t, func() {
		sim.Start(sim.Options{LedCount: 1, Rows: 1, Cols: 1}, nil, func() {})
	})
	assert.Panics(t, func() {
		sim.Start(sim.Options{LedCount: 0, Rows: 0, Cols: 4}, r, func() {})
	})
}

func TestSetLedOutOfRange(t *testing.T) {
	s, _, f := startSession(t, sim.Options{LedCount: 4, Rows: 2, Cols: 2, ButtonCount: 1})
	defer f.wait(t)
	defer s.Stop()

	assert.Panics(t, func() { s.SetLed(4, sim.Color{}) })
	assert.Panics(t, func() { s.SetLed(-1, sim.Color{}) })
	assert.Panics(t, func() { s.RegisterButtonCallback(1, nil, nil) })
	assert.NotPanics(t, func() { s.SetLed(3, sim.Color{}) })
}

func TestSetLedIsDrawnAtItsPosition(t *testing.T) {
	s, r, f := startSession(t, sim.Options{LedCount: 225, Rows: 15, Cols: 15})
	defer f.wait(t)
	defer s.Stop()

	want := sim.Color{R: 0xff, B: 0xff}
	s.SetLed(26, want)

	center := sim.DefaultLayout().LedCenter(26, 15)
	require.Eventually(t, func() bool {
		for _, op := range r.LastFrame() {
			if op.Kind == record.OpCircle && op.Color == want {
				return op.X == float64(center.X) && op.Y == float64(center.Y) && op.Radius == 18
			}
		}
		return false
	}, waitFor, time.Millisecond)

	w, h := r.Size()
	assert.Equal(t, s.Geometry().Width, w)
	assert.Equal(t, s.Geometry().Height, h)
	assert.Equal(t, "LedSim", r.Title())
}

func TestFinishFiresOnceForManyQuits(t *testing.T) {
	s, r, f := startSession(t, sim.Options{LedCount: 1, Rows: 1, Cols: 1})

	r.Inject(sim.Event{Kind: sim.Quit})
	r.Inject(sim.Event{Kind: sim.Quit})
	r.Inject(sim.Event{Kind: sim.Quit})
	f.wait(t)

	s.Stop()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, sim.Finished, s.Phase())
	assert.True(t, r.Closed())
}

func TestStopTerminatesSession(t *testing.T) {
	s, r, f := startSession(t, sim.Options{LedCount: 1, Rows: 1, Cols: 1})

	s.Stop()
	f.wait(t)
	s.Stop()

	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, sim.Finished, s.Phase())
	assert.True(t, r.Closed())
}

func TestButtonCallbacksThroughRenderLoop(t *testing.T) {
	s, r, f := startSession(t, sim.Options{LedCount: 1, Rows: 1, Cols: 1, ButtonCount: 2})
	defer f.wait(t)
	defer s.Stop()

	type event struct {
		flag sim.ButtonFlag
		data any
	}
	events := make(chan event, 10)
	s.RegisterButtonCallback(1, func(flags sim.ButtonFlag, userData any) {
		events <- event{flags, userData}
	}, "button-1")

	b := s.Geometry().Buttons[1]
	x, y := b.X+b.Width/2, b.Y+b.Height/2
	r.Inject(sim.Event{Kind: sim.PointerMove, X: x, Y: y})
	r.Inject(sim.Event{Kind: sim.PointerDown, X: x, Y: y})
	r.Inject(sim.Event{Kind: sim.PointerUp, X: x, Y: y})
	r.Inject(sim.Event{Kind: sim.PointerMove, X: 0, Y: 0})

	var got []event
	for len(got) < 2 {
		select {
		case e := <-events:
			got = append(got, e)
		case <-time.After(waitFor):
			t.Fatalf("only got %d callbacks", len(got))
		}
	}

	assert.Equal(t, []event{{sim.FlagPressed, "button-1"}, {sim.FlagReleased, "button-1"}}, got)
	select {
	case e := <-events:
		t.Fatalf("unexpected extra callback %v", e.flag)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestOpenFailureIsFatal(t *testing.T) {
	exited := make(chan int, 1)
	logger := log.StandardLogger()
	logger.ExitFunc = func(code int) { exited <- code }
	defer func() { logger.ExitFunc = nil }()

	r := record.New()
	r.OpenErr = errors.New("no display")
	f := newFinishCounter()
	s := sim.Start(sim.Options{LedCount: 1, Rows: 1, Cols: 1}, r, f.onFinish)

	select {
	case code := <-exited:
		assert.Equal(t, 1, code)
	case <-time.After(waitFor):
		t.Fatal("render goroutine did not abort")
	}
	assert.Zero(t, f.calls.Load())
	assert.Equal(t, sim.Uninitialized, s.Phase())
}
