package neopixel

import (
	"sync"
	"testing"
	"time"

	"github.com/callebjorkell/ledsim/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrightness(t *testing.T) {
	tt := []struct {
		name   string
		input  uint32
		light  uint32
		output uint32
	}{
		{
			"full brightness red",
			0xff0000,
			100,
			0xff0000,
		},
		{
			"full brightness green",
			0x00ff00,
			100,
			0x00ff00,
		},
		{
			"full brightness blue",
			0x0000ff,
			100,
			0x0000ff,
		},
		{
			"zero brightness red",
			0xff0000,
			0,
			0x000000,
		},
		{
			"zero brightness green",
			0x00ff00,
			0,
			0x000000,
		},
		{
			"zero brightness blue",
			0x0000ff,
			0,
			0x000000,
		},
		{
			"50 percent",
			0x806040,
			50,
			0x403020,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			o := withBrightness(tc.input, tc.light)
			assert.Equal(t, tc.output, o)
		})
	}
}

func TestWheel(t *testing.T) {
	tt := []struct {
		name   string
		step   int
		output uint32
	}{
		{"start is red", 0, 0xff0000},
		{"a third is green", 150, 0x00ff00},
		{"two thirds is blue", 300, 0x0000ff},
		{"full circle", 450, 0xff0000},
		{"negative wraps", -150, 0x0000ff},
		{"red to green", 75, 0x807f00},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.output, getRGB(tc.step))
		})
	}
}

type recordingSetter struct {
	mu   sync.Mutex
	leds map[int]sim.Color
	sets int
}

func (r *recordingSetter) SetLed(index int, c sim.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.leds == nil {
		r.leds = map[int]sim.Color{}
	}
	r.leds[index] = c
	r.sets++
}

func (r *recordingSetter) get(index int) sim.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leds[index]
}

func TestSimEngineRender(t *testing.T) {
	out := &recordingSetter{}
	e := NewSimEngine(out, 3)

	assert.ErrorIs(t, e.Render(), ErrNotInitialized)
	require.NoError(t, e.Init())
	assert.Len(t, e.Leds(0), 3)
	assert.Nil(t, e.Leds(1))

	e.Leds(0)[1] = 0x806040
	require.NoError(t, e.Render())
	assert.Equal(t, sim.Color{}, out.get(0))
	assert.Equal(t, sim.Color{R: 0x80, G: 0x60, B: 0x40}, out.get(1))
	assert.NoError(t, e.Wait())

	e.Brightness = 127
	require.NoError(t, e.Render())
	assert.Equal(t, sim.Color{R: 0x3e, G: 0x2f, B: 0x1f}, out.get(1))

	e.Fini()
	assert.Equal(t, sim.Color{}, out.get(1))
	assert.ErrorIs(t, e.Render(), ErrNotInitialized)
}

func newController(t *testing.T, count int) (*LedController, *recordingSetter) {
	t.Helper()
	out := &recordingSetter{}
	l, err := NewLedController(NewSimEngine(out, count))
	require.NoError(t, err)
	return l, out
}

func TestWipe(t *testing.T) {
	l, out := newController(t, 3)

	require.NoError(t, l.Wipe(0x00ff00))
	for i := 0; i < 3; i++ {
		assert.Equal(t, sim.Color{G: 0xff}, out.get(i))
	}
	// A render of the whole strip per LED.
	assert.Equal(t, 3*3, out.sets)
}

func TestFlashEndsDark(t *testing.T) {
	l, out := newController(t, 2)

	l.Flash(0xff0000)
	assert.Equal(t, sim.Color{}, out.get(0))
	assert.Equal(t, sim.Color{}, out.get(1))
}

func TestStopInterruptsBreathing(t *testing.T) {
	l, out := newController(t, 2)

	l.Breathe(0x0000ff)
	require.Eventually(t, func() bool { return out.get(0).B > 0 }, time.Second, 5*time.Millisecond)

	l.Stop()
	assert.Equal(t, sim.Color{}, out.get(0))
	assert.Equal(t, sim.Color{}, out.get(1))
}

func TestRainbowInterrupted(t *testing.T) {
	l, out := newController(t, 4)

	result := make(chan error)
	go func() { result <- l.Rainbow() }()
	require.Eventually(t, func() bool {
		out.mu.Lock()
		defer out.mu.Unlock()
		return out.sets > 8
	}, time.Second, 5*time.Millisecond)

	l.Stop()
	select {
	case err := <-result:
		assert.ErrorIs(t, err, ErrInterrupted)
	case <-time.After(time.Second):
		t.Fatal("rainbow kept running")
	}
}

func TestCloseTurnsOff(t *testing.T) {
	l, out := newController(t, 2)
	require.NoError(t, l.setColor(0xffffff))

	l.Close()
	assert.Equal(t, sim.Color{}, out.get(0))
	assert.ErrorIs(t, l.ws.Render(), ErrNotInitialized)
}

func TestQueue(t *testing.T) {
	q := &Queue{}
	assert.False(t, q.IsInterrupted())

	done := q.Queue()
	assert.False(t, q.IsInterrupted())

	next := make(chan struct{})
	go func() {
		d := q.Queue()
		close(next)
		d()
	}()

	require.Eventually(t, q.IsInterrupted, time.Second, time.Millisecond)
	done()
	done()

	select {
	case <-next:
	case <-time.After(time.Second):
		t.Fatal("queued user never got a turn")
	}
}
