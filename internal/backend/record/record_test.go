package record

import (
	"errors"
	"testing"

	"github.com/callebjorkell/ledsim/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsLastFrame(t *testing.T) {
	r := New()
	r.Interval = 0
	assert.ErrorIs(t, r.Present(), ErrNotOpen)

	require.NoError(t, r.Open("rec", 30, 20))
	assert.True(t, r.Opened())
	assert.Equal(t, "rec", r.Title())
	w, h := r.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 20, h)

	red := sim.Color{R: 0xff}
	r.Clear(red)
	r.FillCircle(1, 2, 3, red)
	assert.Empty(t, r.LastFrame())

	require.NoError(t, r.Present())
	assert.Equal(t, []Op{
		{Kind: OpClear, Color: red},
		{Kind: OpCircle, X: 1, Y: 2, Radius: 3, Color: red},
	}, r.LastFrame())

	r.FillRect(sim.Rect{Width: 4, Height: 5}, red)
	require.NoError(t, r.Present())
	assert.Equal(t, []Op{{Kind: OpRect, Rect: sim.Rect{Width: 4, Height: 5}, Color: red}}, r.LastFrame())
	assert.Equal(t, 2, r.Frames())

	require.NoError(t, r.Close())
	assert.True(t, r.Closed())
	assert.ErrorIs(t, r.Present(), ErrNotOpen)
}

func TestEventsInOrder(t *testing.T) {
	r := New()
	r.Inject(sim.Event{Kind: sim.PointerMove, X: 1})
	r.Inject(sim.Event{Kind: sim.Quit})

	e, ok := r.PollEvent()
	require.True(t, ok)
	assert.Equal(t, sim.PointerMove, e.Kind)
	e, ok = r.PollEvent()
	require.True(t, ok)
	assert.Equal(t, sim.Quit, e.Kind)
	_, ok = r.PollEvent()
	assert.False(t, ok)
}

func TestOpenError(t *testing.T) {
	r := New()
	r.OpenErr = errors.New("no display")
	assert.EqualError(t, r.Open("rec", 1, 1), "no display")
	assert.False(t, r.Opened())
}
