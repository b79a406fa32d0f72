package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type circle struct {
	x, y, r float64
	c       Color
}

type rect struct {
	r Rect
	c Color
}

type fakeCanvas struct {
	cleared []Color
	circles []circle
	rects   []rect
}

func (f *fakeCanvas) Clear(c Color) { f.cleared = append(f.cleared, c) }

func (f *fakeCanvas) FillCircle(x, y, radius float64, c Color) {
	f.circles = append(f.circles, circle{x, y, radius, c})
}

func (f *fakeCanvas) FillRect(r Rect, c Color) { f.rects = append(f.rects, rect{r, c}) }

func TestDrawLeds(t *testing.T) {
	g := DefaultLayout().Geometry(3, 1, 3, 0)
	f := newFrame(3, 0)
	f.Palette = DefaultPalette()
	f.Leds[1] = Color{R: 0xff}

	c := &fakeCanvas{}
	Draw(c, g, f)

	require.Len(t, c.circles, 6)
	assert.Equal(t, circle{68, 24, 20, ColorFromUint32(0xa0a0a0)}, c.circles[2])
	assert.Equal(t, circle{68, 24, 18, Color{R: 0xff}}, c.circles[3])
	assert.Equal(t, circle{24, 24, 18, Color{}}, c.circles[1])
	assert.Empty(t, c.cleared, "clearing is up to the render loop")
}

func TestDrawButtonsByState(t *testing.T) {
	g := DefaultLayout().Geometry(0, 1, 1, 3)
	f := newFrame(0, 3)
	f.Palette = DefaultPalette()
	f.Buttons[0] = Released
	f.Buttons[1] = Hovered
	f.Buttons[2] = Pressed

	c := &fakeCanvas{}
	Draw(c, g, f)

	assert.Equal(t, []rect{
		{g.Buttons[0], f.Palette.Released},
		{g.Buttons[1], f.Palette.Hovered},
		{g.Buttons[2], f.Palette.Pressed},
	}, c.rects)
}

func TestDrawDoesNotMutateFrame(t *testing.T) {
	g := DefaultLayout().Geometry(2, 1, 2, 1)
	f := newFrame(2, 1)
	f.Leds[0] = Color{1, 2, 3}
	f.Buttons[0] = Pressed

	Draw(&fakeCanvas{}, g, f)

	assert.Equal(t, Color{1, 2, 3}, f.Leds[0])
	assert.Equal(t, Pressed, f.Buttons[0])
}

func TestColorPacking(t *testing.T) {
	c := ColorFromUint32(0x12345678)
	assert.Equal(t, Color{R: 0x34, G: 0x56, B: 0x78}, c)
	assert.Equal(t, uint32(0x345678), c.Uint32())
	assert.Equal(t, "#345678", c.String())
}
