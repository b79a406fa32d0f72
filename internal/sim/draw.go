package sim

// Frame is a by-value copy of everything needed to draw one frame.
type Frame struct {
	Leds    []Color
	Buttons []ButtonState
	Palette Palette
}

func newFrame(ledCount, buttonCount int) Frame {
	return Frame{
		Leds:    make([]Color, ledCount),
		Buttons: make([]ButtonState, buttonCount),
	}
}

// Draw emits the primitives for f onto c. Every LED is a ring-colored disc
// with a smaller disc of the LED color on top; every button is a rectangle
// colored by its state.
func Draw(c Canvas, g Geometry, f Frame) {
	for i, led := range f.Leds {
		p := g.Leds[i]
		c.FillCircle(float64(p.X), float64(p.Y), float64(g.Radius), f.Palette.Ring)
		c.FillCircle(float64(p.X), float64(p.Y), float64(g.Inner), led)
	}

	for i, s := range f.Buttons {
		c.FillRect(g.Buttons[i], f.Palette.ButtonColor(s))
	}
}
