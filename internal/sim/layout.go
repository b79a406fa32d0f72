package sim

// Layout holds the sizing constants the window geometry is derived from.
type Layout struct {
	LedRadius    int
	ButtonWidth  int
	ButtonHeight int
	ButtonMargin int
}

// DefaultLayout has LEDs with a 20px radius and a row of 60x30 buttons.
func DefaultLayout() Layout {
	return Layout{
		LedRadius:    20,
		ButtonWidth:  60,
		ButtonHeight: 30,
		ButtonMargin: 10,
	}
}

// Border is the gap between two neighbouring LEDs.
func (l Layout) Border() int {
	return l.LedRadius / 5
}

// InnerRadius is the radius of the colored disc drawn inside the LED ring.
func (l Layout) InnerRadius() int {
	return int(float64(l.LedRadius) * 0.9)
}

// Point is a screen position in pixels, origin top left.
type Point struct {
	X, Y int
}

// Rect is a screen rectangle, origin top left.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the point (x, y) is inside the rectangle. The
// right and bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Geometry is the screen layout of a session, computed once at start.
type Geometry struct {
	Width   int
	Height  int
	Radius  int
	Inner   int
	Leds    []Point
	Buttons []Rect
}

// LedCenter returns the center of the LED at index in a grid with cols
// columns.
func (l Layout) LedCenter(index, cols int) Point {
	step := l.Border() + l.LedRadius*2
	offset := l.Border() + l.LedRadius
	return Point{
		X: (index%cols)*step + offset,
		Y: (index/cols)*step + offset,
	}
}

// ButtonRect returns the rectangle of the button at index given the height of
// the LED area above the button row.
func (l Layout) ButtonRect(index, top int) Rect {
	return Rect{
		X:      l.ButtonMargin + index*(l.ButtonWidth+l.ButtonMargin),
		Y:      top + l.ButtonMargin,
		Width:  l.ButtonWidth,
		Height: l.ButtonHeight,
	}
}

// Geometry computes the full screen layout for the given grid.
func (l Layout) Geometry(ledCount, rows, cols, buttonCount int) Geometry {
	border := l.Border()
	ledWidth := l.LedRadius*2*cols + (cols+1)*border
	ledHeight := l.LedRadius*2*rows + (rows+1)*border

	g := Geometry{
		Width:   ledWidth,
		Height:  ledHeight,
		Radius:  l.LedRadius,
		Inner:   l.InnerRadius(),
		Leds:    make([]Point, ledCount),
		Buttons: make([]Rect, buttonCount),
	}

	for i := range g.Leds {
		g.Leds[i] = l.LedCenter(i, cols)
	}

	if buttonCount > 0 {
		for i := range g.Buttons {
			g.Buttons[i] = l.ButtonRect(i, ledHeight)
		}
		row := l.ButtonMargin + buttonCount*(l.ButtonWidth+l.ButtonMargin)
		if row > g.Width {
			g.Width = row
		}
		g.Height += l.ButtonHeight + 2*l.ButtonMargin
	}

	return g
}
