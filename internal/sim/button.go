package sim

import (
	"fmt"
	"strings"
)

// ButtonState is the visual state of a simulated button.
type ButtonState int

const (
	Released ButtonState = iota
	Hovered
	Pressed
)

func (s ButtonState) String() string {
	switch s {
	case Released:
		return "released"
	case Hovered:
		return "hovered"
	case Pressed:
		return "pressed"
	}
	return fmt.Sprintf("ButtonState(%d)", int(s))
}

// ButtonFlag is the signal passed to a button callback. A single callback
// invocation carries exactly one of the flags.
type ButtonFlag uint8

const (
	FlagPressed ButtonFlag = 1 << iota
	FlagReleased
)

func (f ButtonFlag) String() string {
	var parts []string
	if f&FlagPressed != 0 {
		parts = append(parts, "pressed")
	}
	if f&FlagReleased != 0 {
		parts = append(parts, "released")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ButtonCallback is invoked on the session's render goroutine, never on the
// goroutine that registered it. Implementations must not block for long: the
// window does not redraw while a callback runs.
type ButtonCallback func(flags ButtonFlag, userData any)

// buttons is the state machine for all buttons of a session. It is owned by
// the render goroutine.
type buttons struct {
	rects  []Rect
	states []ButtonState
	x, y   int
}

func newButtons(rects []Rect) *buttons {
	return &buttons{
		rects:  rects,
		states: make([]ButtonState, len(rects)),
		x:      -1,
		y:      -1,
	}
}

// handle applies a pointer event and reports every callback-worthy transition
// through fire.
func (b *buttons) handle(e Event, fire func(index int, flag ButtonFlag)) {
	b.x, b.y = e.X, e.Y
	b.hover()

	if e.Button != PrimaryButton {
		return
	}

	switch e.Kind {
	case PointerDown:
		b.press(fire)
		b.hover()
	case PointerUp:
		b.release(fire)
		b.hover()
	}
}

// hover moves buttons between Released and Hovered for the current pointer
// position. A pressed button keeps its state until it is released. When
// rectangles overlap, the lowest index claims the pointer.
func (b *buttons) hover() {
	claimed := false
	for i, r := range b.rects {
		inside := !claimed && r.Contains(b.x, b.y)
		if inside {
			claimed = true
		}

		switch b.states[i] {
		case Released:
			if inside {
				b.states[i] = Hovered
			}
		case Hovered:
			if !inside {
				b.states[i] = Released
			}
		}
	}
}

func (b *buttons) press(fire func(int, ButtonFlag)) {
	for i, s := range b.states {
		if s == Hovered {
			b.states[i] = Pressed
			fire(i, FlagPressed)
		}
	}
}

// release fires for every pressed button regardless of where the pointer is:
// the mouse-up is global, not scoped to the rectangle.
func (b *buttons) release(fire func(int, ButtonFlag)) {
	for i, s := range b.states {
		if s == Pressed {
			b.states[i] = Hovered
			fire(i, FlagReleased)
		}
	}
}
