package sim

import "fmt"

// Canvas receives the primitives of a single frame.
type Canvas interface {
	Clear(c Color)
	FillCircle(x, y, radius float64, c Color)
	FillRect(r Rect, c Color)
}

// Renderer is the windowing backend a session draws into. All methods are
// called from the session's render goroutine only.
type Renderer interface {
	Canvas

	// Open creates the window/surface. A failure here is fatal for the
	// session.
	Open(title string, width, height int) error
	// PollEvent returns the next pending input event, if any. It must not
	// block for longer than a frame.
	PollEvent() (Event, bool)
	// Present shows the current frame and waits for the next refresh.
	Present() error
	// Close releases the backend.
	Close() error
}

type EventKind int

const (
	Quit EventKind = iota
	PointerMove
	PointerDown
	PointerUp
)

func (k EventKind) String() string {
	switch k {
	case Quit:
		return "quit"
	case PointerMove:
		return "move"
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// PointerButton identifies a mouse button. Only the primary button presses
// simulated buttons.
type PointerButton int

const (
	PrimaryButton PointerButton = iota
	MiddleButton
	SecondaryButton
)

// Event is a single input event from the backend.
type Event struct {
	Kind   EventKind
	X, Y   int
	Button PointerButton
}

func (e Event) String() string {
	if e.Kind == Quit {
		return "quit"
	}
	return fmt.Sprintf("%v(%d,%d) button %d", e.Kind, e.X, e.Y, e.Button)
}
