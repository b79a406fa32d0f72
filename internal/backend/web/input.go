package web

import (
	"encoding/json"
	"fmt"

	"github.com/callebjorkell/ledsim/internal/sim"
)

// inputMessage is what the page sends for every pointer event. Button uses
// the DOM numbering: 0 primary, 1 middle, 2 secondary.
type inputMessage struct {
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Button int    `json:"button"`
}

func decodeInput(data []byte) (sim.Event, error) {
	var msg inputMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return sim.Event{}, fmt.Errorf("malformed input: %w", err)
	}
	return msg.event()
}

func (m inputMessage) event() (sim.Event, error) {
	e := sim.Event{X: m.X, Y: m.Y}

	switch m.Type {
	case "quit":
		return sim.Event{Kind: sim.Quit}, nil
	case "move":
		e.Kind = sim.PointerMove
	case "down":
		e.Kind = sim.PointerDown
	case "up":
		e.Kind = sim.PointerUp
	default:
		return sim.Event{}, fmt.Errorf("unknown input type %q", m.Type)
	}

	switch m.Button {
	case 0:
		e.Button = sim.PrimaryButton
	case 1:
		e.Button = sim.MiddleButton
	case 2:
		e.Button = sim.SecondaryButton
	default:
		return sim.Event{}, fmt.Errorf("unknown pointer button %d", m.Button)
	}

	return e, nil
}
