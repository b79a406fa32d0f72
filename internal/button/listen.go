package button

import (
	"github.com/callebjorkell/ledsim/internal/sim"
	log "github.com/sirupsen/logrus"
)

const eventBuffer = 5

// Registrar is the part of a simulator session that takes button callbacks.
type Registrar interface {
	RegisterButtonCallback(index int, cb sim.ButtonCallback, userData any)
}

// Listen registers a callback for button index and returns a channel of its
// events. The callback runs on the render goroutine, so events are dropped
// instead of stalling the frame when nobody reads the channel.
func Listen(r Registrar, index int) <-chan ButtonEvent {
	c := make(chan ButtonEvent, eventBuffer)
	r.RegisterButtonCallback(index, func(flags sim.ButtonFlag, _ any) {
		e := ButtonEvent{Index: index, Pressed: flags&sim.FlagPressed != 0}
		select {
		case c <- e:
		default:
			log.Warnf("Dropping event, nobody is listening: %v", e)
		}
	}, nil)
	return c
}
