package button

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

const (
	debounce    = 15 * time.Millisecond
	edgeTimeout = 100 * time.Millisecond
)

// Watch reads a button wired to ground on an input pin and returns a
// channel of debounced events. The channel is closed when ctx is done.
func Watch(ctx context.Context, index int, b gpio.PinIn) (<-chan ButtonEvent, error) {
	if err := b.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, err
	}
	log.Infof("Watching button %d on %v", index, b)

	c := make(chan ButtonEvent, eventBuffer)
	go handleButton(ctx, index, b, b.Read(), c)
	return c, nil
}

func handleButton(ctx context.Context, index int, b gpio.PinIn, last gpio.Level, c chan<- ButtonEvent) {
	defer close(c)

	for {
		if ctx.Err() != nil {
			return
		}

		// wait for the edge
		if !b.WaitForEdge(edgeTimeout) {
			continue
		}

		// debounce
		l := b.Read()
		if l == last {
			continue
		}

		time.Sleep(debounce)
		if l != b.Read() {
			continue
		}

		last = l
		select {
		case c <- ButtonEvent{Index: index, Pressed: l == gpio.Low}:
		case <-ctx.Done():
			return
		}
	}
}
