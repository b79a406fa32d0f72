// Package button turns simulated button presses into events for host code,
// either straight from the simulator callbacks or through a GPIO pin.
package button

import "fmt"

type ButtonEvent struct {
	Index   int
	Pressed bool
}

func (b ButtonEvent) String() string {
	action := "pressed"
	if !b.Pressed {
		action = "released"
	}
	return fmt.Sprintf("Button %d was %v", b.Index, action)
}
