// Package neopixel drives the simulated LEDs the way a program drives a
// ws281x strip, and ships the effects the demo shows on them.
package neopixel

import (
	"errors"
	"sync"

	"github.com/callebjorkell/ledsim/internal/sim"
)

const MaxBrightness = 255

var ErrNotInitialized = errors.New("neopixel: engine is not initialized")

// Engine is the method set of a ws281x device.
type Engine interface {
	Init() error
	Render() error
	Wait() error
	Fini()
	Leds(channel int) []uint32
}

// LedSetter receives the rendered colors. *sim.Session implements it.
type LedSetter interface {
	SetLed(index int, c sim.Color)
}

// SimEngine is an Engine whose strip is the LED grid of a simulator session.
// Colors written to Leds(0) show up on the next Render, scaled by
// Brightness the way the strip's global brightness would.
type SimEngine struct {
	Brightness int

	out LedSetter

	mu     sync.Mutex
	leds   []uint32
	active bool
}

func NewSimEngine(out LedSetter, count int) *SimEngine {
	return &SimEngine{
		Brightness: MaxBrightness,
		out:        out,
		leds:       make([]uint32, count),
	}
}

func (e *SimEngine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.active = true
	return nil
}

// Leds returns the color buffer of a channel. The simulator has one.
func (e *SimEngine) Leds(channel int) []uint32 {
	if channel != 0 {
		return nil
	}
	return e.leds
}

func (e *SimEngine) Render() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return ErrNotInitialized
	}

	light := uint32(100)
	if e.Brightness < MaxBrightness {
		light = uint32(max(e.Brightness, 0)) * 100 / MaxBrightness
	}
	for i, c := range e.leds {
		e.out.SetLed(i, sim.ColorFromUint32(withBrightness(c, light)))
	}
	return nil
}

// Wait returns at once, Render has handed the colors over when it returns.
func (e *SimEngine) Wait() error {
	return nil
}

// Fini switches the LEDs off and releases the engine.
func (e *SimEngine) Fini() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return
	}
	for i := range e.leds {
		e.out.SetLed(i, sim.Color{})
	}
	e.active = false
}

// Get the same color, but with a lower or equal brightness, on a scale from 0-100, where 100 is the same as the input.
func withBrightness(color, light uint32) uint32 {
	if light >= 100 {
		return color
	}
	if light == 0 {
		return 0
	}

	r, g, b := (color>>16)&0xff, (color>>8)&0xff, color&0xff

	red := r * light / 100
	green := g * light / 100
	blue := b * light / 100

	return (red << 16) | (green << 8) | blue
}

// getRGB walks the color wheel, red to green to blue and back to red, in
// wheelSteps steps.
func getRGB(step int) uint32 {
	const third = wheelSteps / 3

	step %= wheelSteps
	if step < 0 {
		step += wheelSteps
	}
	pos := uint32((step % third) * 255 / third)

	switch step / third {
	case 0:
		return (255-pos)<<16 | pos<<8
	case 1:
		return (255-pos)<<8 | pos
	default:
		return pos<<16 | (255 - pos)
	}
}
