package neopixel

import (
	log "github.com/sirupsen/logrus"
)

// LedController runs effects on an Engine, one at a time.
type LedController struct {
	ws    Engine
	queue Queue
}

func NewLedController(ws Engine) (*LedController, error) {
	if err := ws.Init(); err != nil {
		return nil, err
	}
	return &LedController{ws: ws}, nil
}

func (l *LedController) count() int {
	return len(l.ws.Leds(0))
}

func (l *LedController) setColor(color uint32) error {
	leds := l.ws.Leds(0)
	for i := range leds {
		leds[i] = color
	}
	return l.ws.Render()
}

func (l *LedController) clear() error {
	return l.setColor(0)
}

// Stop interrupts the running effect and turns the LEDs off.
func (l *LedController) Stop() {
	done := l.queue.Queue()
	defer done()

	if err := l.clear(); err != nil {
		log.WithError(err).Warn("Unable to clear LEDs")
	}
}

func (l *LedController) Close() {
	l.Stop()
	l.ws.Fini()
}
