package neopixel

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	wheelSteps = 450
	wipeDelay  = 50 * time.Millisecond
)

var ErrInterrupted = errors.New("animation was interrupted")

func (l *LedController) Flash(color uint32) {
	done := l.queue.Queue()
	defer done()

	log.Infof("Flashing color %06x", color)

	l.setColor(color)
	<-time.After(250 * time.Millisecond)
	l.setColor(0)
	<-time.After(40 * time.Millisecond)
	l.setColor(color)
	<-time.After(100 * time.Millisecond)
	l.setColor(0)
	<-time.After(40 * time.Millisecond)
	l.setColor(color)
	<-time.After(100 * time.Millisecond)
	l.setColor(0)

	log.Debug("Flashing done...")
}

// Wipe lights the LEDs one after the other with color.
func (l *LedController) Wipe(color uint32) error {
	done := l.queue.Queue()
	defer done()

	log.Debugf("Wiping color %06x", color)
	leds := l.ws.Leds(0)
	for i := range leds {
		if l.queue.IsInterrupted() {
			return ErrInterrupted
		}

		leds[i] = color
		if err := l.ws.Render(); err != nil {
			return err
		}
		time.Sleep(wipeDelay)
	}
	return nil
}

// Rainbow runs the color wheel across the LEDs, fading in and out.
func (l *LedController) Rainbow() error {
	done := l.queue.Queue()
	defer done()
	defer l.clear()

	log.Debugf("Displaying rainbow")
	tick := time.NewTicker(30 * time.Millisecond)
	defer tick.Stop()

	count := l.count()
	leds := l.ws.Leds(0)
	for step := 0; step <= wheelSteps; step++ {
		if l.queue.IsInterrupted() {
			return ErrInterrupted
		}

		light := uint32(100)
		if step < 50 {
			light = uint32(step * 2)
		}
		if step > 350 {
			light = uint32(wheelSteps - step)
		}

		for i := range leds {
			leds[i] = withBrightness(getRGB(step+i*wheelSteps/count), light)
		}
		if err := l.ws.Render(); err != nil {
			return err
		}

		<-tick.C
	}

	return nil
}

// Breathe fades color in and out until another effect takes over.
func (l *LedController) Breathe(color uint32) {
	done := l.queue.Queue()

	go func() {
		defer done()
		defer l.clear()
		for {
			err := l.singleBreath(color)
			if err != nil {
				log.Debug("Stopping breathing: ", err)
				break
			}
		}
	}()
}

func (l *LedController) singleBreath(color uint32) error {
	light := uint32(0)
	increase := true
	log.Debugf("Breathing color: %06x", color)
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for {
		if l.queue.IsInterrupted() {
			log.Debug("Animation interrupted.")
			return ErrInterrupted
		}

		c := withBrightness(color, light)

		err := l.setColor(c)
		if err != nil {
			return err
		}

		if increase {
			light++
			if light > 100 {
				increase = false
			}
		} else {
			if light == 0 {
				break
			}
			light--
		}

		<-tick.C
	}
	return nil
}
