package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/callebjorkell/ledsim/internal/backend/raster"
	"github.com/callebjorkell/ledsim/internal/backend/web"
	"github.com/callebjorkell/ledsim/internal/button"
	"github.com/callebjorkell/ledsim/internal/config"
	"github.com/callebjorkell/ledsim/internal/neopixel"
	"github.com/callebjorkell/ledsim/internal/sim"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// LEDs lit at startup, by index.
var demoLeds = map[int]uint32{
	23: 0x00ff00,
	25: 0x0000ff,
	26: 0xff00ff,
}

func loadConfig() *config.Config {
	if *configFile == "" {
		return config.Default()
	}
	conf, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	return conf
}

func newRenderer(conf *config.Config) sim.Renderer {
	if *headless {
		h := raster.NewHeadless(conf.RefreshRate)
		h.SnapshotPath = *snapshot
		return h
	}
	if *snapshot != "" {
		log.Warn("Snapshots are only saved when running headless")
	}

	w := web.New(conf.Preview.Addr)
	w.QuitOnDisconnect = conf.Preview.QuitOnDisconnect
	w.RefreshRate = conf.RefreshRate
	return w
}

func startSimulator() {
	if *rows <= 0 || *cols <= 0 || *buttons < 0 || *leds < 0 {
		log.Fatal("The grid needs rows and columns, and counts cannot be negative")
	}
	if *leds > (*rows)*(*cols) {
		log.Fatalf("%d LEDs do not fit in a %dx%d grid", *leds, *rows, *cols)
	}
	conf := loadConfig()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	finished := make(chan struct{})
	s := sim.Start(sim.Options{
		Title:       conf.Title,
		LedCount:    *leds,
		Rows:        *rows,
		Cols:        *cols,
		ButtonCount: *buttons,
		Layout:      conf.Layout(),
		Palette:     conf.ColorPalette(),
	}, newRenderer(conf), func() {
		close(finished)
	})

	if *configFile != "" {
		w, err := config.Watch(*configFile, func(c *config.Config) {
			s.SetPalette(c.ColorPalette())
		})
		if err != nil {
			log.WithError(err).Warn("Config changes will not be applied")
		} else {
			defer w.Close()
		}
	}

	engine := neopixel.NewSimEngine(s, *leds)
	led, err := neopixel.NewLedController(engine)
	if err != nil {
		log.Fatal(err)
	}
	for i, c := range demoLeds {
		if i < *leds {
			engine.Leds(0)[i] = c
		}
	}
	if err := engine.Render(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleButtons(ctx, s, led)

	if *duration > 0 {
		log.Infof("Stopping after %v", *duration)
		t := time.AfterFunc(*duration, s.Stop)
		defer t.Stop()
	}

	select {
	case <-signalChan:
		log.Info("Stopping simulation...")
		s.Stop()
		<-finished
	case <-finished:
	}

	cancel()
	led.Close()
	log.Info("Done...")
}

// handleButtons maps the buttons to effects. The first one is read through
// the simulated GPIO pin, the way firmware would read a real switch.
func handleButtons(ctx context.Context, s *sim.Session, led *neopixel.LedController) {
	if *buttons == 0 {
		return
	}

	pin := button.NewPin(0)
	pin.Attach(s, 0)
	if err := pin.Register(); err != nil {
		log.WithError(err).Error("Unable to register button pin")
		return
	}
	defer gpioreg.Unregister(pin.Name())

	pinEvents, err := button.Watch(ctx, 0, gpioreg.ByName(pin.Name()))
	if err != nil {
		log.WithError(err).Error("Unable to watch button pin")
		return
	}

	events := make([]<-chan button.ButtonEvent, 4)
	for i := 1; i < len(events) && i < *buttons; i++ {
		events[i] = button.Listen(s, i)
	}

	for {
		var e button.ButtonEvent
		var ok bool
		select {
		case <-ctx.Done():
			return
		case e, ok = <-pinEvents:
			if !ok {
				return
			}
		case e = <-events[1]:
		case e = <-events[2]:
		case e = <-events[3]:
		}

		log.Infof("Event: %v", e)
		if !e.Pressed {
			continue
		}

		switch e.Index {
		case 0:
			go led.Flash(0x00ff00)
		case 1:
			go runEffect("rainbow", led.Rainbow)
		case 2:
			go led.Breathe(0x4060c0)
		case 3:
			go runEffect("wipe", func() error { return led.Wipe(0xff8000) })
		}
	}
}

func runEffect(name string, effect func() error) {
	if err := effect(); err != nil {
		log.Debugf("Effect %s ended: %v", name, err)
	}
}
