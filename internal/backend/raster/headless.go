package raster

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/callebjorkell/ledsim/internal/sim"
	log "github.com/sirupsen/logrus"
)

const DefaultRefreshRate = 60

// Headless is a sim.Renderer without a window. Frames are rasterized and
// optionally handed to Sink; Present waits for the next tick of a refresh
// ticker to stand in for vsync.
type Headless struct {
	*Canvas

	// Sink receives every presented frame. The image is only valid for the
	// duration of the call.
	Sink func(image.Image) error
	// SnapshotPath, when set, receives the last frame as PNG on Close.
	SnapshotPath string

	refresh time.Duration
	events  chan sim.Event
	ticker  *time.Ticker
}

func NewHeadless(refreshRate int) *Headless {
	if refreshRate <= 0 {
		refreshRate = DefaultRefreshRate
	}
	return &Headless{
		refresh: time.Second / time.Duration(refreshRate),
		events:  make(chan sim.Event, 64),
	}
}

// Inject queues an input event, as if it came from a window.
func (h *Headless) Inject(e sim.Event) {
	h.events <- e
}

func (h *Headless) Open(title string, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	h.Canvas = NewCanvas(width, height)
	h.ticker = time.NewTicker(h.refresh)
	log.Debugf("raster: %q opened headless at %dx%d", title, width, height)
	return nil
}

func (h *Headless) PollEvent() (sim.Event, bool) {
	select {
	case e := <-h.events:
		return e, true
	default:
		return sim.Event{}, false
	}
}

func (h *Headless) Present() error {
	if h.ticker == nil {
		return errors.New("headless renderer is not open")
	}
	if err := h.Err(); err != nil {
		return err
	}
	if h.Sink != nil {
		if err := h.Sink(h.Image()); err != nil {
			return fmt.Errorf("frame sink: %w", err)
		}
	}
	<-h.ticker.C
	return nil
}

func (h *Headless) Close() error {
	if h.ticker == nil {
		return nil
	}
	h.ticker.Stop()
	h.ticker = nil

	if h.SnapshotPath != "" {
		if err := h.SavePNG(h.SnapshotPath); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		log.Infof("Saved last frame to %s", h.SnapshotPath)
	}
	return h.Canvas.Close()
}
