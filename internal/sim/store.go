package sim

import "sync"

type hook struct {
	callback ButtonCallback
	userData any
}

// store is the state shared between the caller and the render goroutine.
// Writers take the lock per call, the render loop takes it once per frame to
// copy everything it needs.
type store struct {
	mu      sync.Mutex
	leds    []Color
	hooks   []hook
	palette Palette
}

func newStore(ledCount, buttonCount int, palette Palette) *store {
	return &store{
		leds:    make([]Color, ledCount),
		hooks:   make([]hook, buttonCount),
		palette: palette,
	}
}

func (s *store) setLed(index int, c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leds[index] = c
}

func (s *store) setHook(index int, h hook) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks[index] = h
}

func (s *store) hook(index int) hook {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hooks[index]
}

func (s *store) setPalette(p Palette) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.palette = p
}

// snapshot copies the LED colors and palette into f. f.Leds must already
// have the right length.
func (s *store) snapshot(f *Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copy(f.Leds, s.leds)
	f.Palette = s.palette
}
