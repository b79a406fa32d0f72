// Package config reads the simulator settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/callebjorkell/ledsim/internal/backend/raster"
	"github.com/callebjorkell/ledsim/internal/backend/web"
	"github.com/callebjorkell/ledsim/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Title       string `yaml:"title"`
	LedRadius   int    `yaml:"ledRadius"`
	RefreshRate int    `yaml:"refreshRate"`
	Button      struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
		Margin int `yaml:"margin"`
	} `yaml:"button"`
	// Colors are 0xRRGGBB.
	Palette struct {
		Background uint32 `yaml:"background"`
		Ring       uint32 `yaml:"ring"`
		Released   uint32 `yaml:"released"`
		Hovered    uint32 `yaml:"hovered"`
		Pressed    uint32 `yaml:"pressed"`
	} `yaml:"palette"`
	Preview struct {
		Addr             string `yaml:"addr"`
		QuitOnDisconnect bool   `yaml:"quitOnDisconnect"`
	} `yaml:"preview"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{
		Title:       "LedSim",
		RefreshRate: raster.DefaultRefreshRate,
	}

	l := sim.DefaultLayout()
	c.LedRadius = l.LedRadius
	c.Button.Width = l.ButtonWidth
	c.Button.Height = l.ButtonHeight
	c.Button.Margin = l.ButtonMargin

	p := sim.DefaultPalette()
	c.Palette.Background = p.Background.Uint32()
	c.Palette.Ring = p.Ring.Uint32()
	c.Palette.Released = p.Released.Uint32()
	c.Palette.Hovered = p.Hovered.Uint32()
	c.Palette.Pressed = p.Pressed.Uint32()

	c.Preview.Addr = web.DefaultAddr
	c.Preview.QuitOnDisconnect = true
	return c
}

// Parse reads a configuration on top of the defaults, so a file only needs to
// name the settings it changes.
func Parse(content []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(content, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if c.Title == "" {
		c.Title = "LedSim"
	}
	if c.RefreshRate <= 0 {
		c.RefreshRate = raster.DefaultRefreshRate
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = web.DefaultAddr
	}

	if c.LedRadius <= 0 {
		return nil, fmt.Errorf("%w: led radius must be positive, got %d", ErrInvalid, c.LedRadius)
	}
	if c.Button.Width <= 0 || c.Button.Height <= 0 {
		return nil, fmt.Errorf("%w: button size must be positive, got %dx%d", ErrInvalid, c.Button.Width, c.Button.Height)
	}
	if c.Button.Margin < 0 {
		return nil, fmt.Errorf("%w: button margin cannot be negative", ErrInvalid)
	}

	colors := map[string]uint32{
		"background": c.Palette.Background,
		"ring":       c.Palette.Ring,
		"released":   c.Palette.Released,
		"hovered":    c.Palette.Hovered,
		"pressed":    c.Palette.Pressed,
	}
	for name, color := range colors {
		if color > 0xffffff {
			return nil, fmt.Errorf("%w: %s color %#x is not 0xRRGGBB", ErrInvalid, name, color)
		}
	}

	return c, nil
}

func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c Config) Layout() sim.Layout {
	return sim.Layout{
		LedRadius:    c.LedRadius,
		ButtonWidth:  c.Button.Width,
		ButtonHeight: c.Button.Height,
		ButtonMargin: c.Button.Margin,
	}
}

func (c Config) ColorPalette() sim.Palette {
	return sim.Palette{
		Background: sim.ColorFromUint32(c.Palette.Background),
		Ring:       sim.ColorFromUint32(c.Palette.Ring),
		Released:   sim.ColorFromUint32(c.Palette.Released),
		Hovered:    sim.ColorFromUint32(c.Palette.Hovered),
		Pressed:    sim.ColorFromUint32(c.Palette.Pressed),
	}
}
