// Package raster draws simulator frames into an in-memory image with the gg
// software rasterizer.
package raster

import (
	"fmt"
	"image"
	"io"

	"github.com/callebjorkell/ledsim/internal/sim"
	"github.com/gogpu/gg"
)

// Canvas is a sim.Canvas backed by a gg.Context. Fill errors do not abort the
// frame; the first one is kept and returned by Err.
type Canvas struct {
	dc  *gg.Context
	err error
}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

func channels(c sim.Color) (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

func (c *Canvas) Clear(col sim.Color) {
	c.dc.ClearWithColor(gg.RGB(channels(col)))
}

func (c *Canvas) FillCircle(x, y, radius float64, col sim.Color) {
	c.dc.SetRGB(channels(col))
	c.dc.DrawCircle(x, y, radius)
	c.keep(c.dc.Fill())
}

func (c *Canvas) FillRect(r sim.Rect, col sim.Color) {
	c.dc.SetRGB(channels(col))
	c.dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
	c.keep(c.dc.Fill())
}

func (c *Canvas) keep(err error) {
	if err != nil && c.err == nil {
		c.err = fmt.Errorf("fill: %w", err)
	}
}

// Err returns the first fill error since the last call and resets it.
func (c *Canvas) Err() error {
	err := c.err
	c.err = nil
	return err
}

func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

func (c *Canvas) Close() error {
	return c.dc.Close()
}
