package sim

import "fmt"

// Color is a 24 bit RGB LED color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// ColorFromUint32 unpacks a 0xRRGGBB value. The top byte is ignored.
func ColorFromUint32(c uint32) Color {
	return Color{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
	}
}

// Uint32 packs the color as 0xRRGGBB.
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Uint32())
}

// Palette holds the fixed colors used when drawing a frame.
type Palette struct {
	Background Color
	Ring       Color
	Released   Color
	Hovered    Color
	Pressed    Color
}

// DefaultPalette mirrors the look of the hardware test rig: white background,
// grey LED rings and grey/blue/green buttons.
func DefaultPalette() Palette {
	return Palette{
		Background: ColorFromUint32(0xffffff),
		Ring:       ColorFromUint32(0xa0a0a0),
		Released:   ColorFromUint32(0x808080),
		Hovered:    ColorFromUint32(0x4060c0),
		Pressed:    ColorFromUint32(0x40c060),
	}
}

// ButtonColor returns the palette entry for a button state.
func (p Palette) ButtonColor(s ButtonState) Color {
	switch s {
	case Hovered:
		return p.Hovered
	case Pressed:
		return p.Pressed
	}
	return p.Released
}
