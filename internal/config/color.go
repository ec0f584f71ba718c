package config

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque color triple, written as #RRGGBB in flags and files.
type RGB struct {
	R, G, B uint8
}

// ParseRGB accepts #RRGGBB or #RGB.
func ParseRGB(s string) (RGB, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// MustRGB is ParseRGB for package-level literals.
func MustRGB(s string) RGB {
	c, err := ParseRGB(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColor drops alpha from any color.Color.
func FromColor(c color.Color) RGB {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGB{}
	}
	// un-premultiply
	return RGB{
		R: uint8(r * 0xffff / a >> 8),
		G: uint8(g * 0xffff / a >> 8),
		B: uint8(b * 0xffff / a >> 8),
	}
}

func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c RGB) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *RGB) UnmarshalText(text []byte) error {
	v, err := ParseRGB(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Set implements flag.Value.
func (c *RGB) Set(s string) error {
	return c.UnmarshalText([]byte(s))
}

// ColorPair is a gradient preset.
type ColorPair struct {
	Start, End RGB
}

var ColorPairs = []ColorPair{
	{MustRGB("#D946EF"), MustRGB("#9B87F5")}, // purple-pink
	{MustRGB("#8B5CF6"), MustRGB("#F97316")}, // purple to orange
	{MustRGB("#0EA5E9"), MustRGB("#F2FCE2")}, // ocean blue to soft green
	{MustRGB("#FEC6A1"), MustRGB("#E5DEFF")}, // soft orange to soft purple
	{MustRGB("#FFDEE2"), MustRGB("#D3E4FD")}, // soft pink to soft blue
}

// NextPair returns the preset after the one matching start/end. An unknown
// pair cycles to the first preset.
func NextPair(start, end RGB) ColorPair {
	idx := -1
	for i, p := range ColorPairs {
		if p.Start == start && p.End == end {
			idx = i
			break
		}
	}
	return ColorPairs[(idx+1)%len(ColorPairs)]
}

// ColorFormat selects how colors are shown in the panel.
type ColorFormat int

const (
	FormatHex ColorFormat = iota
	FormatRGB
	FormatHSL
)

// Next cycles hex -> rgb -> hsl -> hex.
func (f ColorFormat) Next() ColorFormat {
	return (f + 1) % 3
}

func (f ColorFormat) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatHSL:
		return "hsl"
	default:
		return "hex"
	}
}

// FormatColor renders c for display.
func FormatColor(c RGB, f ColorFormat) string {
	switch f {
	case FormatRGB:
		return fmt.Sprintf("RGB(%d, %d, %d)", c.R, c.G, c.B)
	case FormatHSL:
		cf, _ := colorful.MakeColor(c.Color())
		h, s, l := cf.Hsl()
		return fmt.Sprintf("HSL(%d°, %d%%, %d%%)", int(math.Round(h)), int(math.Round(s*100)), int(math.Round(l*100)))
	default:
		return c.String()
	}
}
