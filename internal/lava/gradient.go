package lava

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/colorgrad"
)

// Axis is the direction the fill gradient runs along.
type Axis int

const (
	// AxisDiagonal runs from the top-left corner to the bottom-right corner.
	AxisDiagonal Axis = iota
	// AxisVertical runs from the bottom edge to the top edge.
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	default:
		return "diagonal"
	}
}

// Gradient is a two-stop linear gradient spanning the viewport.
type Gradient struct {
	Axis          Axis
	Width, Height int
	Start, End    color.RGBA
}

func NewGradient(axis Axis, width, height int, start, end color.RGBA) Gradient {
	return Gradient{Axis: axis, Width: width, Height: height, Start: start, End: end}
}

// Line returns the gradient's start and end points in surface coordinates.
func (g Gradient) Line() (x0, y0, x1, y1 float64) {
	w, h := float64(g.Width), float64(g.Height)
	if g.Axis == AxisVertical {
		return 0, h, 0, 0
	}
	return 0, 0, w, h
}

// Palette samples the gradient into n evenly spaced colors.
func (g Gradient) Palette(n int) ([]color.RGBA, error) {
	if n < 1 {
		return nil, nil
	}
	grad, err := colorgrad.NewGradient().Colors(g.Start, g.End).Build()
	if err != nil {
		return nil, fmt.Errorf("build gradient %v-%v: %w", g.Start, g.End, err)
	}
	out := make([]color.RGBA, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r, gg, b := grad.At(t).Clamped().RGB255()
		out[i] = color.RGBA{R: r, G: gg, B: b, A: 255}
	}
	return out, nil
}

const (
	DefaultGlowBlur  = 20.0
	DefaultGlowAlpha = 0.6

	// glow keeps the start hue but never goes darker than this
	minGlowLightness = 0.5
)

// Glow is the halo drawn once per frame around the filled shape.
type Glow struct {
	Color color.NRGBA
	Blur  float64
}

// GlowFrom derives the default glow from the gradient start color.
func GlowFrom(start color.RGBA) Glow {
	start.A = 255
	c, _ := colorful.MakeColor(start)
	h, s, l := c.Hsl()
	r, g, b := colorful.Hsl(h, s, math.Max(l, minGlowLightness)).Clamped().RGB255()
	return Glow{
		Color: color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(DefaultGlowAlpha * 255))},
		Blur:  DefaultGlowBlur,
	}
}
