package lava

import (
	"image/color"
	"math"
)

// Threshold is the field value a cell must exceed to be filled.
const Threshold = 1.0

const (
	MinSmoothness = 1
	MaxSmoothness = 10
)

// Surface is the minimal drawing target the rasterizer needs.
type Surface interface {
	// Clear erases the previous frame and the accumulated path.
	Clear()
	// Rect adds a cell to the fill path.
	Rect(x, y, w, h int)
	// Fill paints the accumulated path with g.
	Fill(g Gradient)
	// Glow composites a soft halo around everything filled so far.
	Glow(c color.NRGBA, blur float64)
	// Valid reports whether the surface can be drawn on. It must be safe
	// to call on a nil receiver.
	Valid() bool
}

// Style is the per-frame look of the metaballs.
type Style struct {
	Start, End color.RGBA
	Axis       Axis
	Glow       Glow
}

// Field returns the metaball field at (x, y): the sum of r²/d² over blobs.
// A sample on a blob center yields +Inf.
func Field(blobs []Blob, x, y float64) float64 {
	var sum float64
	for i := range blobs {
		dx := x - blobs[i].X
		dy := y - blobs[i].Y
		d2 := dx*dx + dy*dy
		if d2 == 0 {
			return math.Inf(1)
		}
		sum += blobs[i].Radius * blobs[i].Radius / d2
	}
	return sum
}

// StepSize maps an edge smoothness level to a grid cell size in pixels.
func StepSize(smoothness int) int {
	return 11 - clampInt(smoothness, MinSmoothness, MaxSmoothness)
}

// Render rasterizes blobs onto s and returns the number of filled cells.
// Cells are sampled at their top-left corner. A missing surface makes the
// frame a no-op.
func Render(s Surface, blobs []Blob, width, height int, style Style, step int) int {
	if s == nil || !s.Valid() {
		return 0
	}
	s.Clear()
	if width <= 0 || height <= 0 {
		return 0
	}
	if step < 1 {
		step = 1
	}

	filled := 0
	for x := 0; x < width; x += step {
		for y := 0; y < height; y += step {
			if Field(blobs, float64(x), float64(y)) > Threshold {
				s.Rect(x, y, step, step)
				filled++
			}
		}
	}

	s.Fill(NewGradient(style.Axis, width, height, style.Start, style.End))
	s.Glow(style.Glow.Color, style.Glow.Blur)
	return filled
}
