// Package canvas is a lava.Surface drawn on the CPU with tfriedel6/canvas.
package canvas

import (
	"image"
	"image/color"

	tcanvas "github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/iburimskiy/lava-lamp/internal/lava"
)

// DarkBackground is the default color behind the blobs.
var DarkBackground = color.RGBA{R: 0x1A, G: 0x1F, B: 0x2C, A: 0xFF}

var noShadow = color.NRGBA{}

type gradientKey struct {
	line       [4]float64
	start, end color.RGBA
}

// Canvas accumulates filled cells into a path and paints it with a gradient
// and a shadow glow. A zero-size canvas is not Valid and draws nothing.
type Canvas struct {
	backend    *softwarebackend.SoftwareBackend
	cv         *tcanvas.Canvas
	empty      *image.RGBA
	background color.RGBA

	// vertically adjacent cells are merged into one run before they reach
	// the path
	run    image.Rectangle
	hasRun bool
	runs   int
	cells  int

	grad    *tcanvas.LinearGradient
	gradFor gradientKey
}

func New(width, height int, background color.RGBA) *Canvas {
	c := &Canvas{background: background, empty: image.NewRGBA(image.Rectangle{})}
	c.Resize(width, height)
	return c
}

// Resize replaces the backend when the size changes.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if b := c.Bounds(); b.Dx() == width && b.Dy() == height {
		return
	}
	c.grad = nil
	c.resetPath()
	if width == 0 || height == 0 {
		c.backend, c.cv = nil, nil
		return
	}
	c.backend = softwarebackend.New(width, height)
	c.cv = tcanvas.New(c.backend)
	c.Clear()
}

// Valid reports whether the canvas has pixels to draw on.
func (c *Canvas) Valid() bool { return c != nil && c.cv != nil }

// Image is the backend's pixel buffer. It is reused by the next frame.
func (c *Canvas) Image() *image.RGBA {
	if !c.Valid() {
		return c.empty
	}
	return c.backend.Image
}

func (c *Canvas) Bounds() image.Rectangle {
	if c == nil {
		return image.Rectangle{}
	}
	return c.Image().Rect
}

func (c *Canvas) Clear() {
	c.resetPath()
	if !c.Valid() {
		return
	}
	b := c.backend.Image.Rect
	c.cv.BeginPath()
	c.cv.SetShadowBlur(0)
	c.cv.SetShadowColor(noShadow)
	c.cv.SetFillStyle(c.background)
	c.cv.FillRect(0, 0, float64(b.Dx()), float64(b.Dy()))
}

func (c *Canvas) resetPath() {
	c.hasRun = false
	c.runs, c.cells = 0, 0
}

// Rect adds a cell to the path.
func (c *Canvas) Rect(x, y, w, h int) {
	if !c.Valid() || w <= 0 || h <= 0 {
		return
	}
	c.cells++
	if c.hasRun && c.run.Min.X == x && c.run.Dx() == w && c.run.Max.Y == y {
		c.run.Max.Y = y + h
		return
	}
	c.flush()
	c.run = image.Rect(x, y, x+w, y+h)
	c.hasRun = true
}

func (c *Canvas) flush() {
	if !c.hasRun {
		return
	}
	r := c.run
	c.cv.Rect(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	c.runs++
	c.hasRun = false
}

// Fill paints the path with g.
func (c *Canvas) Fill(g lava.Gradient) {
	if !c.Valid() {
		return
	}
	c.flush()
	if c.runs == 0 {
		return
	}
	c.cv.SetFillStyle(c.gradient(g))
	c.cv.Fill()
}

func (c *Canvas) gradient(g lava.Gradient) *tcanvas.LinearGradient {
	x0, y0, x1, y1 := g.Line()
	key := gradientKey{line: [4]float64{x0, y0, x1, y1}, start: g.Start, end: g.End}
	if c.grad == nil || c.gradFor != key {
		c.grad = c.cv.CreateLinearGradient(x0, y0, x1, y1)
		c.grad.AddColorStop(0, g.Start)
		c.grad.AddColorStop(1, g.End)
		c.gradFor = key
	}
	return c.grad
}

// Glow fills the path again with a shadow, which lands under the shape as a
// halo. It reuses the fill style set by Fill.
func (c *Canvas) Glow(col color.NRGBA, blur float64) {
	if !c.Valid() || blur <= 0 || col.A == 0 {
		return
	}
	c.flush()
	if c.runs == 0 {
		return
	}
	c.cv.SetShadowColor(col)
	c.cv.SetShadowBlur(blur)
	c.cv.Fill()
	c.cv.SetShadowBlur(0)
	c.cv.SetShadowColor(noShadow)
}

// Cells is the number of cells added since the last Clear.
func (c *Canvas) Cells() int { return c.cells }
