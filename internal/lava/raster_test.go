package lava

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Surface that remembers what the rasterizer asked for.
type recorder struct {
	clears int
	rects  []image.Rectangle
	fills  []Gradient
	glows  []Glow
}

func (r *recorder) Clear() {
	r.clears++
	r.rects = nil
}

func (r *recorder) Rect(x, y, w, h int) {
	r.rects = append(r.rects, image.Rect(x, y, x+w, y+h))
}

func (r *recorder) Fill(g Gradient) { r.fills = append(r.fills, g) }

func (r *recorder) Glow(c color.NRGBA, blur float64) {
	r.glows = append(r.glows, Glow{Color: c, Blur: blur})
}

func (r *recorder) Valid() bool { return r != nil }

var testStyle = Style{
	Start: color.RGBA{R: 0xD9, G: 0x46, B: 0xEF, A: 0xFF},
	End:   color.RGBA{R: 0x9B, G: 0x87, B: 0xF5, A: 0xFF},
	Axis:  AxisDiagonal,
	Glow:  Glow{Color: color.NRGBA{R: 155, G: 135, B: 245, A: 153}, Blur: 20},
}

func TestFieldAtCenterIsFilled(t *testing.T) {
	blobs := []Blob{{X: 100, Y: 100, Radius: 50}}
	v := Field(blobs, 100, 100)
	assert.True(t, math.IsInf(v, 1))
	assert.Greater(t, v, Threshold)
}

func TestFieldSum(t *testing.T) {
	blobs := []Blob{
		{X: 0, Y: 0, Radius: 10},
		{X: 30, Y: 0, Radius: 20},
	}
	// 100/100 + 400/400
	assert.InDelta(t, 2.0, Field(blobs, 10, 0), 1e-12)
	assert.Equal(t, 0.0, Field(nil, 10, 0))
}

func TestFieldMonotonic(t *testing.T) {
	blobs := []Blob{
		{X: 200, Y: 200, Radius: 40},
		{X: 260, Y: 210, Radius: 25},
		{X: 230, Y: 180, Radius: 30},
	}
	// moving toward every center at once: shrink the sample toward the
	// blobs' bounding box from outside
	far := Field(blobs, 500, 500)
	mid := Field(blobs, 400, 400)
	near := Field(blobs, 300, 300)
	assert.LessOrEqual(t, far, mid)
	assert.LessOrEqual(t, mid, near)
}

func TestStepSize(t *testing.T) {
	assert.Equal(t, 10, StepSize(1))
	assert.Equal(t, 6, StepSize(5))
	assert.Equal(t, 1, StepSize(10))
	assert.Equal(t, 10, StepSize(0))
	assert.Equal(t, 1, StepSize(42))
}

func TestRenderSingleBlob(t *testing.T) {
	rec := &recorder{}
	blobs := []Blob{{X: 50, Y: 50, Radius: 20}}
	n := Render(rec, blobs, 100, 100, testStyle, 10)

	assert.Equal(t, 1, rec.clears)
	require.Len(t, rec.fills, 1)
	require.Len(t, rec.glows, 1)
	assert.Equal(t, n, len(rec.rects))

	// corners with distance < 20 from (50, 50): (40,40) (40,50) (50,40) (50,50)
	// (40,60) (60,40) (50,60) (60,50) (60,60) are at distance <= 14.2
	want := map[image.Point]bool{}
	for _, x := range []int{40, 50, 60} {
		for _, y := range []int{40, 50, 60} {
			want[image.Pt(x, y)] = true
		}
	}
	got := map[image.Point]bool{}
	for _, r := range rec.rects {
		assert.Equal(t, 10, r.Dx())
		assert.Equal(t, 10, r.Dy())
		got[r.Min] = true
	}
	assert.Equal(t, want, got)

	g := rec.fills[0]
	assert.Equal(t, testStyle.Start, g.Start)
	assert.Equal(t, testStyle.End, g.End)
	assert.Equal(t, 100, g.Width)
	assert.Equal(t, testStyle.Glow, rec.glows[0])
}

func TestRenderBlobCenterOnSample(t *testing.T) {
	rec := &recorder{}
	// radius tiny enough that only the exact center sample passes
	blobs := []Blob{{X: 30, Y: 20, Radius: 0.001}}
	n := Render(rec, blobs, 100, 100, testStyle, 10)

	assert.Equal(t, 1, n)
	assert.Equal(t, image.Rect(30, 20, 40, 30), rec.rects[0])
}

func TestRenderNoBlobs(t *testing.T) {
	rec := &recorder{}
	assert.Equal(t, 0, Render(rec, nil, 100, 100, testStyle, 5))
	assert.Empty(t, rec.rects)
	assert.Len(t, rec.fills, 1)
}

func TestRenderZeroViewport(t *testing.T) {
	rec := &recorder{}
	blobs := []Blob{{X: 0, Y: 0, Radius: 20}}
	assert.Equal(t, 0, Render(rec, blobs, 0, 100, testStyle, 5))
	assert.Equal(t, 1, rec.clears)
	assert.Empty(t, rec.fills)
	assert.Empty(t, rec.glows)

	assert.Equal(t, 0, Render(nil, blobs, 100, 100, testStyle, 5))
}

func TestRenderNilSurface(t *testing.T) {
	blobs := []Blob{{X: 50, Y: 50, Radius: 20}}
	var rec *recorder
	assert.NotPanics(t, func() {
		assert.Equal(t, 0, Render(rec, blobs, 100, 100, testStyle, 5))
	})
}

func TestRenderFinerStepFillsMore(t *testing.T) {
	blobs := []Blob{{X: 103, Y: 97, Radius: 33}}
	coarse := &recorder{}
	fine := &recorder{}
	Render(coarse, blobs, 200, 200, testStyle, StepSize(1))
	Render(fine, blobs, 200, 200, testStyle, StepSize(10))

	assert.Greater(t, len(fine.rects), len(coarse.rects))
	// the fine grid covers roughly the disc area
	assert.InDelta(t, math.Pi*33*33, float64(len(fine.rects)), 200)
}

func TestGradientLine(t *testing.T) {
	g := NewGradient(AxisDiagonal, 200, 100, testStyle.Start, testStyle.End)
	x0, y0, x1, y1 := g.Line()
	assert.Equal(t, [4]float64{0, 0, 200, 100}, [4]float64{x0, y0, x1, y1})

	v := NewGradient(AxisVertical, 200, 100, testStyle.Start, testStyle.End)
	x0, y0, x1, y1 = v.Line()
	assert.Equal(t, [4]float64{0, 100, 0, 0}, [4]float64{x0, y0, x1, y1})
}

func TestGradientPalette(t *testing.T) {
	g := NewGradient(AxisVertical, 10, 10, testStyle.Start, testStyle.End)
	p, err := g.Palette(256)
	require.NoError(t, err)
	require.Len(t, p, 256)
	assert.Equal(t, testStyle.Start, p[0])
	assert.Equal(t, testStyle.End, p[255])

	p, err = g.Palette(1)
	require.NoError(t, err)
	assert.Len(t, p, 1)

	p, err = g.Palette(0)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGlowFrom(t *testing.T) {
	glow := GlowFrom(color.RGBA{R: 0x9B, G: 0x87, B: 0xF5, A: 0xFF})
	assert.Equal(t, DefaultGlowBlur, glow.Blur)
	assert.Equal(t, uint8(153), glow.Color.A)
	// already light: color kept
	assert.InDelta(t, 0x9B, int(glow.Color.R), 1)
	assert.InDelta(t, 0x87, int(glow.Color.G), 1)
	assert.InDelta(t, 0xF5, int(glow.Color.B), 1)

	dark := GlowFrom(color.RGBA{R: 40, A: 255})
	assert.Greater(t, dark.Color.R, uint8(200))
	assert.Zero(t, dark.Color.G)
}

func TestAxisString(t *testing.T) {
	assert.Equal(t, "diagonal", AxisDiagonal.String())
	assert.Equal(t, "vertical", AxisVertical.String())
}
