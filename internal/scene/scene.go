// Package scene ties the blob simulation, the rasterizer and the live
// settings together into one frame step.
package scene

import (
	"context"
	"image"

	"github.com/iburimskiy/lava-lamp/internal/canvas"
	"github.com/iburimskiy/lava-lamp/internal/config"
	"github.com/iburimskiy/lava-lamp/internal/lava"
)

// Scene advances and rasterizes the lamp once per Step.
type Scene struct {
	sim    *lava.Simulator
	canvas *canvas.Canvas
	cfg    config.Config

	width, height int
	filled        int
	frames        uint64
}

// New builds a scene for a viewport. A nil rnd uses a time-seeded source.
func New(cfg config.Config, width, height int, rnd lava.Rand) *Scene {
	cfg.Normalize()
	s := &Scene{
		sim:    lava.NewSimulator(rnd),
		canvas: canvas.New(width, height, canvas.DarkBackground),
		cfg:    cfg,
		width:  width,
		height: height,
	}
	s.sim.SetPhysics(cfg.Physics())
	s.sim.Reset(width, height, cfg.BlobCount, cfg.Speed)
	return s
}

func (s *Scene) Config() config.Config { return s.cfg }

// Apply swaps in a new settings snapshot. Blob count or speed changes
// respawn the blobs; everything else shows up on the next Step.
func (s *Scene) Apply(cfg config.Config) (reset bool) {
	cfg.Normalize()
	s.cfg = cfg
	s.sim.SetPhysics(cfg.Physics())
	return s.sim.OnConfigChanged(cfg.BlobCount, cfg.Speed, s.width, s.height)
}

// Resize respawns the blobs when the viewport size changed.
func (s *Scene) Resize(width, height int) bool {
	if width == s.width && height == s.height {
		return false
	}
	s.width, s.height = width, height
	s.canvas.Resize(width, height)
	s.sim.Reset(width, height, s.cfg.BlobCount, s.cfg.Speed)
	return true
}

func (s *Scene) Size() (int, int) { return s.width, s.height }

func (s *Scene) SetPointer(x, y float64) { s.sim.SetPointer(x, y) }

func (s *Scene) ClearPointer() { s.sim.ClearPointer() }

// Step advances the blobs by one frame and rasterizes them. swell in [0, 1]
// widens and brightens the glow; 0 leaves it as configured.
func (s *Scene) Step(swell float64) {
	s.sim.Advance(s.width, s.height)

	style := s.cfg.Style()
	if swell > 0 {
		style.Glow.Blur *= 1 + swell
		a := float64(style.Glow.Color.A) * (1 + swell/2)
		if a > 255 {
			a = 255
		}
		style.Glow.Color.A = uint8(a)
	}
	s.filled = lava.Render(s.canvas, s.sim.Blobs(), s.width, s.height, style, s.cfg.StepSize())
	s.frames++
}

// Image is the last rendered frame. It is reused by the next Step.
func (s *Scene) Image() *image.RGBA { return s.canvas.Image() }

func (s *Scene) Blobs() []lava.Blob { return s.sim.Blobs() }

// Filled is the number of grid cells filled in the last frame.
func (s *Scene) Filled() int { return s.filled }

func (s *Scene) Frames() uint64 { return s.frames }

// Headless renders frames without a window and returns the last one.
// Cancellation is checked between frames.
func Headless(ctx context.Context, cfg config.Config, width, height, frames int, rnd lava.Rand) (*image.RGBA, error) {
	s := New(cfg, width, height, rnd)
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return s.Image(), err
		}
		s.Step(0)
	}
	return s.Image(), nil
}
