package config

import (
	"github.com/iburimskiy/lava-lamp/internal/lava"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Audio level tap
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	LevelWindow     = 2048

	// Panel dimensions
	PanelWidth  = 260
	PanelX      = 12
	PanelY      = 12
	PanelLine   = 16
	PanelMargin = 10

	// Setting ranges
	MinBlobs      = lava.MinBlobs
	MaxBlobs      = lava.MaxBlobs
	MinSpeed      = lava.MinSpeed
	MaxSpeed      = lava.MaxSpeed
	MinSmoothness = lava.MinSmoothness
	MaxSmoothness = lava.MaxSmoothness
	MinStickiness = 1
	MaxStickiness = 200

	// Defaults
	DefaultBlobs      = 12
	DefaultSpeed      = 50
	DefaultSmoothness = 5
	DefaultStickiness = 100
)

// Axis names accepted in flags and preset files.
const (
	AxisDiagonal = "diagonal"
	AxisVertical = "vertical"
)

// Config is the live settings snapshot. The simulation reads it and never
// writes it back.
type Config struct {
	BlobCount  int `json:"blobCount"`
	Speed      int `json:"speed"`
	Smoothness int `json:"smoothness"`

	GradientStart RGB    `json:"gradientStart"`
	GradientEnd   RGB    `json:"gradientEnd"`
	Axis          string `json:"axis"`

	// Stickiness scales the pointer repulsion when ScaleRepulsion is set.
	Stickiness     int  `json:"stickiness"`
	ScaleRepulsion bool `json:"scaleRepulsion"`

	// GlowColor overrides the glow derived from GradientStart.
	GlowColor *RGB    `json:"glowColor,omitempty"`
	GlowBlur  float64 `json:"glowBlur"`
}

func Default() Config {
	return Config{
		BlobCount:     DefaultBlobs,
		Speed:         DefaultSpeed,
		Smoothness:    DefaultSmoothness,
		GradientStart: ColorPairs[0].Start,
		GradientEnd:   ColorPairs[0].End,
		Axis:          AxisDiagonal,
		Stickiness:    DefaultStickiness,
		GlowBlur:      lava.DefaultGlowBlur,
	}
}

// Normalize clamps every value into its valid range.
func (c *Config) Normalize() {
	c.BlobCount = clamp(c.BlobCount, MinBlobs, MaxBlobs)
	c.Speed = clamp(c.Speed, MinSpeed, MaxSpeed)
	c.Smoothness = clamp(c.Smoothness, MinSmoothness, MaxSmoothness)
	c.Stickiness = clamp(c.Stickiness, MinStickiness, MaxStickiness)
	if c.Axis != AxisVertical {
		c.Axis = AxisDiagonal
	}
	if c.GlowBlur < 0 {
		c.GlowBlur = 0
	}
}

func (c Config) StepSize() int {
	return lava.StepSize(c.Smoothness)
}

func (c Config) GradientAxis() lava.Axis {
	if c.Axis == AxisVertical {
		return lava.AxisVertical
	}
	return lava.AxisDiagonal
}

// Style builds the rasterizer style for this config.
func (c Config) Style() lava.Style {
	start := c.GradientStart.Color()
	glow := lava.GlowFrom(start)
	if c.GlowColor != nil {
		glow.Color = c.GlowColor.NRGBA(glow.Color.A)
	}
	glow.Blur = c.GlowBlur
	return lava.Style{
		Start: start,
		End:   c.GradientEnd.Color(),
		Axis:  c.GradientAxis(),
		Glow:  glow,
	}
}

// Physics returns the pointer repulsion policy for this config.
func (c Config) Physics() lava.Physics {
	if c.ScaleRepulsion {
		return lava.DefaultPhysics.Scaled(c.Stickiness)
	}
	return lava.DefaultPhysics
}

// ToggleAxis switches between the diagonal and vertical gradient.
func (c *Config) ToggleAxis() {
	if c.Axis == AxisVertical {
		c.Axis = AxisDiagonal
	} else {
		c.Axis = AxisVertical
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
