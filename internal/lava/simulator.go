package lava

import (
	"math"
	"math/rand"
	"time"
)

const (
	MinBlobs = 1
	MaxBlobs = 24

	MinSpeed = 1
	MaxSpeed = 200

	// Radii are derived from the viewport width.
	maxRadiusRatio = 0.1
	minRadiusRatio = 0.05

	// Blobs start up to this many pixels below the bottom edge.
	spawnDepth = 100

	// A blob is recycled once it is this many radii above the top edge.
	recycleRadii = 2

	baseSpeed = 50.0
)

// Blob is a circular field source. Radius is fixed at creation.
type Blob struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Pointer is the last known cursor position in surface coordinates.
type Pointer struct {
	X, Y    float64
	Present bool
}

// Rand is the randomness used for spawning and recycling blobs.
type Rand interface {
	Float64() float64
}

// Physics controls how the pointer pushes blobs away.
type Physics struct {
	RepulsionRange float64
	RepulsionForce float64
}

// DefaultPhysics is the fixed repulsion policy.
var DefaultPhysics = Physics{RepulsionRange: 150, RepulsionForce: 5}

// Scaled returns p with range and force multiplied by stickiness/100.
func (p Physics) Scaled(stickiness int) Physics {
	k := float64(stickiness) / 100
	return Physics{
		RepulsionRange: p.RepulsionRange * k,
		RepulsionForce: p.RepulsionForce * k,
	}
}

// Simulator owns the blob collection and advances it one step per frame.
type Simulator struct {
	blobs   []Blob
	pointer Pointer
	physics Physics
	rnd     Rand

	// last applied reset inputs, see OnConfigChanged
	count int
	speed int
}

// NewSimulator returns an empty simulator. A nil rnd uses a time-seeded source.
func NewSimulator(rnd Rand) *Simulator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{rnd: rnd, physics: DefaultPhysics}
}

// Reset replaces every blob with a fresh batch spawned below the viewport.
// Count and speed are clamped to their valid ranges.
func (s *Simulator) Reset(width, height, count, speed int) {
	count = clampInt(count, MinBlobs, MaxBlobs)
	speed = clampInt(speed, MinSpeed, MaxSpeed)
	s.count, s.speed = count, speed

	if width <= 0 || height <= 0 {
		s.blobs = nil
		return
	}

	w, h := float64(width), float64(height)
	maxRadius := w * maxRadiusRatio
	minRadius := maxRadius * minRadiusRatio
	mul := float64(speed) / baseSpeed

	blobs := make([]Blob, count)
	for i := range blobs {
		b := &blobs[i]
		b.X = s.rnd.Float64() * w
		b.Y = h + s.rnd.Float64()*spawnDepth
		b.VX = (s.rnd.Float64() - 0.5) * mul
		b.VY = (s.rnd.Float64() - 1.5) * mul
		b.Radius = minRadius + s.rnd.Float64()*(maxRadius-minRadius)
	}
	s.blobs = blobs
}

// OnConfigChanged resets the blobs when count or speed differ from the last
// reset. Colors and smoothness are read at render time and need no reset.
func (s *Simulator) OnConfigChanged(count, speed, width, height int) bool {
	if clampInt(count, MinBlobs, MaxBlobs) == s.count &&
		clampInt(speed, MinSpeed, MaxSpeed) == s.speed && s.blobs != nil {
		return false
	}
	s.Reset(width, height, count, speed)
	return true
}

func (s *Simulator) SetPointer(x, y float64) {
	s.pointer = Pointer{X: x, Y: y, Present: true}
}

func (s *Simulator) ClearPointer() {
	s.pointer = Pointer{}
}

func (s *Simulator) Pointer() Pointer { return s.pointer }

func (s *Simulator) SetPhysics(p Physics) { s.physics = p }

// Blobs returns the current blobs. Callers must not modify them.
func (s *Simulator) Blobs() []Blob { return s.blobs }

// Advance moves every blob by one frame.
func (s *Simulator) Advance(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w, h := float64(width), float64(height)
	for i := range s.blobs {
		s.step(&s.blobs[i], w, h)
	}
}

func (s *Simulator) step(b *Blob, w, h float64) {
	b.X += b.VX
	b.Y += b.VY

	if b.X < b.Radius {
		b.X = b.Radius
		b.VX = -b.VX
	}
	if b.X > w-b.Radius {
		b.X = w - b.Radius
		b.VX = -b.VX
	}

	if b.Y < -recycleRadii*b.Radius {
		b.Y = h + b.Radius
		b.X = s.rnd.Float64() * w
	}

	if !s.pointer.Present {
		return
	}
	dx := s.pointer.X - b.X
	dy := s.pointer.Y - b.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	// no direction to push along when the pointer sits on the center
	if dist == 0 || dist >= s.physics.RepulsionRange {
		return
	}
	push := (s.physics.RepulsionRange - dist) / s.physics.RepulsionRange * s.physics.RepulsionForce
	b.X -= dx / dist * push
	b.Y -= dy / dist * push
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
