package lava

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand replays a fixed sequence of values, wrapping around.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func singleBlob(b Blob) *Simulator {
	s := NewSimulator(&seqRand{vals: []float64{0.25}})
	s.blobs = []Blob{b}
	return s
}

func TestResetDrawOrder(t *testing.T) {
	rnd := &seqRand{vals: []float64{0.5, 0.25, 0.75, 0.5, 0.5}}
	s := NewSimulator(rnd)
	s.Reset(800, 600, 1, 100)

	require.Len(t, s.Blobs(), 1)
	b := s.Blobs()[0]
	assert.Equal(t, 400.0, b.X)
	assert.Equal(t, 625.0, b.Y)
	// speed 100 doubles the base velocities
	assert.Equal(t, 0.5, b.VX)
	assert.Equal(t, -2.0, b.VY)
	// max radius 80, min radius 4
	assert.Equal(t, 42.0, b.Radius)
	assert.Equal(t, 5, rnd.i)
}

func TestResetRadiusBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for _, dims := range [][2]int{{1, 1}, {320, 200}, {1920, 1080}, {300, 2000}} {
		for count := 1; count <= MaxBlobs; count += 5 {
			s := NewSimulator(rnd)
			s.Reset(dims[0], dims[1], count, 50)

			maxRadius := float64(dims[0]) * 0.1
			minRadius := maxRadius * 0.05
			require.LessOrEqual(t, minRadius, maxRadius)
			require.Len(t, s.Blobs(), count)
			for _, b := range s.Blobs() {
				assert.GreaterOrEqual(t, b.Radius, minRadius)
				assert.LessOrEqual(t, b.Radius, maxRadius)
				assert.Greater(t, b.Radius, 0.0)
				assert.GreaterOrEqual(t, b.Y, float64(dims[1]))
				assert.Less(t, b.VY, 0.0)
			}
		}
	}
}

func TestResetClampsCount(t *testing.T) {
	s := NewSimulator(rand.New(rand.NewSource(1)))

	s.Reset(800, 600, 0, 50)
	assert.Len(t, s.Blobs(), MinBlobs)

	s.Reset(800, 600, -3, 50)
	assert.Len(t, s.Blobs(), MinBlobs)

	s.Reset(800, 600, 100, 50)
	assert.Len(t, s.Blobs(), MaxBlobs)
}

func TestResetClampsSpeed(t *testing.T) {
	vals := []float64{0.5, 0.25, 0.75, 0.5, 0.5}
	reset := func(speed int) Blob {
		s := NewSimulator(&seqRand{vals: vals})
		s.Reset(800, 600, 1, speed)
		require.Len(t, s.Blobs(), 1)
		return s.Blobs()[0]
	}

	slowest := reset(MinSpeed)
	for _, speed := range []int{0, -50} {
		b := reset(speed)
		assert.Equal(t, slowest, b, "speed %d", speed)
		assert.Less(t, b.VY, 0.0, "speed %d must still rise", speed)
	}
	assert.Equal(t, reset(MaxSpeed), reset(500))
}

func TestClampedSpeedRises(t *testing.T) {
	s := NewSimulator(rand.New(rand.NewSource(3)))
	s.Reset(800, 600, 3, -50)
	start := append([]Blob(nil), s.Blobs()...)
	for i := 0; i < 100; i++ {
		s.Advance(800, 600)
	}
	for i, b := range s.Blobs() {
		assert.Less(t, b.Y, start[i].Y)
	}
}

func TestResetReplacesBlobs(t *testing.T) {
	s := NewSimulator(rand.New(rand.NewSource(1)))
	s.Reset(800, 600, 4, 50)
	first := s.Blobs()
	first[0].X = -999

	s.Reset(800, 600, 4, 50)
	assert.NotEqual(t, -999.0, s.Blobs()[0].X)
	assert.Len(t, s.Blobs(), 4)
}

func TestResetZeroViewport(t *testing.T) {
	s := NewSimulator(rand.New(rand.NewSource(1)))
	s.Reset(800, 600, 4, 50)
	s.Reset(0, 600, 4, 50)
	assert.Empty(t, s.Blobs())

	// advancing nothing is fine
	s.Advance(0, 0)
	assert.Empty(t, s.Blobs())
}

func TestAdvanceIntegratesFreely(t *testing.T) {
	s := singleBlob(Blob{X: 400, Y: 300, VX: 0.7, VY: -1.2, Radius: 50})
	s.SetPointer(1000, 1000)
	s.Advance(800, 600)

	b := s.Blobs()[0]
	assert.Equal(t, 400+0.7, b.X)
	assert.Equal(t, 300-1.2, b.Y)
	assert.Equal(t, 0.7, b.VX)
	assert.Equal(t, -1.2, b.VY)
}

func TestAdvanceReflectsLeftWall(t *testing.T) {
	s := singleBlob(Blob{X: 10, Y: 300, VX: -1, VY: 0, Radius: 50})
	s.Advance(800, 600)

	b := s.Blobs()[0]
	assert.Equal(t, 50.0, b.X)
	assert.Equal(t, 1.0, b.VX)
}

func TestAdvanceReflectsRightWall(t *testing.T) {
	s := singleBlob(Blob{X: 760, Y: 300, VX: 2, VY: 0, Radius: 50})
	s.Advance(800, 600)

	b := s.Blobs()[0]
	assert.Equal(t, 750.0, b.X)
	assert.Equal(t, -2.0, b.VX)
}

func TestAdvanceReflectionAtBoundary(t *testing.T) {
	s := singleBlob(Blob{X: 50, Y: 300, VX: -0.5, VY: 0, Radius: 50})
	s.Advance(800, 600)

	b := s.Blobs()[0]
	assert.Equal(t, 50.0, b.X)
	assert.Greater(t, b.VX, 0.0)
}

func TestAdvanceExactBoundaryIsNotReflection(t *testing.T) {
	// lands exactly on x == radius
	s := singleBlob(Blob{X: 51, Y: 300, VX: -1, VY: 0, Radius: 50})
	s.Advance(800, 600)

	b := s.Blobs()[0]
	assert.Equal(t, 50.0, b.X)
	assert.Equal(t, -1.0, b.VX)
}

func TestAdvanceRecyclesAboveTop(t *testing.T) {
	s := singleBlob(Blob{X: 400, Y: -120, VX: 0.3, VY: -1, Radius: 50})
	s.Advance(800, 600)

	b := s.Blobs()[0]
	assert.Equal(t, 650.0, b.Y)
	assert.Equal(t, 200.0, b.X) // 0.25 * 800
	assert.GreaterOrEqual(t, b.X, 0.0)
	assert.Less(t, b.X, 800.0)
	assert.Equal(t, 0.3, b.VX)
	assert.Equal(t, -1.0, b.VY)
	assert.Equal(t, 50.0, b.Radius)
}

func TestAdvanceKeepsBlobBetweenOneAndTwoRadiiAbove(t *testing.T) {
	s := singleBlob(Blob{X: 400, Y: -98, VX: 0, VY: -1, Radius: 50})
	s.Advance(800, 600)
	assert.Equal(t, -99.0, s.Blobs()[0].Y)
}

func TestAdvanceRepulsion(t *testing.T) {
	s := singleBlob(Blob{X: 400, Y: 300, Radius: 50})
	s.SetPointer(450, 300)
	s.Advance(800, 600)

	// distance 50 of 150: push (100/150)*5 to the left
	b := s.Blobs()[0]
	assert.InDelta(t, 400-10.0/3, b.X, 1e-9)
	assert.InDelta(t, 300.0, b.Y, 1e-9)
	// position only, velocity untouched
	assert.Equal(t, 0.0, b.VX)
	assert.Equal(t, 0.0, b.VY)
}

func TestAdvanceRepulsionOutOfRange(t *testing.T) {
	s := singleBlob(Blob{X: 400, Y: 300, Radius: 50})
	s.SetPointer(550, 300)
	s.Advance(800, 600)
	assert.Equal(t, 400.0, s.Blobs()[0].X)
}

func TestAdvancePointerOnCenter(t *testing.T) {
	s := singleBlob(Blob{X: 400, Y: 300, Radius: 50})
	s.SetPointer(400, 300)
	s.Advance(800, 600)

	b := s.Blobs()[0]
	assert.Equal(t, 400.0, b.X)
	assert.Equal(t, 300.0, b.Y)
}

func TestAdvanceAbsentPointer(t *testing.T) {
	s := singleBlob(Blob{X: 1, Y: 1, Radius: 0.5})
	s.ClearPointer()
	s.Advance(800, 600)
	assert.Equal(t, Blob{X: 1, Y: 1, Radius: 0.5}, s.Blobs()[0])
	assert.False(t, s.Pointer().Present)
}

func TestAdvanceScaledRepulsion(t *testing.T) {
	s := singleBlob(Blob{X: 400, Y: 300, Radius: 50})
	s.SetPhysics(DefaultPhysics.Scaled(200))
	s.SetPointer(400, 450)
	s.Advance(800, 600)

	// range 300, force 10: distance 150 pushes 5 up
	assert.InDelta(t, 295.0, s.Blobs()[0].Y, 1e-9)
}

func TestAdvanceDeterministic(t *testing.T) {
	blobs := []Blob{
		{X: 100, Y: 200, VX: 0.4, VY: -1, Radius: 30},
		{X: 600, Y: 400, VX: -0.2, VY: -0.7, Radius: 45},
	}
	a := NewSimulator(&seqRand{vals: []float64{0.1}})
	b := NewSimulator(&seqRand{vals: []float64{0.9}})
	a.blobs = append([]Blob(nil), blobs...)
	b.blobs = append([]Blob(nil), blobs...)
	a.SetPointer(150, 210)
	b.SetPointer(150, 210)

	for i := 0; i < 50; i++ {
		a.Advance(800, 600)
		b.Advance(800, 600)
	}
	assert.Equal(t, a.Blobs(), b.Blobs())
}

func TestAdvanceStaysNearWalls(t *testing.T) {
	s := NewSimulator(rand.New(rand.NewSource(3)))
	s.Reset(640, 480, MaxBlobs, 200)
	s.SetPointer(320, 240)

	for i := 0; i < 2000; i++ {
		prev := append([]Blob(nil), s.Blobs()...)
		s.Advance(640, 480)
		for j, b := range s.Blobs() {
			if b.Y > prev[j].Y+DefaultPhysics.RepulsionForce {
				// recycled this frame, x is resampled anywhere in [0, w)
				continue
			}
			slack := abs(b.VX) + DefaultPhysics.RepulsionForce + 1e-9
			require.GreaterOrEqual(t, b.X, b.Radius-slack)
			require.LessOrEqual(t, b.X, 640-b.Radius+slack)
		}
	}
}

func TestOnConfigChanged(t *testing.T) {
	s := NewSimulator(rand.New(rand.NewSource(1)))
	assert.True(t, s.OnConfigChanged(6, 50, 800, 600))
	assert.Len(t, s.Blobs(), 6)

	assert.False(t, s.OnConfigChanged(6, 50, 800, 600))

	assert.True(t, s.OnConfigChanged(6, 80, 800, 600))
	assert.True(t, s.OnConfigChanged(9, 80, 800, 600))
	assert.Len(t, s.Blobs(), 9)

	// 0 clamps to the current minimum, which differs from 9
	assert.True(t, s.OnConfigChanged(0, 80, 800, 600))
	assert.Len(t, s.Blobs(), 1)
	assert.False(t, s.OnConfigChanged(1, 80, 800, 600))

	// speeds below the minimum compare as the minimum
	assert.True(t, s.OnConfigChanged(1, 0, 800, 600))
	assert.False(t, s.OnConfigChanged(1, MinSpeed, 800, 600))
	assert.False(t, s.OnConfigChanged(1, -50, 800, 600))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
