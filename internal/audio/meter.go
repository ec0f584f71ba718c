// Package audio measures the loudness of a playing soundtrack.
package audio

import "math"

// Meter turns raw samples into a smoothed loudness in [0, 1].
type Meter struct {
	// Smoothing is the weight kept from the previous level, in [0, 1).
	Smoothing float64
	level     float64
}

func NewMeter(smoothing float64) *Meter {
	return &Meter{Smoothing: clamp01(smoothing)}
}

// Update folds a new block of samples into the level and returns it.
func (m *Meter) Update(samples [][2]float64) float64 {
	var mag float64
	if len(samples) > 0 {
		var sumSquares float64
		for _, s := range samples {
			mono := (s[0] + s[1]) * 0.5
			sumSquares += mono * mono
		}
		rms := math.Sqrt(sumSquares / float64(len(samples)))
		// compress so quiet passages still move the glow
		mag = clamp01(math.Pow(rms, 0.3))
	}
	m.level = m.Smoothing*m.level + (1-m.Smoothing)*mag
	return m.level
}

func (m *Meter) Level() float64 { return m.level }

func (m *Meter) Reset() { m.level = 0 }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
