package sketch

import "github.com/gogpu/sketch/internal/noise"

// NoiseCoord is a sample position for NoiseBatch.
type NoiseCoord struct {
	X, Y, Z float64
}

// Noise returns smooth gradient noise at (x, y, z), in [0, 1].
// The noise field is independent of the random stream.
func (s *Sketch) Noise(x, y, z float64) float64 {
	return s.noise.At(x, y, z)
}

// Noise1 returns one-dimensional noise at x.
func (s *Sketch) Noise1(x float64) float64 {
	return s.noise.At(x, 0, 0)
}

// Noise2 returns two-dimensional noise at (x, y).
func (s *Sketch) Noise2(x, y float64) float64 {
	return s.noise.At(x, y, 0)
}

// NoiseBatch samples the noise field at every coordinate and returns the
// values in the same order.
func (s *Sketch) NoiseBatch(coords []NoiseCoord) []float64 {
	out := make([]float64, len(coords))
	for i, c := range coords {
		out[i] = s.noise.At(c.X, c.Y, c.Z)
	}
	return out
}

// NoiseSeed reseeds the noise field. The random stream is not affected.
func (s *Sketch) NoiseSeed(seed uint64) {
	s.noiseSeed = seed
	if s.noise == nil {
		s.noise = noise.New(seed)
		return
	}
	s.noise.Reseed(seed)
}

// NoiseDetail sets the number of octaves summed by Noise and the amplitude
// falloff between octaves. The defaults are 4 and 0.5.
func (s *Sketch) NoiseDetail(octaves int, falloff float64) error {
	if octaves < 1 {
		return argError("NoiseDetail", "octaves must be >= 1, got %d", octaves)
	}
	if falloff < 0 || falloff > 1 {
		return argError("NoiseDetail", "falloff must be in [0, 1], got %v", falloff)
	}
	s.noise.SetDetail(octaves, falloff)
	return nil
}
