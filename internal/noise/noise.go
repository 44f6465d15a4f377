// Package noise implements seeded Perlin gradient noise with octave
// summation.
//
// The permutation table is shuffled from the seed with a PCG generator, so
// the same seed yields the same field on every platform. Values are
// normalized to [0, 1].
package noise

import (
	"math"
	"math/rand/v2"
)

const (
	// DefaultOctaves is the number of octaves summed by a new Field.
	DefaultOctaves = 4
	// DefaultFalloff is the amplitude ratio between consecutive octaves.
	DefaultFalloff = 0.5
)

// Field is a 3D gradient noise field. A Field is immutable after
// configuration and safe for concurrent reads.
type Field struct {
	perm    [512]uint8
	octaves int
	falloff float64
}

// New returns a field whose permutation table is derived from seed.
func New(seed uint64) *Field {
	f := &Field{octaves: DefaultOctaves, falloff: DefaultFalloff}
	f.Reseed(seed)
	return f
}

// Reseed rebuilds the permutation table from seed. Octave settings are kept.
func (f *Field) Reseed(seed uint64) {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })
	for i := range f.perm {
		f.perm[i] = p[i&255]
	}
}

// SetDetail configures octave summation. Octaves below 1 are treated as 1.
// The falloff is clamped to [0, 1].
func (f *Field) SetDetail(octaves int, falloff float64) {
	f.octaves = max(1, octaves)
	f.falloff = min(1, max(0, falloff))
}

// Detail returns the octave count and falloff.
func (f *Field) Detail() (octaves int, falloff float64) {
	return f.octaves, f.falloff
}

// At returns the octave-summed noise value at (x, y, z) in [0, 1].
// Each octave doubles the frequency and multiplies the amplitude by the
// falloff; the sum is normalized by the total amplitude.
func (f *Field) At(x, y, z float64) float64 {
	var sum, total float64
	amp, freq := 1.0, 1.0
	for range f.octaves {
		sum += amp * f.single(x*freq, y*freq, z*freq)
		total += amp
		amp *= f.falloff
		freq *= 2
	}
	if total == 0 {
		return 0.5
	}
	return sum / total
}

// single returns one octave of noise mapped to [0, 1].
func (f *Field) single(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	xi, yi, zi := int(fx)&255, int(fy)&255, int(fz)&255
	x, y, z = x-fx, y-fy, z-fz
	u, v, w := fade(x), fade(y), fade(z)

	p := &f.perm
	a := int(p[xi]) + yi
	aa := int(p[a]) + zi
	ab := int(p[a+1]) + zi
	b := int(p[xi+1]) + yi
	ba := int(p[b]) + zi
	bb := int(p[b+1]) + zi

	n := lerp(w,
		lerp(v,
			lerp(u, grad(p[aa], x, y, z), grad(p[ba], x-1, y, z)),
			lerp(u, grad(p[ab], x, y-1, z), grad(p[bb], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(p[aa+1], x, y, z-1), grad(p[ba+1], x-1, y, z-1)),
			lerp(u, grad(p[ab+1], x, y-1, z-1), grad(p[bb+1], x-1, y-1, z-1))))

	return min(1, max(0, (n+1)/2))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad returns the dot product of the corner gradient selected by hash
// with the offset (x, y, z).
func grad(hash uint8, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
