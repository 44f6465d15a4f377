package sketch

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRandomDeterministic(t *testing.T) {
	sample := func(s *Sketch) []float64 {
		out := make([]float64, 0, 30)
		for range 10 {
			out = append(out, s.Random(1), s.RandomRange(-5, 5), s.RandomGaussian())
		}
		return out
	}
	a, b := New(WithSeed(99)), New(WithSeed(99))
	if diff := cmp.Diff(sample(a), sample(b)); diff != "" {
		t.Errorf("same seed gave different streams (-a +b):\n%s", diff)
	}

	a.RandomSeed(5)
	first := sample(a)
	a.RandomSeed(5)
	if diff := cmp.Diff(first, sample(a)); diff != "" {
		t.Errorf("reseeding did not restart the stream (-first +second):\n%s", diff)
	}
	if a.Seed() != 5 {
		t.Errorf("Seed() = %d, want 5", a.Seed())
	}
}

func TestRandomRanges(t *testing.T) {
	s := New(WithSeed(3))
	for range 1000 {
		if v := s.Random(7); v < 0 || v >= 7 {
			t.Fatalf("Random(7) = %v", v)
		}
		if v := s.RandomRange(-2, 3); v < -2 || v >= 3 {
			t.Fatalf("RandomRange(-2, 3) = %v", v)
		}
	}
}

func TestRandomIndependentOfNoise(t *testing.T) {
	a, b := New(WithSeed(8)), New(WithSeed(8))
	for range 50 {
		b.Noise(0.1, 0.2, 0.3)
	}
	b.NoiseSeed(77)
	if a.Random(1) != b.Random(1) {
		t.Error("noise calls advanced the random stream")
	}
}

func TestNoise(t *testing.T) {
	s := New(WithSeed(21))
	var coords []NoiseCoord
	for i := range 200 {
		x := float64(i) * 0.37
		coords = append(coords, NoiseCoord{X: x, Y: x * 0.5, Z: 1.5})
	}
	got := s.NoiseBatch(coords)
	if len(got) != len(coords) {
		t.Fatalf("NoiseBatch returned %d values for %d coords", len(got), len(coords))
	}
	for i, v := range got {
		if v < 0 || v > 1 {
			t.Errorf("noise %v out of [0, 1]", v)
		}
		c := coords[i]
		if v != s.Noise(c.X, c.Y, c.Z) {
			t.Errorf("batch value %d differs from single sample", i)
		}
	}
	if s.Noise1(0.4) != s.Noise(0.4, 0, 0) || s.Noise2(0.4, 0.6) != s.Noise(0.4, 0.6, 0) {
		t.Error("Noise1/Noise2 disagree with Noise")
	}

	// Smoothness: nearby samples are close.
	if d := math.Abs(s.Noise2(1.5, 1.5) - s.Noise2(1.5001, 1.5)); d > 0.01 {
		t.Errorf("noise jumps by %v over a tiny step", d)
	}
}

func TestNoiseSeedReproducible(t *testing.T) {
	s := New()
	s.NoiseSeed(4)
	a := s.Noise(0.5, 0.25, 0.125)
	s.NoiseSeed(5)
	s.NoiseSeed(4)
	if b := s.Noise(0.5, 0.25, 0.125); a != b {
		t.Errorf("noise after reseed = %v, want %v", b, a)
	}
}

func TestNoiseDetail(t *testing.T) {
	s := New(WithSeed(1))
	before := s.Noise(0.3, 0.3, 0.3)
	if err := s.NoiseDetail(1, 0.5); err != nil {
		t.Fatal(err)
	}
	if s.Noise(0.3, 0.3, 0.3) == before {
		t.Error("changing octaves did not change the noise")
	}
	for _, bad := range []struct {
		octaves int
		falloff float64
	}{{0, 0.5}, {4, -0.1}, {4, 1.5}} {
		if err := s.NoiseDetail(bad.octaves, bad.falloff); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NoiseDetail(%d, %v) error = %v", bad.octaves, bad.falloff, err)
		}
	}
}
