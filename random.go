package sketch

import "math/rand/v2"

// pcgStream is the PCG increment paired with the user seed.
const pcgStream = 0x5851f42d4c957f2d

// RandomSeed reseeds the random stream. The noise field is not affected.
func (s *Sketch) RandomSeed(seed uint64) {
	s.seed = seed
	s.rng = rand.New(rand.NewPCG(seed, pcgStream))
}

// Seed returns the seed the random stream was last seeded with.
func (s *Sketch) Seed() uint64 {
	return s.seed
}

// Random returns a uniform value in [0, a).
func (s *Sketch) Random(a float64) float64 {
	return s.rng.Float64() * a
}

// RandomRange returns a uniform value in [a, b).
func (s *Sketch) RandomRange(a, b float64) float64 {
	return a + s.rng.Float64()*(b-a)
}

// RandomGaussian returns a sample from the standard normal distribution.
func (s *Sketch) RandomGaussian() float64 {
	return s.rng.NormFloat64()
}
