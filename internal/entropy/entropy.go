// Package entropy provides the pseudo-random source behind every stochastic
// decision in the affect model. All randomness is drawn through the Source
// interface so tests can inject a fixed seed and replay a run exactly.
package entropy

import (
	"math/rand"
)

// Source is the random stream consumed by the personality, emotion, and mood
// systems. Implementations need not be safe for concurrent use; each agent
// owns its own Source.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// NormFloat64 returns a standard-normal value (mean 0, stddev 1).
	NormFloat64() float64
	// IntN returns a uniform value in [0, n). Panics if n <= 0.
	IntN(n int) int
}

type seeded struct {
	rng *rand.Rand
}

// Seeded returns a deterministic Source for the given seed.
func Seeded(seed int64) Source {
	return &seeded{rng: rand.New(rand.NewSource(seed))}
}

func (s *seeded) Float64() float64     { return s.rng.Float64() }
func (s *seeded) NormFloat64() float64 { return s.rng.NormFloat64() }
func (s *seeded) IntN(n int) int       { return s.rng.Intn(n) }
