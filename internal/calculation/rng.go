package calculation

import (
	"math/rand"

	"github.com/google/uuid"
)

// RandomSource is the source of randomness for population generation and
// projection building. *rand.Rand satisfies it.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// ResolveSeed returns seed unless it is 0, in which case a fresh seed is drawn.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return seedFunc()
	}
	return seed
}

// NewSeededRNG creates a seeded random number generator.
// If seed is 0, a time-derived seed is used.
func NewSeededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(ResolveSeed(seed)))
}

func newRunID() string {
	return uuid.NewString()
}
