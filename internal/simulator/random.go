package simulator

import (
	"math/rand"
	"time"
)

// RandomSource drives every chance decision in the restaurant. *rand.Rand
// satisfies it; tests pass fixed sources.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

// NewRandomSource seeds a generator, falling back to the clock when seed is 0.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
