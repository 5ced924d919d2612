package ports

import "math/rand/v2"

// Random draws uniform indexes for candidate selection.
type Random interface {
	IntN(n int) int
}

type SystemRandom struct{}

func (SystemRandom) IntN(n int) int {
	return rand.IntN(n)
}

// NewSeededRandom returns a generator whose draws repeat for the same seed.
func NewSeededRandom(seed uint64) Random {
	return rand.New(rand.NewPCG(seed, seed))
}
