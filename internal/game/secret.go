package game

import (
	cryptorand "crypto/rand"
	"math/rand/v2"
	"sync"
)

// SecretSource produces the secret value for a game.
type SecretSource interface {
	// Generate returns a value in the half-open range [low, high).
	// If high <= low, low is returned.
	Generate(low, high uint64) uint64
}

// RandomSource draws secrets uniformly from a process-local ChaCha8
// generator seeded from the operating system's entropy source.
// No reproducibility is provided.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource creates a RandomSource with a fresh seed.
func NewRandomSource() *RandomSource {
	var seed [32]byte
	// crypto/rand.Read never returns an error and always fills the buffer.
	_, _ = cryptorand.Read(seed[:])
	return &RandomSource{rng: rand.New(rand.NewChaCha8(seed))} //nolint:gosec // game secret, not a credential
}

// Generate implements SecretSource.
func (s *RandomSource) Generate(low, high uint64) uint64 {
	if high <= low {
		return low
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return low + s.rng.Uint64N(high-low)
}

// FixedSource always returns the same secret, regardless of the range.
// It is intended for tests and scripted play.
type FixedSource uint64

// Generate implements SecretSource.
func (f FixedSource) Generate(_, _ uint64) uint64 {
	return uint64(f)
}
