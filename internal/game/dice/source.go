package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

// NewCryptoSource returns a Source drawing from the operating system's
// cryptographic generator. It is the default for live encounters.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return lockedSource{mu: &sync.Mutex{}, rng: rand.New(cryptoBits{})}
}

// NewSeededSource returns a deterministic Source: two sources built from the
// same seed produce the same sequence, so a recorded encounter can be replayed.
func NewSeededSource(seed uint64) Source {
	return lockedSource{mu: &sync.Mutex{}, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type lockedSource struct {
	mu  *sync.Mutex
	rng *rand.Rand
}

// Intn returns a uniform value in [0, n).
//
// Precondition: n > 0. Panics otherwise.
func (s lockedSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// cryptoBits adapts crypto/rand to rand.Source. crypto/rand.Read never
// returns an error on supported platforms.
type cryptoBits struct{}

func (cryptoBits) Uint64() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
