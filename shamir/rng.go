package shamir

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20"

	"github.com/izouxv/goShamir/utils"
)

// rng is a ChaCha20 keystream generator owned by exactly one scheme. It is
// keyed once from the operating system entropy pool; there is no fallback
// to a non-cryptographic source. The parallel split path draws the whole
// coefficient matrix before fanning out, so workers never touch the
// generator concurrently.
type rng struct {
	cipher *chacha20.Cipher
}

func newRNG() (*rng, error) {
	key := make([]byte, chacha20.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("shamir: seeding rng: %w", err)
	}
	defer utils.Wipe(key)
	return newSeededRNG(key)
}

// newSeededRNG builds a generator from an explicit 32-byte seed. The
// production path seeds from the OS; tests use fixed seeds to get
// deterministic splits.
func newSeededRNG(seed []byte) (*rng, error) {
	c, err := chacha20.NewUnauthenticatedCipher(seed, make([]byte, chacha20.NonceSize))
	if err != nil {
		return nil, fmt.Errorf("shamir: initializing rng: %w", err)
	}
	return &rng{cipher: c}, nil
}

// fill overwrites buf with keystream bytes.
func (r *rng) fill(buf []byte) {
	utils.Wipe(buf)
	r.cipher.XORKeyStream(buf, buf)
}
