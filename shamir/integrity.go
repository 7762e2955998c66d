package shamir

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/izouxv/goShamir/utils"
)

// hashSize is the length of the SHA-256 prefix added by wrapSecret.
const hashSize = sha256.Size

// wrapSecret returns SHA-256(secret) || secret when enabled, or a private
// copy of secret otherwise. The caller owns the returned buffer and must
// wipe it when done.
func wrapSecret(secret []byte, enabled bool) []byte {
	if !enabled {
		out := make([]byte, len(secret))
		copy(out, secret)
		return out
	}
	sum := sha256.Sum256(secret)
	out := make([]byte, 0, hashSize+len(secret))
	out = append(out, sum[:]...)
	out = append(out, secret...)
	return out
}

// unwrapSecret strips and verifies the hash prefix added by wrapSecret.
// It consumes buf: the input is wiped on every path, and the plaintext
// comes back in a fresh buffer. The hash comparison is constant-time.
func unwrapSecret(buf []byte, enabled bool) ([]byte, error) {
	defer utils.Wipe(buf)
	if !enabled {
		out := make([]byte, len(buf))
		copy(out, buf)
		return out, nil
	}
	if len(buf) < hashSize {
		return nil, fmt.Errorf("%w: payload shorter than hash prefix", ErrIntegrityCheckFailed)
	}
	prefix, secret := buf[:hashSize], buf[hashSize:]
	sum := sha256.Sum256(secret)
	if subtle.ConstantTimeCompare(sum[:], prefix) != 1 {
		return nil, ErrIntegrityCheckFailed
	}
	out := make([]byte, len(secret))
	copy(out, secret)
	return out, nil
}
