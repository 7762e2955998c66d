// Package shamir implements Shamir's Secret Sharing over GF(2^8). A
// secret byte string is split into n shares such that any k of them
// reconstruct it and any k-1 reveal nothing.
//
// Polynomial coefficients come from a per-scheme ChaCha20 generator seeded
// from the operating system; the field arithmetic in package gf256 is
// constant-time; an optional SHA-256 prefix (on by default) lets
// reconstruction detect tampering. Splitting works in memory, lazily
// through a Dealer, or over chunked streams of arbitrary size.
package shamir

import "fmt"

// MaxShares is the largest usable share count. X-coordinates live in
// GF(2^8) and x=0 is reserved for the secret, leaving 1..=254 (index 255
// is kept out of range so the index byte can never alias the field cap).
const MaxShares = 254

// Scheme splits secrets into n shares of which any k reconstruct. It owns
// its random generator, so splitting methods take a pointer receiver and a
// Scheme must not be shared across goroutines without synchronization.
type Scheme struct {
	n      uint8
	k      uint8
	config Config
	rng    *rng
}

// NewScheme returns a scheme with n total shares and threshold k under the
// default configuration.
func NewScheme(n, k uint8) (*Scheme, error) {
	return NewSchemeWithConfig(n, k, DefaultConfig())
}

// NewSchemeWithConfig returns a scheme with n total shares and threshold k.
// Parameters must satisfy 1 <= k <= n <= MaxShares.
func NewSchemeWithConfig(n, k uint8, cfg Config) (*Scheme, error) {
	if n == 0 || k == 0 || k > n || n > MaxShares {
		return nil, fmt.Errorf("%w: n=%d k=%d (need 1 <= k <= n <= %d)", ErrInvalidParameters, n, k, MaxShares)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, err := newRNG()
	if err != nil {
		return nil, err
	}
	return &Scheme{n: n, k: k, config: cfg, rng: r}, nil
}

// newSeededScheme is the deterministic variant used by tests: the same
// seed yields byte-identical splits.
func newSeededScheme(n, k uint8, cfg Config, seed []byte) (*Scheme, error) {
	s, err := NewSchemeWithConfig(n, k, cfg)
	if err != nil {
		return nil, err
	}
	if s.rng, err = newSeededRNG(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Threshold returns k, the minimum number of shares for reconstruction.
func (s *Scheme) Threshold() uint8 {
	return s.k
}

// TotalShares returns n, the number of shares a split produces.
func (s *Scheme) TotalShares() uint8 {
	return s.n
}

// Config returns the scheme configuration.
func (s *Scheme) Config() Config {
	return s.config
}
