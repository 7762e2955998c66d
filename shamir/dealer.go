package shamir

import (
	"iter"

	"github.com/izouxv/goShamir/gf256"
	"github.com/izouxv/goShamir/utils"
)

// Dealer generates the shares of one split lazily, in strictly increasing
// index order. The wrapped plaintext and the full coefficient matrix are
// drawn at construction, so the sequence is fixed from that moment: a
// Dealer can be cloned and both copies yield identical shares. Close wipes
// the retained key material; callers should defer it.
type Dealer struct {
	data      []byte // wrapped plaintext
	coeffs    []byte // (k-1) coefficients per column, row-major by column
	next      uint16 // next x-coordinate, starts at 1
	n         uint8
	k         uint8
	integrity bool
	closed    bool
}

// Dealer prepares a lazy share generator for secret. The coefficient
// matrix is drawn from the scheme generator immediately; the caller may
// discard the secret afterwards.
//
// An empty secret is legal; see Split for the resulting share shape.
func (s *Scheme) Dealer(secret []byte) *Dealer {
	data := wrapSecret(secret, s.config.IntegrityCheck)
	coeffs := make([]byte, len(data)*int(s.k-1))
	s.rng.fill(coeffs)
	return &Dealer{
		data:      data,
		coeffs:    coeffs,
		next:      1,
		n:         s.n,
		k:         s.k,
		integrity: s.config.IntegrityCheck,
	}
}

// Next returns the share at the cursor and advances it. The second result
// is false once the cursor has passed the scheme's total share count (or
// the GF(2^8) cap, which scheme construction already precludes), or after
// Close.
func (d *Dealer) Next() (Share, bool) {
	if d.closed || d.next > uint16(d.n) || d.next > MaxShares {
		return Share{}, false
	}
	x := uint8(d.next)
	d.next++
	t := int(d.k)
	poly := make([]byte, t)
	defer utils.Wipe(poly)
	data := make([]byte, len(d.data))
	for col := range d.data {
		poly[0] = d.data[col]
		copy(poly[1:], d.coeffs[col*(t-1):(col+1)*(t-1)])
		data[col] = gf256.Eval(poly, x)
	}
	return Share{
		Index:          x,
		Threshold:      d.k,
		TotalShares:    d.n,
		IntegrityCheck: d.integrity,
		Data:           data,
	}, true
}

// All returns an iterator over the remaining shares, for use with range.
// Iteration shares the cursor with Next.
func (d *Dealer) All() iter.Seq[Share] {
	return func(yield func(Share) bool) {
		for {
			share, ok := d.Next()
			if !ok || !yield(share) {
				return
			}
		}
	}
}

// Take returns up to count shares, advancing the cursor.
func (d *Dealer) Take(count int) []Share {
	shares := make([]Share, 0, count)
	for len(shares) < count {
		share, ok := d.Next()
		if !ok {
			break
		}
		shares = append(shares, share)
	}
	return shares
}

// Remaining returns how many shares the dealer can still emit.
func (d *Dealer) Remaining() int {
	if d.closed || d.next > uint16(d.n) {
		return 0
	}
	return int(d.n) - int(d.next) + 1
}

// Clone returns an independent dealer at the same cursor position. Cloning
// is sound because the random stream was fully captured into the
// coefficient matrix at construction.
func (d *Dealer) Clone() *Dealer {
	if d.closed {
		return &Dealer{closed: true, n: d.n, k: d.k, integrity: d.integrity}
	}
	clone := *d
	clone.data = make([]byte, len(d.data))
	copy(clone.data, d.data)
	clone.coeffs = make([]byte, len(d.coeffs))
	copy(clone.coeffs, d.coeffs)
	return &clone
}

// Close wipes the wrapped plaintext and the coefficient matrix. It is
// idempotent; Next yields nothing afterwards.
func (d *Dealer) Close() {
	if d.closed {
		return
	}
	d.closed = true
	utils.WipeAll(d.data, d.coeffs)
	d.data, d.coeffs = nil, nil
}
