package shamir

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/izouxv/goShamir/gf256"
	"github.com/izouxv/goShamir/utils"
)

// Split divides secret into n shares, any k of which reconstruct it.
// Shares come back in ascending index order with identical metadata.
//
// An empty secret is legal: with integrity checking enabled the shares are
// exactly 32 bytes (the hash of the empty string), without it they are
// empty.
func (s *Scheme) Split(secret []byte) ([]Share, error) {
	data := wrapSecret(secret, s.config.IntegrityCheck)
	defer utils.Wipe(data)
	coeffs := make([]byte, len(data)*int(s.k-1))
	s.rng.fill(coeffs)
	defer utils.Wipe(coeffs)
	return s.splitColumns(data, coeffs), nil
}

// splitColumns runs the columnar polynomial evaluation over the wrapped
// plaintext. Column b of share x carries the degree-(k-1) polynomial with
// constant term data[b] and the matrix row coeffs[b*(k-1):(b+1)*(k-1)]
// evaluated at x. Columns are independent; Parallel mode partitions them
// across workers that write to disjoint offsets of pre-allocated shares.
func (s *Scheme) splitColumns(data, coeffs []byte) []Share {
	shares := make([]Share, s.n)
	for i := range shares {
		shares[i] = Share{
			Index:          uint8(i + 1),
			Threshold:      s.k,
			TotalShares:    s.n,
			IntegrityCheck: s.config.IntegrityCheck,
			Data:           make([]byte, len(data)),
		}
	}
	if s.config.Mode == Parallel && len(data) > 0 {
		s.splitColumnsParallel(shares, data, coeffs)
	} else {
		s.splitColumnRange(shares, data, coeffs, 0, len(data))
	}
	return shares
}

func (s *Scheme) splitColumnRange(shares []Share, data, coeffs []byte, lo, hi int) {
	t := int(s.k)
	poly := make([]byte, t)
	defer utils.Wipe(poly)
	for col := lo; col < hi; col++ {
		poly[0] = data[col]
		copy(poly[1:], coeffs[col*(t-1):(col+1)*(t-1)])
		for i := range shares {
			shares[i].Data[col] = gf256.Eval(poly, shares[i].Index)
		}
	}
}

func (s *Scheme) splitColumnsParallel(shares []Share, data, coeffs []byte) {
	workers := runtime.NumCPU()
	if workers > len(data) {
		workers = len(data)
	}
	step := (len(data) + workers - 1) / workers
	g := new(errgroup.Group)
	for lo := 0; lo < len(data); lo += step {
		hi := min(lo+step, len(data))
		g.Go(func() error {
			s.splitColumnRange(shares, data, coeffs, lo, hi)
			return nil
		})
	}
	// Workers cannot fail; Wait is only the join barrier.
	_ = g.Wait()
}
