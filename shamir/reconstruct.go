package shamir

import (
	"fmt"

	"github.com/izouxv/goShamir/gf256"
	"github.com/izouxv/goShamir/utils"
)

// Reconstruct recovers the secret from at least threshold shares. Only the
// first threshold shares take part in the interpolation; the rest are
// validated for consistency and otherwise ignored. The output is invariant
// under permutation of the chosen subset. Fewer than threshold shares
// never yield plaintext.
func Reconstruct(shares []Share) ([]byte, error) {
	if err := validateShares(shares); err != nil {
		return nil, err
	}
	used := shares[:shares[0].Threshold]
	xs := make([]byte, len(used))
	for i := range used {
		xs[i] = used[i].Index
	}
	rows := make([][]byte, len(used))
	for i := range used {
		rows[i] = used[i].Data
	}
	data := make([]byte, len(shares[0].Data))
	if err := interpolateColumns(xs, rows, data); err != nil {
		utils.Wipe(data)
		return nil, err
	}
	return unwrapSecret(data, shares[0].IntegrityCheck)
}

// validateShares runs the pre-arithmetic checks in order: share count
// against the declared threshold, metadata consistency, then index range
// and uniqueness.
func validateShares(shares []Share) error {
	if len(shares) == 0 {
		return fmt.Errorf("%w: need at least 1, got 0", ErrNotEnoughShares)
	}
	first := &shares[0]
	if len(shares) < int(first.Threshold) {
		return fmt.Errorf("%w: need %d, got %d", ErrNotEnoughShares, first.Threshold, len(shares))
	}
	for i := range shares {
		if !shares[i].sameParams(first) {
			return ErrInconsistentShares
		}
	}
	var seen [256]bool
	for i := range shares {
		index := shares[i].Index
		if index == 0 || index > MaxShares {
			return fmt.Errorf("%w: %d", ErrInvalidShareIndex, index)
		}
		if seen[index] {
			return fmt.Errorf("%w: %d", ErrDuplicateIndex, index)
		}
		seen[index] = true
	}
	return nil
}

// interpolateColumns recovers out[col] by Lagrange interpolation at x=0
// from the share payloads: rows[i][col] is the y-value at x-coordinate
// xs[i]. Callers guarantee equal row lengths and distinct indices, so the
// duplicate-point error from gf256 is a belt-and-braces mapping.
func interpolateColumns(xs []byte, rows [][]byte, out []byte) error {
	ys := make([]byte, len(xs))
	defer utils.Wipe(ys)
	for col := range out {
		for i := range rows {
			ys[i] = rows[i][col]
		}
		v, err := gf256.InterpolateAtZero(xs, ys)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDuplicateIndex, err)
		}
		out[col] = v
	}
	return nil
}
