package shamir

import (
	"errors"
	"fmt"
	"io"

	"github.com/izouxv/goShamir/utils"
)

// StreamSource pairs a share payload stream with its x-coordinate. The
// index travels out of band -- it comes from the share container header,
// not from the frame stream itself, which carries no global header.
type StreamSource struct {
	Index  uint8
	Reader io.Reader
}

// SplitStream splits src chunk by chunk into exactly n share streams.
// Each chunk of up to ChunkSize bytes is integrity-wrapped on its own
// (when enabled), split with fresh coefficients, and written to every
// destination as one frame: a u32 little-endian length followed by the
// share payload. Writers receive whole chunks in input order; the streams
// end at a frame boundary.
//
// A read or write failure surfaces immediately with the cause wrapped;
// frames already flushed are the caller's to discard. Transient buffers
// are wiped between iterations.
func (s *Scheme) SplitStream(src io.Reader, dsts []io.Writer) error {
	if len(dsts) != int(s.n) {
		return fmt.Errorf("%w: need %d writers, got %d", ErrInvalidParameters, s.n, len(dsts))
	}
	chunk := make([]byte, s.config.ChunkSize)
	defer utils.Wipe(chunk)
	for {
		nr, err := io.ReadFull(src, chunk)
		if errors.Is(err, io.EOF) {
			return nil
		}
		last := errors.Is(err, io.ErrUnexpectedEOF)
		if err != nil && !last {
			return fmt.Errorf("shamir: reading source: %w", err)
		}
		if err := s.splitChunkTo(chunk[:nr], dsts); err != nil {
			return err
		}
		if last {
			return nil
		}
	}
}

func (s *Scheme) splitChunkTo(chunk []byte, dsts []io.Writer) error {
	data := wrapSecret(chunk, s.config.IntegrityCheck)
	defer utils.Wipe(data)
	coeffs := make([]byte, len(data)*int(s.k-1))
	s.rng.fill(coeffs)
	defer utils.Wipe(coeffs)
	shares := s.splitColumns(data, coeffs)
	defer func() {
		for i := range shares {
			shares[i].Wipe()
		}
	}()
	for i := range shares {
		if err := utils.WriteFrame(dsts[i], shares[i].Data); err != nil {
			return fmt.Errorf("shamir: writing share %d: %w", shares[i].Index, err)
		}
	}
	return nil
}

// ReconstructStream consumes the frame streams produced by SplitStream and
// writes the recovered plaintext to dst. At least threshold sources with
// valid, distinct indices are required. One chunk is read from every
// source before any output for it is emitted; per-chunk integrity is
// verified when the scheme has it enabled. All sources reaching EOF on the
// same frame boundary is the normal terminator; any disagreement between
// them -- EOF on only some, or differing frame lengths -- is
// ErrInconsistentShares. Integrity covers each chunk on its own, not the
// whole stream: if every source is cut at the same frame boundary, the
// output simply ends early and no error is reported. Scratch buffers are
// wiped every iteration.
func (s *Scheme) ReconstructStream(srcs []StreamSource, dst io.Writer) error {
	if len(srcs) < int(s.k) {
		return fmt.Errorf("%w: need %d sources, got %d", ErrNotEnoughShares, s.k, len(srcs))
	}
	xs := make([]byte, len(srcs))
	var seen [256]bool
	for i := range srcs {
		index := srcs[i].Index
		if index == 0 || index > MaxShares {
			return fmt.Errorf("%w: %d", ErrInvalidShareIndex, index)
		}
		if seen[index] {
			return fmt.Errorf("%w: %d", ErrDuplicateIndex, index)
		}
		seen[index] = true
		xs[i] = index
	}

	rows := make([][]byte, len(srcs))
	defer func() {
		for _, row := range rows {
			utils.Wipe(row)
		}
	}()
	for {
		length, done, err := readFrameLens(srcs)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		for i := range srcs {
			if cap(rows[i]) < int(length) {
				utils.Wipe(rows[i])
				rows[i] = make([]byte, length)
			}
			rows[i] = rows[i][:length]
			if _, err := io.ReadFull(srcs[i].Reader, rows[i]); err != nil {
				return fmt.Errorf("shamir: reading share %d payload: %w", srcs[i].Index, err)
			}
		}
		out := make([]byte, length)
		if err := interpolateColumns(xs, rows, out); err != nil {
			utils.Wipe(out)
			return err
		}
		plain, err := unwrapSecret(out, s.config.IntegrityCheck)
		if err != nil {
			return err
		}
		_, err = dst.Write(plain)
		utils.Wipe(plain)
		if err != nil {
			return fmt.Errorf("shamir: writing output: %w", err)
		}
	}
}

// readFrameLens reads the next frame length from every source. All-EOF is
// the clean end of the streams; EOF on only some of them, or disagreeing
// lengths, is a protocol violation.
func readFrameLens(srcs []StreamSource) (length uint32, done bool, err error) {
	eofs := 0
	sawLength := false
	for i := range srcs {
		l, err := utils.ReadFrameLen(srcs[i].Reader)
		if errors.Is(err, io.EOF) {
			eofs++
			continue
		}
		if err != nil {
			return 0, false, fmt.Errorf("shamir: reading share %d frame: %w", srcs[i].Index, err)
		}
		if !sawLength {
			length = l
			sawLength = true
		} else if l != length {
			return 0, false, fmt.Errorf("%w: frame length mismatch (%d vs %d)", ErrInconsistentShares, l, length)
		}
	}
	if eofs == len(srcs) {
		return 0, true, nil
	}
	if eofs > 0 {
		return 0, false, fmt.Errorf("%w: streams end on different frame boundaries", ErrInconsistentShares)
	}
	return length, false, nil
}
