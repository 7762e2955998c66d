package shamir

import (
	"encoding/binary"
	"fmt"

	"github.com/izouxv/goShamir/utils"
)

// Share is one fragment of a split secret. Data holds the polynomial
// evaluations at Index, one byte per byte of the (possibly hash-prefixed)
// plaintext, so its length equals the plaintext length. All shares of one
// split carry identical metadata and pairwise distinct indices.
type Share struct {
	// Index is the x-coordinate, in 1..=MaxShares. x=0 is reserved for
	// the secret itself.
	Index uint8
	// Threshold is k as declared when the share was created.
	Threshold uint8
	// TotalShares is n as declared when the share was created.
	TotalShares uint8
	// IntegrityCheck records whether the plaintext was prefixed with its
	// SHA-256 hash before splitting.
	IntegrityCheck bool
	// Data holds the share bytes.
	Data []byte
}

// Wipe zero-overwrites the share payload.
func (s *Share) Wipe() {
	utils.Wipe(s.Data)
}

// sameParams reports whether two shares could come from the same split.
func (s *Share) sameParams(o *Share) bool {
	return s.Threshold == o.Threshold &&
		s.TotalShares == o.TotalShares &&
		s.IntegrityCheck == o.IntegrityCheck &&
		len(s.Data) == len(o.Data)
}

func (s *Share) validate() error {
	if s.Index == 0 || s.Index > MaxShares {
		return fmt.Errorf("%w: %d", ErrInvalidShareIndex, s.Index)
	}
	if s.Threshold == 0 || s.Threshold > s.TotalShares {
		return fmt.Errorf("%w: threshold=%d total=%d", ErrInvalidParameters, s.Threshold, s.TotalShares)
	}
	return nil
}

// Serialized share container, little-endian throughout:
//
//	offset  0  4  magic "SSSS"
//	offset  4  2  version (current 1)
//	offset  6  1  share index
//	offset  7  1  threshold
//	offset  8  1  total shares
//	offset  9  1  integrity flag (0 or 1)
//	offset 10  4  data length
//	offset 14  .. data
const (
	shareMagic   = "SSSS"
	shareVersion = 1
	headerSize   = 14
)

// Marshal serializes the share into the versioned container format. The
// same invariants the parser enforces are validated before encoding.
func (s *Share) Marshal() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, headerSize+len(s.Data))
	copy(buf[0:4], shareMagic)
	binary.LittleEndian.PutUint16(buf[4:6], shareVersion)
	buf[6] = s.Index
	buf[7] = s.Threshold
	buf[8] = s.TotalShares
	if s.IntegrityCheck {
		buf[9] = 1
	}
	binary.LittleEndian.PutUint32(buf[10:14], uint32(len(s.Data)))
	copy(buf[headerSize:], s.Data)
	return buf, nil
}

// UnmarshalShare parses a serialized share container. The parser expects
// adversarial input: every length is checked before use, unknown versions
// are rejected outright, and no byte sequence of any length can panic.
func UnmarshalShare(buf []byte) (Share, error) {
	if len(buf) < headerSize {
		return Share{}, fmt.Errorf("%w: truncated header (%d bytes)", ErrInvalidFormat, len(buf))
	}
	if string(buf[0:4]) != shareMagic {
		return Share{}, fmt.Errorf("%w: bad magic", ErrInvalidFormat)
	}
	if version := binary.LittleEndian.Uint16(buf[4:6]); version > shareVersion {
		return Share{}, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, version)
	}
	index, threshold, total := buf[6], buf[7], buf[8]
	if index == 0 || index > MaxShares {
		return Share{}, fmt.Errorf("%w: %d", ErrInvalidShareIndex, index)
	}
	if threshold == 0 || threshold > total {
		return Share{}, fmt.Errorf("%w: threshold=%d total=%d", ErrInvalidParameters, threshold, total)
	}
	if buf[9] > 1 {
		return Share{}, fmt.Errorf("%w: integrity flag %d", ErrInvalidFormat, buf[9])
	}
	dataLen := binary.LittleEndian.Uint32(buf[10:14])
	rest := buf[headerSize:]
	if uint64(dataLen) > uint64(len(rest)) {
		return Share{}, fmt.Errorf("%w: declared %d data bytes, %d available", ErrInvalidFormat, dataLen, len(rest))
	}
	if int(dataLen) < len(rest) {
		return Share{}, fmt.Errorf("%w: %d trailing bytes", ErrInvalidFormat, len(rest)-int(dataLen))
	}
	share := Share{
		Index:          index,
		Threshold:      threshold,
		TotalShares:    total,
		IntegrityCheck: buf[9] == 1,
		Data:           make([]byte, dataLen),
	}
	copy(share.Data, rest)
	return share, nil
}
