package utils

import (
	"encoding/binary"
	"io"
)

// Stream frames are a u32 little-endian payload length followed by the
// payload itself. EOF exactly at a frame boundary is the normal stream
// terminator; there is no global header.

// WriteFrame writes one length-prefixed frame to w.
func WriteFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrameLen reads the length prefix of the next frame. io.EOF comes
// back untouched when the stream ends at a frame boundary; a prefix cut
// short mid-way surfaces as io.ErrUnexpectedEOF.
func ReadFrameLen(r io.Reader) (uint32, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(lenBuf[:]), nil
}
