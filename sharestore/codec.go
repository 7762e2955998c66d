package sharestore

import "github.com/klauspost/compress/zstd"

// The compression codec sits between serialize and write: the share
// container format itself never changes, only its representation on disk.

// zstdMagic is the zstd frame header. A valid share container starts with
// "SSSS", so sniffing the prefix is unambiguous.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func compressContainer(buf []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(buf, nil), nil
}

func decompressContainer(buf []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(buf, nil)
}
