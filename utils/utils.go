package utils

// Wipe overwrites b with zeros. Any buffer that has held plaintext,
// polynomial coefficients, or reconstruction scratch goes through here
// (typically via defer) before it is released, on success and error paths
// alike.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// WipeAll wipes every buffer in bufs.
func WipeAll(bufs ...[]byte) {
	for _, b := range bufs {
		Wipe(b)
	}
}
