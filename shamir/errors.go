package shamir

import "errors"

var (
	// ErrInvalidParameters is returned when scheme parameters violate
	// 1 <= k <= n <= MaxShares, or share metadata carries an impossible
	// threshold/total pair.
	ErrInvalidParameters = errors.New("shamir: invalid scheme parameters")

	// ErrNotEnoughShares is returned when fewer shares than the declared
	// threshold are offered for reconstruction.
	ErrNotEnoughShares = errors.New("shamir: not enough shares")

	// ErrDuplicateIndex is returned when two shares carry the same
	// x-coordinate.
	ErrDuplicateIndex = errors.New("shamir: duplicate share index")

	// ErrInvalidShareIndex is returned for x-coordinates outside 1..=254.
	ErrInvalidShareIndex = errors.New("shamir: invalid share index")

	// ErrInconsistentShares is returned when shares of one reconstruction
	// disagree on threshold, total, integrity flag or data length, or when
	// streamed frames disagree across sources.
	ErrInconsistentShares = errors.New("shamir: inconsistent shares")

	// ErrInvalidFormat is returned for a malformed share container.
	ErrInvalidFormat = errors.New("shamir: invalid share format")

	// ErrUnsupportedVersion is returned for a share container whose
	// version is newer than this library knows. No best-effort parsing is
	// attempted.
	ErrUnsupportedVersion = errors.New("shamir: unsupported share version")

	// ErrIntegrityCheckFailed is returned when the SHA-256 prefix does not
	// match the reconstructed plaintext.
	ErrIntegrityCheckFailed = errors.New("shamir: integrity check failed")

	// ErrInvalidConfiguration is returned for unusable Config values and
	// for invalid hierarchical level definitions.
	ErrInvalidConfiguration = errors.New("shamir: invalid configuration")
)
