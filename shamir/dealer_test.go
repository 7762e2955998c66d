package shamir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealerEmitsAscendingIndices(t *testing.T) {
	scheme, err := NewScheme(5, 3)
	require.NoError(t, err)
	dealer := scheme.Dealer([]byte("lazy"))
	defer dealer.Close()

	for want := uint8(1); want <= 5; want++ {
		share, ok := dealer.Next()
		require.True(t, ok)
		assert.Equal(t, want, share.Index)
	}
	_, ok := dealer.Next()
	assert.False(t, ok, "the sequence ends after n shares")
}

func TestDealerSharesReconstruct(t *testing.T) {
	scheme, err := NewScheme(10, 5)
	require.NoError(t, err)
	secret := []byte("only as many shares as needed")

	dealer := scheme.Dealer(secret)
	defer dealer.Close()
	shares := dealer.Take(5)
	require.Len(t, shares, 5)

	got, err := Reconstruct(shares)
	require.NoError(t, err)
	assert.Equal(t, secret, got)
}

func TestDealerMatchesSplit(t *testing.T) {
	secret := []byte("same coefficients, same shares")

	split, err := newSeededScheme(4, 2, DefaultConfig(), testSeed)
	require.NoError(t, err)
	dealt, err := newSeededScheme(4, 2, DefaultConfig(), testSeed)
	require.NoError(t, err)

	want, err := split.Split(secret)
	require.NoError(t, err)

	dealer := dealt.Dealer(secret)
	defer dealer.Close()
	got := dealer.Take(4)
	assert.Equal(t, want, got)
}

func TestDealerAllRange(t *testing.T) {
	scheme, err := NewScheme(6, 2)
	require.NoError(t, err)
	dealer := scheme.Dealer([]byte("range me"))
	defer dealer.Close()

	var collected []Share
	for share := range dealer.All() {
		collected = append(collected, share)
		if len(collected) == 3 {
			break
		}
	}
	require.Len(t, collected, 3)
	assert.Equal(t, uint8(3), collected[2].Index)

	// The cursor survives an abandoned range.
	share, ok := dealer.Next()
	require.True(t, ok)
	assert.Equal(t, uint8(4), share.Index)
}

func TestDealerClone(t *testing.T) {
	scheme, err := NewScheme(5, 3)
	require.NoError(t, err)
	dealer := scheme.Dealer([]byte("clone me"))
	defer dealer.Close()

	_, ok := dealer.Next()
	require.True(t, ok)

	clone := dealer.Clone()
	defer clone.Close()

	a, ok := dealer.Next()
	require.True(t, ok)
	b, ok := clone.Next()
	require.True(t, ok)
	assert.Equal(t, a, b, "clone continues the identical sequence")
}

func TestDealerRemaining(t *testing.T) {
	scheme, err := NewScheme(4, 2)
	require.NoError(t, err)
	dealer := scheme.Dealer([]byte("count"))
	defer dealer.Close()

	assert.Equal(t, 4, dealer.Remaining())
	dealer.Next()
	assert.Equal(t, 3, dealer.Remaining())
	dealer.Take(10)
	assert.Equal(t, 0, dealer.Remaining())
}

func TestDealerClose(t *testing.T) {
	scheme, err := NewScheme(3, 2)
	require.NoError(t, err)
	dealer := scheme.Dealer([]byte("close"))

	data, coeffs := dealer.data, dealer.coeffs
	dealer.Close()
	dealer.Close() // idempotent

	_, ok := dealer.Next()
	assert.False(t, ok)
	for _, b := range data {
		require.Zero(t, b, "plaintext wiped on close")
	}
	for _, b := range coeffs {
		require.Zero(t, b, "coefficients wiped on close")
	}
}

func TestDealerEmptySecret(t *testing.T) {
	scheme, err := NewScheme(3, 2)
	require.NoError(t, err)
	dealer := scheme.Dealer(nil)
	defer dealer.Close()

	shares := dealer.Take(2)
	require.Len(t, shares, 2)
	assert.Len(t, shares[0].Data, 32)

	got, err := Reconstruct(shares)
	require.NoError(t, err)
	assert.Empty(t, got)
}
