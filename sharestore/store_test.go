package sharestore

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izouxv/goShamir/shamir"
)

func testShares(t *testing.T, n, k uint8) []shamir.Share {
	t.Helper()
	scheme, err := shamir.NewScheme(n, k)
	require.NoError(t, err)
	shares, err := scheme.Split([]byte("stored secret"))
	require.NoError(t, err)
	return shares
}

func TestFileStoreRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewFileStoreFS(fs, "shares")
	require.NoError(t, err)

	shares := testShares(t, 5, 3)
	for i := range shares {
		require.NoError(t, store.Store(&shares[i]))
	}

	indices, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5}, indices)

	loaded := make([]shamir.Share, 0, 3)
	for _, index := range indices[:3] {
		share, err := store.Load(index)
		require.NoError(t, err)
		loaded = append(loaded, share)
	}
	got, err := shamir.Reconstruct(loaded)
	require.NoError(t, err)
	assert.Equal(t, []byte("stored secret"), got)
}

func TestFileStoreFileNaming(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewFileStoreFS(fs, "shares")
	require.NoError(t, err)

	shares := testShares(t, 3, 2)
	require.NoError(t, store.Store(&shares[0]))

	exists, err := afero.Exists(fs, "shares/share_1.shard")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFileStoreLoadMissing(t *testing.T) {
	store, err := NewFileStoreFS(afero.NewMemMapFs(), "shares")
	require.NoError(t, err)
	_, err = store.Load(9)
	assert.ErrorIs(t, err, shamir.ErrInvalidShareIndex)
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStoreFS(afero.NewMemMapFs(), "shares")
	require.NoError(t, err)
	shares := testShares(t, 3, 2)
	require.NoError(t, store.Store(&shares[0]))

	require.NoError(t, store.Delete(1))
	_, err = store.Load(1)
	assert.ErrorIs(t, err, shamir.ErrInvalidShareIndex)
	assert.ErrorIs(t, store.Delete(1), shamir.ErrInvalidShareIndex)

	indices, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, indices)
}

func TestFileStoreExistingDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	first, err := NewFileStoreFS(fs, "shares")
	require.NoError(t, err)
	shares := testShares(t, 3, 2)
	require.NoError(t, first.Store(&shares[1]))

	// Reopening the directory sees the persisted shares.
	second, err := NewFileStoreFS(fs, "shares")
	require.NoError(t, err)
	indices, err := second.List()
	require.NoError(t, err)
	assert.Equal(t, []uint8{2}, indices)
}

func TestFileStoreIgnoresForeignFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewFileStoreFS(fs, "shares")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "shares/README", []byte("hi"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "shares/share_x.shard", []byte("junk"), 0o644))

	indices, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, indices)
}

func TestFileStoreCorruptedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewFileStoreFS(fs, "shares")
	require.NoError(t, err)

	t.Run("bad magic", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "shares/share_1.shard", []byte("not a share file"), 0o600))
		_, err = store.Load(1)
		assert.ErrorIs(t, err, shamir.ErrInvalidFormat)
	})

	t.Run("declared length exceeds file", func(t *testing.T) {
		shares := testShares(t, 3, 2)
		buf, err := shares[0].Marshal()
		require.NoError(t, err)
		require.NoError(t, afero.WriteFile(fs, "shares/share_1.shard", buf[:len(buf)-4], 0o600))
		_, err = store.Load(1)
		assert.ErrorIs(t, err, shamir.ErrInvalidFormat)
	})

	t.Run("index mismatch", func(t *testing.T) {
		shares := testShares(t, 3, 2)
		buf, err := shares[1].Marshal()
		require.NoError(t, err)
		require.NoError(t, afero.WriteFile(fs, "shares/share_1.shard", buf, 0o600))
		_, err = store.Load(1)
		assert.ErrorIs(t, err, shamir.ErrInvalidFormat)
	})
}

func TestFileStoreCompression(t *testing.T) {
	fs := afero.NewMemMapFs()
	store, err := NewFileStoreFS(fs, "shares", WithCompression(true))
	require.NoError(t, err)

	shares := testShares(t, 3, 2)
	require.NoError(t, store.Store(&shares[0]))

	raw, err := afero.ReadFile(fs, "shares/share_1.shard")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, zstdMagic), "stored file is a zstd frame")

	loaded, err := store.Load(1)
	require.NoError(t, err)
	assert.Equal(t, shares[0], loaded)
}

func TestFileStoreMixedCompression(t *testing.T) {
	fs := afero.NewMemMapFs()
	plain, err := NewFileStoreFS(fs, "shares")
	require.NoError(t, err)
	compressed, err := NewFileStoreFS(fs, "shares", WithCompression(true))
	require.NoError(t, err)

	shares := testShares(t, 3, 2)
	require.NoError(t, plain.Store(&shares[0]))
	require.NoError(t, compressed.Store(&shares[1]))

	// A single store reads both representations.
	for index := uint8(1); index <= 2; index++ {
		loaded, err := plain.Load(index)
		require.NoError(t, err)
		assert.Equal(t, shares[index-1], loaded)
	}
}
