// Package sharestore persists shares produced by the shamir package. The
// canonical backend keeps one container file per share under a directory;
// VaultStore wraps the same container in a password-encrypted envelope.
package sharestore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/izouxv/goShamir/shamir"
)

// ShareStore is the storage abstraction for shares.
type ShareStore interface {
	// Store persists one share.
	Store(share *shamir.Share) error
	// Load reads the share with the given index back into memory.
	Load(index uint8) (shamir.Share, error)
	// List returns the stored share indices in ascending order.
	List() ([]uint8, error)
	// Delete removes the share with the given index.
	Delete(index uint8) error
}

const shardSuffix = ".shard"

// FileStore keeps each share in its own file, share_<index>.shard, under a
// base directory created at construction. Opening an existing directory is
// permitted. Load reads the whole file into memory before parsing, so a
// malformed file is rejected as a unit.
type FileStore struct {
	fs       afero.Fs
	dir      string
	compress bool
	log      zerolog.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger attaches a logger; the store is silent by default. Only
// indices and paths are logged, never share data.
func WithLogger(log zerolog.Logger) Option {
	return func(s *FileStore) { s.log = log }
}

// WithCompression passes the serialized container through zstd on its way
// to disk. Load recognizes compressed files by their frame magic, so a
// directory may mix both forms.
func WithCompression(enabled bool) Option {
	return func(s *FileStore) { s.compress = enabled }
}

// NewFileStore opens (creating if needed) a share directory on the
// operating system filesystem.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	return NewFileStoreFS(afero.NewOsFs(), dir, opts...)
}

// NewFileStoreFS is NewFileStore over an explicit afero filesystem, which
// keeps tests off the disk.
func NewFileStoreFS(fs afero.Fs, dir string, opts ...Option) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("sharestore: creating %s: %w", dir, err)
	}
	s := &FileStore{fs: fs, dir: dir, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *FileStore) sharePath(index uint8) string {
	return filepath.Join(s.dir, fmt.Sprintf("share_%d%s", index, shardSuffix))
}

// Store serializes the share and writes it to share_<index>.shard,
// overwriting any previous share with the same index.
func (s *FileStore) Store(share *shamir.Share) error {
	buf, err := share.Marshal()
	if err != nil {
		return err
	}
	if s.compress {
		if buf, err = compressContainer(buf); err != nil {
			return fmt.Errorf("sharestore: compressing share %d: %w", share.Index, err)
		}
	}
	path := s.sharePath(share.Index)
	if err := afero.WriteFile(s.fs, path, buf, 0o600); err != nil {
		return fmt.Errorf("sharestore: writing %s: %w", path, err)
	}
	s.log.Debug().Uint8("index", share.Index).Str("path", path).Bool("compressed", s.compress).Msg("stored share")
	return nil
}

// Load reads and parses the share with the given index. A missing file is
// reported as shamir.ErrInvalidShareIndex.
func (s *FileStore) Load(index uint8) (shamir.Share, error) {
	path := s.sharePath(index)
	buf, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return shamir.Share{}, fmt.Errorf("%w: %d", shamir.ErrInvalidShareIndex, index)
		}
		return shamir.Share{}, fmt.Errorf("sharestore: reading %s: %w", path, err)
	}
	if bytes.HasPrefix(buf, zstdMagic) {
		if buf, err = decompressContainer(buf); err != nil {
			return shamir.Share{}, fmt.Errorf("%w: %v", shamir.ErrInvalidFormat, err)
		}
	}
	share, err := shamir.UnmarshalShare(buf)
	if err != nil {
		return shamir.Share{}, err
	}
	if share.Index != index {
		share.Wipe()
		return shamir.Share{}, fmt.Errorf("%w: %s holds share %d", shamir.ErrInvalidFormat, path, share.Index)
	}
	s.log.Debug().Uint8("index", index).Str("path", path).Msg("loaded share")
	return share, nil
}

// List returns the share indices present in the directory, ascending.
// Files that do not match the share_<index>.shard pattern are ignored.
func (s *FileStore) List() ([]uint8, error) {
	return listIndices(s.fs, s.dir, shardSuffix)
}

// Delete removes the share file for the given index. A missing file is
// reported as shamir.ErrInvalidShareIndex.
func (s *FileStore) Delete(index uint8) error {
	path := s.sharePath(index)
	if err := s.fs.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %d", shamir.ErrInvalidShareIndex, index)
		}
		return fmt.Errorf("sharestore: removing %s: %w", path, err)
	}
	s.log.Debug().Uint8("index", index).Str("path", path).Msg("deleted share")
	return nil
}

func listIndices(fs afero.Fs, dir, suffix string) ([]uint8, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("sharestore: listing %s: %w", dir, err)
	}
	var indices []uint8
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := strings.CutPrefix(entry.Name(), "share_")
		if !ok {
			continue
		}
		name, ok = strings.CutSuffix(name, suffix)
		if !ok {
			continue
		}
		index, err := strconv.ParseUint(name, 10, 8)
		if err != nil || index == 0 {
			continue
		}
		indices = append(indices, uint8(index))
	}
	slices.Sort(indices)
	return indices, nil
}
