package sharestore

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/crypto/scrypt"

	"github.com/izouxv/goShamir/shamir"
	"github.com/izouxv/goShamir/utils"
)

const (
	vaultKDF     = "scrypt"
	vaultCipher  = "aes-256-gcm"
	vaultVersion = 1
	vaultSuffix  = ".vault"
	vaultDklen   = 32
)

// ScryptN is the N parameter of the scrypt KDF, 2^18 per current
// recommendations for standard security. Tests lower it to keep runtimes
// sane.
var ScryptN = 1 << 18

// ScryptP is the P parameter of the scrypt KDF.
var ScryptP = 1

// ErrInvalidPassword is returned when a vault share cannot be decrypted
// with the supplied password.
var ErrInvalidPassword = errors.New("sharestore: invalid password")

// vaultEnvelope is the on-disk JSON structure of an encrypted share file.
type vaultEnvelope struct {
	ID      string     `json:"id"`
	Version int        `json:"version"`
	Crypto  cryptoJSON `json:"crypto"`
}

type cryptoJSON struct {
	Cipher     string           `json:"cipher"`
	CipherText []byte           `json:"ciphertext"`
	KDF        string           `json:"kdf"`
	KDFParams  scryptParamsJSON `json:"kdfparams"`
}

type scryptParamsJSON struct {
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
	Dklen int    `json:"dklen"`
	Salt  []byte `json:"salt"`
}

// VaultStore is a ShareStore whose files are protected by a password. The
// serialized share container is sealed with AES-256-GCM under a key
// derived by scrypt from the password and a per-file salt, then wrapped in
// a JSON envelope named share_<index>.vault.
type VaultStore struct {
	fs       afero.Fs
	dir      string
	password []byte
	log      zerolog.Logger
}

// NewVaultStore opens (creating if needed) an encrypted share directory on
// the operating system filesystem.
func NewVaultStore(dir, password string) (*VaultStore, error) {
	return NewVaultStoreFS(afero.NewOsFs(), dir, password)
}

// NewVaultStoreFS is NewVaultStore over an explicit afero filesystem.
func NewVaultStoreFS(fs afero.Fs, dir, password string) (*VaultStore, error) {
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("sharestore: creating %s: %w", dir, err)
	}
	return &VaultStore{fs: fs, dir: dir, password: []byte(password), log: zerolog.Nop()}, nil
}

// SetLogger attaches a logger; the store is silent by default.
func (s *VaultStore) SetLogger(log zerolog.Logger) {
	s.log = log
}

func (s *VaultStore) sharePath(index uint8) string {
	return filepath.Join(s.dir, fmt.Sprintf("share_%d%s", index, vaultSuffix))
}

// Store serializes and encrypts the share, writing a fresh envelope (new
// id, new salt, new nonce) every time.
func (s *VaultStore) Store(share *shamir.Share) error {
	plain, err := share.Marshal()
	if err != nil {
		return err
	}
	defer utils.Wipe(plain)

	salt := make([]byte, 32)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("sharestore: generating salt: %w", err)
	}
	key, err := scrypt.Key(s.password, salt, ScryptN, 8, ScryptP, vaultDklen)
	if err != nil {
		return fmt.Errorf("sharestore: deriving key: %w", err)
	}
	defer utils.Wipe(key)

	cipherText, err := gcmSeal(plain, key)
	if err != nil {
		return fmt.Errorf("sharestore: sealing share %d: %w", share.Index, err)
	}

	env := vaultEnvelope{
		ID:      uuid.New().String(),
		Version: vaultVersion,
		Crypto: cryptoJSON{
			Cipher:     vaultCipher,
			CipherText: cipherText,
			KDF:        vaultKDF,
			KDFParams: scryptParamsJSON{
				N:     ScryptN,
				R:     8,
				P:     ScryptP,
				Dklen: vaultDklen,
				Salt:  salt,
			},
		},
	}
	buf, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("sharestore: encoding envelope: %w", err)
	}
	path := s.sharePath(share.Index)
	if err := afero.WriteFile(s.fs, path, buf, 0o600); err != nil {
		return fmt.Errorf("sharestore: writing %s: %w", path, err)
	}
	s.log.Debug().Uint8("index", share.Index).Str("path", path).Str("id", env.ID).Msg("stored vault share")
	return nil
}

// Load decrypts and parses the share with the given index. A wrong
// password fails GCM authentication and is reported as
// ErrInvalidPassword; envelope damage is shamir.ErrInvalidFormat.
func (s *VaultStore) Load(index uint8) (shamir.Share, error) {
	path := s.sharePath(index)
	buf, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return shamir.Share{}, fmt.Errorf("%w: %d", shamir.ErrInvalidShareIndex, index)
		}
		return shamir.Share{}, fmt.Errorf("sharestore: reading %s: %w", path, err)
	}

	var env vaultEnvelope
	if err := json.Unmarshal(buf, &env); err != nil {
		return shamir.Share{}, fmt.Errorf("%w: %v", shamir.ErrInvalidFormat, err)
	}
	if env.Version > vaultVersion {
		return shamir.Share{}, fmt.Errorf("%w: vault version %d", shamir.ErrUnsupportedVersion, env.Version)
	}
	if env.Crypto.KDF != vaultKDF {
		return shamir.Share{}, fmt.Errorf("%w: unsupported KDF %q", shamir.ErrInvalidFormat, env.Crypto.KDF)
	}
	if env.Crypto.Cipher != vaultCipher {
		return shamir.Share{}, fmt.Errorf("%w: unsupported cipher %q", shamir.ErrInvalidFormat, env.Crypto.Cipher)
	}

	params := env.Crypto.KDFParams
	key, err := scrypt.Key(s.password, params.Salt, params.N, params.R, params.P, params.Dklen)
	if err != nil {
		return shamir.Share{}, fmt.Errorf("%w: %v", shamir.ErrInvalidFormat, err)
	}
	defer utils.Wipe(key)

	// A wrong password derives a wrong key and GCM authentication fails.
	plain, err := gcmOpen(env.Crypto.CipherText, key)
	if err != nil {
		return shamir.Share{}, ErrInvalidPassword
	}
	defer utils.Wipe(plain)

	share, err := shamir.UnmarshalShare(plain)
	if err != nil {
		return shamir.Share{}, err
	}
	if share.Index != index {
		share.Wipe()
		return shamir.Share{}, fmt.Errorf("%w: %s holds share %d", shamir.ErrInvalidFormat, path, share.Index)
	}
	s.log.Debug().Uint8("index", index).Str("path", path).Msg("loaded vault share")
	return share, nil
}

// List returns the stored share indices in ascending order.
func (s *VaultStore) List() ([]uint8, error) {
	return listIndices(s.fs, s.dir, vaultSuffix)
}

// Delete removes the vault file for the given index.
func (s *VaultStore) Delete(index uint8) error {
	path := s.sharePath(index)
	if err := s.fs.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %d", shamir.ErrInvalidShareIndex, index)
		}
		return fmt.Errorf("sharestore: removing %s: %w", path, err)
	}
	return nil
}
