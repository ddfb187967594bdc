package keys

import (
	"crypto/rand"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"

	"github.com/semmy-space/amanah/internal/config"
)

// ServiceName is the service identifier for keyring storage
const ServiceName = "amanah"

const keyItem = "vault-key"

// KeyringSource keeps the vault key in the OS keyring, generating it on
// first use.
type KeyringSource struct {
	ring keyring.Keyring
}

// OpenKeyring opens the platform keyring. On WSL and headless Linux only
// the encrypted file backend is allowed, since Secret Service and KWallet
// need a session bus that is usually missing there.
func OpenKeyring() (*KeyringSource, error) {
	cfg := keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true, // macOS: don't prompt every access
		FileDir:                  filepath.Join(config.DataDir(), "keyring"),
		FilePasswordFunc:         keyring.TerminalPrompt,
	}
	if IsWSL() || IsHeadless() {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}

	return NewKeyringSource(ring), nil
}

// NewKeyringSource wraps an already opened keyring.
func NewKeyringSource(ring keyring.Keyring) *KeyringSource {
	return &KeyringSource{ring: ring}
}

// Key returns a copy of the stored key, creating and storing a random one
// if the keyring holds none yet. Callers may zero the result.
func (s *KeyringSource) Key() ([]byte, error) {
	item, err := s.ring.Get(keyItem)
	if err == nil {
		if len(item.Data) != KeySize {
			return nil, fmt.Errorf("keyring item %q holds %d bytes, want %d", keyItem, len(item.Data), KeySize)
		}
		key := make([]byte, KeySize)
		copy(key, item.Data)
		return key, nil
	}
	if !errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, fmt.Errorf("keyring get failed: %w", err)
	}

	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	err = s.ring.Set(keyring.Item{
		Key:         keyItem,
		Data:        key,
		Label:       "amanah vault key",
		Description: "Encryption key for the amanah credential vault",
	})
	if err != nil {
		return nil, fmt.Errorf("keyring set failed: %w", err)
	}
	return append([]byte(nil), key...), nil
}
