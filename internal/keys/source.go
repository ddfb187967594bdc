// Package keys provides the key material for the vault's envelope cipher.
package keys

import "fmt"

// KeySize is the length in bytes of every key a Source returns.
const KeySize = 32

// Source names accepted by New and the key_source config value.
const (
	SourceEmbedded = "embedded"
	SourceKeyring  = "keyring"
)

// Source supplies the vault encryption key.
type Source interface {
	Key() ([]byte, error)
}

// embeddedKey is compiled into the binary. Anyone holding the binary can
// decrypt a vault written with it.
var embeddedKey = []byte("0123456789abcdef0123456789abcdef")

// Embedded returns the fixed key compiled into the binary. This is the
// default source and offers no protection beyond obscurity.
type Embedded struct{}

// Key returns a copy of the embedded key.
func (Embedded) Key() ([]byte, error) {
	key := make([]byte, KeySize)
	copy(key, embeddedKey)
	return key, nil
}

// ValidSources returns the accepted source names.
func ValidSources() []string {
	return []string{SourceEmbedded, SourceKeyring}
}

// New returns the Source registered under kind. An empty kind selects the
// embedded key.
func New(kind string) (Source, error) {
	switch kind {
	case "", SourceEmbedded:
		return Embedded{}, nil
	case SourceKeyring:
		return OpenKeyring()
	default:
		return nil, fmt.Errorf("unknown key source: %s", kind)
	}
}
