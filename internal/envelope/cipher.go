// Package envelope wraps secret payloads with XChaCha20-Poly1305 under a
// caller-supplied 256-bit key. Every wrapped payload is self-contained:
//
//	[Version: 1 byte (0x01)] [Nonce: 24 bytes (random)] [Ciphertext+Tag: N+16 bytes]
//
// The version byte is authenticated as additional data, so changing it makes
// Unwrap fail.
package envelope

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required key length in bytes.
const KeySize = chacha20poly1305.KeySize

// Version is the format byte prepended to every envelope.
const Version byte = 0x01

// Overhead is the number of bytes Wrap adds to a plaintext.
const Overhead = 1 + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

var (
	// ErrEncryption is returned when wrapping fails. It indicates an
	// internal failure (e.g. no randomness available) and is not expected
	// under normal operation.
	ErrEncryption = errors.New("envelope: encryption failed")

	// ErrDecryption is returned when an envelope is malformed, its tag does
	// not verify, or it was produced under a different key.
	ErrDecryption = errors.New("envelope: decryption failed")
)

// Cipher wraps and unwraps payloads under a single fixed key.
type Cipher struct {
	aead cipher.AEAD
	rand io.Reader
}

// New creates a Cipher for the given key. The key is copied by the AEAD and
// may be zeroed by the caller afterwards.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("envelope: key must be %d bytes, got %d", KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("envelope: creating cipher: %w", err)
	}
	return &Cipher{aead: aead, rand: rand.Reader}, nil
}

// Wrap encrypts plaintext with a fresh random nonce. Wrapping the same
// plaintext twice yields different envelopes.
func (c *Cipher) Wrap(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return nil, fmt.Errorf("%w: generating nonce: %v", ErrEncryption, err)
	}

	out := make([]byte, 0, Overhead+len(plaintext))
	out = append(out, Version)
	out = append(out, nonce...)
	out = c.aead.Seal(out, nonce, plaintext, []byte{Version})

	if bytes.Equal(out, plaintext) {
		return nil, fmt.Errorf("%w: envelope equals plaintext", ErrEncryption)
	}
	return out, nil
}

// Unwrap reverses Wrap. Any failure wraps ErrDecryption.
func (c *Cipher) Unwrap(envelope []byte) ([]byte, error) {
	if len(envelope) < Overhead {
		return nil, fmt.Errorf("%w: envelope too short (%d bytes)", ErrDecryption, len(envelope))
	}
	if envelope[0] != Version {
		return nil, fmt.Errorf("%w: unsupported version 0x%02x", ErrDecryption, envelope[0])
	}

	nonceEnd := 1 + c.aead.NonceSize()
	nonce := envelope[1:nonceEnd]
	plaintext, err := c.aead.Open(nil, nonce, envelope[nonceEnd:], envelope[:1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
