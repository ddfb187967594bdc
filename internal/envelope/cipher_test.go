package envelope

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestCipher(t *testing.T, key []byte) *Cipher {
	t.Helper()
	c, err := New(key)
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadKeySize(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33, 64} {
		_, err := New(make([]byte, size))
		assert.Error(t, err, "size %d", size)
	}
}

func TestRoundTrip(t *testing.T) {
	c := newTestCipher(t, testKey)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{name: "empty", plaintext: []byte{}},
		{name: "ascii", plaintext: []byte("p@ss1")},
		{name: "unicode", plaintext: []byte("pässwörd🔑")},
		{name: "binary", plaintext: []byte{0x00, 0xff, 0x10, 0x00}},
		{name: "long", plaintext: bytes.Repeat([]byte("x"), 4096)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped, err := c.Wrap(tt.plaintext)
			require.NoError(t, err)
			assert.Len(t, wrapped, len(tt.plaintext)+Overhead)
			assert.Equal(t, Version, wrapped[0])

			unwrapped, err := c.Unwrap(wrapped)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, unwrapped)
		})
	}
}

func TestWrapTransformsPlaintext(t *testing.T) {
	c := newTestCipher(t, testKey)
	plaintext := []byte("hunter2")

	wrapped, err := c.Wrap(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, wrapped)
	assert.False(t, bytes.Contains(wrapped, plaintext), "plaintext must not appear in envelope")
}

func TestWrapIsRandomized(t *testing.T) {
	c := newTestCipher(t, testKey)

	first, err := c.Wrap([]byte("same"))
	require.NoError(t, err)
	second, err := c.Wrap([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestUnwrapFailures(t *testing.T) {
	c := newTestCipher(t, testKey)
	wrapped, err := c.Wrap([]byte("secret"))
	require.NoError(t, err)

	flip := func(i int) []byte {
		out := append([]byte(nil), wrapped...)
		out[i] ^= 0x01
		return out
	}

	tests := []struct {
		name     string
		envelope []byte
	}{
		{name: "nil", envelope: nil},
		{name: "too short", envelope: wrapped[:Overhead-1]},
		{name: "bad version", envelope: flip(0)},
		{name: "tampered nonce", envelope: flip(1)},
		{name: "tampered body", envelope: flip(len(wrapped) - 1)},
		{name: "plain text", envelope: bytes.Repeat([]byte("a"), Overhead+4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Unwrap(tt.envelope)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDecryption))
		})
	}
}

func TestUnwrapWithDifferentKey(t *testing.T) {
	c := newTestCipher(t, testKey)
	other := newTestCipher(t, []byte("fedcba9876543210fedcba9876543210"))

	wrapped, err := c.Wrap([]byte("secret"))
	require.NoError(t, err)

	_, err = other.Unwrap(wrapped)
	assert.ErrorIs(t, err, ErrDecryption)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestWrapNonceFailure(t *testing.T) {
	c := newTestCipher(t, testKey)
	c.rand = failingReader{}

	_, err := c.Wrap([]byte("secret"))
	assert.ErrorIs(t, err, ErrEncryption)
}
