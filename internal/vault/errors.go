package vault

import "errors"

var (
	// ErrDuplicateLabel is returned by Add when an entry with the same label
	// already exists. The store is left unchanged.
	ErrDuplicateLabel = errors.New("vault: label already exists")

	// ErrDecode is returned when a stored password is not valid base64 or
	// does not decrypt to UTF-8 text. It signals a corrupt record.
	ErrDecode = errors.New("vault: stored password is corrupt")

	// ErrStoreUnavailable is returned when the backing database cannot be
	// created, opened, or migrated.
	ErrStoreUnavailable = errors.New("vault: credential store unavailable")
)
