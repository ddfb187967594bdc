// Package vault stores labeled credentials in a local SQLite database with
// the password field encrypted at rest.
//
// A Vault is a handle the caller owns: Open it for an operation and Close it
// when done. It is not safe for concurrent use.
package vault

import (
	"database/sql"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

// Cipher transforms password bytes to and from their stored form.
// *envelope.Cipher satisfies it.
type Cipher interface {
	Wrap(plaintext []byte) ([]byte, error)
	Unwrap(ciphertext []byte) ([]byte, error)
}

// Vault is an open credential store.
type Vault struct {
	conn   *sql.DB
	cipher Cipher
	path   string
}

// Open opens the store at path, creating the file and schema if missing.
// Errors wrap ErrStoreUnavailable.
func Open(path string, cipher Cipher) (*Vault, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("%w: create directory: %v", ErrStoreUnavailable, err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrStoreUnavailable, err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open %s: %v", ErrStoreUnavailable, path, err)
	}

	v := &Vault{conn: conn, cipher: cipher, path: path}
	if err := v.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: restrict permissions: %v", ErrStoreUnavailable, err)
	}

	return v, nil
}

// OpenReadOnly opens an existing store for reading. It never creates the
// file, runs migrations, or changes permissions, so it needs no lock.
// Writes through the returned Vault fail.
func OpenReadOnly(path string, cipher Cipher) (*Vault, error) {
	conn, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrStoreUnavailable, err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open %s: %v", ErrStoreUnavailable, path, err)
	}

	return &Vault{conn: conn, cipher: cipher, path: path}, nil
}

// Close closes the database connection.
func (v *Vault) Close() error {
	return v.conn.Close()
}

// Path returns the database file path.
func (v *Vault) Path() string {
	return v.path
}

func (v *Vault) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS passwords (
			id INTEGER PRIMARY KEY,
			label TEXT NOT NULL,
			description TEXT NOT NULL,
			username TEXT NOT NULL,
			password TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_passwords_label ON passwords(label)`,
	}

	for i, m := range migrations {
		if _, err := v.conn.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}

// Add stores a new entry. If the label is already taken it returns an error
// wrapping ErrDuplicateLabel and writes nothing. Description is ignored and
// always stored empty.
func (v *Vault) Add(e Entry) error {
	tx, err := v.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin add: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM passwords WHERE label = ?`, e.Label).Scan(&count); err != nil {
		return fmt.Errorf("check label: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateLabel, e.Label)
	}

	wrapped, err := v.cipher.Wrap([]byte(e.Password))
	if err != nil {
		return fmt.Errorf("encrypt password for %q: %w", e.Label, err)
	}
	encoded := base64.StdEncoding.EncodeToString(wrapped)

	_, err = tx.Exec(
		`INSERT INTO passwords (label, description, username, password) VALUES (?, ?, ?, ?)`,
		e.Label, "", e.Username, encoded,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateLabel, e.Label)
		}
		return fmt.Errorf("insert entry: %w", err)
	}

	return tx.Commit()
}

// List returns every entry in insertion order with decrypted passwords.
// The first record that fails to decode or decrypt aborts the listing; the
// returned error names its label.
func (v *Vault) List() ([]Entry, error) {
	rows, err := v.conn.Query(`SELECT label, description, username, password FROM passwords ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var stored string
		if err := rows.Scan(&e.Label, &e.Description, &e.Username, &stored); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Password, err = v.reveal(stored)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Label, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (v *Vault) reveal(stored string) (string, error) {
	wrapped, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	plaintext, err := v.cipher.Unwrap(wrapped)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: password is not valid UTF-8", ErrDecode)
	}
	return string(plaintext), nil
}

// Labels returns all labels in insertion order without decrypting anything.
func (v *Vault) Labels() ([]string, error) {
	rows, err := v.conn.Query(`SELECT label FROM passwords ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

// Find returns the entries whose label is within MaxDistance edits of query,
// in insertion order. An empty result with a nil error means nothing matched;
// errors from List are returned as-is.
func (v *Vault) Find(query string) ([]Entry, error) {
	entries, err := v.List()
	if err != nil {
		return nil, err
	}

	var matches []Entry
	for _, e := range entries {
		if Matches(e.Label, query) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// Remove deletes every entry whose label equals label exactly. Removing a
// label that does not exist is not an error.
func (v *Vault) Remove(label string) error {
	if _, err := v.conn.Exec(`DELETE FROM passwords WHERE label = ?`, label); err != nil {
		return fmt.Errorf("remove entry %q: %w", label, err)
	}
	return nil
}
