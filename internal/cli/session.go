package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/semmy-space/amanah/internal/config"
	"github.com/semmy-space/amanah/internal/envelope"
	"github.com/semmy-space/amanah/internal/keys"
	"github.com/semmy-space/amanah/internal/output"
	"github.com/semmy-space/amanah/internal/vault"
)

const lockTimeout = 10 * time.Second

// session is an open vault plus the file lock that serializes
// concurrent invocations against the same database.
type session struct {
	vault *vault.Vault
	lock  *flock.Flock
}

// resolveDBPath applies flag > config > default
func resolveDBPath(cfg *config.Config, globals *Globals) string {
	if globals.DB != "" {
		return globals.DB
	}
	return cfg.ResolvedDBPath()
}

// resolveKeySource applies flag > config > embedded
func resolveKeySource(cfg *config.Config, globals *Globals) string {
	if globals.KeySource != "" {
		return globals.KeySource
	}
	if cfg.KeySource != "" {
		return cfg.KeySource
	}
	return keys.SourceEmbedded
}

// openSession locks the database, provisions the key, and opens the vault.
// The caller must Close the session.
func openSession(cfg *config.Config, globals *Globals) (*session, error) {
	dbPath := resolveDBPath(cfg, globals)
	keySource := resolveKeySource(cfg, globals)

	if globals.Verbose {
		fmt.Fprintf(stderr, "Database: %s\n", dbPath)
		fmt.Fprintf(stderr, "Key source: %s\n", keySource)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, storeError("open vault", fmt.Errorf("%w: %v", vault.ErrStoreUnavailable, err))
	}

	lock := flock.New(dbPath + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, storeError("lock vault", fmt.Errorf("%w: %v", vault.ErrStoreUnavailable, err))
	}
	if !locked {
		return nil, &output.CLIError{
			Message:  fmt.Sprintf("Timed out waiting for lock on %s", dbPath),
			Hint:     "Another amanah command is using the vault",
			ExitCode: output.ExitTimeout,
		}
	}

	v, err := openVault(dbPath, keySource)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	return &session{vault: v, lock: lock}, nil
}

func openVault(dbPath, keySource string) (*vault.Vault, error) {
	source, err := keys.New(keySource)
	if err != nil {
		return nil, &output.CLIError{
			Message:  fmt.Sprintf("Failed to initialize key source: %v", err),
			ExitCode: output.ExitConfigError,
		}
	}

	key, err := source.Key()
	if err != nil {
		return nil, &output.CLIError{
			Message:  fmt.Sprintf("Failed to load encryption key: %v", err),
			ExitCode: output.ExitConfigError,
		}
	}
	cipher, err := envelope.New(key)
	clear(key)
	if err != nil {
		return nil, &output.CLIError{
			Message:  fmt.Sprintf("Invalid encryption key: %v", err),
			ExitCode: output.ExitConfigError,
		}
	}

	v, err := vault.Open(dbPath, cipher)
	if err != nil {
		return nil, storeError("open vault", err)
	}
	return v, nil
}

// Close releases the database and the lock.
func (s *session) Close() error {
	err := s.vault.Close()
	if uerr := s.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}
