package cli

import (
	"errors"
	"fmt"

	"github.com/semmy-space/amanah/internal/envelope"
	"github.com/semmy-space/amanah/internal/output"
	"github.com/semmy-space/amanah/internal/vault"
)

// storeError converts a vault error into a CLIError with the matching exit code
func storeError(action string, err error) *output.CLIError {
	msg := fmt.Sprintf("Failed to %s: %v", action, err)

	switch {
	case errors.Is(err, vault.ErrStoreUnavailable):
		return output.NewCLIError(output.ExitStoreError, msg).
			WithHint("Check that --db or db_path points to a writable location").
			Wrap(err)
	case errors.Is(err, envelope.ErrDecryption), errors.Is(err, vault.ErrDecode):
		return output.NewCLIError(output.ExitCorrupt, msg).
			WithHint("The entry was written under a different key source, or the database is damaged").
			Wrap(err)
	}

	return output.NewCLIError(output.ExitGeneral, msg).Wrap(err)
}
