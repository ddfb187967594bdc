package cli

import (
	"os"

	"github.com/posener/complete"

	"github.com/semmy-space/amanah/internal/config"
	"github.com/semmy-space/amanah/internal/vault"
)

// LabelPredictor completes label arguments from the stored labels. Labels
// are plaintext, so no key is needed. The database is opened read-only
// without the session lock; any failure yields no suggestions.
func LabelPredictor() complete.Predictor {
	return complete.PredictFunc(func(complete.Args) []string {
		return storedLabels(completionDBPath())
	})
}

func completionDBPath() string {
	if path := os.Getenv("AMANAH_DB"); path != "" {
		return path
	}
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultDBPath()
	}
	return cfg.ResolvedDBPath()
}

func storedLabels(dbPath string) []string {
	if _, err := os.Stat(dbPath); err != nil {
		return nil
	}

	v, err := vault.OpenReadOnly(dbPath, nil)
	if err != nil {
		return nil
	}
	defer v.Close()

	labels, err := v.Labels()
	if err != nil {
		return nil
	}
	return labels
}
