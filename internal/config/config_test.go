package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.KeySource)
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, DefaultDBPath(), cfg.ResolvedDBPath())
}

func TestLoadFileParsesJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	data := `{
  // comments and trailing commas are fine
  db_path: "/tmp/vault.db",
  key_source: "keyring",
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/vault.db", cfg.DBPath)
	assert.Equal(t, "/tmp/vault.db", cfg.ResolvedDBPath())
	assert.Equal(t, "keyring", cfg.KeySource)
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	require.NoError(t, os.WriteFile(path, []byte("{not valid"), 0600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestSetPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json5")
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("db_path", "/srv/passwords.db"))
	require.NoError(t, cfg.Set("default_output", "json"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/passwords.db", reloaded.DBPath)
	assert.Equal(t, "json", reloaded.DefaultOutput)

	require.NoError(t, reloaded.Unset("db_path"))
	reloaded, err = LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, reloaded.DBPath)
}

func TestSetValidation(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "unknown key", key: "region", value: "us", wantErr: "unknown config key"},
		{name: "bad key source", key: "key_source", value: "tpm", wantErr: "invalid key_source"},
		{name: "bad output", key: "default_output", value: "xml", wantErr: "invalid default_output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.Set(tt.key, tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGet(t *testing.T) {
	cfg := &Config{KeySource: "embedded"}

	value, err := cfg.Get("key_source")
	require.NoError(t, err)
	assert.Equal(t, "embedded", value)

	_, err = cfg.Get("path")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"db_path", "key_source", "default_output"}, Keys())
}
