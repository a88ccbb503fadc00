// Package testsupport provides helpers for constructing test fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"songbatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test. It
// defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.API.APIKey = "test"
	cfg.Paths.SongList = filepath.Join(base, "SONGS_TO_ADD.md")
	cfg.Paths.Ledger = filepath.Join(base, ".song_progress.json")
	cfg.Paths.Candidates = filepath.Join(base, ".song_candidates.json")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithImporter overrides the importer command on the test config.
func WithImporter(command string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Importer.Command = command
	}
}
