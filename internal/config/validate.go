package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func Validate(cfg *Config) error {
	return cfg.Validate()
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateImporter(); err != nil {
		return err
	}
	if err := c.validateRun(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAPI() error {
	if c.API.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/songbatch/config.toml"
		}
		return fmt.Errorf("api.api_key is required. Edit %s (create with 'songbatch config init')", defaultPath)
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must be set")
	}
	if c.API.AuthURL == "" {
		return errors.New("api.auth_url must be set")
	}
	if c.API.PageLimit <= 0 {
		return errors.New("api.page_limit must be positive")
	}
	if c.API.RequestTimeout <= 0 {
		return errors.New("api.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.SongList == "" {
		return errors.New("paths.song_list must be set")
	}
	if c.Paths.Ledger == "" {
		return errors.New("paths.ledger must be set")
	}
	if c.Paths.Candidates == "" {
		return errors.New("paths.candidates must be set")
	}
	return nil
}

func (c *Config) validateImporter() error {
	if c.Importer.Command == "" {
		return errors.New("importer.command must be set")
	}
	if c.Importer.Timeout < 0 {
		return errors.New("importer.timeout must not be negative")
	}
	return nil
}

func (c *Config) validateRun() error {
	if c.Run.TopCandidates <= 0 {
		return errors.New("run.top_candidates must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
