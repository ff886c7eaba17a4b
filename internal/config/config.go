// Package config loads bkmr's configuration: a YAML file overridden
// field-by-field by environment variables, generalized from the teacher's
// os.Getenv-driven bootstrap in cmd/server/main.go into an explicit loader.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FuzzyOptions configures the interactive fuzzy picker (an external
// collaborator; bkmr only carries its configuration, not its UI).
type FuzzyOptions struct {
	HeightPct int  `yaml:"height_pct"`
	Reverse   bool `yaml:"reverse"`
	ShowTags  bool `yaml:"show_tags"`
	NoURL     bool `yaml:"no_url"`
}

// Config is bkmr's full resolved configuration.
type Config struct {
	DBPath           string            `yaml:"db_path"`
	Shell            string            `yaml:"shell"`
	Editor           string            `yaml:"editor"`
	OpenAIKey        string            `yaml:"-"` // never persisted to the file, env-only
	Fuzzy            FuzzyOptions      `yaml:"fuzzy"`
	BasePaths        map[string]string `yaml:"base_paths"`
	BackfillInterval string            `yaml:"backfill_interval"`
}

const defaultBackfillInterval = "30s"

// DefaultPath returns ~/.config/bkmr/config.yaml, resolved via os.UserHomeDir.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "bkmr", "config.yaml"), nil
}

// DefaultDBPath returns ~/.config/bkmr/bkmr.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "bkmr", "bkmr.db"), nil
}

// Load reads path if it exists (a missing file is not an error - bkmr runs
// on defaults plus environment alone), then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Shell:            "/bin/sh",
		Editor:           "vi",
		Fuzzy:            FuzzyOptions{HeightPct: 80, ShowTags: true},
		BasePaths:        map[string]string{},
		BackfillInterval: defaultBackfillInterval,
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fine: env + defaults only
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if cfg.DBPath == "" {
		dbPath, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

const basePathEnvPrefix = "BKMR_BASE_PATH_"

func (c *Config) applyEnv() {
	if v := os.Getenv("BKMR_DB_URL"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("EDITOR"); v != "" {
		c.Editor = v
	}
	if v := os.Getenv("SHELL"); v != "" {
		c.Shell = v
	}
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	for _, kv := range os.Environ() {
		key, val, ok := splitEnv(kv)
		if !ok || len(key) <= len(basePathEnvPrefix) || key[:len(basePathEnvPrefix)] != basePathEnvPrefix {
			continue
		}
		name := key[len(basePathEnvPrefix):]
		if c.BasePaths == nil {
			c.BasePaths = map[string]string{}
		}
		c.BasePaths[name] = val
	}
}

func splitEnv(kv string) (key, val string, ok bool) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:], true
		}
	}
	return "", "", false
}

// HasEmbedder reports whether an embedding API key is configured, mirroring
// the teacher's OPENAI_API_KEY gate on the background processor.
func (c *Config) HasEmbedder() bool { return c.OpenAIKey != "" }
