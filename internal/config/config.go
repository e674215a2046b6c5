// Package config assembles application settings from the environment and
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/abhisek/sorubot/internal/llm"
	"github.com/abhisek/sorubot/internal/logging"
	"github.com/abhisek/sorubot/internal/store"
)

// DefaultEnvFile is loaded when no --env-file is given.
const DefaultEnvFile = ".env"

// Config is the resolved application configuration.
type Config struct {
	DBPath string
	Log    logging.Config

	// LLM is the resolved provider configuration. LLMErr is set when no
	// usable credential was found; the app still starts.
	LLM    llm.Config
	LLMErr error
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing default file is not an error.
func LoadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	err := godotenv.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads the environment (after envFile) and resolves every setting.
// dbPath overrides SORUBOT_DB when set.
func Load(envFile, dbPath string) (*Config, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return nil, err
	}

	cfg := &Config{DBPath: dbPath}

	if cfg.DBPath != "" {
		if err := store.EnsureDir(cfg.DBPath); err != nil {
			return nil, fmt.Errorf("prepare database directory: %w", err)
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		cfg.DBPath = p
	}

	cfg.Log = logging.DefaultConfig()
	cfg.Log.Level = getEnv("SORUBOT_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("SORUBOT_LOG_FILE", cfg.Log.File)
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	cfg.LLM, cfg.LLMErr = llm.ResolveConfig()

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
