// Package config loads runtime configuration for the conversation store from
// defaults, an optional TOML file and CONVOSTORE_ environment variables, in
// that order of precedence (later sources override earlier ones).
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the application configuration.
type Config struct {
	Storage struct {
		// Backend selects the snapshot store: "jsonfile", "bolt" or "memory".
		Backend string `koanf:"backend"`
		// Path is the externally configured persistence location.
		Path string `koanf:"path"`
	} `koanf:"storage"`

	Logging struct {
		Level  string `koanf:"level"`  // debug, info, warn, error
		Format string `koanf:"format"` // json or text
	} `koanf:"logging"`

	Completion struct {
		// Provider selects the completion backend: "openai", "anthropic" or "mock".
		Provider    string  `koanf:"provider"`
		Model       string  `koanf:"model"`
		Temperature float64 `koanf:"temperature"`
		MaxTokens   int64   `koanf:"maxtokens"`
	} `koanf:"completion"`
}

// Load reads the configuration. An empty configPath skips the file layer.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Baseline defaults.
	_ = k.Load(confmap.Provider(map[string]interface{}{
		"storage.backend":        "jsonfile",
		"storage.path":           "conversations.json",
		"logging.level":          "info",
		"logging.format":         "json",
		"completion.provider":    "openai",
		"completion.model":       "",
		"completion.temperature": 0.7,
		"completion.maxtokens":   4096,
	}, "."), nil)

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	// Environment overrides, e.g. CONVOSTORE_STORAGE_PATH.
	_ = k.Load(env.Provider("CONVOSTORE_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "CONVOSTORE_")), "_", ".", -1)
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the wiring layer cannot act on.
func Validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case "jsonfile", "bolt", "memory":
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend != "memory" && cfg.Storage.Path == "" {
		return fmt.Errorf("storage path is required for backend %q", cfg.Storage.Backend)
	}
	switch cfg.Completion.Provider {
	case "openai", "anthropic", "mock":
	default:
		return fmt.Errorf("unknown completion provider %q", cfg.Completion.Provider)
	}
	return nil
}
