// Package config loads server configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the server settings. File values are applied first, then
// SPMEPLAN_* environment variables override them.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"SPMEPLAN_ADDR" yaml:"addr"`

	// RedisAddr enables the Redis session store when non-empty; otherwise
	// sessions live in process memory.
	RedisAddr string `env:"SPMEPLAN_REDIS_ADDR" yaml:"redis_addr"`

	// RedisTTL bounds the lifetime of stored sessions.
	RedisTTL time.Duration `env:"SPMEPLAN_REDIS_TTL" yaml:"redis_ttl"`

	// PubChemURL overrides the PubChem PUG REST base URL, mainly for tests
	// and air-gapped mirrors.
	PubChemURL string `env:"SPMEPLAN_PUBCHEM_URL" yaml:"pubchem_url"`

	// SessionKey enables at-rest encryption of stored sessions when set.
	// Base64-encoded 32-byte AES-256 key.
	SessionKey string `env:"SPMEPLAN_SESSION_KEY" yaml:"session_key"`

	// SessionFallbackKeys are previous session keys kept readable during
	// rotation. Base64-encoded, tried in order.
	SessionFallbackKeys []string `env:"SPMEPLAN_SESSION_FALLBACK_KEYS" yaml:"session_fallback_keys"`

	// Debug enables debug logging.
	Debug bool `env:"SPMEPLAN_DEBUG" yaml:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:     ":8080",
		RedisTTL: 24 * time.Hour,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// EncryptionKeys decodes the session keys. Returns a nil active key when
// encryption is not configured.
func (c Config) EncryptionKeys() (active []byte, fallbacks [][]byte, err error) {
	if c.SessionKey == "" {
		return nil, nil, nil
	}
	active, err = base64.StdEncoding.DecodeString(c.SessionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("decode session key: %w", err)
	}
	if len(active) != 32 {
		return nil, nil, fmt.Errorf("session key must decode to 32 bytes, got %d", len(active))
	}
	for i, k := range c.SessionFallbackKeys {
		decoded, err := base64.StdEncoding.DecodeString(k)
		if err != nil {
			return nil, nil, fmt.Errorf("decode fallback key %d: %w", i, err)
		}
		fallbacks = append(fallbacks, decoded)
	}
	return active, fallbacks, nil
}
