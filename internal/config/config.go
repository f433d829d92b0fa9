package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultBaseURL    = "https://api.ghostlogs.xyz"
	DefaultWebBaseURL = "https://app.ghostlogs.xyz"

	configFile   = "config.json"
	apiKeySecret = "api-key"
)

var (
	// ErrConfigNotFound is returned when no config file exists yet.
	ErrConfigNotFound = errors.New("config file not found. Use 'configure' to set up your API key")
	// ErrAPIKeyNotFound is returned when the config holds no usable API key.
	ErrAPIKeyNotFound = errors.New("API key not found in config. Use 'configure' to set up your API key")
	// ErrInvalidConfig is returned when the config file is empty or malformed.
	ErrInvalidConfig = errors.New("config file is empty or invalid. Use 'configure' to set up your API key")
)

// Config holds the user-level ghost configuration.
type Config struct {
	APIKeyRef  string `json:"api_key_ref,omitempty"` // keychain reference
	BaseURL    string `json:"base_url,omitempty"`
	WebBaseURL string `json:"web_base_url,omitempty"`

	configDir string
	exists    bool
}

// DefaultDir returns ~/.config/ghost.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home dir: %w", err)
	}
	return filepath.Join(home, ".config", "ghost"), nil
}

// Load reads config.json from dir (default ~/.config/ghost). A missing file
// yields an empty config; Exists reports which case applies.
func Load(dir string) (*Config, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := &Config{configDir: dir}
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrInvalidConfig
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.exists = true
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Path(), data, 0o600); err != nil {
		return err
	}
	c.exists = true
	return nil
}

// Dir returns the config directory.
func (c *Config) Dir() string { return c.configDir }

// Path returns the config file path.
func (c *Config) Path() string { return filepath.Join(c.configDir, configFile) }

// Exists reports whether the config was read from (or saved to) disk.
func (c *Config) Exists() bool { return c.exists }

// SetAPIKey stores key in the secret store and records its reference.
func (c *Config) SetAPIKey(store SecretStore, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrAPIKeyNotFound
	}
	ref, err := store.Store(apiKeySecret, key)
	if err != nil {
		return err
	}
	c.APIKeyRef = ref
	return c.Save()
}

// APIKey returns the stored API key.
func (c *Config) APIKey(store SecretStore) (string, error) {
	if !c.exists {
		return "", ErrConfigNotFound
	}
	if c.APIKeyRef == "" {
		return "", ErrAPIKeyNotFound
	}
	key, err := store.Retrieve(c.APIKeyRef)
	if err != nil {
		return "", fmt.Errorf("%w (%v)", ErrAPIKeyNotFound, err)
	}
	if strings.TrimSpace(key) == "" {
		return "", ErrAPIKeyNotFound
	}
	return key, nil
}

// Endpoints returns the API and web base URLs: env overrides, then saved
// values, then defaults.
func (c *Config) Endpoints(env *Env) (base, web string) {
	base = firstNonEmpty(env.BaseURL, c.BaseURL, DefaultBaseURL)
	web = firstNonEmpty(env.WebBaseURL, c.WebBaseURL, DefaultWebBaseURL)
	return base, web
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
