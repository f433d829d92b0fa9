package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Env holds settings taken from the process environment, optionally seeded
// from a .env file. Real environment variables win over the file.
type Env struct {
	ConfigDir       string // GHOST_CONFIG_DIR
	BaseURL         string // GHOST_BASE_URL
	WebBaseURL      string // GHOST_WEB_BASE_URL
	APIKey          string // GHOST_API_KEY, bypasses the keychain
	EtherscanAPIKey string // ETHERSCAN_API_KEY
	EtherscanAPIURL string // ETHERSCAN_API_URL
}

// LoadEnv reads the environment. dotenv names an optional .env file; a
// missing file is not an error.
func LoadEnv(dotenv string) (*Env, error) {
	v := viper.New()
	v.AutomaticEnv()

	if dotenv != "" {
		if _, err := os.Stat(dotenv); err == nil {
			v.SetConfigFile(dotenv)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading %s: %w", dotenv, err)
			}
		}
	}

	return &Env{
		ConfigDir:       v.GetString("ghost_config_dir"),
		BaseURL:         v.GetString("ghost_base_url"),
		WebBaseURL:      v.GetString("ghost_web_base_url"),
		APIKey:          v.GetString("ghost_api_key"),
		EtherscanAPIKey: v.GetString("etherscan_api_key"),
		EtherscanAPIURL: v.GetString("etherscan_api_url"),
	}, nil
}
