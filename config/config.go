package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. EPOLL_API_HOSTNAME for api.hostname.
const EnvPrefix = "EPOLL"

// DefaultRepository is the GitHub repository self-updates are fetched from.
const DefaultRepository = "s0up4200/epoll"

// Load loads the configuration from file, .env and environment
func Load(configPath string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".epoll"))
		}

		// Check /etc
		v.AddConfigPath("/etc/epoll/")
	}

	// Read config file; without an explicit path the environment alone may be enough
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv loads variables from path into the process environment.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.hostname", "")
	v.SetDefault("api.version", "v1")

	// Session defaults
	v.SetDefault("session.token_type", "Bearer")
	v.SetDefault("session.token", "")

	// HTTP defaults
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.user_agent", "epoll-cli")

	// Auth defaults
	v.SetDefault("auth.grant_type", "account_kit")
	v.SetDefault("auth.client_id", "")
	v.SetDefault("auth.client_secret", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Update defaults
	v.SetDefault("update.repository", DefaultRepository)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Hostname == "" {
		return fmt.Errorf("api.hostname is required")
	}
	if !strings.HasPrefix(cfg.API.Hostname, "http://") && !strings.HasPrefix(cfg.API.Hostname, "https://") {
		return fmt.Errorf("api.hostname must start with http:// or https://: %s", cfg.API.Hostname)
	}
	if cfg.API.Version == "" {
		return fmt.Errorf("api.version is required")
	}

	if cfg.Session.Token != "" && cfg.Session.TokenType == "" {
		return fmt.Errorf("session.token_type is required when session.token is set")
	}

	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("invalid http.timeout: %s", cfg.HTTP.Timeout)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
