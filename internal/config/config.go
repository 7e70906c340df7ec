package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DatabaseURL string
	Port        string
	MaxUploadMB int // Multipart body limit for survey workbook uploads
}

// Load loads configuration from multiple sources with priority:
// 1. Command flags (via LoadWithOverrides)
// 2. Config file (./uchunguzi.toml or $XDG_CONFIG_HOME/uchunguzi/uchunguzi.toml)
// 3. Environment variables
func Load() (*Config, error) {
	v := newBaseViper()
	_ = v.ReadInConfig()
	return buildConfig(v, "", ""), nil
}

// LoadWithOverrides loads config and applies flag overrides
func LoadWithOverrides(databaseURL, port string) (*Config, error) {
	v := newBaseViper()
	_ = v.ReadInConfig()
	return buildConfig(v, databaseURL, port), nil
}

func newBaseViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("uchunguzi")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	// XDG Base Directory lookup, done manually so tests can redirect it
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome != "" {
		v.AddConfigPath(filepath.Join(configHome, "uchunguzi"))
	}

	return v
}

func buildConfig(v *viper.Viper, overrideDatabaseURL, overridePort string) *Config {
	cfg := &Config{
		Port:        "8080",
		MaxUploadMB: 25,
	}

	// Apply config file values
	if v.IsSet("database_url") {
		cfg.DatabaseURL = v.GetString("database_url")
	}
	if v.IsSet("port") {
		cfg.Port = v.GetString("port")
	}
	if v.IsSet("max_upload_mb") {
		cfg.MaxUploadMB = v.GetInt("max_upload_mb")
	}

	// Environment fallback (only if not configured)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if !v.IsSet("port") {
		if envPort := os.Getenv("PORT"); envPort != "" {
			cfg.Port = envPort
		}
	}
	if !v.IsSet("max_upload_mb") {
		if envMax := os.Getenv("MAX_UPLOAD_MB"); envMax != "" {
			if parsed, err := strconv.Atoi(envMax); err == nil && parsed > 0 {
				cfg.MaxUploadMB = parsed
			}
		}
	}

	// Apply overrides (flags) last
	if overrideDatabaseURL != "" {
		cfg.DatabaseURL = overrideDatabaseURL
	}
	if overridePort != "" {
		cfg.Port = overridePort
	}

	return cfg
}
