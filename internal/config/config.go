package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	MaskToken    string            `mapstructure:"mask_token"`
	Placeholder  string            `mapstructure:"placeholder"`
	SeriesPoints int               `mapstructure:"series_points"`
	Currency     string            `mapstructure:"currency"`
	AccountTypes map[string]string `mapstructure:"account_types"`
	Log          LogConfig         `mapstructure:"log"`
	Server       ServerConfig      `mapstructure:"server"`
}

// LogConfig controls the zerolog output
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// ServerConfig holds the HTTP service settings
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EnvPrefix prefixes every environment override, e.g. LEDGERVIEW_SERVER_ADDR
const EnvPrefix = "LEDGERVIEW"

func setDefaults(v *viper.Viper) {
	v.SetDefault("mask_token", "•••")
	v.SetDefault("placeholder", "—")
	v.SetDefault("series_points", 7)
	v.SetDefault("currency", "FCFA")
	v.SetDefault("account_types", map[string]string{
		"COURANT":   "Compte courant",
		"EPARGNE":   "Compte épargne",
		"LIVRET":    "Livret A",
		"PLACEMENT": "Placement Immo",
	})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
}

// TypeLabels returns the account type labels keyed by upper-case backend type
func (c *Config) TypeLabels() map[string]string {
	labels := make(map[string]string, len(c.AccountTypes))
	for k, v := range c.AccountTypes {
		labels[strings.ToUpper(k)] = v
	}
	return labels
}

// LoadConfig loads configuration from file and environment variables.
// An empty path skips the file and uses defaults plus environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.SeriesPoints <= 0 {
		return nil, fmt.Errorf("series_points must be positive, got %d", config.SeriesPoints)
	}

	return &config, nil
}
