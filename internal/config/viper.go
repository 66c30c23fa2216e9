package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Dir string `mapstructure:"dir" yaml:"dir"`
	} `mapstructure:"data" yaml:"data"`

	Receipts struct {
		Dir string `mapstructure:"dir" yaml:"dir"`
	} `mapstructure:"receipts" yaml:"receipts"`

	Incoming struct {
		Dir string `mapstructure:"dir" yaml:"dir"`
	} `mapstructure:"incoming" yaml:"incoming"`

	Processed struct {
		// Dir receives successfully ingested originals; empty leaves
		// them where they are.
		Dir string `mapstructure:"dir" yaml:"dir"`
	} `mapstructure:"processed" yaml:"processed"`

	AI struct {
		Model  string `mapstructure:"model" yaml:"model"`
		APIKey string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Dedup struct {
		Tolerance     float64 `mapstructure:"tolerance" yaml:"tolerance"`
		MatchProvider bool    `mapstructure:"match_provider" yaml:"match_provider"`
	} `mapstructure:"dedup" yaml:"dedup"`

	Categories struct {
		// File points at a categories.yaml; empty means the store's
		// own search locations apply.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.hsaledger")
	v.AddConfigPath(".hsaledger")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("HSA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	// 5. The API key always comes from the unprefixed variable the
	// Gemini tooling documents, plus the plain LOG_* variables the
	// .env files of earlier versions used.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("log.level", "HSA_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		fmt.Printf("Warning: failed to bind LOG_LEVEL environment variable: %v\n", err)
	}
	if err := v.BindEnv("log.format", "HSA_LOG_FORMAT", "LOG_FORMAT"); err != nil {
		fmt.Printf("Warning: failed to bind LOG_FORMAT environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Directory defaults, all relative to the working directory
	v.SetDefault("data.dir", "data")
	v.SetDefault("receipts.dir", "receipts")
	v.SetDefault("incoming.dir", "incoming")
	v.SetDefault("processed.dir", "")

	// AI defaults
	v.SetDefault("ai.model", "gemini-1.5-flash")

	// Duplicate detection defaults
	v.SetDefault("dedup.tolerance", 0.01)
	v.SetDefault("dedup.match_provider", false)

	// Category configuration defaults
	v.SetDefault("categories.file", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate duplicate detection tolerance
	if config.Dedup.Tolerance <= 0 {
		return fmt.Errorf("dedup.tolerance must be positive, got: %f", config.Dedup.Tolerance)
	}

	// Validate directories that must be set
	if config.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	if config.Receipts.Dir == "" {
		return fmt.Errorf("receipts.dir must not be empty")
	}

	return nil
}
