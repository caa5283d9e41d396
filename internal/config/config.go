// Package config provides configuration management for the research
// application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Providers ProvidersConfig `mapstructure:"providers"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ProvidersConfig holds external data provider settings.
type ProvidersConfig struct {
	NewsAPIKey     string        `mapstructure:"news_api_key"`
	OpenAIAPIKey   string        `mapstructure:"openai_api_key"`
	OpenAIModel    string        `mapstructure:"openai_model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// AnalysisConfig holds analysis pipeline settings.
type AnalysisConfig struct {
	ResearchPeriod   string `mapstructure:"research_period"`
	PortfolioPeriod  string `mapstructure:"portfolio_period"`
	NewsLimit        int    `mapstructure:"news_limit"`
	FetchConcurrency int    `mapstructure:"fetch_concurrency"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/stock-researcher"
	}
	return filepath.Join(home, ".config", "stock-researcher")
}

// Load loads configuration from the specified directory. If configDir
// is empty, the default config directory is used. A missing config
// file is not an error; defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("providers.openai_model", "gpt-4o-mini")
	v.SetDefault("providers.request_timeout", 15*time.Second)
	v.SetDefault("analysis.research_period", "3mo")
	v.SetDefault("analysis.portfolio_period", "1mo")
	v.SetDefault("analysis.news_limit", 20)
	v.SetDefault("analysis.fetch_concurrency", 5)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.Providers.NewsAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Providers.OpenAIAPIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

var validPeriods = map[string]bool{
	"1mo": true, "3mo": true, "6mo": true, "1y": true, "2y": true, "5y": true,
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !validPeriods[c.Analysis.ResearchPeriod] {
		return fmt.Errorf("invalid research_period: %s", c.Analysis.ResearchPeriod)
	}
	if !validPeriods[c.Analysis.PortfolioPeriod] {
		return fmt.Errorf("invalid portfolio_period: %s", c.Analysis.PortfolioPeriod)
	}
	if c.Analysis.NewsLimit < 1 {
		return fmt.Errorf("news_limit must be at least 1")
	}
	if c.Analysis.FetchConcurrency < 1 {
		return fmt.Errorf("fetch_concurrency must be at least 1")
	}
	if c.Providers.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
