package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/classtrack/gradescan/pkg/sheet"
)

// Config is the full application configuration: pipeline tuning knobs,
// provider defaults, and the batch worker settings.
type Config struct {
	Tolerances sheet.Tolerances  `mapstructure:"tolerances"`
	Grading    sheet.ScaleConfig `mapstructure:"grading"`
	Provider   ProviderConfig    `mapstructure:"provider"`
	Jobs       JobsConfig        `mapstructure:"jobs"`
}

// ProviderConfig holds default provider selection for processing runs.
type ProviderConfig struct {
	Name        string        `mapstructure:"name"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// JobsConfig holds the batch-processing worker settings. Each sheet is an
// independent unit of work; Workers bounds how many process concurrently and
// RetryAttempts covers the whole per-sheet job, not individual pipeline
// steps.
type JobsConfig struct {
	Workers       int           `mapstructure:"workers"`
	QueueSize     int           `mapstructure:"queue_size"`
	RetryAttempts uint          `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

// DefaultConfig returns the stock configuration the template was tuned with.
func DefaultConfig() *Config {
	return &Config{
		Tolerances: sheet.DefaultTolerances(),
		Grading:    sheet.DefaultScaleConfig(),
		Provider: ProviderConfig{
			Name:        "vision",
			Temperature: 0,
			Timeout:     120 * time.Second,
		},
		Jobs: JobsConfig{
			Workers:       5,
			QueueSize:     100,
			RetryAttempts: 3,
			RetryDelay:    2 * time.Second,
		},
	}
}

// Load reads configuration from defaults, an optional yaml file, and
// GRADESCAN_-prefixed environment variables, in increasing precedence.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("tolerances", defaults.Tolerances)
	v.SetDefault("grading", defaults.Grading)
	v.SetDefault("provider", defaults.Provider)
	v.SetDefault("jobs", defaults.Jobs)

	v.SetEnvPrefix("GRADESCAN")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("gradescan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.gradescan")
	}

	// Config file is optional; defaults and env cover everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
