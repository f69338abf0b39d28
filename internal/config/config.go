// Package config manages configuration for the researchpro CLI.
// It uses Viper for unified configuration management from files and environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Vishnu4712/ResearchPro/internal/constants"
	apperrors "github.com/Vishnu4712/ResearchPro/internal/errors"
)

// Config is the single validated configuration for a deployment run.
// It is built once at startup and passed by value to every pipeline step;
// no step reads the process environment directly.
type Config struct {
	// ProjectID is the target Google Cloud project (GCP_PROJECT_ID)
	ProjectID string `mapstructure:"project_id" yaml:"project_id" validate:"required"`
	// Region is the Vertex AI region (VERTEX_LOCATION)
	Region string `mapstructure:"region" yaml:"region" validate:"required"`
	// APIKey is the Gemini API key (GOOGLE_API_KEY); may be empty at load
	// time, in which case the secret step prompts for it
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// LogLevel controls slog verbosity (RESEARCHPRO_LOG_LEVEL)
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

var validate = validator.New()

// Load builds the configuration with the fixed precedence:
// environment variables > ~/.researchpro/config.yaml > defaults.
// A .env file in the working directory is loaded first when present,
// without overriding variables already set in the real environment.
// Explicit flag overrides are applied afterwards via ApplyOverrides.
func Load() (*Config, error) {
	loadDotEnv()

	v := viper.New()
	setDefaults(v)

	if err := loadConfigFile(v); err != nil {
		// A missing config file is fine; env vars and defaults still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ApplyOverrides applies explicit flag values, which take precedence over
// every other configuration source.
func (c *Config) ApplyOverrides(projectID, region string) {
	if projectID != "" {
		c.ProjectID = projectID
	}
	if region != "" {
		c.Region = region
	}
}

// Validate checks that the configuration is complete enough to touch a real
// project. The API key is deliberately not required here: the secret step
// prompts for it when absent.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return apperrors.ErrInvalidConfig("config validation failed", err)
	}

	if c.ProjectID == constants.PlaceholderProjectID {
		return apperrors.ErrInvalidConfig(
			fmt.Sprintf("GCP_PROJECT_ID is still the placeholder %q; set it to your project id", constants.PlaceholderProjectID),
			nil,
		)
	}

	return nil
}

// Save saves the configuration to the user's home directory.
// Overwrites the existing config file if it exists.
func Save(config *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("error resolving home directory: %w", err)
	}

	configDir := constants.ConfigDirPath(homeDir)

	if err = os.MkdirAll(configDir, constants.ConfigDirPermissions); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	configFilePath := filepath.Join(configDir, constants.ConfigFileName)

	v := viper.New()
	v.Set("project_id", config.ProjectID)
	v.Set("region", config.Region)
	v.Set("api_key", config.APIKey)
	if config.LogLevel != "" {
		v.Set("log_level", config.LogLevel)
	}

	if err = v.WriteConfigAs(configFilePath); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	// Set proper permissions
	if err = os.Chmod(configFilePath, constants.ConfigFilePermissions); err != nil {
		return fmt.Errorf("error setting config file permissions: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error resolving home directory: %w", err)
	}

	configDir := constants.ConfigDirPath(homeDir)
	return filepath.Join(configDir, constants.ConfigFileName), nil
}

// GetLogLevel returns the slog.Level from the string configuration.
// Defaults to INFO if the level string is invalid.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Helper functions

func setDefaults(v *viper.Viper) {
	v.SetDefault("project_id", constants.PlaceholderProjectID)
	v.SetDefault("region", constants.DefaultRegion)
	v.SetDefault("log_level", "INFO")
}

func loadConfigFile(v *viper.Viper) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("error resolving home directory: %w", err)
	}

	configDir := constants.ConfigDirPath(homeDir)
	configFile := filepath.Join(configDir, constants.ConfigFileName)

	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")

	if readErr := v.ReadInConfig(); readErr != nil {
		return readErr
	}

	return nil
}

func bindEnvVars(v *viper.Viper) {
	// The env var names are a fixed external contract; bind each explicitly
	// instead of deriving them from a prefix.
	_ = v.BindEnv("project_id", "GCP_PROJECT_ID")
	_ = v.BindEnv("region", "VERTEX_LOCATION")
	_ = v.BindEnv("api_key", "GOOGLE_API_KEY")
	_ = v.BindEnv("log_level", "RESEARCHPRO_LOG_LEVEL")
}
