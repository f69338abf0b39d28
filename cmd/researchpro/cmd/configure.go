package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vishnu4712/ResearchPro/internal/config"
	"github.com/Vishnu4712/ResearchPro/internal/constants"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the target project, region, and API key",
	Long: fmt.Sprintf(`Configure the deployment target interactively.
This creates or updates the configuration file at ~/%s/%s.
Environment variables (GCP_PROJECT_ID, VERTEX_LOCATION, GOOGLE_API_KEY)
still take precedence over the saved file.`, constants.ConfigDirName, constants.ConfigFileName),
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	service := NewConfigureService(
		NewOutputWrapper(),
		NewConfigSaver(),
		NewConfigLoader(),
		NewConfigPathGetter(),
	)
	return service.Configure(cmd.Context())
}

// ConfigLoader defines an interface for loading configuration
type ConfigLoader interface {
	Load() (*config.Config, error)
}

// ConfigSaver defines an interface for saving configuration
type ConfigSaver interface {
	Save(*config.Config) error
}

// ConfigPathGetter defines an interface for retrieving the configuration path
type ConfigPathGetter interface {
	GetConfigPath() (string, error)
}

// ConfigLoaderFunc adapts a function to the ConfigLoader interface
type ConfigLoaderFunc func() (*config.Config, error)

// Load executes the underlying function to load configuration
func (f ConfigLoaderFunc) Load() (*config.Config, error) {
	return f()
}

// ConfigSaverFunc adapts a function to the ConfigSaver interface
type ConfigSaverFunc func(*config.Config) error

// Save executes the underlying function to persist configuration
func (f ConfigSaverFunc) Save(cfg *config.Config) error {
	return f(cfg)
}

// ConfigPathGetterFunc adapts a function to the ConfigPathGetter interface
type ConfigPathGetterFunc func() (string, error)

// GetConfigPath executes the underlying function to retrieve the config path
func (f ConfigPathGetterFunc) GetConfigPath() (string, error) {
	return f()
}

// NewConfigLoader creates a ConfigLoader using the global config.Load function
func NewConfigLoader() ConfigLoader {
	return ConfigLoaderFunc(config.Load)
}

// NewConfigSaver creates a ConfigSaver using the global config.Save function
func NewConfigSaver() ConfigSaver {
	return ConfigSaverFunc(config.Save)
}

// NewConfigPathGetter creates a ConfigPathGetter using the global config.GetConfigPath function
func NewConfigPathGetter() ConfigPathGetter {
	return ConfigPathGetterFunc(config.GetConfigPath)
}

// ConfigureService handles configuration logic
type ConfigureService struct {
	output           OutputInterface
	configSaver      ConfigSaver
	configLoader     ConfigLoader
	configPathGetter ConfigPathGetter
}

// NewConfigureService creates a new ConfigureService with the provided dependencies
func NewConfigureService(
	outputter OutputInterface,
	configSaver ConfigSaver,
	configLoader ConfigLoader,
	configPathGetter ConfigPathGetter,
) *ConfigureService {
	return &ConfigureService{
		output:           outputter,
		configSaver:      configSaver,
		configLoader:     configLoader,
		configPathGetter: configPathGetter,
	}
}

// Configure runs the interactive configuration flow
func (s *ConfigureService) Configure(_ context.Context) error {
	existingConfig, err := s.configLoader.Load()
	configExists := err == nil

	if configExists {
		s.output.Successf("Found existing configuration")
	} else {
		existingConfig = &config.Config{}
		s.output.Infof("Creating new configuration")
	}

	projectID := s.output.Prompt("Enter GCP project ID")
	if projectID == "" {
		if configExists && existingConfig.ProjectID != "" && existingConfig.ProjectID != constants.PlaceholderProjectID {
			projectID = existingConfig.ProjectID
			s.output.Infof("Using existing project: %s", projectID)
		} else {
			return fmt.Errorf("project ID is required")
		}
	}

	region := s.output.Prompt(fmt.Sprintf("Enter Vertex AI region (default %s)", constants.DefaultRegion))
	if region == "" {
		if configExists && existingConfig.Region != "" {
			region = existingConfig.Region
			s.output.Infof("Using existing region: %s", region)
		} else {
			region = constants.DefaultRegion
		}
	}

	apiKey := s.output.PromptSecret("Enter GOOGLE_API_KEY (leave empty to keep current)")
	if apiKey == "" && configExists {
		apiKey = existingConfig.APIKey
	}

	cfg := &config.Config{
		ProjectID: projectID,
		Region:    region,
		APIKey:    apiKey,
		LogLevel:  existingConfig.LogLevel,
	}

	if err = s.configSaver.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	configPath, err := s.configPathGetter.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	s.output.Successf("Configuration saved successfully")
	s.output.KeyValue("Configuration path", configPath)
	s.output.Infof("Configuration complete!")
	return nil
}
