// Package constants defines global constants used throughout researchpro.
// It includes version information, paths, and configuration keys.
package constants

import "time"

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of researchpro.
func GetVersion() *string {
	return &version
}

// ProjectName is the name of the CLI tool and application
const ProjectName = "researchpro"

// ConfigDirName is the name of the configuration directory in the user's home directory
const ConfigDirName = ".researchpro"

// ConfigFileName is the name of the global configuration file
const ConfigFileName = "config.yaml"

// ConfigDirPath returns the full path to the global configuration directory.
func ConfigDirPath(homeDir string) string {
	return homeDir + "/" + ConfigDirName
}

// ConfigFilePath returns the full path to the global configuration file
func ConfigFilePath(homeDir string) string {
	return ConfigDirPath(homeDir) + "/" + ConfigFileName
}

// Environment represents the execution environment (e.g., CLI, service).
type Environment string

// Environment types for logger configuration
const (
	Development Environment = "development"
	Production  Environment = "production"
	CLI         Environment = "cli"
)

// ConfigCtxKeyType is the type for the config context key
type ConfigCtxKeyType string

// ConfigCtxKey is the key used to store config in context
const ConfigCtxKey ConfigCtxKeyType = "config"

// StartTimeCtxKeyType is the type for the start time context key
type StartTimeCtxKeyType string

// StartTimeCtxKey is the key used to store the command start time in context
const StartTimeCtxKey StartTimeCtxKeyType = "start_time"

// ConfigDirPermissions is the file system permissions for config directory (0750)
const ConfigDirPermissions = 0750

// ConfigFilePermissions is the file system permissions for config file (0600)
const ConfigFilePermissions = 0600

// ReportFilePermissions is the file system permissions for run artifacts (0644)
const ReportFilePermissions = 0644

// DefaultContextTimeout is the default timeout for context operations
const DefaultContextTimeout = 10 * time.Second
