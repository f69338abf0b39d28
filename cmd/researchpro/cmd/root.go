package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Vishnu4712/ResearchPro/internal/config"
	"github.com/Vishnu4712/ResearchPro/internal/constants"
	apperrors "github.com/Vishnu4712/ResearchPro/internal/errors"
	"github.com/Vishnu4712/ResearchPro/internal/logger"
	"github.com/Vishnu4712/ResearchPro/internal/output"
)

var (
	debug         bool
	projectFlag   string
	regionFlag    string
	timeout       string
	timeoutCancel context.CancelFunc
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   constants.ProjectName,
	Short: constants.ProjectName,
	Long: fmt.Sprintf(`%s - %s
Deploy and operate the ResearchPro research agent on Google Cloud`,
		constants.ProjectName, *constants.GetVersion()),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		startTime := time.Now().UTC()
		cmd.SetContext(context.WithValue(cmd.Context(), constants.StartTimeCtxKey, startTime))
		printHeader(cmd)

		if verbose {
			output.Infof("CLI build: " + output.Bold(*constants.GetVersion()))
			output.Infof("Verbose output enabled")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.ApplyOverrides(projectFlag, regionFlag)

		logLevel := cfg.GetLogLevel()
		if debug {
			logLevel = slog.LevelDebug
		}
		logger.Initialize(constants.CLI, logLevel)

		if timeout != "0" {
			// NOTICE: this runs after flags are parsed but before the command runs
			timeoutDuration, err := parseTimeout(timeout)
			if err != nil {
				return fmt.Errorf("error parsing timeout: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeoutDuration)
			timeoutCancel = cancel // Store for cleanup in Execute()
			cmd.SetContext(ctx)

			if verbose {
				output.Infof("Timeout: %s", timeoutDuration)
			}
		} else if verbose {
			output.Infof("Timeout disabled")
		}

		cmd.SetContext(context.WithValue(cmd.Context(), constants.ConfigCtxKey, cfg))
		if verbose {
			output.Infof("Target project: %s", output.Bold(cfg.ProjectID))
			output.Infof("Region: %s", output.Bold(cfg.Region))
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		if verbose {
			startTime := getStartTimeFromContext(cmd)
			if !startTime.IsZero() {
				output.Infof("Time elapsed: %s", output.Bold(time.Since(startTime).String()))
			}
		}
		if timeoutCancel != nil {
			timeoutCancel()
		}
	},
}

// Execute runs the root command and terminates the process with the error's
// exit code on failure.
func Execute() {
	err := rootCmd.Execute()
	if timeoutCancel != nil {
		timeoutCancel()
	}

	if err != nil {
		printCommandError(err)
		os.Exit(apperrors.GetExitCode(err))
	}
}

// printCommandError renders a failed command's error. Error text can carry
// % verbs from gcloud or API responses, so it is never used as a format string.
func printCommandError(err error) {
	output.Errorf("%s", apperrors.GetErrorMessage(err))
	if details := apperrors.GetErrorDetails(err); details != apperrors.GetErrorMessage(err) {
		output.Println(output.Gray(details))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectFlag, "project", "", "Target GCP project ID (overrides GCP_PROJECT_ID)")
	rootCmd.PersistentFlags().StringVar(&regionFlag, "region", "", "Vertex AI region (overrides VERTEX_LOCATION)")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "30m", "Timeout for command execution (e.g., 10m, 30s, 1h)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debugging logs")
}

// parseTimeout parses timeout string to time.Duration
// defaults to 30 minutes if empty
// Supports formats: "10m", "30s", "1h", "600s" (number of seconds)
func parseTimeout(timeoutStr string) (time.Duration, error) {
	if timeoutStr == "" {
		timeoutStr = "30m"
	}

	duration, err := time.ParseDuration(timeoutStr)
	if err == nil {
		return duration, nil
	}

	seconds, err := strconv.Atoi(timeoutStr)
	if err != nil {
		errMsg := fmt.Sprintf(
			"invalid timeout format: %s (use duration like '10m' or '30s', or seconds like '600')",
			timeoutStr)
		return 0, errors.New(errMsg)
	}

	return time.Duration(seconds) * time.Second, nil
}

func printHeader(cmd *cobra.Command) {
	output.Header(output.Bold("🔬 " + constants.ProjectName + " " + cmd.CalledAs()))
}

// getConfigFromContext retrieves the config from the command context
func getConfigFromContext(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(constants.ConfigCtxKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("config not found in context")
	}
	return cfg, nil
}

func getStartTimeFromContext(cmd *cobra.Command) time.Time {
	startTime, ok := cmd.Context().Value(constants.StartTimeCtxKey).(time.Time)
	if !ok {
		return time.Time{}
	}
	return startTime
}

// RootCmd returns the root command for use by tools like doc generators.
func RootCmd() *cobra.Command {
	return rootCmd
}
