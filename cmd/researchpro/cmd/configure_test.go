package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishnu4712/ResearchPro/internal/config"
)

func TestConfigureService(t *testing.T) {
	t.Run("saves a new configuration", func(t *testing.T) {
		out := &mockOutputInterface{
			promptResults: map[string]string{
				"Enter GCP project ID": "demo",
				"Enter Vertex AI region (default us-central1)": "europe-west4",
			},
			secretResult: "sk-test",
		}

		var saved *config.Config
		service := NewConfigureService(
			out,
			ConfigSaverFunc(func(cfg *config.Config) error {
				saved = cfg
				return nil
			}),
			ConfigLoaderFunc(func() (*config.Config, error) {
				return nil, errors.New("no config file")
			}),
			ConfigPathGetterFunc(func() (string, error) {
				return "/home/user/.researchpro/config.yaml", nil
			}),
		)

		require.NoError(t, service.Configure(context.Background()))
		require.NotNil(t, saved)
		assert.Equal(t, "demo", saved.ProjectID)
		assert.Equal(t, "europe-west4", saved.Region)
		assert.Equal(t, "sk-test", saved.APIKey)
		assert.True(t, out.contains("KeyValue", "/home/user/.researchpro/config.yaml"))
	})

	t.Run("empty answers keep existing values", func(t *testing.T) {
		out := &mockOutputInterface{promptResults: map[string]string{}}

		var saved *config.Config
		service := NewConfigureService(
			out,
			ConfigSaverFunc(func(cfg *config.Config) error {
				saved = cfg
				return nil
			}),
			ConfigLoaderFunc(func() (*config.Config, error) {
				return &config.Config{
					ProjectID: "existing-project",
					Region:    "us-central1",
					APIKey:    "sk-existing",
				}, nil
			}),
			ConfigPathGetterFunc(func() (string, error) { return "/tmp/config.yaml", nil }),
		)

		require.NoError(t, service.Configure(context.Background()))
		require.NotNil(t, saved)
		assert.Equal(t, "existing-project", saved.ProjectID)
		assert.Equal(t, "us-central1", saved.Region)
		assert.Equal(t, "sk-existing", saved.APIKey)
	})

	t.Run("missing project with no existing config fails", func(t *testing.T) {
		out := &mockOutputInterface{promptResults: map[string]string{}}

		service := NewConfigureService(
			out,
			ConfigSaverFunc(func(*config.Config) error {
				t.Error("save called despite missing project")
				return nil
			}),
			ConfigLoaderFunc(func() (*config.Config, error) {
				return nil, errors.New("no config file")
			}),
			ConfigPathGetterFunc(func() (string, error) { return "", nil }),
		)

		err := service.Configure(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project ID is required")
	})

	t.Run("placeholder project id is not reused", func(t *testing.T) {
		out := &mockOutputInterface{promptResults: map[string]string{}}

		service := NewConfigureService(
			out,
			ConfigSaverFunc(func(*config.Config) error { return nil }),
			ConfigLoaderFunc(func() (*config.Config, error) {
				return &config.Config{ProjectID: "your-project-id", Region: "us-central1"}, nil
			}),
			ConfigPathGetterFunc(func() (string, error) { return "", nil }),
		)

		err := service.Configure(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project ID is required")
	})

	t.Run("save failure is reported", func(t *testing.T) {
		out := &mockOutputInterface{
			promptResults: map[string]string{"Enter GCP project ID": "demo"},
			secretResult:  "sk-test",
		}

		service := NewConfigureService(
			out,
			ConfigSaverFunc(func(*config.Config) error {
				return errors.New("disk full")
			}),
			ConfigLoaderFunc(func() (*config.Config, error) {
				return nil, errors.New("no config file")
			}),
			ConfigPathGetterFunc(func() (string, error) { return "", nil }),
		)

		err := service.Configure(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save configuration")
	})
}
