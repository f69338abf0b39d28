package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishnu4712/ResearchPro/internal/deploy"
)

type mockStatusSource struct {
	checkFunc func(ctx context.Context) (*deploy.Status, error)
}

func (m *mockStatusSource) Check(ctx context.Context) (*deploy.Status, error) {
	if m.checkFunc != nil {
		return m.checkFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func TestStatusServiceDisplayStatus(t *testing.T) {
	t.Run("deployed agent", func(t *testing.T) {
		checker := &mockStatusSource{
			checkFunc: func(_ context.Context) (*deploy.Status, error) {
				return &deploy.Status{
					ProjectID:      "demo",
					Region:         "us-central1",
					ServiceExists:  true,
					Endpoint:       "https://researchpro-abc123-uc.a.run.app",
					SecretExists:   true,
					IdentityExists: true,
					ServiceAccount: "researchpro-agent@demo.iam.gserviceaccount.com",
				}, nil
			},
		}
		out := &mockOutputInterface{}

		service := NewStatusService(checker, out)
		require.NoError(t, service.DisplayStatus(context.Background()))

		assert.True(t, out.contains("KeyValue", "Project ID=demo"))
		assert.True(t, out.contains("KeyValue", "Endpoint=https://researchpro-abc123-uc.a.run.app"))
		assert.True(t, out.contains("KeyValue", "Service=present"))
		assert.True(t, out.contains("Successf", "deployed"))
	})

	t.Run("undeployed project", func(t *testing.T) {
		checker := &mockStatusSource{
			checkFunc: func(_ context.Context) (*deploy.Status, error) {
				return &deploy.Status{
					ProjectID:      "demo",
					Region:         "us-central1",
					ServiceAccount: "researchpro-agent@demo.iam.gserviceaccount.com",
				}, nil
			},
		}
		out := &mockOutputInterface{}

		service := NewStatusService(checker, out)
		require.NoError(t, service.DisplayStatus(context.Background()))

		assert.True(t, out.contains("KeyValue", "Service=missing"))
		assert.True(t, out.contains("Infof", "not deployed"))
		assert.False(t, out.contains("KeyValue", "Endpoint="))
	})

	t.Run("checker failure is wrapped", func(t *testing.T) {
		checker := &mockStatusSource{
			checkFunc: func(_ context.Context) (*deploy.Status, error) {
				return nil, errors.New("secret manager unavailable")
			},
		}
		out := &mockOutputInterface{}

		service := NewStatusService(checker, out)
		err := service.DisplayStatus(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get status")
	})
}
