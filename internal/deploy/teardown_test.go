package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Vishnu4712/ResearchPro/internal/errors"
)

func TestTeardownRun(t *testing.T) {
	t.Run("deletes all three resources after confirmation", func(t *testing.T) {
		clients, _, _, iam, secrets, cloudRun := newMockClients()

		var deleted []string
		cloudRun.deleteServiceFunc = func(_ context.Context, _, serviceName string) error {
			deleted = append(deleted, "service:"+serviceName)
			return nil
		}
		secrets.deleteSecretFunc = func(_ context.Context, _, secretID string) error {
			deleted = append(deleted, "secret:"+secretID)
			return nil
		}
		iam.deleteServiceAccountFunc = func(_ context.Context, _, email string) error {
			deleted = append(deleted, "sa:"+email)
			return nil
		}

		out := &mockOutput{confirmResult: true}
		td := NewTeardown(testConfig(), clients, out)

		require.NoError(t, td.Run(context.Background()))
		assert.Equal(t, []string{
			"service:researchpro",
			"secret:researchpro-api-key",
			"sa:researchpro-agent@demo.iam.gserviceaccount.com",
		}, deleted)
	})

	t.Run("declined confirmation deletes nothing", func(t *testing.T) {
		clients, _, _, _, _, _ := newMockClients()
		// All delete funcs stay nil: any call fails with "not implemented".

		out := &mockOutput{confirmResult: false}
		td := NewTeardown(testConfig(), clients, out)

		require.NoError(t, td.Run(context.Background()))
		assert.True(t, out.contains("cancelled"))
	})

	t.Run("delete failure stops the sequence", func(t *testing.T) {
		clients, _, _, _, secrets, cloudRun := newMockClients()
		cloudRun.deleteServiceFunc = func(_ context.Context, _, _ string) error { return nil }
		secrets.deleteSecretFunc = func(_ context.Context, _, _ string) error {
			return errors.New("permission denied")
		}
		// deleteServiceAccountFunc stays nil: it must not be reached.

		out := &mockOutput{confirmResult: true}
		td := NewTeardown(testConfig(), clients, out)

		err := td.Run(context.Background())
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeTeardownFailed, apperrors.GetErrorCode(err))
		assert.Contains(t, err.Error(), "researchpro-api-key")
	})
}
