package deploy

import (
	"context"

	"github.com/Vishnu4712/ResearchPro/internal/config"
	"github.com/Vishnu4712/ResearchPro/internal/constants"
	apperrors "github.com/Vishnu4712/ResearchPro/internal/errors"
	"github.com/Vishnu4712/ResearchPro/internal/gcp"
)

// Teardown deletes the resources a deploy run provisions: the Cloud Run
// service, the API key secret, and the agent service account. Deletions run
// in order and each tolerates the resource already being gone, so teardown
// can be re-run after a partial failure.
type Teardown struct {
	cfg     config.Config
	clients *gcp.ServiceClients
	out     Output
}

// NewTeardown builds a teardown for the given validated configuration.
func NewTeardown(cfg config.Config, clients *gcp.ServiceClients, out Output) *Teardown {
	return &Teardown{cfg: cfg, clients: clients, out: out}
}

// Run deletes the deployment's resources after operator confirmation.
// A declined confirmation returns without touching anything.
func (t *Teardown) Run(ctx context.Context) error {
	t.out.KeyValue("Project ID", t.cfg.ProjectID)
	t.out.KeyValue("Region", t.cfg.Region)
	t.out.Blank()
	t.out.Warningf("This deletes the %s service, the %s secret, and the agent service account.",
		constants.CloudRunServiceName, constants.SecretID)

	if !t.out.Confirm("Tear down the deployment?") {
		t.out.Infof("Teardown cancelled")
		return nil
	}

	if err := t.clients.CloudRun.DeleteService(ctx, t.cfg.ProjectID, constants.CloudRunServiceName); err != nil {
		return apperrors.ErrTeardownFailed("failed to delete service "+constants.CloudRunServiceName, err)
	}
	t.out.Successf("Service %s deleted", constants.CloudRunServiceName)

	if err := t.clients.SecretManager.DeleteSecret(ctx, t.cfg.ProjectID, constants.SecretID); err != nil {
		return apperrors.ErrTeardownFailed("failed to delete secret "+constants.SecretID, err)
	}
	t.out.Successf("Secret %s deleted", constants.SecretID)

	email := constants.ServiceAccountEmail(t.cfg.ProjectID)
	if err := t.clients.IAM.DeleteServiceAccount(ctx, t.cfg.ProjectID, email); err != nil {
		return apperrors.ErrTeardownFailed("failed to delete service account "+email, err)
	}
	t.out.Successf("Service account %s deleted", email)

	t.out.Blank()
	t.out.Successf("Teardown complete")
	return nil
}
