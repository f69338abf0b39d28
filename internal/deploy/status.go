package deploy

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Vishnu4712/ResearchPro/internal/config"
	"github.com/Vishnu4712/ResearchPro/internal/constants"
	"github.com/Vishnu4712/ResearchPro/internal/gcp"
)

// Status is a point-in-time snapshot of the deployment's cloud resources.
type Status struct {
	ProjectID      string
	Region         string
	ServiceExists  bool
	Endpoint       string
	SecretExists   bool
	IdentityExists bool
	ServiceAccount string
}

// Deployed reports whether the agent service is live.
func (s *Status) Deployed() bool {
	return s.ServiceExists
}

// StatusChecker gathers the deployment status snapshot.
type StatusChecker struct {
	cfg     config.Config
	clients *gcp.ServiceClients
}

// NewStatusChecker builds a status checker for the given configuration.
func NewStatusChecker(cfg config.Config, clients *gcp.ServiceClients) *StatusChecker {
	return &StatusChecker{cfg: cfg, clients: clients}
}

// Check queries the three provisioned resources concurrently. Unlike
// verification, any lookup error aborts the snapshot: a status display
// built on partial data would be misleading.
func (s *StatusChecker) Check(ctx context.Context) (*Status, error) {
	email := constants.ServiceAccountEmail(s.cfg.ProjectID)
	status := &Status{
		ProjectID:      s.cfg.ProjectID,
		Region:         s.cfg.Region,
		ServiceAccount: email,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		exists, uri, err := s.clients.CloudRun.GetService(gctx, s.cfg.ProjectID, constants.CloudRunServiceName)
		if err != nil {
			return err
		}
		status.ServiceExists = exists
		status.Endpoint = uri
		return nil
	})
	g.Go(func() error {
		exists, err := s.clients.SecretManager.SecretExists(gctx, s.cfg.ProjectID, constants.SecretID)
		if err != nil {
			return err
		}
		status.SecretExists = exists
		return nil
	})
	g.Go(func() error {
		exists, err := s.clients.IAM.ServiceAccountExists(gctx, s.cfg.ProjectID, email)
		if err != nil {
			return err
		}
		status.IdentityExists = exists
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return status, nil
}
