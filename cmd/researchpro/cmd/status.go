package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vishnu4712/ResearchPro/internal/deploy"
	"github.com/Vishnu4712/ResearchPro/internal/gcp"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the deployment's cloud resources",
	RunE:  statusRun,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusRun(cmd *cobra.Command, _ []string) error {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	clients, err := gcp.NewServiceClients(cmd.Context(), cfg.Region)
	if err != nil {
		return err
	}

	service := NewStatusService(deploy.NewStatusChecker(*cfg, clients), NewOutputWrapper())
	return service.DisplayStatus(cmd.Context())
}

// StatusSource abstracts the status checker so display logic can be tested
// without cloud clients.
type StatusSource interface {
	Check(ctx context.Context) (*deploy.Status, error)
}

// StatusService handles status display logic.
type StatusService struct {
	checker StatusSource
	output  OutputInterface
}

// NewStatusService creates a new StatusService with the provided dependencies.
func NewStatusService(checker StatusSource, outputter OutputInterface) *StatusService {
	return &StatusService{
		checker: checker,
		output:  outputter,
	}
}

// DisplayStatus retrieves and displays the deployment snapshot.
func (s *StatusService) DisplayStatus(ctx context.Context) error {
	status, err := s.checker.Check(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	s.output.KeyValue("Project ID", status.ProjectID)
	s.output.KeyValue("Region", status.Region)
	s.output.KeyValue("Service", presence(status.ServiceExists))
	if status.Endpoint != "" {
		s.output.KeyValue("Endpoint", status.Endpoint)
	}
	s.output.KeyValue("API key secret", presence(status.SecretExists))
	s.output.KeyValue("Service account", status.ServiceAccount+" ("+presence(status.IdentityExists)+")")
	s.output.Blank()

	if status.Deployed() {
		s.output.Successf("Agent is deployed")
	} else {
		s.output.Infof("Agent is not deployed; run %s deploy", s.output.Bold("researchpro"))
	}
	return nil
}

func presence(exists bool) string {
	if exists {
		return "present"
	}
	return "missing"
}
