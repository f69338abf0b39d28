package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vishnu4712/ResearchPro/internal/constants"
	"github.com/Vishnu4712/ResearchPro/internal/deploy"
	apperrors "github.com/Vishnu4712/ResearchPro/internal/errors"
	"github.com/Vishnu4712/ResearchPro/internal/gcp"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run post-deploy checks against the live deployment",
	Long: fmt.Sprintf(`Check that the deployed agent is reachable and fully provisioned.

Results are printed as a pass/fail table and exported to %s for
machine consumption.`, constants.VerifyResultsFileName),
	RunE: verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyRun(cmd *cobra.Command, _ []string) error {
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

	service := NewVerifyService(deploy.NewVerifier(*cfg, clients), NewOutputWrapper(), constants.VerifyResultsFileName)
	return service.DisplayResults(cmd.Context())
}

// VerifyRunner abstracts the verifier so the display logic can be tested
// without cloud clients.
type VerifyRunner interface {
	Run(ctx context.Context) (*deploy.VerifyResult, error)
}

// VerifyService handles verification display and export logic.
type VerifyService struct {
	verifier    VerifyRunner
	output      OutputInterface
	resultsPath string
}

// NewVerifyService creates a new VerifyService with the provided dependencies.
func NewVerifyService(verifier VerifyRunner, outputter OutputInterface, resultsPath string) *VerifyService {
	return &VerifyService{
		verifier:    verifier,
		output:      outputter,
		resultsPath: resultsPath,
	}
}

// DisplayResults runs the checks, renders the results table, and exports the
// JSON results file. A failing check set is returned as an error so the CLI
// exits non-zero.
func (s *VerifyService) DisplayResults(ctx context.Context) error {
	result, err := s.verifier.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to run verification: %w", err)
	}

	rows := make([][]string, 0, len(result.Checks))
	for _, check := range result.Checks {
		badge := s.output.StatusBadge("FAIL")
		if check.Passed {
			badge = s.output.StatusBadge("PASS")
		}
		rows = append(rows, []string{check.Name, badge, check.Detail})
	}
	s.output.Table([]string{"Check", "Result", "Detail"}, rows)
	s.output.Blank()

	if err := result.WriteJSON(s.resultsPath); err != nil {
		s.output.Warningf("could not write %s: %v", s.resultsPath, err)
	} else {
		s.output.Infof("Results written to %s", s.resultsPath)
	}

	passed, total := result.Passed(), result.Total()
	if !result.AllPassed() {
		s.output.Errorf("%d/%d checks passed", passed, total)
		return apperrors.ErrVerificationFailed(total-passed, total)
	}

	s.output.Successf("%d/%d checks passed", passed, total)
	return nil
}
