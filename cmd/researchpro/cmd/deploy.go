package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vishnu4712/ResearchPro/internal/constants"
	"github.com/Vishnu4712/ResearchPro/internal/deploy"
	"github.com/Vishnu4712/ResearchPro/internal/gcp"
	"github.com/Vishnu4712/ResearchPro/internal/output"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the ResearchPro agent to Cloud Run",
	Long: fmt.Sprintf(`Provision the target project and deploy the ResearchPro agent.

The pipeline enables the required APIs, creates the agent's service account
and API key secret when missing, invokes the %s deployment CLI, probes the
deployed service, and writes a run summary to %s. Re-running against an
already provisioned project is safe: existing resources are kept as they
are.`, constants.SecondaryTool, constants.ReportFileName),
	RunE: deployRun,
}

func init() {
	rootCmd.AddCommand(deployCmd)
}

func deployRun(cmd *cobra.Command, _ []string) error {
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

	pipeline := deploy.NewPipeline(*cfg, clients, deploy.NewExecRunner(), NewOutputWrapper())
	report, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	output.Blank()
	if report.Endpoint != "" {
		output.KeyValueBold("Endpoint", report.Endpoint)
	}
	output.Successf("Deployment complete")
	return nil
}
