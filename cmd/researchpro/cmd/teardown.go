package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Vishnu4712/ResearchPro/internal/deploy"
	"github.com/Vishnu4712/ResearchPro/internal/gcp"
)

var teardownCmd = &cobra.Command{
	Use:   "teardown",
	Short: "Delete the deployment's cloud resources",
	Long: `Delete the Cloud Run service, the API key secret, and the agent
service account. Resources that are already gone are skipped, so teardown
can be re-run after a partial failure. The target project and its enabled
APIs are left untouched.`,
	RunE: teardownRun,
}

func init() {
	rootCmd.AddCommand(teardownCmd)
}

func teardownRun(cmd *cobra.Command, _ []string) error {
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

	td := deploy.NewTeardown(*cfg, clients, NewOutputWrapper())
	return td.Run(cmd.Context())
}
