package deploy

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Vishnu4712/ResearchPro/internal/constants"
)

// Report is the flat run summary persisted after every successful deploy.
// It is overwritten each run; no history is kept.
type Report struct {
	Date           time.Time
	ProjectID      string
	Region         string
	AgentName      string
	ServiceAccount string
	// Endpoint may be empty when the smoke test could not resolve the
	// service URL.
	Endpoint string
}

// TestCommand returns the command recorded for re-testing the deployment.
func (r *Report) TestCommand() string {
	return fmt.Sprintf("GCP_PROJECT_ID=%s %s verify", r.ProjectID, constants.RedeployCommand)
}

// TeardownCommand returns the command recorded for deleting the deployment.
func (r *Report) TeardownCommand() string {
	return fmt.Sprintf(
		"gcloud run services delete %s --project=%s --region=%s --quiet",
		constants.CloudRunServiceName, r.ProjectID, r.Region,
	)
}

// Render produces the fixed-format text report.
func (r *Report) Render() string {
	var b strings.Builder

	b.WriteString("ResearchPro Deployment Summary\n")
	b.WriteString("==============================\n")
	fmt.Fprintf(&b, "Date: %s\n", r.Date.Format(time.RFC1123))
	fmt.Fprintf(&b, "Project ID: %s\n", r.ProjectID)
	fmt.Fprintf(&b, "Region: %s\n", r.Region)
	fmt.Fprintf(&b, "Agent: %s\n", r.AgentName)
	fmt.Fprintf(&b, "Service Account: %s\n", r.ServiceAccount)
	fmt.Fprintf(&b, "Endpoint: %s\n", r.Endpoint)
	b.WriteString("\n")
	b.WriteString("To redeploy:\n")
	b.WriteString(constants.RedeployCommand + "\n")
	b.WriteString("\n")
	b.WriteString("To test:\n")
	b.WriteString(r.TestCommand() + "\n")
	b.WriteString("\n")
	b.WriteString("To tear down:\n")
	b.WriteString(r.TeardownCommand() + "\n")

	return b.String()
}

// WriteFile writes the rendered report to the given path, replacing any
// previous report.
func (r *Report) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.Render()), constants.ReportFilePermissions); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
