package output_test

import (
	"time"

	"github.com/Vishnu4712/ResearchPro/internal/output"
)

func ExampleSuccessf() {
	output.Successf("Service account created")
	output.Infof("Enabling Google Cloud APIs...")
	output.Warningf("Secret already exists, keeping current value")
	output.Errorf("Failed to resolve service endpoint")
}

func ExampleStep() {
	output.Header("Deploying ResearchPro agent")

	output.Step(1, 9, "Checking prerequisites")
	output.StepSuccess(1, 9, "gcloud and adk available")

	output.Step(3, 9, "Enabling required APIs")
	output.StepSuccess(3, 9, "APIs enabled")

	output.Step(4, 9, "Provisioning service identity")
	output.StepError(4, 9, "Failed to create service account")
}

func ExampleKeyValue() {
	output.Header("Deployment parameters")

	output.KeyValue("Project ID", "researchpro-demo")
	output.KeyValue("Region", "us-central1")
	output.KeyValue("Agent", "ResearchProSystem")
	output.KeyValue("Service account", "researchpro-agent@researchpro-demo.iam.gserviceaccount.com")

	output.Blank()
	output.Infof("Run ./deployment/deploy.sh to redeploy")
}

func ExampleTable() {
	headers := []string{"CHECK", "RESULT"}
	rows := [][]string{
		{"Service reachable", output.StatusBadge("PASS")},
		{"Health probe", output.StatusBadge("PASS")},
		{"Secret configured", output.StatusBadge("FAIL")},
		{"Identity provisioned", output.StatusBadge("PASS")},
	}
	output.Table(headers, rows)
	output.Infof("3/4 checks passed")
}

func ExampleBox() {
	output.Box("Memory Bank setup is not automated.\nCreate researchpro-memory-bank in the Vertex AI console.")
}

func ExampleConfirm() {
	output.Warningf("This will delete the deployed service, secret, and service account")
	output.KeyValue("Project ID", "researchpro-demo")
	output.KeyValue("Region", "us-central1")
	output.Blank()

	if output.Confirm("Continue?") {
		output.Infof("Tearing down...")
	} else {
		output.Infof("Cancelled")
	}
}

func ExampleStatusBadge() {
	output.Header("ResearchPro status")

	output.KeyValue("Service", "researchpro")
	output.KeyValue("Status", output.StatusBadge("PASS"))
	output.KeyValue("Endpoint", "https://researchpro-abc123-uc.a.run.app")
	output.KeyValue("Deployed", output.Duration(125*time.Second)+" ago")

	output.Blank()
	output.Infof("Probe: curl https://researchpro-abc123-uc.a.run.app/health")
}

func ExampleNewSpinner() {
	spinner := output.NewSpinner("Waiting for API enablement...")
	spinner.Start()
	time.Sleep(10 * time.Millisecond)
	spinner.Success("APIs enabled")
}
