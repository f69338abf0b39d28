package constants

import "time"

// DefaultRegion is the Vertex AI region used when VERTEX_LOCATION is not set
const DefaultRegion = "us-central1"

// PlaceholderProjectID is the default project id that must be replaced before deploying
const PlaceholderProjectID = "your-project-id"

// PrimaryTool is the CLI tool that must be present before any cloud call
const PrimaryTool = "gcloud"

// SecondaryTool is the deployment CLI; a missing install is remediated best-effort
const SecondaryTool = "adk"

// SecondaryToolInstallArgs is the pip invocation used to install the deployment CLI
var SecondaryToolInstallArgs = []string{"pip3", "install", "google-adk"}

// RequiredServices are the Google Cloud APIs enabled on the target project
var RequiredServices = []string{
	"aiplatform.googleapis.com",
	"run.googleapis.com",
	"secretmanager.googleapis.com",
}

// ServiceAccountID is the short name of the agent's service identity
const ServiceAccountID = "researchpro-agent"

// ServiceAccountDisplayName is the human-readable service account name
const ServiceAccountDisplayName = "ResearchPro Agent Service Account"

// ServiceAccountRole is the single project role bound to a newly created identity
const ServiceAccountRole = "roles/aiplatform.user"

// SecretID is the Secret Manager secret holding the Gemini API key
//
//nolint:gosec // G101: resource name, not a credential
const SecretID = "researchpro-api-key"

// SecretAccessorRole grants the service identity read access to the secret
const SecretAccessorRole = "roles/secretmanager.secretAccessor"

// CloudRunServiceName is the name of the deployed agent service
const CloudRunServiceName = "researchpro"

// HealthCheckPath is the unauthenticated probe path on the deployed service
const HealthCheckPath = "/health"

// MemoryBankName is the Vertex AI Memory Bank resource offered during deploy
const MemoryBankName = "researchpro-memory-bank"

// AgentEntryPoint is the agent source file handed to the deployment CLI
const AgentEntryPoint = "main.py"

// AgentClassName is the agent system class handed to the deployment CLI
const AgentClassName = "ResearchProSystem"

// AgentManifestPath is the deployment configuration file for the agent
const AgentManifestPath = "deployment/agent_config.yaml"

// ReportFileName is where each run's summary is written, overwritten per run
const ReportFileName = "deployment_info.txt"

// VerifyResultsFileName is where the verify command exports its results
const VerifyResultsFileName = "test_results.json"

// RedeployCommand is the literal redeploy command recorded in the run report
const RedeployCommand = "./deployment/deploy.sh"

// ServiceAccountEmail derives the full identity email from the project id.
func ServiceAccountEmail(projectID string) string {
	return ServiceAccountID + "@" + projectID + ".iam.gserviceaccount.com"
}

// ServiceUsageOperationTimeout bounds the API enablement call and its poll loop
const ServiceUsageOperationTimeout = 5 * time.Minute

// ServiceAccountTimeout bounds individual IAM service account calls
const ServiceAccountTimeout = 30 * time.Second

// IAMBindingTimeout bounds get/set IAM policy round trips
const IAMBindingTimeout = 1 * time.Minute

// SecretManagerTimeout bounds individual Secret Manager calls
const SecretManagerTimeout = 30 * time.Second

// CloudRunLookupTimeout bounds the service endpoint lookup during the smoke test
const CloudRunLookupTimeout = 30 * time.Second

// CloudRunOperationTimeout bounds Cloud Run delete operations during teardown
const CloudRunOperationTimeout = 5 * time.Minute

// ProjectPreflightTimeout bounds the project existence check
const ProjectPreflightTimeout = 30 * time.Second

// ResourcePollInterval is the delay between long-running operation polls
const ResourcePollInterval = 5 * time.Second

// HealthProbeTimeout bounds the single smoke-test HTTP probe
const HealthProbeTimeout = 10 * time.Second
