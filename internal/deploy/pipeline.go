// Package deploy implements the sequential provisioning pipeline that takes a
// ResearchPro agent from source to a running Cloud Run service: prerequisite
// checks, API enablement, identity and secret provisioning, the deployment
// CLI invocation, a smoke test, and the run report.
package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Vishnu4712/ResearchPro/internal/config"
	"github.com/Vishnu4712/ResearchPro/internal/constants"
	apperrors "github.com/Vishnu4712/ResearchPro/internal/errors"
	"github.com/Vishnu4712/ResearchPro/internal/gcp"
	"github.com/Vishnu4712/ResearchPro/internal/logger"
)

// Output is the terminal surface the pipeline reports progress through.
// The CLI passes its output wrapper; tests pass a recording mock.
type Output interface {
	Successf(format string, a ...any)
	Infof(format string, a ...any)
	Warningf(format string, a ...any)
	Errorf(format string, a ...any)
	Step(step, total int, message string)
	KeyValue(key, value string)
	Blank()
	Box(text string)
	Confirm(prompt string) bool
	PromptSecret(prompt string) string
}

const totalSteps = 9

// Pipeline runs the deployment steps strictly in order. A fatal step aborts
// the run; completed steps are never rolled back. Re-running against a
// project that already holds the resources succeeds.
type Pipeline struct {
	cfg          config.Config
	clients      *gcp.ServiceClients
	runner       CommandRunner
	out          Output
	log          *slog.Logger
	httpClient   *http.Client
	manifestPath string
	reportPath   string
	now          func() time.Time
}

// Option adjusts pipeline defaults, mainly for tests.
type Option func(*Pipeline)

// WithHTTPClient overrides the HTTP client used for the smoke-test probe.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Pipeline) { p.httpClient = c }
}

// WithManifestPath overrides where the agent manifest is read from.
func WithManifestPath(path string) Option {
	return func(p *Pipeline) { p.manifestPath = path }
}

// WithReportPath overrides where the run report is written.
func WithReportPath(path string) Option {
	return func(p *Pipeline) { p.reportPath = path }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline builds a pipeline for the given validated configuration.
// The configuration is copied; steps never read the process environment.
func NewPipeline(
	cfg config.Config,
	clients *gcp.ServiceClients,
	runner CommandRunner,
	out Output,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		cfg:          cfg,
		clients:      clients,
		runner:       runner,
		out:          out,
		log:          slog.Default(),
		httpClient:   &http.Client{Timeout: constants.HealthProbeTimeout},
		manifestPath: constants.AgentManifestPath,
		reportPath:   constants.ReportFileName,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full pipeline. The returned report is non-nil only when
// the run reached the report step.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	saEmail := constants.ServiceAccountEmail(p.cfg.ProjectID)

	p.out.KeyValue("Project ID", p.cfg.ProjectID)
	p.out.KeyValue("Region", p.cfg.Region)
	p.out.KeyValue("Service account", saEmail)
	p.out.Blank()

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Checking prerequisites", p.checkPrerequisites},
		{"Checking project access", p.preflightProject},
		{"Enabling required APIs", p.enableAPIs},
		{"Provisioning service identity", p.ensureServiceAccount},
		{"Offering Memory Bank setup", p.offerMemoryStore},
		{"Provisioning API key secret", p.ensureSecret},
		{"Deploying agent", p.invokeDeploy},
	}

	for i, step := range steps {
		p.out.Step(i+1, totalSteps, step.name)
		stepCtx := logger.WithStep(ctx, step.name)
		if err := step.fn(stepCtx); err != nil {
			logger.DeriveStepLogger(stepCtx, p.log).Error("pipeline aborted", "error", err)
			return nil, err
		}
	}

	// The smoke test and report never abort the run once the deploy
	// invocation succeeded.
	p.out.Step(8, totalSteps, "Running smoke test")
	endpoint := p.smokeTest(logger.WithStep(ctx, "Running smoke test"))

	p.out.Step(9, totalSteps, "Writing run report")
	report := &Report{
		Date:           p.now().UTC(),
		ProjectID:      p.cfg.ProjectID,
		Region:         p.cfg.Region,
		AgentName:      constants.AgentClassName,
		ServiceAccount: saEmail,
		Endpoint:       endpoint,
	}
	if err := report.WriteFile(p.reportPath); err != nil {
		return nil, apperrors.ErrReportWrite(err)
	}
	p.out.Successf("Report written to %s", p.reportPath)

	return report, nil
}

// checkPrerequisites verifies gcloud is resolvable before any cloud call and
// attempts a best-effort install of the deployment CLI when it is missing.
func (p *Pipeline) checkPrerequisites(ctx context.Context) error {
	if _, err := p.runner.LookPath(constants.PrimaryTool); err != nil {
		return apperrors.ErrPrerequisiteMissing(constants.PrimaryTool, err)
	}
	p.out.Successf("%s found", constants.PrimaryTool)

	if _, err := p.runner.LookPath(constants.SecondaryTool); err != nil {
		p.out.Warningf("%s not found, attempting install", constants.SecondaryTool)
		installArgs := constants.SecondaryToolInstallArgs
		if installErr := p.runner.Run(ctx, installArgs[0], installArgs[1:]...); installErr != nil {
			p.out.Warningf("install failed, continuing anyway: %v", installErr)
		}
		return nil
	}
	p.out.Successf("%s found", constants.SecondaryTool)

	return nil
}

// preflightProject confirms the target project exists and is accessible.
// Read-only, so a failure here still means no cloud mutation happened.
func (p *Pipeline) preflightProject(ctx context.Context) error {
	exists, err := p.clients.Projects.ProjectExists(ctx, p.cfg.ProjectID)
	if err != nil {
		return apperrors.ErrProjectNotFound(p.cfg.ProjectID, err)
	}
	if !exists {
		return apperrors.ErrProjectNotFound(p.cfg.ProjectID, nil)
	}
	p.out.Successf("Project %s accessible", p.cfg.ProjectID)
	return nil
}

func (p *Pipeline) enableAPIs(ctx context.Context) error {
	if err := p.clients.ServiceUsage.EnableServices(ctx, p.cfg.ProjectID, constants.RequiredServices); err != nil {
		return apperrors.ErrAPIEnablement(err)
	}
	for _, svc := range constants.RequiredServices {
		p.out.Infof("Enabled %s", svc)
	}
	return nil
}

// ensureServiceAccount creates the agent identity and its single role
// binding when absent. An existing account is left exactly as found: no
// re-binding, no drift correction.
func (p *Pipeline) ensureServiceAccount(ctx context.Context) error {
	email := constants.ServiceAccountEmail(p.cfg.ProjectID)

	exists, err := p.clients.IAM.ServiceAccountExists(ctx, p.cfg.ProjectID, email)
	if err != nil {
		return apperrors.ErrIdentityProvisioning("failed to check service account", err)
	}
	if exists {
		p.out.Successf("Service account %s already exists", email)
		return nil
	}

	if _, err := p.clients.IAM.CreateServiceAccount(
		ctx, p.cfg.ProjectID, constants.ServiceAccountID, constants.ServiceAccountDisplayName,
	); err != nil {
		return apperrors.ErrIdentityProvisioning("failed to create service account", err)
	}

	member := "serviceAccount:" + email
	if err := p.clients.IAM.AddIAMBinding(ctx, p.cfg.ProjectID, member, constants.ServiceAccountRole); err != nil {
		return apperrors.ErrIdentityProvisioning("failed to bind role "+constants.ServiceAccountRole, err)
	}

	p.out.Successf("Service account %s created", email)
	return nil
}

// offerMemoryStore gates on operator confirmation and only prints a manual
// setup notice; Memory Bank creation is not automated.
func (p *Pipeline) offerMemoryStore(_ context.Context) error {
	if !p.out.Confirm("Set up a Vertex AI Memory Bank for persistent agent memory?") {
		p.out.Infof("Skipping Memory Bank setup")
		return nil
	}

	p.out.KeyValue("Memory Bank", constants.MemoryBankName)
	p.out.Box(fmt.Sprintf(
		"Memory Bank creation is not automated.\nCreate %q in the Vertex AI console before relying on agent memory.",
		constants.MemoryBankName,
	))
	return nil
}

// ensureSecret stores the API key in Secret Manager and grants the agent
// identity read access. An existing secret keeps its current value; the
// access grant is applied unconditionally either way.
func (p *Pipeline) ensureSecret(ctx context.Context) error {
	apiKey := p.cfg.APIKey
	if apiKey == "" {
		apiKey = p.out.PromptSecret("Enter your GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return apperrors.ErrSecretProvisioning("no API key provided", nil)
	}

	created, err := p.clients.SecretManager.CreateSecret(ctx, p.cfg.ProjectID, constants.SecretID)
	if err != nil {
		return apperrors.ErrSecretProvisioning("failed to create secret "+constants.SecretID, err)
	}

	if created {
		if err := p.clients.SecretManager.AddSecretVersion(
			ctx, p.cfg.ProjectID, constants.SecretID, []byte(apiKey),
		); err != nil {
			// Drop the just-created secret so a rerun does not find a
			// valueless one and skip writing the key.
			if delErr := p.clients.SecretManager.DeleteSecret(ctx, p.cfg.ProjectID, constants.SecretID); delErr != nil {
				p.out.Warningf("Secret %s was created without a value and could not be removed: %v", constants.SecretID, delErr)
			}
			return apperrors.ErrSecretProvisioning("failed to store secret value", err)
		}
		p.out.Successf("Secret %s created", constants.SecretID)
	} else {
		p.out.Infof("Secret %s already exists, keeping current value", constants.SecretID)
	}

	member := "serviceAccount:" + constants.ServiceAccountEmail(p.cfg.ProjectID)
	if err := p.clients.SecretManager.GrantAccess(
		ctx, p.cfg.ProjectID, constants.SecretID, member, constants.SecretAccessorRole,
	); err != nil {
		return apperrors.ErrSecretProvisioning("failed to grant secret access", err)
	}
	p.out.Successf("Granted %s on %s to the service account", constants.SecretAccessorRole, constants.SecretID)

	return nil
}

// invokeDeploy validates the agent manifest and hands off to the deployment
// CLI with the child's stdio streamed to the terminal. No retry; a non-zero
// exit aborts the run before any report is written.
func (p *Pipeline) invokeDeploy(ctx context.Context) error {
	manifest, err := LoadManifest(p.manifestPath)
	if err != nil {
		return apperrors.ErrDeployFailed(err)
	}

	saEmail := constants.ServiceAccountEmail(p.cfg.ProjectID)
	args := []string{
		"deploy", "cloud_run",
		manifest.Agent.EntryPoint,
		manifest.Agent.Class,
		"--region", p.cfg.Region,
		"--project", p.cfg.ProjectID,
		"--service_name", manifest.Agent.Name,
		"--service-account", saEmail,
		"--config", p.manifestPath,
	}

	p.out.Infof("Running %s %v", constants.SecondaryTool, args)
	if err := p.runner.Run(ctx, constants.SecondaryTool, args...); err != nil {
		return apperrors.ErrDeployFailed(err)
	}

	p.out.Successf("Agent %s deployed", manifest.Agent.Class)
	return nil
}

// smokeTest resolves the deployed service endpoint and probes its health
// path once. Every failure mode degrades to an informational message; this
// step never fails the run.
func (p *Pipeline) smokeTest(ctx context.Context) string {
	exists, uri, err := p.clients.CloudRun.GetService(ctx, p.cfg.ProjectID, constants.CloudRunServiceName)
	if err != nil {
		p.out.Warningf("Endpoint lookup failed: %v", err)
		return ""
	}
	if !exists || uri == "" {
		p.out.Infof("Service not ready yet; check the Cloud Run console later")
		return ""
	}

	p.out.KeyValue("Endpoint", uri)

	probeURL := uri + constants.HealthCheckPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		p.out.Warningf("Health probe skipped: %v", err)
		return uri
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.out.Warningf("Health probe failed: %v", err)
		return uri
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		p.out.Successf("Health probe passed (%s)", probeURL)
	} else {
		p.out.Warningf("Health probe returned %d; the service may still be starting", resp.StatusCode)
	}

	return uri
}
