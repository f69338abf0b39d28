package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Vishnu4712/ResearchPro/internal/config"
	"github.com/Vishnu4712/ResearchPro/internal/constants"
	"github.com/Vishnu4712/ResearchPro/internal/gcp"
)

// CheckResult is the outcome of a single post-deploy verification check.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	// Detail explains a failure or carries the observed value on success.
	Detail string `json:"-"`
}

// VerifyResult aggregates all verification checks for one run.
type VerifyResult struct {
	ProjectID string        `json:"project_id"`
	Location  string        `json:"location"`
	Checks    []CheckResult `json:"tests"`
	// Endpoint is the resolved service URL, empty when unreachable.
	Endpoint string `json:"-"`
}

// Passed returns how many checks succeeded.
func (r *VerifyResult) Passed() int {
	n := 0
	for _, c := range r.Checks {
		if c.Passed {
			n++
		}
	}
	return n
}

// Total returns the number of checks that ran.
func (r *VerifyResult) Total() int {
	return len(r.Checks)
}

// AllPassed reports whether every check succeeded.
func (r *VerifyResult) AllPassed() bool {
	return r.Passed() == r.Total()
}

// WriteJSON exports the result in the machine-readable format consumed by
// CI jobs and the run report's test command.
func (r *VerifyResult) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode verify results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), constants.ReportFilePermissions); err != nil {
		return fmt.Errorf("write verify results %s: %w", path, err)
	}
	return nil
}

// Verifier runs the post-deploy checks against a live deployment. The
// checks run concurrently but are reported in a fixed order.
type Verifier struct {
	cfg        config.Config
	clients    *gcp.ServiceClients
	httpClient *http.Client
}

// NewVerifier builds a verifier for the given validated configuration.
func NewVerifier(cfg config.Config, clients *gcp.ServiceClients, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		cfg:        cfg,
		clients:    clients,
		httpClient: &http.Client{Timeout: constants.HealthProbeTimeout},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifierOption adjusts verifier defaults, mainly for tests.
type VerifierOption func(*Verifier)

// WithVerifierHTTPClient overrides the HTTP client used for the health probe.
func WithVerifierHTTPClient(c *http.Client) VerifierOption {
	return func(v *Verifier) { v.httpClient = c }
}

// Check names in report order.
const (
	checkServiceReachable = "service_reachable"
	checkHealthProbe      = "health_probe"
	checkSecretConfigured = "secret_configured"
	checkIdentityPresent  = "identity_provisioned"
)

// Run executes all verification checks. It returns a result even when
// checks fail; the error is reserved for the verifier itself breaking.
func (v *Verifier) Run(ctx context.Context) (*VerifyResult, error) {
	result := &VerifyResult{
		ProjectID: v.cfg.ProjectID,
		Location:  v.cfg.Region,
		Checks:    make([]CheckResult, 4),
	}

	// The endpoint lookup runs first because the health probe needs its
	// URL; the remaining checks fan out concurrently.
	exists, uri, err := v.clients.CloudRun.GetService(ctx, v.cfg.ProjectID, constants.CloudRunServiceName)
	switch {
	case err != nil:
		result.Checks[0] = CheckResult{Name: checkServiceReachable, Detail: err.Error()}
	case !exists:
		result.Checks[0] = CheckResult{
			Name:   checkServiceReachable,
			Detail: fmt.Sprintf("service %s not found", constants.CloudRunServiceName),
		}
	default:
		result.Checks[0] = CheckResult{Name: checkServiceReachable, Passed: true, Detail: uri}
		result.Endpoint = uri
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result.Checks[1] = v.checkHealth(gctx, result.Endpoint)
		return nil
	})
	g.Go(func() error {
		result.Checks[2] = v.checkSecret(gctx)
		return nil
	})
	g.Go(func() error {
		result.Checks[3] = v.checkIdentity(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (v *Verifier) checkHealth(ctx context.Context, endpoint string) CheckResult {
	if endpoint == "" {
		return CheckResult{Name: checkHealthProbe, Detail: "no endpoint to probe"}
	}

	probeURL := endpoint + constants.HealthCheckPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return CheckResult{Name: checkHealthProbe, Detail: err.Error()}
	}

	start := time.Now()
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return CheckResult{Name: checkHealthProbe, Detail: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return CheckResult{
			Name:   checkHealthProbe,
			Detail: fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, probeURL),
		}
	}
	return CheckResult{
		Name:   checkHealthProbe,
		Passed: true,
		Detail: fmt.Sprintf("responded in %s", time.Since(start).Round(time.Millisecond)),
	}
}

func (v *Verifier) checkSecret(ctx context.Context) CheckResult {
	exists, err := v.clients.SecretManager.SecretExists(ctx, v.cfg.ProjectID, constants.SecretID)
	if err != nil {
		return CheckResult{Name: checkSecretConfigured, Detail: err.Error()}
	}
	if !exists {
		return CheckResult{
			Name:   checkSecretConfigured,
			Detail: fmt.Sprintf("secret %s not found", constants.SecretID),
		}
	}

	member := "serviceAccount:" + constants.ServiceAccountEmail(v.cfg.ProjectID)
	bound, err := v.clients.SecretManager.HasAccessBinding(
		ctx, v.cfg.ProjectID, constants.SecretID, member, constants.SecretAccessorRole,
	)
	if err != nil {
		return CheckResult{Name: checkSecretConfigured, Detail: err.Error()}
	}
	if !bound {
		return CheckResult{
			Name:   checkSecretConfigured,
			Detail: fmt.Sprintf("%s lacks %s on %s", member, constants.SecretAccessorRole, constants.SecretID),
		}
	}
	return CheckResult{Name: checkSecretConfigured, Passed: true, Detail: constants.SecretID}
}

func (v *Verifier) checkIdentity(ctx context.Context) CheckResult {
	email := constants.ServiceAccountEmail(v.cfg.ProjectID)
	exists, err := v.clients.IAM.ServiceAccountExists(ctx, v.cfg.ProjectID, email)
	if err != nil {
		return CheckResult{Name: checkIdentityPresent, Detail: err.Error()}
	}
	if !exists {
		return CheckResult{
			Name:   checkIdentityPresent,
			Detail: fmt.Sprintf("service account %s not found", email),
		}
	}
	return CheckResult{Name: checkIdentityPresent, Passed: true, Detail: email}
}
