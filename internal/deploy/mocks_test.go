package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Vishnu4712/ResearchPro/internal/gcp"
)

// Manual mocks for the GCP client interfaces. Every method defaults to
// "not implemented" so a test that triggers an unexpected cloud call fails
// loudly instead of silently succeeding.

type mockProjectsClient struct {
	projectExistsFunc func(ctx context.Context, projectID string) (bool, error)
}

func (m *mockProjectsClient) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	if m.projectExistsFunc != nil {
		return m.projectExistsFunc(ctx, projectID)
	}
	return false, errors.New("not implemented")
}

type mockServiceUsageClient struct {
	enableServicesFunc func(ctx context.Context, projectID string, services []string) error
}

func (m *mockServiceUsageClient) EnableServices(ctx context.Context, projectID string, services []string) error {
	if m.enableServicesFunc != nil {
		return m.enableServicesFunc(ctx, projectID, services)
	}
	return errors.New("not implemented")
}

type mockIAMClient struct {
	createServiceAccountFunc func(ctx context.Context, projectID, accountID, displayName string) (string, error)
	deleteServiceAccountFunc func(ctx context.Context, projectID, accountEmail string) error
	serviceAccountExistsFunc func(ctx context.Context, projectID, accountEmail string) (bool, error)
	addIAMBindingFunc        func(ctx context.Context, projectID, member, role string) error
}

func (m *mockIAMClient) CreateServiceAccount(
	ctx context.Context, projectID, accountID, displayName string,
) (string, error) {
	if m.createServiceAccountFunc != nil {
		return m.createServiceAccountFunc(ctx, projectID, accountID, displayName)
	}
	return "", errors.New("not implemented")
}

func (m *mockIAMClient) DeleteServiceAccount(ctx context.Context, projectID, accountEmail string) error {
	if m.deleteServiceAccountFunc != nil {
		return m.deleteServiceAccountFunc(ctx, projectID, accountEmail)
	}
	return errors.New("not implemented")
}

func (m *mockIAMClient) ServiceAccountExists(ctx context.Context, projectID, accountEmail string) (bool, error) {
	if m.serviceAccountExistsFunc != nil {
		return m.serviceAccountExistsFunc(ctx, projectID, accountEmail)
	}
	return false, errors.New("not implemented")
}

func (m *mockIAMClient) AddIAMBinding(ctx context.Context, projectID, member, role string) error {
	if m.addIAMBindingFunc != nil {
		return m.addIAMBindingFunc(ctx, projectID, member, role)
	}
	return errors.New("not implemented")
}

type mockSecretManagerClient struct {
	createSecretFunc     func(ctx context.Context, projectID, secretID string) (bool, error)
	addSecretVersionFunc func(ctx context.Context, projectID, secretID string, payload []byte) error
	deleteSecretFunc     func(ctx context.Context, projectID, secretID string) error
	secretExistsFunc     func(ctx context.Context, projectID, secretID string) (bool, error)
	grantAccessFunc      func(ctx context.Context, projectID, secretID, member, role string) error
	hasAccessBindingFunc func(ctx context.Context, projectID, secretID, member, role string) (bool, error)
}

func (m *mockSecretManagerClient) CreateSecret(ctx context.Context, projectID, secretID string) (bool, error) {
	if m.createSecretFunc != nil {
		return m.createSecretFunc(ctx, projectID, secretID)
	}
	return false, errors.New("not implemented")
}

func (m *mockSecretManagerClient) AddSecretVersion(
	ctx context.Context, projectID, secretID string, payload []byte,
) error {
	if m.addSecretVersionFunc != nil {
		return m.addSecretVersionFunc(ctx, projectID, secretID, payload)
	}
	return errors.New("not implemented")
}

func (m *mockSecretManagerClient) DeleteSecret(ctx context.Context, projectID, secretID string) error {
	if m.deleteSecretFunc != nil {
		return m.deleteSecretFunc(ctx, projectID, secretID)
	}
	return errors.New("not implemented")
}

func (m *mockSecretManagerClient) SecretExists(ctx context.Context, projectID, secretID string) (bool, error) {
	if m.secretExistsFunc != nil {
		return m.secretExistsFunc(ctx, projectID, secretID)
	}
	return false, errors.New("not implemented")
}

func (m *mockSecretManagerClient) GrantAccess(ctx context.Context, projectID, secretID, member, role string) error {
	if m.grantAccessFunc != nil {
		return m.grantAccessFunc(ctx, projectID, secretID, member, role)
	}
	return errors.New("not implemented")
}

func (m *mockSecretManagerClient) HasAccessBinding(
	ctx context.Context, projectID, secretID, member, role string,
) (bool, error) {
	if m.hasAccessBindingFunc != nil {
		return m.hasAccessBindingFunc(ctx, projectID, secretID, member, role)
	}
	return false, errors.New("not implemented")
}

type mockCloudRunClient struct {
	getServiceFunc    func(ctx context.Context, projectID, serviceName string) (bool, string, error)
	deleteServiceFunc func(ctx context.Context, projectID, serviceName string) error
}

func (m *mockCloudRunClient) GetService(ctx context.Context, projectID, serviceName string) (bool, string, error) {
	if m.getServiceFunc != nil {
		return m.getServiceFunc(ctx, projectID, serviceName)
	}
	return false, "", errors.New("not implemented")
}

func (m *mockCloudRunClient) DeleteService(ctx context.Context, projectID, serviceName string) error {
	if m.deleteServiceFunc != nil {
		return m.deleteServiceFunc(ctx, projectID, serviceName)
	}
	return errors.New("not implemented")
}

func newMockClients() (*gcp.ServiceClients, *mockProjectsClient, *mockServiceUsageClient, *mockIAMClient, *mockSecretManagerClient, *mockCloudRunClient) {
	projects := &mockProjectsClient{}
	serviceUsage := &mockServiceUsageClient{}
	iam := &mockIAMClient{}
	secrets := &mockSecretManagerClient{}
	cloudRun := &mockCloudRunClient{}
	clients := &gcp.ServiceClients{
		Projects:      projects,
		ServiceUsage:  serviceUsage,
		IAM:           iam,
		SecretManager: secrets,
		CloudRun:      cloudRun,
	}
	return clients, projects, serviceUsage, iam, secrets, cloudRun
}

// mockRunner is a manual mock for the command runner.
type mockRunner struct {
	lookPathFunc func(name string) (string, error)
	runFunc      func(ctx context.Context, name string, args ...string) error

	runCalls [][]string
}

func (m *mockRunner) LookPath(name string) (string, error) {
	if m.lookPathFunc != nil {
		return m.lookPathFunc(name)
	}
	return "/usr/bin/" + name, nil
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) error {
	m.runCalls = append(m.runCalls, append([]string{name}, args...))
	if m.runFunc != nil {
		return m.runFunc(ctx, name, args...)
	}
	return nil
}

// mockOutput records all output calls so tests can assert on what the
// operator would have seen.
type mockOutput struct {
	messages []string

	confirmResult bool
	secretResult  string
	confirmCalls  int
	secretCalls   int
}

func (m *mockOutput) record(method, format string, a ...any) {
	m.messages = append(m.messages, method+": "+fmt.Sprintf(format, a...))
}

func (m *mockOutput) Successf(format string, a ...any) { m.record("success", format, a...) }
func (m *mockOutput) Infof(format string, a ...any)    { m.record("info", format, a...) }
func (m *mockOutput) Warningf(format string, a ...any) { m.record("warning", format, a...) }
func (m *mockOutput) Errorf(format string, a ...any)   { m.record("error", format, a...) }

func (m *mockOutput) Step(step, total int, message string) {
	m.messages = append(m.messages, fmt.Sprintf("step: [%d/%d] %s", step, total, message))
}

func (m *mockOutput) KeyValue(key, value string) {
	m.messages = append(m.messages, "keyvalue: "+key+"="+value)
}

func (m *mockOutput) Blank() { m.messages = append(m.messages, "blank") }

func (m *mockOutput) Box(text string) { m.messages = append(m.messages, "box: "+text) }

func (m *mockOutput) Confirm(string) bool {
	m.confirmCalls++
	return m.confirmResult
}

func (m *mockOutput) PromptSecret(string) string {
	m.secretCalls++
	return m.secretResult
}

func (m *mockOutput) contains(substr string) bool {
	for _, msg := range m.messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
