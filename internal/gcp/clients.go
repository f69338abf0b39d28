// Package gcp provides the Google Cloud API clients used by the deployment
// pipeline. Each concrete client wraps the corresponding REST service and
// applies a named timeout per call; interfaces are defined in services.go so
// the pipeline can be tested against mocks.
package gcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	resourcemanager "cloud.google.com/go/resourcemanager/apiv3"
	"cloud.google.com/go/resourcemanager/apiv3/resourcemanagerpb"
	"google.golang.org/api/cloudresourcemanager/v3"
	"google.golang.org/api/iam/v1"
	"google.golang.org/api/run/v2"
	"google.golang.org/api/secretmanager/v1"
	"google.golang.org/api/serviceusage/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Vishnu4712/ResearchPro/internal/constants"
)

// NewServiceClients builds concrete service clients backed by Google Cloud APIs.
func NewServiceClients(ctx context.Context, region string) (*ServiceClients, error) {
	projectsClient, err := resourcemanager.NewProjectsClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create projects client: %w", err)
	}

	serviceUsageSvc, err := serviceusage.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("create service usage service: %w", err)
	}

	iamSvc, err := iam.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("create iam service: %w", err)
	}

	rmSvc, err := cloudresourcemanager.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("create resource manager service: %w", err)
	}

	secretManagerSvc, err := secretmanager.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("create secret manager service: %w", err)
	}

	runSvc, err := run.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("create run service: %w", err)
	}

	return &ServiceClients{
		Projects: &defaultProjectsClient{client: projectsClient},
		ServiceUsage: &defaultServiceUsageClient{
			service: serviceUsageSvc,
		},
		IAM: &defaultIAMClient{
			iamService:      iamSvc,
			resourceManager: rmSvc,
		},
		SecretManager: &defaultSecretManagerClient{
			service: secretManagerSvc,
		},
		CloudRun: &defaultCloudRunClient{
			service: runSvc,
			region:  region,
		},
	}, nil
}

type defaultProjectsClient struct {
	client *resourcemanager.ProjectsClient
}

func (c *defaultProjectsClient) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ProjectPreflightTimeout)
	defer cancel()

	req := &resourcemanagerpb.GetProjectRequest{
		Name: "projects/" + projectID,
	}

	_, err := c.client.GetProject(ctx, req)
	if err != nil {
		//nolint:exhaustive // only handling NotFound and PermissionDenied specifically
		switch status.Code(err) {
		case codes.NotFound:
			return false, nil
		case codes.PermissionDenied:
			if strings.Contains(err.Error(), "or it may not exist") {
				return false, nil
			}
		}

		return false, wrapError("get project", err)
	}

	return true, nil
}

type defaultServiceUsageClient struct {
	service *serviceusage.Service
}

func (c *defaultServiceUsageClient) EnableServices(ctx context.Context, projectID string, services []string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.ServiceUsageOperationTimeout)
	defer cancel()

	parent := "projects/" + projectID
	req := &serviceusage.BatchEnableServicesRequest{
		ServiceIds: services,
	}

	op, err := c.service.Services.BatchEnable(parent, req).Context(ctx).Do()
	if err != nil {
		return wrapError("batch enable services", err)
	}

	if op.Done {
		if op.Error != nil {
			return fmt.Errorf("batch enable services: %s", op.Error.Message)
		}
		return nil
	}

	return wrapError("wait for service enablement", c.waitForOperation(ctx, op.Name))
}

func (c *defaultServiceUsageClient) waitForOperation(ctx context.Context, name string) error {
	for {
		op, err := c.service.Operations.Get(name).Context(ctx).Do()
		if err != nil {
			return wrapError("poll service usage operation", err)
		}
		if op.Done {
			if op.Error != nil {
				return fmt.Errorf("operation error: %s", op.Error.Message)
			}
			return nil
		}
		time.Sleep(constants.ResourcePollInterval)
	}
}

type defaultIAMClient struct {
	iamService      *iam.Service
	resourceManager *cloudresourcemanager.Service
}

func (c *defaultIAMClient) CreateServiceAccount(
	ctx context.Context,
	projectID, accountID, displayName string,
) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ServiceAccountTimeout)
	defer cancel()

	req := &iam.CreateServiceAccountRequest{
		AccountId: accountID,
		ServiceAccount: &iam.ServiceAccount{
			DisplayName: displayName,
		},
	}

	sa, err := c.iamService.Projects.ServiceAccounts.Create("projects/"+projectID, req).
		Context(ctx).
		Do()
	if err != nil {
		return "", wrapError("create service account", err)
	}
	return sa.Email, nil
}

func (c *defaultIAMClient) DeleteServiceAccount(ctx context.Context, projectID, accountEmail string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.ServiceAccountTimeout)
	defer cancel()

	name := fmt.Sprintf("projects/%s/serviceAccounts/%s", projectID, accountEmail)
	_, err := c.iamService.Projects.ServiceAccounts.Delete(name).Context(ctx).Do()
	if isNotFound(err) {
		return nil
	}
	return wrapError("delete service account", err)
}

func (c *defaultIAMClient) ServiceAccountExists(ctx context.Context, projectID, accountEmail string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ServiceAccountTimeout)
	defer cancel()

	name := fmt.Sprintf("projects/%s/serviceAccounts/%s", projectID, accountEmail)
	_, err := c.iamService.Projects.ServiceAccounts.Get(name).Context(ctx).Do()
	if isNotFound(err) {
		return false, nil
	}
	return err == nil, wrapError("get service account", err)
}

func (c *defaultIAMClient) AddIAMBinding(ctx context.Context, projectID, member, role string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.IAMBindingTimeout)
	defer cancel()

	resource := "projects/" + projectID
	policy, err := c.resourceManager.Projects.GetIamPolicy(resource, &cloudresourcemanager.GetIamPolicyRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return wrapError("get project iam policy", err)
	}

	if !crmBindingExists(policy.Bindings, role, member) {
		policy.Bindings = append(policy.Bindings, &cloudresourcemanager.Binding{
			Role:    role,
			Members: []string{member},
		})
	}

	_, err = c.resourceManager.Projects.SetIamPolicy(
		resource,
		&cloudresourcemanager.SetIamPolicyRequest{Policy: policy},
	).Context(ctx).Do()
	return wrapError("set project iam policy", err)
}

type defaultSecretManagerClient struct {
	service *secretmanager.Service
}

func (c *defaultSecretManagerClient) CreateSecret(ctx context.Context, projectID, secretID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.SecretManagerTimeout)
	defer cancel()

	parent := "projects/" + projectID
	secret := &secretmanager.Secret{
		Replication: &secretmanager.Replication{
			Automatic: &secretmanager.Automatic{},
		},
	}
	_, err := c.service.Projects.Secrets.Create(parent, secret).
		SecretId(secretID).
		Context(ctx).
		Do()
	if isAlreadyExists(err) {
		return false, nil
	}
	if err != nil {
		return false, wrapError("create secret", err)
	}
	return true, nil
}

func (c *defaultSecretManagerClient) AddSecretVersion(
	ctx context.Context,
	projectID, secretID string,
	payload []byte,
) error {
	ctx, cancel := context.WithTimeout(ctx, constants.SecretManagerTimeout)
	defer cancel()

	parent := fmt.Sprintf("projects/%s/secrets/%s", projectID, secretID)
	encoded := base64.StdEncoding.EncodeToString(payload)
	req := &secretmanager.AddSecretVersionRequest{
		Payload: &secretmanager.SecretPayload{
			Data: encoded,
		},
	}
	_, err := c.service.Projects.Secrets.AddVersion(parent, req).Context(ctx).Do()
	return wrapError("add secret version", err)
}

func (c *defaultSecretManagerClient) DeleteSecret(ctx context.Context, projectID, secretID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.SecretManagerTimeout)
	defer cancel()

	name := fmt.Sprintf("projects/%s/secrets/%s", projectID, secretID)
	_, err := c.service.Projects.Secrets.Delete(name).Context(ctx).Do()
	if isNotFound(err) {
		return nil
	}
	return wrapError("delete secret", err)
}

func (c *defaultSecretManagerClient) SecretExists(ctx context.Context, projectID, secretID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.SecretManagerTimeout)
	defer cancel()

	name := fmt.Sprintf("projects/%s/secrets/%s", projectID, secretID)
	_, err := c.service.Projects.Secrets.Get(name).Context(ctx).Do()
	if isNotFound(err) {
		return false, nil
	}
	return err == nil, wrapError("get secret", err)
}

func (c *defaultSecretManagerClient) GrantAccess(
	ctx context.Context,
	projectID, secretID, member, role string,
) error {
	ctx, cancel := context.WithTimeout(ctx, constants.IAMBindingTimeout)
	defer cancel()

	resource := fmt.Sprintf("projects/%s/secrets/%s", projectID, secretID)
	policy, err := c.service.Projects.Secrets.GetIamPolicy(resource).Context(ctx).Do()
	if err != nil {
		return wrapError("get secret iam policy", err)
	}

	if !secretBindingExists(policy.Bindings, role, member) {
		policy.Bindings = append(policy.Bindings, &secretmanager.Binding{
			Role:    role,
			Members: []string{member},
		})
	}

	_, err = c.service.Projects.Secrets.SetIamPolicy(
		resource,
		&secretmanager.SetIamPolicyRequest{Policy: policy},
	).Context(ctx).Do()
	return wrapError("set secret iam policy", err)
}

func (c *defaultSecretManagerClient) HasAccessBinding(
	ctx context.Context,
	projectID, secretID, member, role string,
) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.IAMBindingTimeout)
	defer cancel()

	resource := fmt.Sprintf("projects/%s/secrets/%s", projectID, secretID)
	policy, err := c.service.Projects.Secrets.GetIamPolicy(resource).Context(ctx).Do()
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, wrapError("get secret iam policy", err)
	}
	return secretBindingExists(policy.Bindings, role, member), nil
}

type defaultCloudRunClient struct {
	service *run.Service
	region  string
}

func (c *defaultCloudRunClient) serviceName(projectID, service string) string {
	return fmt.Sprintf("projects/%s/locations/%s/services/%s", projectID, c.region, service)
}

func (c *defaultCloudRunClient) GetService(
	ctx context.Context,
	projectID, serviceName string,
) (exists bool, uri string, err error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CloudRunLookupTimeout)
	defer cancel()

	svc, err := c.service.Projects.Locations.Services.Get(c.serviceName(projectID, serviceName)).
		Context(ctx).
		Do()
	if isNotFound(err) {
		return false, "", nil
	}
	if err != nil {
		return false, "", wrapError("get cloud run service", err)
	}
	return true, svc.Uri, nil
}

func (c *defaultCloudRunClient) DeleteService(ctx context.Context, projectID, serviceName string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.CloudRunOperationTimeout)
	defer cancel()

	op, err := c.service.Projects.Locations.Services.Delete(c.serviceName(projectID, serviceName)).
		Context(ctx).
		Do()
	if isNotFound(err) {
		return nil
	}
	if err != nil {
		return wrapError("delete cloud run service", err)
	}
	return wrapError("wait for cloud run deletion", c.waitForRunOperation(ctx, op.Name))
}

func (c *defaultCloudRunClient) waitForRunOperation(ctx context.Context, name string) error {
	for {
		op, err := c.service.Projects.Locations.Operations.Get(name).Context(ctx).Do()
		if err != nil {
			return wrapError("poll cloud run operation", err)
		}
		if op.Done {
			if op.Error != nil {
				return fmt.Errorf("operation error: %s", op.Error.Message)
			}
			return nil
		}
		time.Sleep(constants.ResourcePollInterval)
	}
}
