package gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"google.golang.org/api/cloudresourcemanager/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/secretmanager/v1"
)

// ServiceClients holds the Google Cloud API clients the pipeline depends on.
type ServiceClients struct {
	Projects      ProjectsClient
	ServiceUsage  ServiceUsageClient
	IAM           IAMClient
	SecretManager SecretManagerClient
	CloudRun      CloudRunClient
}

// ProjectsClient abstracts the Resource Manager project lookup used by the
// read-only preflight check.
type ProjectsClient interface {
	ProjectExists(ctx context.Context, projectID string) (bool, error)
}

// ServiceUsageClient abstracts Service Usage API operations.
type ServiceUsageClient interface {
	EnableServices(ctx context.Context, projectID string, services []string) error
}

// IAMClient abstracts IAM service account and project policy operations.
type IAMClient interface {
	CreateServiceAccount(ctx context.Context, projectID, accountID, displayName string) (string, error)
	DeleteServiceAccount(ctx context.Context, projectID, accountEmail string) error
	ServiceAccountExists(ctx context.Context, projectID, accountEmail string) (bool, error)
	AddIAMBinding(ctx context.Context, projectID, member, role string) error
}

// SecretManagerClient abstracts Secret Manager API operations.
// CreateSecret reports whether the secret was created; false with a nil error
// means it already existed and the stored value was left untouched.
type SecretManagerClient interface {
	CreateSecret(ctx context.Context, projectID, secretID string) (created bool, err error)
	AddSecretVersion(ctx context.Context, projectID, secretID string, payload []byte) error
	DeleteSecret(ctx context.Context, projectID, secretID string) error
	SecretExists(ctx context.Context, projectID, secretID string) (bool, error)
	GrantAccess(ctx context.Context, projectID, secretID, member, role string) error
	HasAccessBinding(ctx context.Context, projectID, secretID, member, role string) (bool, error)
}

// CloudRunClient abstracts the Cloud Run Admin API operations used for the
// smoke test, status display, and teardown.
type CloudRunClient interface {
	GetService(ctx context.Context, projectID, serviceName string) (exists bool, uri string, err error)
	DeleteService(ctx context.Context, projectID, serviceName string) error
}

func wrapError(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", action, err)
}

func crmBindingExists(bindings []*cloudresourcemanager.Binding, role, member string) bool {
	for _, b := range bindings {
		if b.Role == role && slices.Contains(b.Members, member) {
			return true
		}
	}
	return false
}

func secretBindingExists(bindings []*secretmanager.Binding, role, member string) bool {
	for _, b := range bindings {
		if b.Role == role && slices.Contains(b.Members, member) {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}

func isAlreadyExists(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusConflict
	}
	return false
}
