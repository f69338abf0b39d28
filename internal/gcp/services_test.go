package gcp

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/cloudresourcemanager/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/secretmanager/v1"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "googleapi 404",
			err:      &googleapi.Error{Code: http.StatusNotFound},
			expected: true,
		},
		{
			name:     "wrapped googleapi 404",
			err:      fmt.Errorf("get secret: %w", &googleapi.Error{Code: http.StatusNotFound}),
			expected: true,
		},
		{
			name:     "googleapi 409 is not a not-found",
			err:      &googleapi.Error{Code: http.StatusConflict},
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isNotFound(tt.err))
		})
	}
}

func TestIsAlreadyExists(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "googleapi 409",
			err:      &googleapi.Error{Code: http.StatusConflict},
			expected: true,
		},
		{
			name:     "wrapped googleapi 409",
			err:      fmt.Errorf("create secret: %w", &googleapi.Error{Code: http.StatusConflict}),
			expected: true,
		},
		{
			name:     "googleapi 404 is not a conflict",
			err:      &googleapi.Error{Code: http.StatusNotFound},
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isAlreadyExists(tt.err))
		})
	}
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError("get secret", nil))

	cause := errors.New("deadline exceeded")
	err := wrapError("get secret", cause)
	assert.EqualError(t, err, "get secret: deadline exceeded")
	assert.ErrorIs(t, err, cause)
}

func TestCRMBindingExists(t *testing.T) {
	bindings := []*cloudresourcemanager.Binding{
		{
			Role:    "roles/aiplatform.user",
			Members: []string{"serviceAccount:researchpro-agent@demo.iam.gserviceaccount.com"},
		},
		{
			Role:    "roles/viewer",
			Members: []string{"user:alice@example.com"},
		},
	}

	assert.True(t, crmBindingExists(bindings,
		"roles/aiplatform.user", "serviceAccount:researchpro-agent@demo.iam.gserviceaccount.com"))
	assert.False(t, crmBindingExists(bindings,
		"roles/aiplatform.user", "serviceAccount:other@demo.iam.gserviceaccount.com"))
	assert.False(t, crmBindingExists(bindings,
		"roles/editor", "user:alice@example.com"))
	assert.False(t, crmBindingExists(nil, "roles/viewer", "user:alice@example.com"))
}

func TestSecretBindingExists(t *testing.T) {
	bindings := []*secretmanager.Binding{
		{
			Role:    "roles/secretmanager.secretAccessor",
			Members: []string{"serviceAccount:researchpro-agent@demo.iam.gserviceaccount.com"},
		},
	}

	assert.True(t, secretBindingExists(bindings,
		"roles/secretmanager.secretAccessor", "serviceAccount:researchpro-agent@demo.iam.gserviceaccount.com"))
	assert.False(t, secretBindingExists(bindings,
		"roles/secretmanager.admin", "serviceAccount:researchpro-agent@demo.iam.gserviceaccount.com"))
}
