// Package errors provides error types and handling for researchpro.
// It includes custom error types with process exit codes and error codes.
package errors

import (
	"errors"
	"fmt"
)

// AppError represents an application error with an associated process exit code.
type AppError struct {
	// Code is an optional error code string for programmatic handling
	Code string
	// Message is a user-friendly error message
	Message string
	// ExitCode is the process exit code the CLI terminates with
	ExitCode int
	// Cause is the underlying error (for error wrapping)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is to work with AppError.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code != "" && e.Code == t.Code
	}
	return false
}

// Predefined error codes.
const (
	ErrCodeInvalidConfig      = "INVALID_CONFIG"
	ErrCodePrerequisite       = "PREREQUISITE_MISSING"
	ErrCodeProjectNotFound    = "PROJECT_NOT_FOUND"
	ErrCodeAPIEnablement      = "API_ENABLEMENT_FAILED"
	ErrCodeIdentity           = "IDENTITY_PROVISIONING_FAILED"
	ErrCodeSecret             = "SECRET_PROVISIONING_FAILED"
	ErrCodeDeployFailed       = "DEPLOY_FAILED"
	ErrCodeReportWrite        = "REPORT_WRITE_FAILED"
	ErrCodeVerificationFailed = "VERIFICATION_FAILED"
	ErrCodeTeardownFailed     = "TEARDOWN_FAILED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Exit codes the CLI terminates with. Anything non-zero aborts the pipeline.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitPrerequisite  = 2
	ExitInvalidConfig = 3
)

// New creates a new AppError with the given code, message, exit code, and cause.
func New(code, message string, exitCode int, cause error) *AppError {
	if exitCode == ExitOK {
		panic(fmt.Sprintf("New called with a zero exit code for error %s", code))
	}
	return &AppError{
		Code:     code,
		Message:  message,
		ExitCode: exitCode,
		Cause:    cause,
	}
}

// Convenience constructors for common errors

// ErrInvalidConfig creates a configuration validation error.
func ErrInvalidConfig(message string, cause error) *AppError {
	return New(ErrCodeInvalidConfig, message, ExitInvalidConfig, cause)
}

// ErrPrerequisiteMissing creates an error for a missing required tool.
func ErrPrerequisiteMissing(tool string, cause error) *AppError {
	return New(ErrCodePrerequisite, fmt.Sprintf("required tool %q not found on PATH", tool), ExitPrerequisite, cause)
}

// ErrProjectNotFound creates an error for an unreachable target project.
func ErrProjectNotFound(projectID string, cause error) *AppError {
	return New(ErrCodeProjectNotFound, fmt.Sprintf("project %q not found or not accessible", projectID), ExitFailure, cause)
}

// ErrAPIEnablement creates an error for a failed service enablement.
func ErrAPIEnablement(cause error) *AppError {
	return New(ErrCodeAPIEnablement, "failed to enable required APIs", ExitFailure, cause)
}

// ErrIdentityProvisioning creates an error for a failed service account setup.
func ErrIdentityProvisioning(message string, cause error) *AppError {
	return New(ErrCodeIdentity, message, ExitFailure, cause)
}

// ErrSecretProvisioning creates an error for a failed secret setup.
func ErrSecretProvisioning(message string, cause error) *AppError {
	return New(ErrCodeSecret, message, ExitFailure, cause)
}

// ErrDeployFailed creates an error for a failed deployment invocation.
func ErrDeployFailed(cause error) *AppError {
	return New(ErrCodeDeployFailed, "agent deployment failed", ExitFailure, cause)
}

// ErrReportWrite creates an error for a failed report write.
func ErrReportWrite(cause error) *AppError {
	return New(ErrCodeReportWrite, "failed to write deployment report", ExitFailure, cause)
}

// ErrVerificationFailed creates an error for failed post-deploy checks.
func ErrVerificationFailed(failed, total int) *AppError {
	return New(
		ErrCodeVerificationFailed,
		fmt.Sprintf("%d of %d verification checks failed", failed, total),
		ExitFailure,
		nil,
	)
}

// ErrTeardownFailed creates an error for a failed resource deletion.
func ErrTeardownFailed(message string, cause error) *AppError {
	return New(ErrCodeTeardownFailed, message, ExitFailure, cause)
}

// ErrInternalError creates an internal error.
func ErrInternalError(message string, cause error) *AppError {
	return New(ErrCodeInternalError, message, ExitFailure, cause)
}

// GetExitCode extracts the process exit code from an error.
// Returns 1 if the error is not an AppError.
func GetExitCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}
	return ExitFailure
}

// GetErrorCode extracts the error code from an error.
// Returns empty string if the error is not an AppError.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetErrorMessage extracts a user-friendly message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// GetErrorDetails extracts detailed error information including the underlying cause.
// Returns the underlying error message if available, otherwise returns the main error message.
func GetErrorDetails(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Cause != nil {
			return appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
