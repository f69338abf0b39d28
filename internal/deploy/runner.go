package deploy

import (
	"context"
	"os"
	"os/exec"
)

// CommandRunner abstracts external tool invocation so the pipeline can be
// tested without gcloud or adk installed.
type CommandRunner interface {
	// LookPath reports where the named tool resolves on PATH.
	LookPath(name string) (string, error)
	// Run executes the tool with the child's stdio attached to the
	// operator's terminal and blocks until it exits.
	Run(ctx context.Context, name string, args ...string) error
}

// execRunner is the production CommandRunner backed by os/exec.
type execRunner struct{}

// NewExecRunner returns a CommandRunner that executes real processes.
func NewExecRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
