package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Vishnu4712/ResearchPro/internal/errors"
	"github.com/Vishnu4712/ResearchPro/internal/output"
)

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "duration minutes", input: "10m", want: 10 * time.Minute},
		{name: "duration seconds", input: "30s", want: 30 * time.Second},
		{name: "duration hours", input: "1h", want: time.Hour},
		{name: "bare seconds", input: "600", want: 600 * time.Second},
		{name: "empty defaults to 30m", input: "", want: 30 * time.Minute},
		{name: "garbage rejected", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeout(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootCmdRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd().Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"deploy", "verify", "status", "teardown", "configure", "version"} {
		assert.True(t, names[want], "expected %s command to be registered", want)
	}
}

func TestPrintCommandErrorKeepsPercentVerbsIntact(t *testing.T) {
	oldStdout, oldStderr := output.Stdout, output.Stderr
	t.Cleanup(func() { output.Stdout, output.Stderr = oldStdout, oldStderr })

	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	output.Stdout = outBuf
	output.Stderr = errBuf

	// gcloud and API error text regularly contains % characters
	err := apperrors.ErrDeployFailed(errors.New(`quota exceeded: 100% of "runs %s" used`))
	printCommandError(err)

	assert.Contains(t, errBuf.String(), "agent deployment failed")
	assert.Contains(t, outBuf.String(), `100% of "runs %s" used`)
	assert.NotContains(t, errBuf.String(), "%!")
	assert.NotContains(t, outBuf.String(), "%!")
}
