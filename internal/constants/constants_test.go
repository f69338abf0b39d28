package constants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.NotNil(t, v)
	assert.NotEmpty(t, *v)
}

func TestConfigPaths(t *testing.T) {
	home := "/home/alice"
	assert.Equal(t, "/home/alice/.researchpro", ConfigDirPath(home))
	assert.Equal(t, "/home/alice/.researchpro/config.yaml", ConfigFilePath(home))
}

func TestServiceAccountEmail(t *testing.T) {
	tests := []struct {
		name      string
		projectID string
		want      string
	}{
		{
			name:      "demo project",
			projectID: "demo",
			want:      "researchpro-agent@demo.iam.gserviceaccount.com",
		},
		{
			name:      "hyphenated project",
			projectID: "my-research-project",
			want:      "researchpro-agent@my-research-project.iam.gserviceaccount.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServiceAccountEmail(tt.projectID))
		})
	}
}

func TestRequiredServices(t *testing.T) {
	assert.Len(t, RequiredServices, 3)
	for _, svc := range RequiredServices {
		assert.True(t, strings.HasSuffix(svc, ".googleapis.com"), "service %q should be a googleapis.com identifier", svc)
	}
	assert.Contains(t, RequiredServices, "secretmanager.googleapis.com")
}

func TestEnvironmentValues(t *testing.T) {
	assert.Equal(t, Environment("cli"), CLI)
	assert.Equal(t, Environment("production"), Production)
	assert.Equal(t, Environment("development"), Development)
}
