package deploy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Vishnu4712/ResearchPro/internal/constants"
)

// Manifest is the agent deployment configuration handed to the deployment
// CLI. It is parsed and validated before the deploy step is invoked so a
// broken file fails fast instead of mid-deploy.
type Manifest struct {
	Agent struct {
		Name       string `yaml:"name"`
		EntryPoint string `yaml:"entry_point"`
		Class      string `yaml:"class"`
	} `yaml:"agent"`
	Service struct {
		MinInstances   int `yaml:"min_instances"`
		MaxInstances   int `yaml:"max_instances"`
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"service"`
	Env map[string]string `yaml:"env"`
}

// LoadManifest reads and validates the agent manifest at the given path.
// Missing entry point, class, or name fall back to the project defaults.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read agent manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse agent manifest %s: %w", path, err)
	}

	if m.Agent.Name == "" {
		m.Agent.Name = constants.CloudRunServiceName
	}
	if m.Agent.EntryPoint == "" {
		m.Agent.EntryPoint = constants.AgentEntryPoint
	}
	if m.Agent.Class == "" {
		m.Agent.Class = constants.AgentClassName
	}

	if m.Service.MinInstances < 0 {
		return nil, fmt.Errorf("agent manifest %s: min_instances must not be negative", path)
	}
	if m.Service.MaxInstances != 0 && m.Service.MaxInstances < m.Service.MinInstances {
		return nil, fmt.Errorf("agent manifest %s: max_instances is below min_instances", path)
	}

	return &m, nil
}
