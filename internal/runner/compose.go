package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/pl/testbridge/internal/config"
)

// ComposeConfig represents a docker-compose.yml file structure.
type ComposeConfig struct {
	Version  string                    `yaml:"version,omitempty"`
	Services map[string]ComposeService `yaml:"services"`
	Volumes  map[string]interface{}    `yaml:"volumes,omitempty"`
}

// ComposeService represents a service in docker-compose.yml.
type ComposeService struct {
	Image       string            `yaml:"image,omitempty"`
	Build       *ComposeBuild     `yaml:"build,omitempty"`
	Volumes     []string          `yaml:"volumes,omitempty"`
	WorkingDir  string            `yaml:"working_dir,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	Platform    string            `yaml:"platform,omitempty"`
	User        string            `yaml:"user,omitempty"`
	Command     string            `yaml:"command,omitempty"`
}

// ComposeBuild represents build configuration for a service.
type ComposeBuild struct {
	Context    string `yaml:"context,omitempty"`
	Dockerfile string `yaml:"dockerfile,omitempty"`
}

// composeFileName returns the compose file name from config, defaulting
// to docker-compose.yml.
func composeFileName(cfg *config.DockerConfig) string {
	if cfg != nil && cfg.ComposeFile != "" {
		return cfg.ComposeFile
	}
	return config.DefaultDockerComposeFile
}

// serviceName returns the compose service from config, defaulting to
// "test".
func serviceName(cfg *config.DockerConfig) string {
	if cfg != nil && cfg.Service != "" {
		return cfg.Service
	}
	return config.DefaultDockerService
}

// ComposeFileExists checks if the compose file exists in the project.
func ComposeFileExists(projectRoot, composeFile string) bool {
	_, err := os.Stat(filepath.Join(projectRoot, composeFile))
	return err == nil
}

// ParseComposeFile parses an existing compose file.
func ParseComposeFile(projectRoot, composeFile string) (*ComposeConfig, error) {
	path := filepath.Join(projectRoot, composeFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compose file: %w", err)
	}

	var compose ComposeConfig
	if err := yaml.Unmarshal(data, &compose); err != nil {
		return nil, fmt.Errorf("invalid compose file format: %w", err)
	}

	return &compose, nil
}

// ValidateComposeFile validates an existing compose file.
func ValidateComposeFile(projectRoot, composeFile string) error {
	compose, err := ParseComposeFile(projectRoot, composeFile)
	if err != nil {
		return err
	}

	if len(compose.Services) == 0 {
		return fmt.Errorf("compose file has no services defined")
	}

	return nil
}

// ServiceExists checks if a service exists in the compose config.
func ServiceExists(compose *ComposeConfig, service string) bool {
	_, exists := compose.Services[service]
	return exists
}

// GetServiceNames returns the sorted names of services in a compose config.
func GetServiceNames(compose *ComposeConfig) []string {
	return serviceNames(compose)
}

func serviceNames(compose *ComposeConfig) []string {
	names := make([]string, 0, len(compose.Services))
	for name := range compose.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
