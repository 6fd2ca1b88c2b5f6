// Package config provides configuration loading and validation for testbridge.json.
package config

// Config represents the complete testbridge.json configuration.
type Config struct {
	Frameworks *FrameworksConfig `json:"frameworks,omitempty"`
	Docker     *DockerConfig     `json:"docker,omitempty"`
}

// FrameworksConfig groups per-framework command settings.
type FrameworksConfig struct {
	RSpec *FrameworkConfig `json:"rspec,omitempty"`
	Cargo *FrameworkConfig `json:"cargo,omitempty"`
}

// FrameworkConfig defines how commands for one framework are built.
type FrameworkConfig struct {
	Base string `json:"base,omitempty"` // Command prefix, split on whitespace
}

// DockerConfig configures docker compose execution.
type DockerConfig struct {
	Enabled     bool   `json:"enabled,omitempty"`
	ComposeFile string `json:"compose_file,omitempty"`
	Service     string `json:"service,omitempty"`
}
