package config

// Default configuration values.
const (
	DefaultRSpecBase         = "bundle exec rspec"
	DefaultCargoBase         = "cargo test"
	DefaultDockerComposeFile = "docker-compose.yml"
	DefaultDockerService     = "test"
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyFrameworkDefaults(cfg)
	applyDockerDefaults(cfg)
}

func applyFrameworkDefaults(cfg *Config) {
	if cfg.Frameworks == nil {
		cfg.Frameworks = &FrameworksConfig{}
	}
	if cfg.Frameworks.RSpec == nil {
		cfg.Frameworks.RSpec = &FrameworkConfig{}
	}
	if cfg.Frameworks.RSpec.Base == "" {
		cfg.Frameworks.RSpec.Base = DefaultRSpecBase
	}
	if cfg.Frameworks.Cargo == nil {
		cfg.Frameworks.Cargo = &FrameworkConfig{}
	}
	if cfg.Frameworks.Cargo.Base == "" {
		cfg.Frameworks.Cargo.Base = DefaultCargoBase
	}
}

func applyDockerDefaults(cfg *Config) {
	if cfg.Docker == nil {
		// Docker stays disabled, but compose defaults are still filled so
		// the env-var toggle works without a config file.
		cfg.Docker = &DockerConfig{}
	}
	if cfg.Docker.ComposeFile == "" {
		cfg.Docker.ComposeFile = DefaultDockerComposeFile
	}
	if cfg.Docker.Service == "" {
		cfg.Docker.Service = DefaultDockerService
	}
}

// Default returns a configuration with every field at its default value.
// It is used when no testbridge.json exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
