package config

import (
	"fmt"
	"regexp"
	"strings"
)

// serviceNamePattern mirrors the docker.service pattern in the JSON schema.
var serviceNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
// Note: warnings are reserved for future use (deprecated fields, migration hints, etc.)
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateFrameworks(cfg); err != nil {
		return nil, err
	}

	if err := validateDocker(cfg); err != nil {
		return nil, err
	}

	return nil, nil
}

func validateFrameworks(cfg *Config) error {
	if cfg.Frameworks == nil {
		return nil
	}
	if cfg.Frameworks.RSpec != nil {
		if err := ValidateBase("frameworks.rspec.base", cfg.Frameworks.RSpec.Base); err != nil {
			return err
		}
	}
	if cfg.Frameworks.Cargo != nil {
		if err := ValidateBase("frameworks.cargo.base", cfg.Frameworks.Cargo.Base); err != nil {
			return err
		}
	}
	return nil
}

func validateDocker(cfg *Config) error {
	if cfg.Docker == nil {
		return nil
	}
	if cfg.Docker.Service != "" && !serviceNamePattern.MatchString(cfg.Docker.Service) {
		return &ValidationError{
			Field:   "docker.service",
			Message: "must match pattern ^[a-zA-Z0-9._-]+$ (letters, digits, dots, underscores, hyphens)",
		}
	}
	return nil
}

// ValidateBase checks that a base command splits into at least one token.
// Whitespace-only bases compile to nothing and are rejected here rather
// than at run time.
func ValidateBase(field, base string) error {
	if len(strings.Fields(base)) == 0 {
		return &ValidationError{
			Field:   field,
			Message: "must contain at least one command token",
		}
	}
	return nil
}
