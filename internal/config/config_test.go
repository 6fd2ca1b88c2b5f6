package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "testbridge.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidMinimal(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `{"frameworks": {"rspec": {"base": "bin/rspec"}}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Frameworks == nil || cfg.Frameworks.RSpec == nil {
		t.Fatal("Frameworks.RSpec should not be nil")
	}
	if cfg.Frameworks.RSpec.Base != "bin/rspec" {
		t.Errorf("Frameworks.RSpec.Base = %q, want %q", cfg.Frameworks.RSpec.Base, "bin/rspec")
	}
}

func TestLoad_ValidFull(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `{
		"frameworks": {
			"rspec": {"base": "bundle exec rspec --format progress"},
			"cargo": {"base": "cargo test --workspace"}
		},
		"docker": {
			"enabled": true,
			"compose_file": "docker-compose.test.yml",
			"service": "app"
		}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Frameworks.Cargo.Base != "cargo test --workspace" {
		t.Errorf("Frameworks.Cargo.Base = %q, want %q", cfg.Frameworks.Cargo.Base, "cargo test --workspace")
	}
	if cfg.Docker == nil {
		t.Fatal("Docker config should not be nil")
	}
	if !cfg.Docker.Enabled {
		t.Error("Docker.Enabled = false, want true")
	}
	if cfg.Docker.ComposeFile != "docker-compose.test.yml" {
		t.Errorf("Docker.ComposeFile = %q, want %q", cfg.Docker.ComposeFile, "docker-compose.test.yml")
	}
	if cfg.Docker.Service != "app" {
		t.Errorf("Docker.Service = %q, want %q", cfg.Docker.Service, "app")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()
	_, err := Load("/nonexistent/path/testbridge.json")
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	// Verify error message contains useful information.
	// At least one of these should be present in the error.
	errMsg := err.Error()
	containsPath := strings.Contains(errMsg, "nonexistent")
	containsOSError := strings.Contains(errMsg, "no such file")
	if !containsPath && !containsOSError {
		t.Errorf("error = %q, want to contain file path or 'no such file'", errMsg)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "{invalid}")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for invalid JSON")
	}
}

func TestLoadWithDefaults_AppliesDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `{}`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}

	if cfg.Frameworks.RSpec.Base != DefaultRSpecBase {
		t.Errorf("Frameworks.RSpec.Base = %q, want %q", cfg.Frameworks.RSpec.Base, DefaultRSpecBase)
	}
	if cfg.Frameworks.Cargo.Base != DefaultCargoBase {
		t.Errorf("Frameworks.Cargo.Base = %q, want %q", cfg.Frameworks.Cargo.Base, DefaultCargoBase)
	}
	if cfg.Docker == nil {
		t.Fatal("Docker config should not be nil after defaults")
	}
	if cfg.Docker.Enabled {
		t.Error("Docker.Enabled = true, want false by default")
	}
	if cfg.Docker.ComposeFile != DefaultDockerComposeFile {
		t.Errorf("Docker.ComposeFile = %q, want %q", cfg.Docker.ComposeFile, DefaultDockerComposeFile)
	}
	if cfg.Docker.Service != DefaultDockerService {
		t.Errorf("Docker.Service = %q, want %q", cfg.Docker.Service, DefaultDockerService)
	}
}

func TestLoadWithDefaults_PreservesCustomValues(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `{
		"frameworks": {"rspec": {"base": "bin/rspec"}},
		"docker": {"service": "worker"}
	}`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}

	if cfg.Frameworks.RSpec.Base != "bin/rspec" {
		t.Errorf("Frameworks.RSpec.Base = %q, want %q", cfg.Frameworks.RSpec.Base, "bin/rspec")
	}
	// Unset siblings still get defaults.
	if cfg.Frameworks.Cargo.Base != DefaultCargoBase {
		t.Errorf("Frameworks.Cargo.Base = %q, want %q", cfg.Frameworks.Cargo.Base, DefaultCargoBase)
	}
	if cfg.Docker.Service != "worker" {
		t.Errorf("Docker.Service = %q, want %q", cfg.Docker.Service, "worker")
	}
	if cfg.Docker.ComposeFile != DefaultDockerComposeFile {
		t.Errorf("Docker.ComposeFile = %q, want %q", cfg.Docker.ComposeFile, DefaultDockerComposeFile)
	}
}

func TestLoadWithDefaults_EmptyBaseGetsDefault(t *testing.T) {
	// An explicitly empty base is treated as unset, not as an error.
	// Whitespace-only bases are rejected by Validate instead.
	t.Parallel()
	path := writeConfig(t, `{"frameworks": {"rspec": {"base": ""}}}`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}
	if cfg.Frameworks.RSpec.Base != DefaultRSpecBase {
		t.Errorf("Frameworks.RSpec.Base = %q, want %q", cfg.Frameworks.RSpec.Base, DefaultRSpecBase)
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	if cfg.Frameworks.RSpec.Base != DefaultRSpecBase {
		t.Errorf("Frameworks.RSpec.Base = %q, want %q", cfg.Frameworks.RSpec.Base, DefaultRSpecBase)
	}
	if cfg.Frameworks.Cargo.Base != DefaultCargoBase {
		t.Errorf("Frameworks.Cargo.Base = %q, want %q", cfg.Frameworks.Cargo.Base, DefaultCargoBase)
	}
	if cfg.Docker.Enabled {
		t.Error("Docker.Enabled = true, want false by default")
	}
	if cfg.Docker.ComposeFile != DefaultDockerComposeFile {
		t.Errorf("Docker.ComposeFile = %q, want %q", cfg.Docker.ComposeFile, DefaultDockerComposeFile)
	}
	if cfg.Docker.Service != DefaultDockerService {
		t.Errorf("Docker.Service = %q, want %q", cfg.Docker.Service, DefaultDockerService)
	}
}

// =============================================================================
// LoadAndValidate Tests
// =============================================================================

func TestLoadAndValidate_Success(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `{
		"frameworks": {
			"rspec": {"base": "bundle exec rspec"},
			"cargo": {"base": "cargo test"}
		}
	}`)

	cfg, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadAndValidate() returned nil config")
	}
	if len(warnings) != 0 {
		t.Errorf("LoadAndValidate() warnings = %v, want empty", warnings)
	}
}

func TestLoadAndValidate_UnknownFieldsOnly_NoError(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `{
		"frameworks": {"rspec": {"base": "bin/rspec"}},
		"unknown_field": "value",
		"another_unknown": 123
	}`)

	cfg, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v, want nil (unknown fields should not cause error)", err)
	}
	if cfg == nil {
		t.Fatal("LoadAndValidate() returned nil config")
	}
	if len(warnings) != 2 {
		t.Errorf("LoadAndValidate() warnings = %d, want 2", len(warnings))
	}
	// Verify warnings mention the unknown fields
	warningText := strings.Join(warnings, " ")
	if !strings.Contains(warningText, "unknown_field") {
		t.Errorf("warnings should mention 'unknown_field', got %v", warnings)
	}
}

func TestLoadAndValidate_WhitespaceBase_ReturnsError(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `{"frameworks": {"rspec": {"base": "   "}}}`)

	cfg, _, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() error = nil, want error for whitespace-only base")
	}
	if cfg != nil {
		t.Error("LoadAndValidate() should return nil config on error")
	}
	if !strings.Contains(err.Error(), "frameworks.rspec.base") {
		t.Errorf("error = %q, want to name frameworks.rspec.base", err.Error())
	}
}

func TestLoadAndValidate_BadServiceName_ReturnsError(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `{"docker": {"service": "my service!"}}`)

	_, _, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() error = nil, want error for invalid service name")
	}
	if !strings.Contains(err.Error(), "docker.service") {
		t.Errorf("error = %q, want to name docker.service", err.Error())
	}
}

func TestLoadAndValidate_ValidationError_WithUnknownFields_ReturnsWarnings(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `{
		"frameworks": {"cargo": {"base": " "}},
		"unknown_field": "value"
	}`)

	cfg, warnings, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() error = nil, want error for whitespace-only base")
	}
	if cfg != nil {
		t.Error("LoadAndValidate() should return nil config on error")
	}
	// Unknown field warnings should still be returned even when validation fails.
	if len(warnings) != 1 {
		t.Errorf("LoadAndValidate() warnings = %d, want 1", len(warnings))
	}
}

func TestLoadAndValidate_FileNotFound_ReturnsError(t *testing.T) {
	t.Parallel()
	_, _, err := LoadAndValidate("/nonexistent/path/testbridge.json")
	if err == nil {
		t.Fatal("LoadAndValidate() error = nil, want error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error = %q, want to contain 'failed to read'", err.Error())
	}
}

func TestLoadAndValidate_InvalidJSON_ReturnsError(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "{invalid json")

	_, _, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() error = nil, want error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("error = %q, want to contain 'parse'", err.Error())
	}
}
