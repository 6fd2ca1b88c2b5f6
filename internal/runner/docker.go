package runner

import (
	"os"
	"os/exec"
	"strings"

	"github.com/pl/testbridge/internal/config"
	"github.com/pl/testbridge/internal/errors"
	"github.com/pl/testbridge/internal/framework"
)

// DockerEnvVar toggles docker mode when no explicit flag is given.
const DockerEnvVar = "TESTBRIDGE_DOCKER"

// DockerRunner rewrites compiled commands so they execute inside a
// docker compose service instead of on the host.
type DockerRunner struct {
	composeFile string
	service     string
	projectRoot string
}

// NewDockerRunner creates a DockerRunner for the project root, taking
// the compose file and service names from config (with defaults).
func NewDockerRunner(projectRoot string, cfg *config.DockerConfig) *DockerRunner {
	return &DockerRunner{
		composeFile: composeFileName(cfg),
		service:     serviceName(cfg),
		projectRoot: projectRoot,
	}
}

// ProjectRoot returns the directory compose commands must run from, so
// a relative compose file path resolves correctly.
func (r *DockerRunner) ProjectRoot() string {
	return r.projectRoot
}

// Service returns the compose service commands are wrapped into.
func (r *DockerRunner) Service() string {
	return r.service
}

// Wrap rewrites a compiled command into
// `docker compose -f FILE exec -T SERVICE PROGRAM ARGS...`. The -T flag
// disables TTY allocation; captured output needs plain pipes.
func (r *DockerRunner) Wrap(cmd framework.Command) framework.Command {
	args := []string{"compose", "-f", r.composeFile, "exec", "-T", r.service}
	args = append(args, cmd.Program)
	args = append(args, cmd.Args...)
	return framework.Command{Program: "docker", Args: args}
}

// Preflight verifies the docker environment before a wrapped command
// runs: the daemon answers, the compose file parses, and the configured
// service exists in it.
func (r *DockerRunner) Preflight() error {
	if err := CheckDockerAvailable(); err != nil {
		return err
	}
	compose, err := ParseComposeFile(r.projectRoot, r.composeFile)
	if err != nil {
		return err
	}
	if _, ok := compose.Services[r.service]; !ok {
		return errors.Environmentf("service %q not found in %s (available: %s)",
			r.service, r.composeFile, strings.Join(serviceNames(compose), ", "))
	}
	return nil
}

// IsDockerAvailable checks if Docker is available on the system.
func IsDockerAvailable() bool {
	cmd := exec.Command("docker", "info")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

// CheckDockerAvailable returns an environment error (exit code 3) if
// Docker is not available.
func CheckDockerAvailable() error {
	if !IsDockerAvailable() {
		return errors.Environment("docker is not available or not running")
	}
	return nil
}

// GetDockerMode determines if Docker mode should be used.
// Precedence: explicit flag > TESTBRIDGE_DOCKER env var > config > default (false)
func GetDockerMode(explicitDocker, explicitNoDocker bool, cfg *config.DockerConfig) bool {
	// Explicit flags take highest precedence
	if explicitNoDocker {
		return false
	}
	if explicitDocker {
		return true
	}

	// Check environment variable
	if env := os.Getenv(DockerEnvVar); env != "" {
		env = strings.ToLower(env)
		return env == "1" || env == "true" || env == "yes"
	}

	// Fall back to config
	if cfg != nil {
		return cfg.Enabled
	}

	// Default to native execution
	return false
}
