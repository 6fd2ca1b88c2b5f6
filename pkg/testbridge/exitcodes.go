// Package testbridge provides public constants and utilities for external tools
// integrating with testbridge.
package testbridge

// Exit codes returned by the testbridge CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (rejected request, failed test run, etc.).
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (invalid config, empty base command, etc.).
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (Docker unavailable, missing dependency, etc.).
	ExitEnvError = 3
)
