package project

import (
	"os"
	"path/filepath"
	"strings"
)

// FrameworkMarker defines a file pattern and the test framework it indicates.
type FrameworkMarker struct {
	Pattern   string
	Framework string
}

// frameworkMarkers defines the auto-detection order for test frameworks.
// The first matching marker claims its framework.
var frameworkMarkers = []FrameworkMarker{
	{"Cargo.toml", "cargo"},
	{".rspec", "rspec"},
	{"spec/spec_helper.rb", "rspec"},
	{"spec/rails_helper.rb", "rspec"},
	// Glob pattern for projects without a helper file
	{"spec/*_spec.rb", "rspec"},
	{"cypress.config.js", "cypress"},
	{"cypress.config.ts", "cypress"},
	{"cypress.json", "cypress"},
}

// DetectFrameworks reports which test frameworks a project root carries
// markers for, in marker priority order.
func DetectFrameworks(root string) []string {
	seen := make(map[string]bool)
	var frameworks []string

	for _, marker := range frameworkMarkers {
		if seen[marker.Framework] {
			continue
		}
		if markerExists(root, marker.Pattern) {
			seen[marker.Framework] = true
			frameworks = append(frameworks, marker.Framework)
		}
	}

	return frameworks
}

func markerExists(root, pattern string) bool {
	if strings.Contains(pattern, "*") {
		// Glob pattern
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		return err == nil && len(matches) > 0
	}
	// Exact file match
	_, err := os.Stat(filepath.Join(root, pattern))
	return err == nil
}
