package project

import (
	"fmt"
	"path/filepath"

	"github.com/pl/testbridge/internal/config"
)

// Project represents a loaded testbridge project.
type Project struct {
	Root     string
	Config   *config.Config
	Warnings []string
}

// LoadProject finds and loads a project from the current directory.
func LoadProject() (*Project, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root)
}

// LoadProjectFrom loads a project from a specified root directory.
func LoadProjectFrom(root string) (*Project, error) {
	configPath := filepath.Join(root, ConfigFileName)

	cfg, warnings, err := config.LoadAndValidate(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &Project{
		Root:     root,
		Config:   cfg,
		Warnings: warnings,
	}, nil
}

// DefaultProject returns a project rooted at dir running entirely on
// default configuration. It is used when no testbridge.json exists, so
// commands still work in unconfigured repositories.
func DefaultProject(dir string) *Project {
	return &Project{Root: dir, Config: config.Default()}
}

// ConfigPath returns the full path to the project configuration file.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Root, ConfigFileName)
}
