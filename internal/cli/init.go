package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/pl/testbridge/internal/config"
	"github.com/pl/testbridge/internal/errors"
	"github.com/pl/testbridge/internal/output"
	"github.com/pl/testbridge/internal/project"
)

// cmdInit scaffolds a testbridge.json in the current directory.
func cmdInit(args []string) int {
	if wantsHelp(args) {
		printInitUsage()
		return 0
	}
	if len(args) > 0 {
		out.ErrorPrefix("init: unexpected argument %q", args[0])
		return errors.ExitConfigError
	}

	cwd, err := os.Getwd()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	configPath := filepath.Join(cwd, project.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		out.Info("Project already initialized (%s exists).", project.ConfigFileName)
		return 0
	}

	detected := project.DetectFrameworks(cwd)

	data, err := json.MarshalIndent(scaffoldConfig(detected), "", "  ")
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}
	data = append(data, '\n')

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		out.ErrorPrefix("failed to write %s: %v", project.ConfigFileName, err)
		return errors.ExitRuntimeError
	}

	out.Success("Initialized testbridge project.")
	out.Println("")
	out.Println("Created:")
	out.List([]string{project.ConfigFileName})
	if len(detected) > 0 {
		out.Println("")
		out.Println("Detected frameworks:")
		out.List(detected)
	}
	printNextSteps(detected)
	return 0
}

// scaffoldConfig builds the initial configuration. Detected frameworks get
// their default base spelled out so the file is self-explanatory; with
// nothing detected, both frameworks are scaffolded as a starting point.
func scaffoldConfig(detected []string) *config.Config {
	cfg := &config.Config{Frameworks: &config.FrameworksConfig{}}

	for _, name := range detected {
		switch name {
		case "rspec":
			cfg.Frameworks.RSpec = &config.FrameworkConfig{Base: config.DefaultRSpecBase}
		case "cargo":
			cfg.Frameworks.Cargo = &config.FrameworkConfig{Base: config.DefaultCargoBase}
		}
	}

	// Nothing recognized: scaffold both frameworks as a starting point.
	if cfg.Frameworks.RSpec == nil && cfg.Frameworks.Cargo == nil {
		cfg.Frameworks.RSpec = &config.FrameworkConfig{Base: config.DefaultRSpecBase}
		cfg.Frameworks.Cargo = &config.FrameworkConfig{Base: config.DefaultCargoBase}
	}

	return cfg
}

// printNextSteps shows what to do after init.
func printNextSteps(detected []string) {
	out.Println("")
	out.Println("Next steps:")
	out.Println("  1. Review %s and adjust the base commands", project.ConfigFileName)
	out.Println("  2. Run 'testbridge config validate'")
	if slices.Contains(detected, "cargo") && !slices.Contains(detected, "rspec") {
		out.Println("  3. Try 'testbridge run cargo'")
	} else {
		out.Println("  3. Try 'testbridge run rspec spec/<some>_spec.rb'")
	}
}

// printInitUsage prints the help text for the init command.
func printInitUsage() {
	w := output.New()

	w.HelpTitle("testbridge init - create a testbridge.json")

	w.HelpSection("Usage:")
	w.HelpUsage("testbridge init")

	w.HelpSection("Description:")
	w.Println("  Creates a testbridge.json in the current directory, prefilled for")
	w.Println("  the frameworks detected in the project. Does nothing when the")
	w.Println("  file already exists.")

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthShort)

	w.HelpSection("Examples:")
	w.HelpExample("testbridge init", "Scaffold a config in the current directory")
	w.Println("")
}
