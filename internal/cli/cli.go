// Package cli provides command-line interface functionality for testbridge.
package cli

import (
	"fmt"
	"strings"

	"github.com/pl/testbridge/internal/errors"
	"github.com/pl/testbridge/internal/output"
)

// Version is set at build time.
var Version = "dev"

// wantsHelp returns true if args contain -h or --help before any -- separator.
// Arguments after -- are passed through to test frameworks, so help flags
// there are ignored.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		fmt.Printf("testbridge %s\n", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	// Re-extract command after flag parsing
	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	// Project initialization (writes a starter config)
	case "init":
		return cmdInit(cmdArgs)

	// Pipeline commands
	case "compile":
		return cmdCompile(cmdArgs, opts)
	case "run":
		return cmdRun(cmdArgs, opts)

	// Tool catalog for transport integrators
	case "tools":
		return cmdTools(cmdArgs)

	// Output parsing
	case "report":
		return cmdReport(cmdArgs)

	// Utility commands
	case "config":
		return cmdConfig(cmdArgs, opts)
	case "completion":
		return cmdCompletion(cmdArgs)

	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Hint("run 'testbridge help' to list commands")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Docker     bool
	NoDocker   bool
	Quiet      bool
	Verbose    bool
	ConfigPath string
	RSpecBase  string
	CargoBase  string
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of stdlib flag package because:
// - Flags can appear anywhere in the argument list, not just before the command
// - Pass-through arguments after -- must be preserved verbatim
// - Custom error messages with usage hints are needed
// - Flag package doesn't support these use cases cleanly
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	takeValue := func(i int, flag string) (string, int, error) {
		if i+1 >= len(args) {
			return "", 0, fmt.Errorf("%s requires a value", flag)
		}
		return args[i+1], i + 2, nil
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "--docker":
			opts.Docker = true
			i++
		case arg == "--no-docker":
			opts.NoDocker = true
			i++
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--config":
			value, next, err := takeValue(i, "--config")
			if err != nil {
				return nil, nil, err
			}
			opts.ConfigPath = value
			i = next
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
			i++
		case arg == "--rspec-base":
			value, next, err := takeValue(i, "--rspec-base")
			if err != nil {
				return nil, nil, err
			}
			opts.RSpecBase = value
			i = next
		case strings.HasPrefix(arg, "--rspec-base="):
			opts.RSpecBase = strings.TrimPrefix(arg, "--rspec-base=")
			i++
		case arg == "--cargo-base":
			value, next, err := takeValue(i, "--cargo-base")
			if err != nil {
				return nil, nil, err
			}
			opts.CargoBase = value
			i = next
		case strings.HasPrefix(arg, "--cargo-base="):
			opts.CargoBase = strings.TrimPrefix(arg, "--cargo-base=")
			i++
		case arg == "--":
			// Everything after -- is passed through
			remaining = append(remaining, args[i:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	// Apply verbosity settings to the shared output writer so all commands
	// behave consistently.
	applyVerbosityToOutput(opts)

	return opts, remaining, nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && opts.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}

	// Note: When both flags are absent, GetDockerMode() checks the
	// TESTBRIDGE_DOCKER env var and then the config file.
	if opts.Docker && opts.NoDocker {
		return fmt.Errorf("--docker and --no-docker are mutually exclusive")
	}

	return nil
}

func printUsage() {
	w := output.New()

	w.HelpTitle("testbridge - expose test runs to tool-calling clients")

	w.HelpSection("Usage:")
	w.HelpUsage("testbridge <command> [args]")

	w.HelpSection("Pipeline Commands:")
	w.HelpCommand("compile <framework> <target>", "Compile a request into its command vector (dry run)", 28)
	w.HelpCommand("run <framework> <target>", "Compile and execute; print the run report", 28)

	w.HelpSection("Integration Commands:")
	w.HelpCommand("tools [--json]", "List the callable tools and their argument schemas", 16)
	w.HelpCommand("report <framework> [file]", "Summarize saved test output (file or stdin)", 25)

	w.HelpSection("Utility Commands:")
	w.HelpCommand("init", "Write a starter testbridge.json", 16)
	w.HelpCommand("config validate", "Validate the project configuration", 16)
	w.HelpCommand("config show", "Show the effective configuration", 16)
	w.HelpCommand("completion", "Generate shell completion (bash, zsh, fish)", 16)
	w.HelpCommand("version", "Show version information", 16)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("testbridge run rspec spec/models/user_spec.rb:42", "Run one example by line")
	w.HelpExample("testbridge compile rspec spec/a_spec.rb:5:12", "Show the argv without running")
	w.HelpExample("testbridge run cargo parser -- --release", "Run cargo tests matching 'parser'")
	w.HelpExample("testbridge tools --json", "Dump the tool catalog as JSON")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", helpFlagWidthGlobal)
	w.HelpFlag("-v, --verbose", "Maximum detail", helpFlagWidthGlobal)
	w.HelpFlag("--docker", "Run inside the configured compose service", helpFlagWidthGlobal)
	w.HelpFlag("--no-docker", "Disable Docker mode", helpFlagWidthGlobal)
	w.HelpFlag("--config <path>", "Use an explicit config file", helpFlagWidthGlobal)
	w.HelpFlag("--rspec-base <cmd>", "Override the RSpec base command", helpFlagWidthGlobal)
	w.HelpFlag("--cargo-base <cmd>", "Override the cargo base command", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthGlobal)
	w.HelpFlag("--version", "Show version", helpFlagWidthGlobal)

	w.HelpSection("Environment:")
	w.HelpEnvVar("TESTBRIDGE_DOCKER=1", "Auto-enable Docker mode", 20)
}
