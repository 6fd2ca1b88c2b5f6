package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pl/testbridge/internal/config"
	"github.com/pl/testbridge/internal/errors"
	"github.com/pl/testbridge/internal/output"
	"github.com/pl/testbridge/internal/project"
	"github.com/pl/testbridge/internal/report"
	"github.com/pl/testbridge/internal/runner"
	"github.com/pl/testbridge/internal/schema"
	"github.com/pl/testbridge/internal/testparser"
	"github.com/pl/testbridge/internal/tooldef"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// parsers is the shared parser registry for run reports and the report
// command.
var parsers = testparser.NewRegistry()

// Help text alignment widths for consistent formatting.
const (
	helpFlagWidthShort  = 10 // Width for short flags like "-h, --help"
	helpFlagWidthGlobal = 18 // Width for global flags like "--rspec-base <cmd>"
)

// applyVerbosityToOutput configures the output writer based on verbosity settings.
func applyVerbosityToOutput(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
}

// loadProject loads the project configuration and handles errors uniformly.
// Returns the project and exit code 0 on success, or nil and the exit code
// on failure. Outside a project the CLI still works: every setting has a
// default, so a missing config file selects the default project rather
// than failing.
func loadProject(opts *GlobalOptions) (*project.Project, int) {
	if opts.ConfigPath != "" {
		cfg, warnings, err := config.LoadAndValidate(opts.ConfigPath)
		if err != nil {
			for _, w := range warnings {
				out.WarningSimple("%s", w)
			}
			out.ErrorPrefix("%v", err)
			return nil, errors.ExitConfigError
		}
		return &project.Project{
			Root:     filepath.Dir(opts.ConfigPath),
			Config:   cfg,
			Warnings: warnings,
		}, 0
	}

	proj, err := project.LoadProject()
	if err != nil {
		if stderrors.Is(err, project.ErrNoProjectRoot) {
			cwd, wdErr := os.Getwd()
			if wdErr != nil {
				out.ErrorPrefix("%v", wdErr)
				return nil, errors.ExitRuntimeError
			}
			return project.DefaultProject(cwd), 0
		}
		out.ErrorPrefix("%v", err)
		return nil, errors.ExitConfigError
	}
	return proj, 0
}

// printWarnings prints configuration warnings collected during load.
func printWarnings(proj *project.Project) {
	for _, w := range proj.Warnings {
		out.WarningSimple("%s", w)
	}
}

// resolveBases computes the effective base commands: config (with defaults
// applied), overridden per framework by the --rspec-base/--cargo-base flags.
func resolveBases(proj *project.Project, opts *GlobalOptions) (runner.BaseCommands, int) {
	bases := runner.BaseCommands{
		RSpec: proj.Config.Frameworks.RSpec.Base,
		Cargo: proj.Config.Frameworks.Cargo.Base,
	}

	if opts.RSpecBase != "" {
		if err := config.ValidateBase("--rspec-base", opts.RSpecBase); err != nil {
			out.ErrorPrefix("%v", err)
			return runner.BaseCommands{}, errors.ExitConfigError
		}
		bases.RSpec = opts.RSpecBase
	}
	if opts.CargoBase != "" {
		if err := config.ValidateBase("--cargo-base", opts.CargoBase); err != nil {
			out.ErrorPrefix("%v", err)
			return runner.BaseCommands{}, errors.ExitConfigError
		}
		bases.Cargo = opts.CargoBase
	}

	return bases, 0
}

// splitPassthrough separates command arguments from pass-through arguments
// after the -- marker. The marker itself is dropped.
func splitPassthrough(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

// buildRequest turns compile/run arguments into a dispatcher request plus
// a display name for the target. Returns a nil request and an exit code
// when the arguments don't form a request.
func buildRequest(cmdName string, args []string) (runner.Request, string, int) {
	before, after := splitPassthrough(args)

	if len(before) == 0 {
		out.ErrorPrefix("%s: framework required (rspec or cargo)", cmdName)
		out.Errorln("usage: testbridge %s <framework> <target> [-- args]", cmdName)
		return nil, "", errors.ExitConfigError
	}

	frameworkName := before[0]
	targets := before[1:]

	switch frameworkName {
	case "rspec":
		if len(after) > 0 {
			out.ErrorPrefix("%s rspec: pass-through arguments are not supported; line filters go in the location (file:LINE)", cmdName)
			return nil, "", errors.ExitConfigError
		}
		if len(targets) != 1 {
			out.ErrorPrefix("%s rspec: exactly one spec file required", cmdName)
			out.Errorln("usage: testbridge %s rspec <file[:LINE...]>", cmdName)
			return nil, "", errors.ExitConfigError
		}
		return runner.RunSpecFile{RawLocation: targets[0]}, targets[0], 0

	case "cargo":
		if len(targets) > 1 {
			out.ErrorPrefix("%s cargo: at most one test name pattern allowed", cmdName)
			out.Errorln("usage: testbridge %s cargo [pattern] [-- args]", cmdName)
			return nil, "", errors.ExitConfigError
		}
		pattern := ""
		if len(targets) == 1 {
			pattern = targets[0]
		}
		display := pattern
		if display == "" {
			display = "(all tests)"
		}
		return runner.RunCargoTests{Pattern: pattern, ExtraArgs: after}, display, 0

	default:
		out.ErrorPrefix("%s: unknown framework %q (expected rspec or cargo)", cmdName, frameworkName)
		return nil, "", errors.ExitConfigError
	}
}

// frameworkOf names the framework a request targets.
func frameworkOf(req runner.Request) string {
	switch req.(type) {
	case runner.RunSpecFile:
		return "rspec"
	case runner.RunCargoTests:
		return "cargo"
	default:
		return "unknown"
	}
}

// cmdCompile compiles a request and prints the command vector without
// executing it.
func cmdCompile(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printPipelineUsage("compile")
		return 0
	}

	req, _, exitCode := buildRequest("compile", args)
	if req == nil {
		return exitCode
	}

	proj, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}
	printWarnings(proj)

	bases, exitCode := resolveBases(proj, opts)
	if exitCode != 0 {
		return exitCode
	}

	cmd, err := runner.NewDispatcher(bases).Dispatch(req)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	// Docker mode changes the effective command; the dry run shows the
	// vector that would actually be spawned.
	if runner.GetDockerMode(opts.Docker, opts.NoDocker, proj.Config.Docker) {
		cmd = runner.NewDockerRunner(proj.Root, proj.Config.Docker).Wrap(cmd)
	}

	if opts.Verbose {
		out.Println("%s", cmd.Program)
		for _, arg := range cmd.Args {
			out.Println("%s", arg)
		}
	} else {
		out.Println("%s", strings.Join(append([]string{cmd.Program}, cmd.Args...), " "))
	}
	return 0
}

// cmdRun compiles a request, executes it in the project root, and prints
// the run report.
func cmdRun(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printPipelineUsage("run")
		return 0
	}

	req, target, exitCode := buildRequest("run", args)
	if req == nil {
		return exitCode
	}

	proj, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}
	printWarnings(proj)

	bases, exitCode := resolveBases(proj, opts)
	if exitCode != 0 {
		return exitCode
	}

	cmd, err := runner.NewDispatcher(bases).Dispatch(req)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	if runner.GetDockerMode(opts.Docker, opts.NoDocker, proj.Config.Docker) {
		dockerRunner := runner.NewDockerRunner(proj.Root, proj.Config.Docker)
		if err := dockerRunner.Preflight(); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.GetExitCode(err)
		}
		cmd = dockerRunner.Wrap(cmd)
	}

	frameworkName := frameworkOf(req)
	out.RunStart(frameworkName, target)

	res, err := runner.ExecIn(context.Background(), proj.Root, cmd)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	counts := parseRunOutput(frameworkName, res)
	text := report.Report(report.DisplayName(frameworkName), target, res)
	out.Println("%s", report.WithCounts(text, counts))

	if res.ExitCode == 0 {
		if counts != nil && counts.Parsed {
			out.FinalSuccess("All %d tests passed.", counts.Total)
		} else {
			out.FinalSuccess("Run completed successfully.")
		}
		return 0
	}

	if counts != nil && counts.Parsed && counts.Failed > 0 {
		out.FinalFailure("%d of %d tests failed.", counts.Failed, counts.Total)
	} else {
		out.FinalFailure("Run failed with exit code %d.", res.ExitCode)
	}
	return errors.ExitRuntimeError
}

// parseRunOutput extracts counts from a finished run. Test frameworks
// normally report on stdout; stderr is the fallback for setups that
// redirect.
func parseRunOutput(frameworkName string, res runner.ExecResult) *testparser.TestCounts {
	parser := parsers.GetParser(frameworkName)
	if parser == nil {
		return nil
	}
	counts := parser.Parse(res.Stdout)
	if !counts.Parsed {
		counts = parser.Parse(res.Stderr)
	}
	return &counts
}

// cmdTools prints the tool catalog for transport integrators.
func cmdTools(args []string) int {
	asJSON := false
	for _, arg := range args {
		switch arg {
		case "--json":
			asJSON = true
		case "-h", "--help":
			printToolsUsage()
			return 0
		default:
			out.ErrorPrefix("tools: unknown option %q", arg)
			return errors.ExitConfigError
		}
	}

	tools, err := tooldef.Catalog()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	if asJSON {
		data, err := json.MarshalIndent(tools, "", "  ")
		if err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitRuntimeError
		}
		// Plain stdout: the JSON form is for machines, not the styled writer.
		fmt.Println(string(data))
		return 0
	}

	out.Println("%s", tooldef.Instructions())
	out.Println("")
	rows := make([][]string, 0, len(tools))
	for _, tool := range tools {
		rows = append(rows, []string{tool.Name, tool.Description})
	}
	out.Table([]string{"Tool", "Description"}, rows)
	return 0
}

// cmdConfig handles configuration utilities.
func cmdConfig(args []string, opts *GlobalOptions) int {
	if len(args) == 0 {
		out.ErrorPrefix("config: subcommand required (validate, show)")
		return errors.ExitConfigError
	}

	switch args[0] {
	case "validate":
		return cmdConfigValidate(opts)
	case "show":
		return cmdConfigShow(opts)
	case "-h", "--help":
		printConfigUsage()
		return 0
	default:
		out.ErrorPrefix("config: unknown subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate(opts *GlobalOptions) int {
	configPath := opts.ConfigPath
	if configPath == "" {
		root, err := project.FindRoot()
		if err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitConfigError
		}
		configPath = filepath.Join(root, project.ConfigFileName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		out.ErrorPrefix("failed to read %s: %v", configPath, err)
		return errors.ExitConfigError
	}

	// Schema first: it catches structural mistakes (wrong types, unknown
	// frameworks, empty bases) with precise pointers.
	if err := schema.ValidateConfig(data); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	cfg, warnings, err := config.LoadAndValidate(configPath)
	for _, w := range warnings {
		out.WarningSimple("%s", w)
	}
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	out.ValidationSuccess("Configuration is valid.")
	out.SummaryItem("Config", configPath)
	out.SummaryItem("RSpec base", cfg.Frameworks.RSpec.Base)
	out.SummaryItem("Cargo base", cfg.Frameworks.Cargo.Base)
	out.SummaryItem("Docker", dockerSummary(cfg.Docker))
	if len(warnings) > 0 {
		out.SummaryItem("Warnings", fmt.Sprintf("%d", len(warnings)))
	}
	return 0
}

func cmdConfigShow(opts *GlobalOptions) int {
	proj, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}
	printWarnings(proj)

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = proj.ConfigPath()
		if _, err := os.Stat(configPath); err != nil {
			configPath = "(defaults)"
		}
	}

	out.SummaryHeader("Configuration")
	out.SummaryItem("Root", proj.Root)
	out.SummaryItem("Config", configPath)
	out.SummaryItem("RSpec base", proj.Config.Frameworks.RSpec.Base)
	out.SummaryItem("Cargo base", proj.Config.Frameworks.Cargo.Base)
	out.SummaryItem("Docker", dockerSummary(proj.Config.Docker))

	detected := project.DetectFrameworks(proj.Root)
	if len(detected) == 0 {
		out.SummaryItem("Detected", "(none)")
	} else {
		out.SummaryItem("Detected", strings.Join(detected, ", "))
	}
	return 0
}

// dockerSummary renders the docker section in one line.
func dockerSummary(cfg *config.DockerConfig) string {
	if cfg == nil || !cfg.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("enabled (%s, service %s)", cfg.ComposeFile, cfg.Service)
}

// printPipelineUsage prints the help text for the compile and run commands.
func printPipelineUsage(cmd string) {
	w := output.New()

	if cmd == "run" {
		w.HelpTitle("testbridge run - compile and execute a test request")
	} else {
		w.HelpTitle("testbridge compile - show the command a request compiles to")
	}

	w.HelpSection("Usage:")
	w.HelpUsage(fmt.Sprintf("testbridge %s rspec <file[:LINE...]>", cmd))
	w.HelpUsage(fmt.Sprintf("testbridge %s cargo [pattern] [-- args]", cmd))

	w.HelpSection("Description:")
	if cmd == "run" {
		w.Println("  Validates the request, compiles the command vector, executes it in")
		w.Println("  the project root, and prints the run report with parsed counts.")
		w.Println("  Exits 0 when the test process exits 0, 1 otherwise.")
	} else {
		w.Println("  Validates the request and prints the exact command vector that")
		w.Println("  'run' would execute, without spawning anything.")
	}

	w.HelpSection("Arguments:")
	w.HelpFlag("<framework>", "rspec or cargo", helpFlagWidthGlobal)
	w.HelpFlag("<target>", "Spec file location, or cargo test name pattern", helpFlagWidthGlobal)

	w.HelpSection("Global Options:")
	w.HelpFlag("--docker", "Run inside the configured compose service", helpFlagWidthGlobal)
	w.HelpFlag("--no-docker", "Disable Docker mode", helpFlagWidthGlobal)
	w.HelpFlag("--config <path>", "Use an explicit config file", helpFlagWidthGlobal)
	w.HelpFlag("--rspec-base <cmd>", "Override the RSpec base command", helpFlagWidthGlobal)
	w.HelpFlag("--cargo-base <cmd>", "Override the cargo base command", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthGlobal)

	w.HelpSection("Examples:")
	titleCase := cases.Title(language.English)
	w.HelpExample(fmt.Sprintf("testbridge %s rspec spec/models/user_spec.rb", cmd),
		fmt.Sprintf("%s a whole spec file", titleCase.String(cmd)))
	w.HelpExample(fmt.Sprintf("testbridge %s rspec spec/a_spec.rb:5:12", cmd),
		fmt.Sprintf("%s two examples by line", titleCase.String(cmd)))
	w.HelpExample(fmt.Sprintf("testbridge %s cargo parser::", cmd),
		fmt.Sprintf("%s tests under parser::", titleCase.String(cmd)))
	w.Println("")
}

// printToolsUsage prints the help text for the tools command.
func printToolsUsage() {
	w := output.New()

	w.HelpTitle("testbridge tools - list callable tools")

	w.HelpSection("Usage:")
	w.HelpUsage("testbridge tools [--json]")

	w.HelpSection("Description:")
	w.Println("  Lists the tools the bridge exposes to tool-calling clients,")
	w.Println("  with their argument schemas. The JSON form is suitable for")
	w.Println("  embedding in a transport's tool listing.")

	w.HelpSection("Options:")
	w.HelpFlag("--json", "Print the catalog as JSON", helpFlagWidthShort)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthShort)

	w.HelpSection("Examples:")
	w.HelpExample("testbridge tools", "List tools as a table")
	w.HelpExample("testbridge tools --json", "Dump the catalog as JSON")
	w.Println("")
}

// printConfigUsage prints the help text for the config command.
func printConfigUsage() {
	w := output.New()

	w.HelpTitle("testbridge config - configuration utilities")

	w.HelpSection("Usage:")
	w.HelpUsage("testbridge config <subcommand>")

	w.HelpSection("Subcommands:")
	w.HelpSubCommand("validate", "Validate the project configuration (requires a config file)", helpFlagWidthShort)
	w.HelpSubCommand("show", "Show the effective configuration, defaults included", helpFlagWidthShort)

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthShort)

	w.HelpSection("Examples:")
	w.HelpExample("testbridge config validate", "Validate testbridge.json")
	w.HelpExample("testbridge config show", "Show the effective configuration")
	w.Println("")
}
