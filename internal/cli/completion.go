package cli

import (
	"fmt"
	"strings"

	"github.com/pl/testbridge/internal/errors"
	"github.com/pl/testbridge/internal/output"
)

// builtinCommands lists the commands offered by completion scripts.
var builtinCommands = []string{
	"init",
	"compile",
	"run",
	"tools",
	"report",
	"config",
	"completion",
	"version",
	"help",
}

// globalFlags lists the flags offered by completion scripts.
var globalFlags = []string{
	"--docker",
	"--no-docker",
	"--config",
	"--rspec-base",
	"--cargo-base",
	"--quiet",
	"--verbose",
	"--help",
	"--version",
}

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	if wantsHelp(args) {
		printCompletionUsage()
		return 0
	}
	// The generated script can target an alias instead of the binary name.
	shell := ""
	cmdName := "testbridge"
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--alias="):
			cmdName = strings.TrimPrefix(arg, "--alias=")
		case strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("completion: unknown option %q", arg)
			return errors.ExitConfigError
		case shell == "":
			shell = arg
		default:
			out.ErrorPrefix("completion: only one shell may be given")
			return errors.ExitConfigError
		}
	}

	if shell == "" {
		out.ErrorPrefix("completion: shell required")
		out.Errorln("usage: testbridge completion <bash|zsh|fish> [--alias=<name>]")
		return errors.ExitConfigError
	}
	if cmdName == "" {
		out.ErrorPrefix("completion: --alias requires a name")
		return errors.ExitConfigError
	}

	switch shell {
	case "bash":
		fmt.Print(generateBashCompletion(cmdName))
	case "zsh":
		fmt.Print(generateZshCompletion(cmdName))
	case "fish":
		fmt.Print(generateFishCompletion(cmdName))
	default:
		out.ErrorPrefix("completion: unsupported shell %q", shell)
		out.Errorln("supported shells: bash, zsh, fish")
		return errors.ExitConfigError
	}
	return 0
}

// generateBashCompletion produces a bash completion script.
func generateBashCompletion(cmdName string) string {
	commands := strings.Join(builtinCommands, " ")
	flags := strings.Join(globalFlags, " ")

	return fmt.Sprintf(`# bash completion for %[1]s
_%[1]s_completions() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "${prev}" in
        compile|run)
            COMPREPLY=($(compgen -W "rspec cargo" -- "${cur}"))
            return
            ;;
        report)
            COMPREPLY=($(compgen -W "rspec cargo cypress" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "validate show" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "%[3]s" -- "${cur}"))
        return
    fi

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=($(compgen -W "%[2]s" -- "${cur}"))
    fi
}
complete -F _%[1]s_completions %[1]s
`, cmdName, commands, flags)
}

// generateZshCompletion produces a zsh completion script.
func generateZshCompletion(cmdName string) string {
	return fmt.Sprintf(`#compdef %[1]s

_%[1]s() {
    local -a commands
    commands=(
        'init:Create a testbridge.json'
        'compile:Show the command a request compiles to'
        'run:Compile and execute a test request'
        'tools:List callable tools'
        'report:Summarize saved test output'
        'config:Configuration utilities'
        'completion:Generate shell completion scripts'
        'version:Show version information'
        'help:Show help'
    )

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "${words[2]}" in
        compile|run)
            _values 'framework' rspec cargo
            ;;
        report)
            _values 'framework' rspec cargo cypress
            ;;
        config)
            _values 'subcommand' validate show
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
    esac
}

_%[1]s "$@"
`, cmdName)
}

// generateFishCompletion produces a fish completion script.
func generateFishCompletion(cmdName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# fish completion for %s\n", cmdName)
	fmt.Fprintf(&b, "complete -c %s -f\n\n", cmdName)

	commandDescriptions := [][2]string{
		{"init", "Create a testbridge.json"},
		{"compile", "Show the command a request compiles to"},
		{"run", "Compile and execute a test request"},
		{"tools", "List callable tools"},
		{"report", "Summarize saved test output"},
		{"config", "Configuration utilities"},
		{"completion", "Generate shell completion scripts"},
		{"version", "Show version information"},
		{"help", "Show help"},
	}
	for _, cd := range commandDescriptions {
		fmt.Fprintf(&b, "complete -c %s -n __fish_use_subcommand -a %s -d '%s'\n", cmdName, cd[0], cd[1])
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "complete -c %s -n '__fish_seen_subcommand_from compile run' -a 'rspec cargo'\n", cmdName)
	fmt.Fprintf(&b, "complete -c %s -n '__fish_seen_subcommand_from report' -a 'rspec cargo cypress'\n", cmdName)
	fmt.Fprintf(&b, "complete -c %s -n '__fish_seen_subcommand_from config' -a 'validate show'\n", cmdName)
	fmt.Fprintf(&b, "complete -c %s -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n", cmdName)

	b.WriteString("\n")
	for _, flag := range globalFlags {
		fmt.Fprintf(&b, "complete -c %s -l %s\n", cmdName, strings.TrimPrefix(flag, "--"))
	}

	return b.String()
}

// printCompletionUsage prints the help text for the completion command.
func printCompletionUsage() {
	w := output.New()

	w.HelpTitle("testbridge completion - generate shell completion scripts")

	w.HelpSection("Usage:")
	w.HelpUsage("testbridge completion <bash|zsh|fish> [--alias=<name>]")

	w.HelpSection("Options:")
	w.HelpFlag("--alias=<name>", "Generate completions for an alias of the binary", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthGlobal)

	w.HelpSection("Examples:")
	w.HelpExample("source <(testbridge completion bash)", "Load completions in the current session")
	w.HelpExample("testbridge completion fish > ~/.config/fish/completions/testbridge.fish", "Install fish completions")
	w.HelpExample("testbridge completion bash --alias=tb", "Generate completions for an alias")
	w.Println("")
}
