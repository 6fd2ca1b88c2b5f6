// Package framework turns validated test targets into executable command
// vectors. Each supported framework (RSpec, Cargo) contributes its own
// validation rules and argument layout on top of a shared base command.
package framework

import (
	"strings"

	"github.com/pl/testbridge/internal/errors"
)

// Command is a fully resolved command vector, ready to hand to a process
// launcher. Immutable once produced.
type Command struct {
	Program string
	Args    []string
}

// Argv returns the command as a single argument vector, program first.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	argv = append(argv, c.Args...)
	return argv
}

// String renders the command for display. Arguments are joined with
// spaces and not shell-quoted; the result is informational only.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// SplitBase splits a configured base command (e.g. "bundle exec rspec")
// on whitespace into a program plus leading arguments. This is the only
// place whitespace splitting occurs; base commands with arguments that
// need embedded spaces or quoting are not supported. A base command with
// no tokens fails with EmptyBaseCommand.
func SplitBase(base string) (Command, error) {
	fields := strings.Fields(base)
	if len(fields) == 0 {
		return Command{}, errors.EmptyBaseCommand(base)
	}
	return Command{Program: fields[0], Args: fields[1:]}, nil
}
