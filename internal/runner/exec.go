package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/pl/testbridge/internal/errors"
	"github.com/pl/testbridge/internal/framework"
)

// ExecResult contains the captured outcome of a command execution.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Exec runs a compiled command to completion in the current working
// directory. See ExecIn.
func Exec(ctx context.Context, cmd framework.Command) (ExecResult, error) {
	return ExecIn(ctx, "", cmd)
}

// ExecIn runs a compiled command to completion with an explicit working
// directory, capturing stdout and stderr separately. A non-zero exit
// from the test process is a result, not an error; ExecIn fails only
// when the process cannot be started at all.
func ExecIn(ctx context.Context, dir string, cmd framework.Command) (ExecResult, error) {
	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	c.Dir = dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, errors.Wrap(err, fmt.Sprintf("failed to start %q", cmd.Program))
	}
	return res, nil
}
