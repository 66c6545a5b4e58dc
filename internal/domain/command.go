package domain

import (
	"context"
	"fmt"
	"strings"
)

// CommandResult is what an executor captured from one external command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandError reports an external command that did not exit cleanly, with
// the captured stderr attached for the logs.
type CommandError struct {
	Args   []string
	Result CommandResult
	Err    error
}

func (e *CommandError) Error() string {
	stderr := strings.TrimSpace(e.Result.Stderr)
	if stderr == "" {
		return fmt.Sprintf("command %q failed with exit code %d: %v",
			strings.Join(e.Args, " "), e.Result.ExitCode, e.Err)
	}
	return fmt.Sprintf("command %q failed with exit code %d: %s",
		strings.Join(e.Args, " "), e.Result.ExitCode, stderr)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Executor runs one external command to completion and captures its output.
type Executor interface {
	Run(ctx context.Context, args []string) (CommandResult, error)
}
