package container

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/irwanda/custodia/internal/domain"
)

// DockerExecutor runs argument vectors against the local docker CLI. Every
// command gets its own deadline so a hung container call cannot stall a
// backup run indefinitely.
type DockerExecutor struct {
	timeout time.Duration
}

func NewDockerExecutor(timeout time.Duration) *DockerExecutor {
	return &DockerExecutor{timeout: timeout}
}

func (e *DockerExecutor) Run(ctx context.Context, args []string) (domain.CommandResult, error) {
	if len(args) == 0 {
		return domain.CommandResult{}, errors.New("empty command")
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := domain.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	} else {
		result.ExitCode = -1
	}

	// A killed process reports "signal: killed"; surface the deadline instead.
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}

	return result, &domain.CommandError{Args: args, Result: result, Err: err}
}
