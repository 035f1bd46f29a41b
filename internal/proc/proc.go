// Package proc runs external search tools to completion and captures their
// output.
//
// Strategies need the full stdout and stderr plus the exit code before they
// can decide between "matches", "no matches" and "failed", so Run buffers
// everything and only returns once the process has exited. The command is
// bound to the caller's context: cancelling the search kills the child.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrTimeout is returned when the process was killed because the context
// deadline passed.
var ErrTimeout = errors.New("process timed out")

// waitDelay bounds how long Run waits for output pipes to close after the
// process is killed. Grandchildren holding the pipes open would otherwise
// keep Run blocked after cancellation.
const waitDelay = 2 * time.Second

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Available reports whether the named executable can be found on PATH.
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Run executes name with args in dir and waits for it to exit.
//
// A non-zero exit status is not an error: search tools use exit code 1 to
// mean "no matches", so the code is reported in Result for the caller to
// interpret. Errors are returned only when the process could not be started
// or was killed by ctx.
func Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // name and args are built by the strategies
	cmd.Dir = dir
	cmd.Stdin = nil
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return result, fmt.Errorf("%s: %w", name, ErrTimeout)
		}
		return result, fmt.Errorf("%s: %w", name, ctxErr)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		result.ExitCode = -1
		return result, fmt.Errorf("run %s: %w", name, err)
	}
	return result, nil
}
