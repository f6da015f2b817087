// Package spawn runs external processes, like package installs, to completion.
package spawn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

var (
	ErrNotFound = errors.New("command not found")
)

// Runner runs a command with arguments to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// RunnerFunc allows a function to be used as a [Runner].
type RunnerFunc func(ctx context.Context, name string, args ...string) error

func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) error {
	return f(ctx, name, args...)
}

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
	err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command '%s' exited with status %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.err
}

// ExecRunner runs commands on the local host.
// Nil streams are inherited from the current process.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Inherit returns an [ExecRunner] that shares standard I/O with the current process.
func Inherit() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}
	command := strings.TrimSpace(name + " " + strings.Join(args, " "))
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: command, Code: exitErr.ExitCode(), err: err}
	}
	return fmt.Errorf("failed to run '%s': %w", command, err)
}
