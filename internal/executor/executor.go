// Package executor runs external tools (corber, ng, npm, firebase) on behalf
// of pipeline plugins.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external process invocation.
type Command struct {
	// Program is the binary name or path (resolved through PATH).
	Program string

	// Args are passed to the program verbatim.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env is appended to the current environment.
	Env map[string]string

	// Stdout and Stderr receive the process output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line for logging.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}

// Runner executes commands. Plugins depend on this interface so tests can
// record invocations instead of spawning processes.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// OSRunner runs commands with os/exec.
type OSRunner struct{}

// NewOSRunner creates a runner backed by os/exec.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run starts the command and waits for it to exit.
func (r *OSRunner) Run(ctx context.Context, c Command) error {
	path, err := LookPath(c.Program)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if len(c.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range c.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", c.Program, err)
	}

	return nil
}

// LookPath locates a program in PATH.
func LookPath(program string) (string, error) {
	path, err := exec.LookPath(program)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", program, err)
	}
	return path, nil
}

// ExitCode extracts the process exit code from an error returned by Run.
// It returns 0 for a nil error and -1 when the process never exited normally.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
