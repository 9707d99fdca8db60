// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
)

type (
	// Command describes a single external-process invocation.
	Command struct {
		// Name is the executable to run, resolved via PATH.
		Name string
		// Args are the arguments passed to the executable.
		Args []string
		// Dir is the working directory; empty inherits the caller's.
		Dir string
	}

	// Result is the structured outcome of a finished process.
	Result struct {
		// ExitCode is the process exit code; -1 when the process never started.
		ExitCode int
		// Output is the captured stdout.
		Output string
		// ErrOutput is the captured stderr.
		ErrOutput string
		// Error is set only for infrastructure failures (executable not
		// found, context canceled), never for plain non-zero exits.
		Error error
	}

	// Runner runs external commands synchronously.
	Runner interface {
		Run(ctx context.Context, cmd Command) *Result
	}

	// ExecRunner is the production Runner backed by os/exec. Output is
	// always captured; when Stdout/Stderr are set it is additionally
	// streamed there so verbose runs show child-process output live.
	ExecRunner struct {
		Stdout io.Writer
		Stderr io.Writer
	}
)

// String renders the invocation for log lines.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Succeeded reports whether the process started and exited zero.
func (r *Result) Succeeded() bool {
	return r.Error == nil && r.ExitCode == 0
}

// NewErrorResult creates a Result for an infrastructure failure.
func NewErrorResult(code int, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result for a normal non-zero process exit.
func NewExitCodeResult(code int) *Result {
	return &Result{ExitCode: code}
}

// NewExecRunner creates a capturing runner with no passthrough writers.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and blocks until it exits.
func (r *ExecRunner) Run(ctx context.Context, command Command) *Result {
	cmd := exec.CommandContext(ctx, command.Name, command.Args...)
	if command.Dir != "" {
		cmd.Dir = command.Dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if r.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, r.Stdout)
	}
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, r.Stderr)
	}

	err := cmd.Run()
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result
		}
		result.ExitCode = -1
		result.Error = err
	}

	return result
}
