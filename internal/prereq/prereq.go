// SPDX-License-Identifier: MPL-2.0

package prereq

import (
	"context"
	"fmt"
	"os"

	"avagen-cli/internal/execx"
	"avagen-cli/internal/issue"
)

type (
	// Probe detects whether a single prerequisite is satisfied. Probes must
	// not mutate system state.
	Probe interface {
		Check(ctx context.Context) error
	}

	// Prerequisite couples a probe with its user-facing identity.
	Prerequisite struct {
		// Name identifies the tool in status and error messages.
		Name string
		// IssueId selects the remediation text shown on failure.
		IssueId issue.Id
		// Probe performs the actual detection.
		Probe Probe
	}

	// ValidationError reports the first prerequisite that failed.
	ValidationError struct {
		// Prereq is the name of the failed prerequisite.
		Prereq string
		// Issue selects the remediation text for the failure.
		Issue issue.Id
		// Cause is the probe error.
		Cause error
	}

	// CommandProbe runs an external command; the prerequisite is satisfied
	// iff the command exits zero. Version constraints are embedded in the
	// command arguments so the exit code is the whole answer.
	CommandProbe struct {
		Runner  execx.Runner
		Command execx.Command
	}

	// PathProbe checks fixed filesystem locations with OR semantics: the
	// prerequisite is satisfied when any one candidate exists.
	PathProbe struct {
		Candidates []string

		// Stat is swappable for tests; defaults to os.Stat.
		Stat func(string) (os.FileInfo, error)
	}
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("prerequisite %q not satisfied: %v", e.Prereq, e.Cause)
}

// Unwrap returns the probe error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// IssueId selects the remediation text for the failure.
func (e *ValidationError) IssueId() issue.Id {
	return e.Issue
}

// Check implements Probe.
func (p *CommandProbe) Check(ctx context.Context) error {
	result := p.Runner.Run(ctx, p.Command)
	if result.Error != nil {
		return fmt.Errorf("probe %q could not run: %w", p.Command.Name, result.Error)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("probe %q exited with code %d", p.Command.String(), result.ExitCode)
	}
	return nil
}

// Check implements Probe.
func (p *PathProbe) Check(_ context.Context) error {
	stat := p.Stat
	if stat == nil {
		stat = os.Stat
	}
	for _, candidate := range p.Candidates {
		if _, err := stat(candidate); err == nil {
			return nil
		}
	}
	return fmt.Errorf("none of %d known install locations exist", len(p.Candidates))
}

// Validate runs each prerequisite's probe in declaration order and returns a
// ValidationError for the first failure. The order matters only for user
// experience; no state is mutated on either path.
func Validate(ctx context.Context, prereqs []Prerequisite) error {
	for _, p := range prereqs {
		if err := p.Probe.Check(ctx); err != nil {
			return &ValidationError{Prereq: p.Name, Issue: p.IssueId, Cause: err}
		}
	}
	return nil
}
