// SPDX-License-Identifier: MPL-2.0

// Package gitfetch materializes the project repository, including nested
// sub-modules, at the chosen install location. The fetch is atomic from the
// orchestrator's perspective: either git reports success or the whole step
// failed and the user must re-run after remediation.
package gitfetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"avagen-cli/internal/execx"
	"avagen-cli/internal/issue"

	"github.com/charmbracelet/log"
)

// Materializer fetches the full project tree via the git CLI.
type Materializer struct {
	runner execx.Runner
	logger *log.Logger
}

// MaterializeError reports a failed fetch.
type MaterializeError struct {
	// URL is the source repository.
	URL string
	// Cause is the underlying failure.
	Cause error
}

// Error implements the error interface.
func (e *MaterializeError) Error() string {
	return fmt.Sprintf("materialize %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying failure.
func (e *MaterializeError) Unwrap() error {
	return e.Cause
}

// IssueId selects the remediation text for fetch failures.
func (e *MaterializeError) IssueId() issue.Id {
	return issue.CloneFailedId
}

// NewMaterializer creates a Materializer using the given runner.
func NewMaterializer(runner execx.Runner, logger *log.Logger) *Materializer {
	return &Materializer{runner: runner, logger: logger}
}

// Materialize lays down the repository at targetDir. A fresh target is
// cloned with --recurse-submodules so nested trees arrive in one operation.
// A target that already holds a repository is not re-cloned; its sub-modules
// are synced instead so an interrupted earlier run can be completed.
func (m *Materializer) Materialize(ctx context.Context, sourceURL, targetDir string) error {
	if m.repositoryPresent(targetDir) {
		m.logger.Info("repository already present, syncing sub-modules", "dir", targetDir)
		return m.run(ctx, sourceURL, execx.Command{
			Name: "git",
			Args: []string{"submodule", "update", "--init", "--recursive"},
			Dir:  targetDir,
		})
	}

	m.logger.Info("cloning repository", "url", sourceURL, "dir", targetDir)
	return m.run(ctx, sourceURL, execx.Command{
		Name: "git",
		Args: []string{"clone", "--recurse-submodules", sourceURL, targetDir},
	})
}

func (m *Materializer) run(ctx context.Context, sourceURL string, cmd execx.Command) error {
	result := m.runner.Run(ctx, cmd)
	if result.Error != nil {
		return &MaterializeError{URL: sourceURL, Cause: result.Error}
	}
	if result.ExitCode != 0 {
		return &MaterializeError{
			URL:   sourceURL,
			Cause: fmt.Errorf("git exited with code %d: %s", result.ExitCode, firstLine(result.ErrOutput)),
		}
	}
	return nil
}

// repositoryPresent reports whether targetDir already holds a clone.
// Directory existence is the durable record of progress; there is no
// separate marker file.
func (m *Materializer) repositoryPresent(targetDir string) bool {
	info, err := os.Stat(filepath.Join(targetDir, ".git"))
	return err == nil && info.IsDir()
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
