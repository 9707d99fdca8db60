// SPDX-License-Identifier: MPL-2.0

// Package installer sequences the installation pipeline: prerequisite
// validation, repository materialization, per-module environment
// provisioning, and launcher generation. Execution is strictly sequential;
// every external process blocks the run until it exits, and the filesystem
// is the only durable record of progress.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"avagen-cli/internal/issue"
	"avagen-cli/internal/prereq"
	"avagen-cli/internal/venv"

	"github.com/charmbracelet/log"
)

// ProjectDirName is the repository directory created under the install root.
const ProjectDirName = "avatar-generator"

type (
	// Materializer lays down the repository tree.
	Materializer interface {
		Materialize(ctx context.Context, sourceURL, targetDir string) error
	}

	// Provisioner creates module environments and installs dependencies.
	Provisioner interface {
		Provision(ctx context.Context, repoDir string, modules []venv.Module) error
	}

	// LauncherBuilder writes the entry-point script.
	LauncherBuilder interface {
		Build(installRoot, project string, m venv.Module) (string, error)
	}

	// Installer is the orchestrator. All collaborators are injected so the
	// pipeline can run against fakes.
	Installer struct {
		InstallRoot string
		RepoURL     string
		Prereqs     []prereq.Prerequisite
		Modules     []venv.Module

		Materializer Materializer
		Provisioner  Provisioner
		Launcher     LauncherBuilder

		Logger *log.Logger
	}
)

// Run executes the pipeline and returns the finished session. The returned
// error is the session's failure, if any; a launcher problem after full
// provisioning is recorded as a warning instead and does not make the run
// fail.
func (ins *Installer) Run(ctx context.Context) (*Session, error) {
	session := NewSession(ins.InstallRoot)

	session.enter(StateValidatingPrerequisites)
	ins.Logger.Info("step", "state", session.State().String())
	if err := prereq.Validate(ctx, ins.Prereqs); err != nil {
		session.fail(err)
		return session, err
	}
	session.finish()

	// First filesystem mutation: nothing above this point may write.
	session.enter(StateMaterializing)
	ins.Logger.Info("step", "state", session.State().String())
	repoDir := ins.repoDir()
	if err := os.MkdirAll(ins.InstallRoot, 0o755); err != nil {
		err = fmt.Errorf("create install root: %w", err)
		session.fail(err)
		return session, err
	}
	if err := ins.Materializer.Materialize(ctx, ins.RepoURL, repoDir); err != nil {
		session.fail(err)
		return session, err
	}
	session.finish()

	session.enter(StateProvisioning)
	ins.Logger.Info("step", "state", session.State().String())
	if err := ins.Provisioner.Provision(ctx, repoDir, ins.Modules); err != nil {
		session.fail(err)
		return session, err
	}
	session.finish()

	session.enter(StateBuildingShortcuts)
	ins.Logger.Info("step", "state", session.State().String())
	if _, err := ins.Launcher.Build(ins.InstallRoot, ProjectDirName, ins.rootModule()); err != nil {
		// The application is launchable manually at this point, so the
		// installation still counts as complete.
		ins.Logger.Warn("launcher generation failed", "err", err)
		session.warn(err)
	} else {
		session.finish()
	}

	session.enter(StateComplete)
	ins.Logger.Info("step", "state", session.State().String())
	return session, nil
}

func (ins *Installer) repoDir() string {
	return filepath.Join(ins.InstallRoot, ProjectDirName)
}

// rootModule returns the module whose environment hosts the application:
// the first catalog entry.
func (ins *Installer) rootModule() venv.Module {
	return ins.Modules[0]
}

// RemediationFor maps a step error to its registered remediation text, or
// nil when the error carries none.
func RemediationFor(err error) *issue.Issue {
	var carrier interface{ IssueId() issue.Id }
	if !errors.As(err, &carrier) {
		return nil
	}
	return issue.Get(carrier.IssueId())
}
