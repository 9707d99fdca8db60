// SPDX-License-Identifier: MPL-2.0

// Package venv provisions one isolated Python environment per application
// module. Provisioning is idempotent: an existing environment directory is
// never recreated, but dependency installation always re-runs so manifest
// changes propagate on re-runs.
package venv

import (
	"context"
	"fmt"
	"os"

	"avagen-cli/internal/execx"
	"avagen-cli/internal/issue"
	"avagen-cli/internal/platform"

	"github.com/charmbracelet/log"
)

type (
	// Provisioner creates environments and installs module dependencies,
	// strictly in catalog order.
	Provisioner struct {
		runner execx.Runner
		logger *log.Logger

		// pythonCmd creates new environments; defaults to the platform
		// interpreter command.
		pythonCmd string
	}

	// ProvisionError reports which module broke the provisioning run.
	ProvisionError struct {
		// Module is the name of the failed module.
		Module string
		// Stage is the failed stage: "create", "upgrade pip", or "install".
		Stage string
		// Cause is the underlying failure.
		Cause error
	}
)

// Error implements the error interface.
func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provision module %q: %s: %v", e.Module, e.Stage, e.Cause)
}

// Unwrap returns the underlying failure.
func (e *ProvisionError) Unwrap() error {
	return e.Cause
}

// IssueId selects the remediation text for the failed stage.
func (e *ProvisionError) IssueId() issue.Id {
	if e.Stage == "create" {
		return issue.EnvironmentCreateFailedId
	}
	return issue.DependencyInstallFailedId
}

// NewProvisioner creates a Provisioner using the given runner.
func NewProvisioner(runner execx.Runner, logger *log.Logger) *Provisioner {
	return &Provisioner{
		runner:    runner,
		logger:    logger,
		pythonCmd: platform.PythonCommand(),
	}
}

// Probe derives a module's environment state from the filesystem.
func Probe(repoDir string, m Module) EnvironmentState {
	info, err := os.Stat(m.EnvPath(repoDir))
	return EnvironmentState{
		Module: m,
		Exists: err == nil && info.IsDir(),
	}
}

// Provision processes each module strictly in sequence. The first non-zero
// exit aborts the whole run; environments of modules that already completed
// remain usable.
func (p *Provisioner) Provision(ctx context.Context, repoDir string, modules []Module) error {
	for _, m := range modules {
		if err := p.provisionModule(ctx, repoDir, m); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provisioner) provisionModule(ctx context.Context, repoDir string, m Module) error {
	state := Probe(repoDir, m)
	envDir := m.EnvPath(repoDir)

	if state.Exists {
		p.logger.Info("environment exists, reusing", "module", m.Name, "env", envDir)
	} else {
		p.logger.Info("creating environment", "module", m.Name, "env", envDir)
		if err := p.step(ctx, m, "create", p.createCommand(envDir, m.Dir(repoDir))); err != nil {
			return err
		}
	}

	envPython := platform.VenvPython(envDir)

	// A stale pip may reject modern manifest syntax, so the tool upgrades
	// itself before it installs anything.
	p.logger.Info("upgrading pip", "module", m.Name)
	if err := p.step(ctx, m, "upgrade pip", execx.Command{
		Name: envPython,
		Args: []string{"-m", "pip", "install", "--upgrade", "pip"},
		Dir:  m.Dir(repoDir),
	}); err != nil {
		return err
	}

	p.logger.Info("installing dependencies", "module", m.Name, "manifest", m.Manifest)
	return p.step(ctx, m, "install", execx.Command{
		Name: envPython,
		Args: []string{"-m", "pip", "install", "-r", m.Manifest},
		Dir:  m.Dir(repoDir),
	})
}

func (p *Provisioner) createCommand(envDir, moduleDir string) execx.Command {
	args := []string{"-m", "venv", envDir}
	if p.pythonCmd == "py" {
		args = append([]string{"-3"}, args...)
	}
	return execx.Command{Name: p.pythonCmd, Args: args, Dir: moduleDir}
}

func (p *Provisioner) step(ctx context.Context, m Module, stage string, cmd execx.Command) error {
	result := p.runner.Run(ctx, cmd)
	if result.Error != nil {
		return &ProvisionError{Module: m.Name, Stage: stage, Cause: result.Error}
	}
	if result.ExitCode != 0 {
		return &ProvisionError{
			Module: m.Name,
			Stage:  stage,
			Cause:  fmt.Errorf("%s exited with code %d", cmd.Name, result.ExitCode),
		}
	}
	return nil
}
