// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"avagen-cli/internal/config"
	"avagen-cli/internal/execx"
	"avagen-cli/internal/gitfetch"
	"avagen-cli/internal/installer"
	"avagen-cli/internal/issue"
	"avagen-cli/internal/launcher"
	"avagen-cli/internal/prereq"
	"avagen-cli/internal/venv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// runInstall is the root command handler: the full pipeline, zero arguments.
func runInstall(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return &ExitError{Code: 1, Err: reportConfigFailure(cmd.ErrOrStderr(), err)}
	}

	ins, err := newInstaller(cfg)
	if err != nil {
		return &ExitError{Code: 1, Err: reportFailure(cmd.ErrOrStderr(), err)}
	}

	fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("Installing Avatar Generator"))
	fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("  target: "+ins.InstallRoot))

	session, err := ins.Run(ctx)
	if err != nil {
		failure := session.Failure()
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("✗ ")+failure.State.String())
		return &ExitError{Code: 1, Err: reportFailure(cmd.ErrOrStderr(), err)}
	}

	if warning := session.Warning(); warning != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("! ")+formatError(warning))
	}
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ Installation complete"))
	return nil
}

// newInstaller wires the production pipeline from the resolved config.
func newInstaller(cfg *config.Config) (*installer.Installer, error) {
	installRoot := cfg.InstallRoot
	if installRoot == "" {
		root, err := config.DefaultInstallRoot()
		if err != nil {
			return nil, err
		}
		installRoot = root
	}

	// The config key and the flag both raise verbosity; either one wins.
	debug := verbose || cfg.UI.Verbose
	logger := newLogger(debug)
	runner := newRunner(debug)

	return &installer.Installer{
		InstallRoot:  installRoot,
		RepoURL:      cfg.RepoURL,
		Prereqs:      prereq.Default(runner),
		Modules:      venv.Catalog(),
		Materializer: gitfetch.NewMaterializer(runner, logger),
		Provisioner:  venv.NewProvisioner(runner, logger),
		Launcher:     launcher.NewBuilder(logger),
		Logger:       logger,
	}, nil
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "avagen-setup",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func newRunner(debug bool) *execx.ExecRunner {
	runner := execx.NewExecRunner()
	if debug {
		runner.Stdout = os.Stdout
		runner.Stderr = os.Stderr
	}
	return runner
}

// reportFailure renders the step error and, when one is registered, its
// remediation text. It returns the original error for the exit path.
func reportFailure(w io.Writer, err error) error {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatError(err))

	if remediation := installer.RemediationFor(err); remediation != nil {
		if rendered, renderErr := remediation.Render("dark"); renderErr == nil {
			fmt.Fprintln(w, rendered)
		}
	}
	return err
}

// reportConfigFailure is reportFailure for configuration errors, which carry
// suggestions instead of a registered issue id.
func reportConfigFailure(w io.Writer, err error) error {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatError(err))

	if remediation := issue.Get(issue.ConfigLoadFailedId); remediation != nil {
		if rendered, renderErr := remediation.Render("dark"); renderErr == nil {
			fmt.Fprintln(w, rendered)
		}
	}
	return err
}

// formatError formats an error for user display. ActionableErrors carry
// suggestions; verbose mode includes the full chain.
func formatError(err error) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
