// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"avagen-cli/internal/prereq"

	"github.com/spf13/cobra"
)

// checkCmd validates prerequisites without mutating anything.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate prerequisites without installing",
	Long: `Check that every required external tool is present: the git client,
a supported Python release, and the expected Blender release. Nothing
is written; each prerequisite is probed in order and the first failure
stops the check with remediation guidance.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	prereqs := prereq.Default(newRunner(verbose))

	for _, p := range prereqs {
		if err := p.Probe.Check(ctx); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), ErrorStyle.Render("✗ ")+p.Name)

			failure := &prereq.ValidationError{Prereq: p.Name, Issue: p.IssueId, Cause: err}
			return &ExitError{Code: 1, Err: reportFailure(cmd.ErrOrStderr(), failure)}
		}
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+p.Name)
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("All prerequisites satisfied"))
	return nil
}
