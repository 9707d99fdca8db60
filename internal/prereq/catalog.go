// SPDX-License-Identifier: MPL-2.0

package prereq

import (
	"runtime"

	"avagen-cli/internal/execx"
	"avagen-cli/internal/issue"
	"avagen-cli/internal/platform"
)

// Accepted Python range: three consecutive minor versions. The constraint is
// embedded in the probe invocation so only the exit code matters.
const pythonRangeCheck = "import sys; sys.exit(0 if (3, 10) <= sys.version_info[:2] <= (3, 12) else 1)"

// BlenderRelease is the exact Blender release mesh generation targets.
const BlenderRelease = "4.2"

// Default returns the build-time prerequisite catalog in probe order:
// cheapest and most-likely-missing first.
func Default(runner execx.Runner) []Prerequisite {
	return []Prerequisite{
		{
			Name:    "git",
			IssueId: issue.GitNotFoundId,
			Probe: &CommandProbe{
				Runner:  runner,
				Command: execx.Command{Name: "git", Args: []string{"--version"}},
			},
		},
		{
			Name:    "python",
			IssueId: issue.PythonNotFoundId,
			Probe: &CommandProbe{
				Runner:  runner,
				Command: pythonProbeCommand(),
			},
		},
		{
			Name:    "blender",
			IssueId: issue.BlenderNotFoundId,
			Probe: &PathProbe{
				Candidates: platform.BlenderInstallCandidates(BlenderRelease),
			},
		},
	}
}

func pythonProbeCommand() execx.Command {
	if runtime.GOOS == platform.Windows {
		// The py launcher picks the newest CPython 3; the range check then
		// decides acceptance.
		return execx.Command{Name: "py", Args: []string{"-3", "-c", pythonRangeCheck}}
	}
	return execx.Command{Name: "python3", Args: []string{"-c", pythonRangeCheck}}
}
