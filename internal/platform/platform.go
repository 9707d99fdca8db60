// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// GOOS values used for platform switches.
const (
	Windows = "windows"
	Darwin  = "darwin"
)

// VenvPython returns the path of the interpreter inside a virtual
// environment rooted at envDir.
func VenvPython(envDir string) string {
	return venvPythonFor(runtime.GOOS, envDir)
}

func venvPythonFor(goos, envDir string) string {
	if goos == Windows {
		return filepath.Join(envDir, "Scripts", "python.exe")
	}
	return filepath.Join(envDir, "bin", "python")
}

// PythonCommand returns the interpreter command used to create virtual
// environments on the current platform. Windows prefers the py launcher so
// the probe and the provisioner agree on which interpreter is selected.
func PythonCommand() string {
	if runtime.GOOS == Windows {
		return "py"
	}
	return "python3"
}

// BlenderInstallCandidates returns the fixed filesystem locations where the
// expected Blender release may be installed on the current platform. The
// returned paths are probed with OR semantics: any one existing satisfies
// the check.
func BlenderInstallCandidates(release string) []string {
	return blenderInstallCandidatesFor(runtime.GOOS, release)
}

func blenderInstallCandidatesFor(goos, release string) []string {
	switch goos {
	case Windows:
		candidates := []string{
			filepath.Join(`C:\Program Files\Blender Foundation`, "Blender "+release, "blender.exe"),
			filepath.Join(`C:\Program Files (x86)\Blender Foundation`, "Blender "+release, "blender.exe"),
		}
		// Per-user installs land under %LOCALAPPDATA%.
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			candidates = append(candidates,
				filepath.Join(localAppData, "Programs", "Blender Foundation", "Blender "+release, "blender.exe"))
		}
		return candidates
	case Darwin:
		return []string{
			"/Applications/Blender.app/Contents/Resources/" + release,
		}
	default: // Linux and others
		return []string{
			"/usr/share/blender/" + release,
			"/opt/blender-" + release,
			"/snap/blender/current/" + release,
		}
	}
}
