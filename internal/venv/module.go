// SPDX-License-Identifier: MPL-2.0

package venv

import "path/filepath"

// Module is one independently dependency-managed sub-project of the
// application. Each module gets its own isolated environment; dependency
// sets are mutually incompatible across modules (the mesh module tracks
// Blender's embedded interpreter) so nothing may be shared.
type Module struct {
	// Name identifies the module in status and error messages.
	Name string
	// RelPath is the module directory relative to the repository root.
	RelPath string
	// Manifest is the dependency-manifest filename inside the module.
	Manifest string
	// EnvDir is the environment directory name inside the module. The name
	// is a per-module convention, not a global one: the sub-modules keep
	// the historical "venv" their tooling resolves at run time.
	EnvDir string
}

// EnvironmentState is the filesystem-derived provisioning state of one
// module. It is re-probed on every run and never persisted.
type EnvironmentState struct {
	Module Module
	// Exists reports whether the environment directory is present.
	Exists bool
}

// Dir returns the module's absolute directory under repoDir.
func (m Module) Dir(repoDir string) string {
	return filepath.Join(repoDir, filepath.FromSlash(m.RelPath))
}

// EnvPath returns the module's absolute environment directory under repoDir.
func (m Module) EnvPath(repoDir string) string {
	return filepath.Join(m.Dir(repoDir), m.EnvDir)
}

// ManifestPath returns the module's absolute dependency manifest under repoDir.
func (m Module) ManifestPath(repoDir string) string {
	return filepath.Join(m.Dir(repoDir), m.Manifest)
}

// Catalog returns the build-time module list in provisioning order. Later
// modules may assume earlier ones succeeded.
func Catalog() []Module {
	return []Module{
		{
			Name:     "app",
			RelPath:  ".",
			Manifest: "requirements.txt",
			EnvDir:   ".venv",
		},
		{
			Name:     "measurements_extraction_module",
			RelPath:  "measurements_extraction_module",
			Manifest: "requirements.txt",
			EnvDir:   "venv",
		},
		{
			Name:     "mesh_generation_module",
			RelPath:  "mesh_generation_module",
			Manifest: "requirements.txt",
			EnvDir:   "venv",
		},
	}
}
