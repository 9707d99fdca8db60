// SPDX-License-Identifier: MPL-2.0

// Package prereq validates that every external tool the installer depends on
// is present before any step that mutates the filesystem runs. Probes are
// pure checks: a command probe inspects only the exit code of a read-only
// invocation, a path probe only stats fixed candidate locations. Validation
// stops at the first failing prerequisite and surfaces its remediation.
package prereq
