// SPDX-License-Identifier: MPL-2.0

// Package execx is the collaborator contract for every external process the
// installer invokes (git, python, pip). Processes run synchronously; the
// caller blocks until exit and inspects a structured Result. Success is
// decided on exit code alone, never by parsing process output.
package execx
