// SPDX-License-Identifier: MPL-2.0

// Package launcher generates the self-locating entry-point script written to
// the install root. The script resolves its own directory when invoked, not
// when generated, so a moved or reinstalled tree keeps working without a
// rebuild: no absolute path is ever baked in.
package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"

	"avagen-cli/internal/issue"
	"avagen-cli/internal/platform"
	"avagen-cli/internal/venv"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// EntryPoint is the application script started inside the root module's
// environment.
const EntryPoint = "app.py"

const posixScript = `#!/bin/sh
# Generated by avagen-setup. Paths are derived from this script's own
# location so the install tree can move freely.
DIR=$(CDPATH='' cd -- "$(dirname -- "$0")" && pwd)
APP_DIR="$DIR/{{.Project}}"
PYTHON="$APP_DIR/{{.EnvDir}}/bin/python"
cd "$APP_DIR" || exit 1
exec "$PYTHON" {{.EntryPoint}} "$@"
`

const windowsScript = `@echo off
rem Generated by avagen-setup. %~dp0 resolves to this script's directory at
rem invocation time so the install tree can move freely.
set "APP_DIR=%~dp0{{.Project}}"
set "PYTHONW=%APP_DIR%\{{.EnvDir}}\Scripts\pythonw.exe"
cd /d "%APP_DIR%"
start "" "%PYTHONW%" {{.EntryPoint}}
`

type (
	// Builder writes the entry-point script for the current platform.
	Builder struct {
		logger *log.Logger
	}

	// WriteError reports a failed script generation. The rest of the
	// installation remains valid; the application is still launchable
	// manually.
	WriteError struct {
		// Path is the script location that could not be written.
		Path string
		// Cause is the underlying failure.
		Cause error
	}

	scriptData struct {
		Project    string
		EnvDir     string
		EntryPoint string
	}
)

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write launcher %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying failure.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// IssueId selects the remediation text for launcher failures.
func (e *WriteError) IssueId() issue.Id {
	return issue.LauncherWriteFailedId
}

// NewBuilder creates a Builder.
func NewBuilder(logger *log.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build writes the entry-point script at installRoot and returns its path.
// project is the repository directory name under installRoot; m is the
// module whose environment hosts the application.
func (b *Builder) Build(installRoot, project string, m venv.Module) (string, error) {
	name, content, err := renderScript(runtime.GOOS, project, m)
	if err != nil {
		return "", &WriteError{Path: filepath.Join(installRoot, name), Cause: err}
	}

	path := filepath.Join(installRoot, name)
	b.logger.Info("writing launcher", "path", path)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return "", &WriteError{Path: path, Cause: err}
	}
	return path, nil
}

// renderScript produces the platform script name and body. The POSIX body is
// additionally parsed with a shell parser; a template that does not produce
// valid shell is a generation failure, not something to hand the user.
func renderScript(goos, project string, m venv.Module) (name, content string, err error) {
	data := scriptData{Project: project, EnvDir: m.EnvDir, EntryPoint: EntryPoint}

	if goos == platform.Windows {
		content, err = render("launcher.cmd", windowsScript, data)
		return "avagen.cmd", content, err
	}

	content, err = render("launcher.sh", posixScript, data)
	if err != nil {
		return "avagen.sh", "", err
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(content), "avagen.sh"); err != nil {
		return "avagen.sh", "", fmt.Errorf("generated script does not parse: %w", err)
	}
	return "avagen.sh", content, nil
}

func render(name, tmpl string, data scriptData) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
