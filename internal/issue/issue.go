// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	GitNotFoundId Id = iota + 1
	PythonNotFoundId
	BlenderNotFoundId
	CloneFailedId
	EnvironmentCreateFailedId
	DependencyInstallFailedId
	LauncherWriteFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

// Issue is a user-facing remediation text for a known failure condition.
// The markdown body is rendered to the terminal when the installer stops.
type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	gitNotFoundIssue = &Issue{
		id: GitNotFoundId,
		mdMsg: `
# Git was not found on this machine

The installer needs the "git" command-line client to download the
Avatar Generator repository, including its nested sub-modules.

## Things you can try
- Install Git from the link below
- Make sure "git" is on your PATH, then run the installer again`,
		extLinks: []HttpLink{"https://git-scm.com/downloads"},
	}

	pythonNotFoundIssue = &Issue{
		id: PythonNotFoundId,
		mdMsg: `
# A supported Python was not found

The Avatar Generator needs Python 3.10, 3.11 or 3.12. Older and newer
releases are not accepted because the bundled ML dependencies pin
against this range.

## Things you can try
- Install Python 3.12 from the link below
- On Windows, ensure the "py" launcher is installed (default installer option)
- Run the installer again afterwards`,
		extLinks: []HttpLink{"https://www.python.org/downloads/"},
	}

	blenderNotFoundIssue = &Issue{
		id: BlenderNotFoundId,
		mdMsg: `
# Blender 4.2 was not found

Mesh generation runs inside Blender 4.2 and the installer could not find
that release in any of the standard install locations.

## Things you can try
- Install Blender 4.2 (exactly this release) from the link below
- Use the default install location, then run the installer again`,
		extLinks: []HttpLink{"https://www.blender.org/download/"},
	}

	cloneFailedIssue = &Issue{
		id: CloneFailedId,
		mdMsg: `
# Downloading the repository failed

Fetching the project tree (with its sub-modules) did not complete. This
is most commonly a connectivity problem.

## Things you can try
- Check your network connection and proxy settings
- Make sure the install directory has enough free space
- Run the installer again; already-completed steps are skipped`,
	}

	environmentCreateFailedIssue = &Issue{
		id: EnvironmentCreateFailedId,
		mdMsg: `
# Creating a Python environment failed

An isolated environment for one of the application modules could not be
created.

## Things you can try
- Check that the install directory is writable and has free space
- Delete the module's environment directory and run the installer again`,
	}

	dependencyInstallFailedIssue = &Issue{
		id: DependencyInstallFailedId,
		mdMsg: `
# Installing module dependencies failed

pip reported an error while installing one module's requirements.
Environments of modules that already completed remain usable.

## Things you can try
- Check your network connection (pip downloads packages)
- Run the installer again; existing environments are reused`,
	}

	launcherWriteFailedIssue = &Issue{
		id: LauncherWriteFailedId,
		mdMsg: `
# Writing the launcher script failed

The installation itself completed, but the entry-point script could not
be written. You can still start the application manually from the root
module's environment.

## Things you can try
- Check permissions on the install directory
- Run the installer again to retry only this step`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# The installer configuration could not be loaded

The optional config file exists but is not valid. The installer refuses
to guess and has stopped before touching anything.

## Things you can try
- Fix the reported syntax or schema problem
- Or delete the config file to fall back to defaults`,
	}

	issues = map[Id]*Issue{
		GitNotFoundId:             gitNotFoundIssue,
		PythonNotFoundId:          pythonNotFoundIssue,
		BlenderNotFoundId:         blenderNotFoundIssue,
		CloneFailedId:             cloneFailedIssue,
		EnvironmentCreateFailedId: environmentCreateFailedIssue,
		DependencyInstallFailedId: dependencyInstallFailedIssue,
		LauncherWriteFailedId:     launcherWriteFailedIssue,
		ConfigLoadFailedId:        configLoadFailedIssue,
	}
)

// Get returns the Issue registered for id, or nil when unknown.
func Get(id Id) *Issue {
	return issues[id]
}

// Ids returns every registered issue id in ascending order.
func Ids() []Id {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	return ids
}
