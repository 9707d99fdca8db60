// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"avagen-cli/internal/execx"
	"avagen-cli/internal/gitfetch"
	"avagen-cli/internal/issue"
	"avagen-cli/internal/launcher"
	"avagen-cli/internal/prereq"
	"avagen-cli/internal/venv"

	"github.com/charmbracelet/log"
)

type (
	fakeMaterializer struct {
		err   error
		calls int
	}
	fakeProvisioner struct {
		err   error
		calls int
	}
	fakeLauncher struct {
		err   error
		calls int
	}
)

func (f *fakeMaterializer) Materialize(context.Context, string, string) error {
	f.calls++
	return f.err
}

func (f *fakeProvisioner) Provision(context.Context, string, []venv.Module) error {
	f.calls++
	return f.err
}

func (f *fakeLauncher) Build(string, string, venv.Module) (string, error) {
	f.calls++
	return "avagen.sh", f.err
}

func okProbe() prereq.Probe {
	return prereqProbeFunc(func(context.Context) error { return nil })
}

type prereqProbeFunc func(ctx context.Context) error

func (f prereqProbeFunc) Check(ctx context.Context) error { return f(ctx) }

func newTestInstaller(t *testing.T, prereqs []prereq.Prerequisite) (*Installer, *fakeMaterializer, *fakeProvisioner, *fakeLauncher) {
	t.Helper()
	mat := &fakeMaterializer{}
	prov := &fakeProvisioner{}
	lb := &fakeLauncher{}
	ins := &Installer{
		InstallRoot:  filepath.Join(t.TempDir(), "install"),
		RepoURL:      "https://example.com/repo.git",
		Prereqs:      prereqs,
		Modules:      venv.Catalog(),
		Materializer: mat,
		Provisioner:  prov,
		Launcher:     lb,
		Logger:       log.New(io.Discard),
	}
	return ins, mat, prov, lb
}

func passingPrereqs() []prereq.Prerequisite {
	return []prereq.Prerequisite{
		{Name: "git", IssueId: issue.GitNotFoundId, Probe: okProbe()},
		{Name: "python", IssueId: issue.PythonNotFoundId, Probe: okProbe()},
		{Name: "blender", IssueId: issue.BlenderNotFoundId, Probe: okProbe()},
	}
}

func TestRun_HappyPathReachesComplete(t *testing.T) {
	t.Parallel()

	ins, mat, prov, lb := newTestInstaller(t, passingPrereqs())

	session, err := ins.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if session.State() != StateComplete {
		t.Errorf("State() = %v, want complete", session.State())
	}
	if mat.calls != 1 || prov.calls != 1 || lb.calls != 1 {
		t.Errorf("calls = materialize:%d provision:%d launcher:%d, want 1 each", mat.calls, prov.calls, lb.calls)
	}

	want := []State{StateValidatingPrerequisites, StateMaterializing, StateProvisioning, StateBuildingShortcuts}
	got := session.Completed()
	if len(got) != len(want) {
		t.Fatalf("Completed() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Completed()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRun_PrereqFailureStopsBeforeAnyMutation(t *testing.T) {
	t.Parallel()

	failing := []prereq.Prerequisite{
		{
			Name:    "git",
			IssueId: issue.GitNotFoundId,
			Probe: prereqProbeFunc(func(context.Context) error {
				return errors.New("git missing")
			}),
		},
	}
	ins, mat, prov, lb := newTestInstaller(t, failing)

	session, err := ins.Run(context.Background())
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if session.State() != StateFailed {
		t.Errorf("State() = %v, want failed", session.State())
	}
	if session.Failure().State != StateValidatingPrerequisites {
		t.Errorf("failure state = %v", session.Failure().State)
	}
	if mat.calls+prov.calls+lb.calls != 0 {
		t.Error("no step may run after a failed prerequisite")
	}
	// The install root must be untouched.
	if _, statErr := os.Stat(ins.InstallRoot); !os.IsNotExist(statErr) {
		t.Error("install root was created despite failed prerequisites")
	}
	// The remediation must name the missing tool.
	remediation := RemediationFor(err)
	if remediation == nil {
		t.Fatal("validation failure carries no remediation")
	}
	if !strings.Contains(string(remediation.MarkdownMsg()), "Git") {
		t.Error("remediation does not reference the missing tool by name")
	}
}

func TestRun_MaterializeFailure(t *testing.T) {
	t.Parallel()

	ins, mat, prov, _ := newTestInstaller(t, passingPrereqs())
	mat.err = &gitfetch.MaterializeError{URL: "https://example.com/repo.git", Cause: errors.New("network down")}

	session, err := ins.Run(context.Background())
	if err == nil {
		t.Fatal("expected materialize failure")
	}
	if session.Failure().State != StateMaterializing {
		t.Errorf("failure state = %v", session.Failure().State)
	}
	if prov.calls != 0 {
		t.Error("provisioning must not run after a failed fetch")
	}
	if RemediationFor(err) == nil {
		t.Error("materialize failure carries no remediation")
	}
}

func TestRun_ProvisionFailureIdentifiesModule(t *testing.T) {
	t.Parallel()

	ins, _, prov, lb := newTestInstaller(t, passingPrereqs())
	prov.err = &venv.ProvisionError{Module: "measurements_extraction_module", Stage: "install", Cause: errors.New("pip exited 1")}

	session, err := ins.Run(context.Background())
	if err == nil {
		t.Fatal("expected provision failure")
	}
	if session.Failure().State != StateProvisioning {
		t.Errorf("failure state = %v", session.Failure().State)
	}
	if !strings.Contains(err.Error(), "measurements_extraction_module") {
		t.Errorf("error does not identify the failed module: %v", err)
	}
	if lb.calls != 0 {
		t.Error("shortcut build must not run after a failed provision")
	}
}

func TestRun_LauncherFailureIsWarningOnly(t *testing.T) {
	t.Parallel()

	ins, _, _, lb := newTestInstaller(t, passingPrereqs())
	lb.err = &launcher.WriteError{Path: "avagen.sh", Cause: errors.New("permission denied")}

	session, err := ins.Run(context.Background())
	if err != nil {
		t.Fatalf("launcher failure must not fail the run, got %v", err)
	}
	if session.State() != StateComplete {
		t.Errorf("State() = %v, want complete", session.State())
	}
	if session.Warning() == nil {
		t.Error("launcher failure must be recorded as a warning")
	}
}

// TestRun_EndToEndWithRealComponents drives the real materializer,
// provisioner, and launcher against a recording runner.
func TestRun_EndToEndWithRealComponents(t *testing.T) {
	t.Parallel()

	logger := log.New(io.Discard)
	rec := &execx.Recorder{}
	installRoot := filepath.Join(t.TempDir(), "install")

	ins := &Installer{
		InstallRoot:  installRoot,
		RepoURL:      "https://example.com/repo.git",
		Prereqs:      passingPrereqs(),
		Modules:      venv.Catalog(),
		Materializer: gitfetch.NewMaterializer(rec, logger),
		Provisioner:  venv.NewProvisioner(rec, logger),
		Launcher:     launcher.NewBuilder(logger),
		Logger:       logger,
	}

	session, err := ins.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if session.State() != StateComplete {
		t.Fatalf("State() = %v", session.State())
	}

	if got := rec.CallCount("clone --recurse-submodules"); got != 1 {
		t.Errorf("clone calls = %d, want 1", got)
	}
	// Three modules, each: create env + pip upgrade + manifest install.
	if got := rec.CallCount("-m venv"); got != 3 {
		t.Errorf("venv create calls = %d, want 3", got)
	}
	if got := rec.CallCount("install -r requirements.txt"); got != 3 {
		t.Errorf("manifest install calls = %d, want 3", got)
	}

	// The launcher landed at the install root.
	entries, readErr := os.ReadDir(installRoot)
	if readErr != nil {
		t.Fatal(readErr)
	}
	foundLauncher := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "avagen.") {
			foundLauncher = true
		}
	}
	if !foundLauncher {
		t.Error("no launcher script at install root")
	}
}

// TestRun_RerunSkipsExistingEnvironments verifies the idempotent re-run:
// existing environment directories are reused, dependency installation still
// re-runs.
func TestRun_RerunSkipsExistingEnvironments(t *testing.T) {
	t.Parallel()

	logger := log.New(io.Discard)
	installRoot := filepath.Join(t.TempDir(), "install")
	repoDir := filepath.Join(installRoot, ProjectDirName)

	// Simulate a completed earlier run: repository and environments exist.
	if err := os.MkdirAll(filepath.Join(repoDir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, m := range venv.Catalog() {
		if err := os.MkdirAll(m.EnvPath(repoDir), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	rec := &execx.Recorder{}
	ins := &Installer{
		InstallRoot:  installRoot,
		RepoURL:      "https://example.com/repo.git",
		Prereqs:      passingPrereqs(),
		Modules:      venv.Catalog(),
		Materializer: gitfetch.NewMaterializer(rec, logger),
		Provisioner:  venv.NewProvisioner(rec, logger),
		Launcher:     launcher.NewBuilder(logger),
		Logger:       logger,
	}

	session, err := ins.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if session.State() != StateComplete {
		t.Fatalf("State() = %v", session.State())
	}

	if got := rec.CallCount("clone"); got != 0 {
		t.Errorf("re-run must not re-clone; clone calls = %d", got)
	}
	if got := rec.CallCount("-m venv"); got != 0 {
		t.Errorf("re-run must not recreate environments; create calls = %d", got)
	}
	// Installs still re-run so manifest changes propagate.
	if got := rec.CallCount("install -r requirements.txt"); got != 3 {
		t.Errorf("manifest install calls = %d, want 3", got)
	}
}
