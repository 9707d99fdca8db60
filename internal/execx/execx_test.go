// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestResultConstructors(t *testing.T) {
	t.Parallel()

	testErr := errors.New("spawn failed")

	if r := NewSuccessResult(); !r.Succeeded() {
		t.Errorf("NewSuccessResult() not successful: %+v", r)
	}
	if r := NewExitCodeResult(3); r.Succeeded() || r.ExitCode != 3 || r.Error != nil {
		t.Errorf("NewExitCodeResult(3) = %+v", r)
	}
	if r := NewErrorResult(-1, testErr); r.Succeeded() || !errors.Is(r.Error, testErr) {
		t.Errorf("NewErrorResult() = %+v", r)
	}
}

func TestCommandString(t *testing.T) {
	t.Parallel()

	cmd := Command{Name: "git", Args: []string{"clone", "--recurse-submodules", "url"}}
	want := "git clone --recurse-submodules url"
	if got := cmd.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRecorderDefaultsToSuccess(t *testing.T) {
	t.Parallel()

	rec := &Recorder{}
	result := rec.Run(context.Background(), Command{Name: "pip", Args: []string{"install"}})

	if !result.Succeeded() {
		t.Errorf("expected success, got %+v", result)
	}
	if got := rec.CallCount(""); got != 1 {
		t.Errorf("CallCount() = %d, want 1", got)
	}
}

func TestRecorderScriptedResponses(t *testing.T) {
	t.Parallel()

	rec := &Recorder{
		Respond: func(cmd Command) *Result {
			if cmd.Name == "pip" {
				return NewExitCodeResult(1)
			}
			return NewSuccessResult()
		},
	}

	if r := rec.Run(context.Background(), Command{Name: "git"}); !r.Succeeded() {
		t.Errorf("git should succeed, got %+v", r)
	}
	if r := rec.Run(context.Background(), Command{Name: "pip"}); r.Succeeded() {
		t.Errorf("pip should fail, got %+v", r)
	}
	if got := rec.CallCount("pip"); got != 1 {
		t.Errorf("CallCount(pip) = %d, want 1", got)
	}
}

func TestRecorderPreservesOrder(t *testing.T) {
	t.Parallel()

	rec := &Recorder{}
	for i := 0; i < 3; i++ {
		rec.Run(context.Background(), Command{Name: fmt.Sprintf("tool%d", i)})
	}

	calls := rec.Calls()
	if len(calls) != 3 {
		t.Fatalf("len(Calls()) = %d, want 3", len(calls))
	}
	for i, c := range calls {
		if want := fmt.Sprintf("tool%d", i); c.Name != want {
			t.Errorf("calls[%d].Name = %q, want %q", i, c.Name, want)
		}
	}
}
