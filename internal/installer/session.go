// SPDX-License-Identifier: MPL-2.0

package installer

import "fmt"

// State is the orchestrator's position in the installation pipeline.
// Transitions are strictly forward; a failure from any non-terminal state
// lands in StateFailed and the run ends.
type State int

const (
	StateNotStarted State = iota
	StateValidatingPrerequisites
	StateMaterializing
	StateProvisioning
	StateBuildingShortcuts
	StateComplete
	StateFailed
)

// String returns the state name for logs and error messages.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateValidatingPrerequisites:
		return "validating prerequisites"
	case StateMaterializing:
		return "materializing repository"
	case StateProvisioning:
		return "provisioning environments"
	case StateBuildingShortcuts:
		return "building shortcuts"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Failure records where a run stopped and why.
type Failure struct {
	// State is the pipeline state the failure occurred in.
	State State
	// Err is the step error, carrying remediation context.
	Err error
}

// Session is the state threaded through one orchestration run. It is created
// when the run starts and discarded afterwards; re-runs re-derive progress
// from the filesystem, never from a previous session.
type Session struct {
	// InstallRoot is the target directory of this run.
	InstallRoot string

	state     State
	completed []State
	failure   *Failure
	warning   error
}

// NewSession creates a session positioned at StateNotStarted.
func NewSession(installRoot string) *Session {
	return &Session{InstallRoot: installRoot, state: StateNotStarted}
}

// State returns the current pipeline state.
func (s *Session) State() State {
	if s.failure != nil {
		return StateFailed
	}
	return s.state
}

// Completed returns the steps finished so far, in order.
func (s *Session) Completed() []State {
	out := make([]State, len(s.completed))
	copy(out, s.completed)
	return out
}

// Failure returns the first failure, or nil for a clean run.
func (s *Session) Failure() *Failure {
	return s.failure
}

// Warning returns a non-fatal problem recorded during the run, or nil.
func (s *Session) Warning() error {
	return s.warning
}

// enter moves the session forward into the given step.
func (s *Session) enter(step State) {
	s.state = step
}

// finish marks the current step as completed.
func (s *Session) finish() {
	s.completed = append(s.completed, s.state)
}

// fail records the first failure; later calls are ignored
// (first-failure-wins).
func (s *Session) fail(err error) {
	if s.failure == nil {
		s.failure = &Failure{State: s.state, Err: err}
	}
}

// warn records a non-fatal problem without leaving the forward path.
func (s *Session) warn(err error) {
	if s.warning == nil {
		s.warning = err
	}
}
