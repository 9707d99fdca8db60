// SPDX-License-Identifier: MPL-2.0

package execx

import (
	"context"
	"strings"
)

// Recorder is a Runner fake that records every invocation and answers from
// a scripted response function. Tests use it to assert invocation counts
// and ordering without spawning real processes.
type Recorder struct {
	// Respond maps an invocation to its Result. When nil every command
	// succeeds.
	Respond func(cmd Command) *Result

	calls []Command
}

// Run records the command and returns the scripted result.
func (r *Recorder) Run(_ context.Context, cmd Command) *Result {
	r.calls = append(r.calls, cmd)
	if r.Respond == nil {
		return NewSuccessResult()
	}
	return r.Respond(cmd)
}

// Calls returns every recorded invocation in order.
func (r *Recorder) Calls() []Command {
	return r.calls
}

// CallCount returns the number of recorded invocations whose rendered
// command line contains substr. An empty substr counts all invocations.
func (r *Recorder) CallCount(substr string) int {
	if substr == "" {
		return len(r.calls)
	}
	n := 0
	for _, c := range r.calls {
		if strings.Contains(c.String(), substr) {
			n++
		}
	}
	return n
}
