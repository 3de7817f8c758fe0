package commandtest

import (
	"context"
	"fmt"
	"slices"

	"github.com/oshokin/sshgui-packager/internal/command"
)

// Call records a single tool invocation.
type Call struct {
	// Name is the tool that was launched.
	Name string
	// Args are the arguments it was launched with.
	Args []string
}

// Runner is a scripted command.Runner. Tests declare which tools are missing
// and what each invocation produces; every Run call is recorded in order.
type Runner struct {
	// Missing lists tool names LookPath reports as not installed.
	Missing []string
	// Handler is invoked for every Run call. When nil, Run succeeds with no output.
	Handler func(name string, args ...string) ([]byte, error)
	// Calls records every Run invocation in order.
	Calls []Call
}

var _ command.Runner = (*Runner)(nil)

// LookPath resolves every tool except those listed in Missing.
func (r *Runner) LookPath(name string) (string, error) {
	if slices.Contains(r.Missing, name) {
		return "", fmt.Errorf("%s: %w", name, command.ErrToolNotFound)
	}

	return "/fake/bin/" + name, nil
}

// Run records the invocation and delegates to Handler.
func (r *Runner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})

	if r.Handler == nil {
		return nil, nil
	}

	return r.Handler(name, args...)
}

// CallsTo returns the recorded invocations of the named tool.
func (r *Runner) CallsTo(name string) []Call {
	var calls []Call

	for _, call := range r.Calls {
		if call.Name == name {
			calls = append(calls, call)
		}
	}

	return calls
}
