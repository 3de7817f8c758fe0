package command

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/oshokin/sshgui-packager/internal/logger"
)

// Runner abstracts external tool invocation so pipeline steps can be exercised
// in tests with fakes instead of the real OS utilities.
type Runner interface {
	// LookPath reports where the named tool is installed,
	// wrapping ErrToolNotFound when it is not.
	LookPath(name string) (string, error)
	// Run executes the tool and returns its combined output.
	// A non-zero exit is an error carrying the output for diagnostics.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ErrToolNotFound indicates a required external utility is not installed.
var ErrToolNotFound = errors.New("required tool is not installed")

// ExecRunner runs tools through os/exec. Calls block until the tool exits;
// the pipeline has no timeouts, a hung tool holds the run.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// LookPath resolves the tool on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrToolNotFound)
	}

	return path, nil
}

// Run executes the tool, folding its combined output into the error on failure.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	logger.DebugKV(ctx, "Running external tool", "tool", name, "args", strings.Join(args, " "))

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s %s: %s: %w", name, strings.Join(args, " "), strings.TrimSpace(string(out)), err)
	}

	return out, nil
}
