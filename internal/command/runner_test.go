package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestExecRunner_LookPath verifies resolution of an existing tool and the sentinel for a missing one.
func TestExecRunner_LookPath(t *testing.T) {
	t.Parallel()

	r := NewExecRunner()

	path, err := r.LookPath("sh")
	require.NoError(t, err)
	require.NotEmpty(t, path)

	_, err = r.LookPath("definitely-not-a-real-tool-xyz")
	require.ErrorIs(t, err, ErrToolNotFound)
}

// TestExecRunner_Run checks output capture on success and error wrapping on failure.
func TestExecRunner_Run(t *testing.T) {
	t.Parallel()

	r := NewExecRunner()
	ctx := context.Background()

	out, err := r.Run(ctx, "sh", "-c", "echo packaged")
	require.NoError(t, err)
	require.Contains(t, string(out), "packaged")

	// Non-zero exit carries the tool's output in the error.
	_, err = r.Run(ctx, "sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken")
}
