package bundle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/sshgui-packager/internal/command"
)

// PlistBuddyPath is the manifest read/write utility shipped with macOS.
const PlistBuddyPath = "/usr/libexec/PlistBuddy"

// Manifest keys rewritten when deriving the helper bundle.
const (
	keyBundleName      = "CFBundleName"
	keyDisplayName     = "CFBundleDisplayName"
	keyExecutable      = "CFBundleExecutable"
	keyBackgroundAgent = "LSUIElement"
)

// ErrFlagAlreadySet indicates the background-agent flag was already present.
// Callers treat it as recovered, not as a failure.
var ErrFlagAlreadySet = errors.New("background-agent flag already set")

// Manifest rewrites identity fields of a bundle manifest through the external
// plist utility. It never parses the file itself; the utility operates in
// place and its exit status is the only feedback.
type Manifest struct {
	// path is the manifest file operated on.
	path string
	// runner launches the plist utility.
	runner command.Runner
}

// NewManifest returns a mutator for the manifest file at path.
func NewManifest(path string, runner command.Runner) *Manifest {
	return &Manifest{
		path:   path,
		runner: runner,
	}
}

// SetBundleName rewrites the bundle-name field. Failure is fatal for the run:
// a helper bundle with a stale name has an inconsistent identity.
func (m *Manifest) SetBundleName(ctx context.Context, name string) error {
	return m.set(ctx, keyBundleName, name)
}

// SetDisplayName rewrites the user-facing display name.
func (m *Manifest) SetDisplayName(ctx context.Context, name string) error {
	return m.set(ctx, keyDisplayName, name)
}

// SetExecutable rewrites the invocation-name field. The value must match the
// executable filename installed by SwapExecutable.
func (m *Manifest) SetExecutable(ctx context.Context, name string) error {
	return m.set(ctx, keyExecutable, name)
}

// AddBackgroundAgentFlag adds the flag hiding the bundle from user-facing
// application switchers. Adding is idempotent: a manifest that already
// carries the flag yields ErrFlagAlreadySet, which callers recover from.
func (m *Manifest) AddBackgroundAgentFlag(ctx context.Context) error {
	directive := fmt.Sprintf("Add :%s bool true", keyBackgroundAgent)

	out, err := m.runner.Run(ctx, PlistBuddyPath, "-c", directive, m.path)
	if err != nil {
		// PlistBuddy refuses to add an entry that exists.
		if strings.Contains(string(out), "Entry Already Exists") {
			return ErrFlagAlreadySet
		}

		return fmt.Errorf("add %s to %s: %w", keyBackgroundAgent, m.path, err)
	}

	return nil
}

// set rewrites a single string field in place.
func (m *Manifest) set(ctx context.Context, key, value string) error {
	directive := fmt.Sprintf("Set :%s %s", key, value)

	if _, err := m.runner.Run(ctx, PlistBuddyPath, "-c", directive, m.path); err != nil {
		return fmt.Errorf("set %s in %s: %w", key, m.path, err)
	}

	return nil
}
