package helper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sshgui-packager/internal/bundle"
	"github.com/oshokin/sshgui-packager/internal/command/commandtest"
	"github.com/oshokin/sshgui-packager/internal/config"
)

// fakePlist emulates the plist utility against in-memory manifests keyed by
// file path: Set rewrites a field, Add refuses to overwrite an existing one.
type fakePlist struct {
	manifests map[string]map[string]string
}

func newFakePlist() *fakePlist {
	return &fakePlist{manifests: make(map[string]map[string]string)}
}

func (f *fakePlist) handle(_ string, args ...string) ([]byte, error) {
	directive, path := args[1], args[2]
	fields := f.manifests[path]

	if fields == nil {
		fields = make(map[string]string)
		f.manifests[path] = fields
	}

	parts := strings.SplitN(directive, " ", 3)

	key := strings.TrimPrefix(parts[1], ":")
	switch parts[0] {
	case "Set":
		fields[key] = parts[2]
	case "Add":
		if _, ok := fields[key]; ok {
			return []byte("Add: Entry Already Exists"), errors.New("exit status 1")
		}

		fields[key] = parts[2]
	default:
		return nil, fmt.Errorf("unexpected directive %q", directive)
	}

	return nil, nil
}

// layout prepares a build output dir with a primary bundle and the standalone executable.
func layout(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{
		AppName:          "SSH GUI",
		HelperName:       "SSH GUI Settings",
		HelperExecutable: "ssh-gui-settings",
		BundleDir:        filepath.Join(dir, "bundle"),
		BuildOutput:      filepath.Join(dir, "ssh-gui"),
	}
	require.NoError(t, config.Validate(cfg))

	primary := bundle.At(filepath.Join(cfg.BundleDir, "SSH GUI"+bundle.Extension))
	require.NoError(t, os.MkdirAll(primary.ExecutablesDir(), 0o755))
	require.NoError(t, os.WriteFile(primary.ManifestPath(), []byte("plist"), 0o644))
	require.NoError(t, os.WriteFile(primary.Executable("ssh-gui"), []byte("bundled binary"), 0o755))
	require.NoError(t, os.WriteFile(cfg.BuildOutput, []byte("build output"), 0o755))

	return cfg
}

// TestRun_DerivesConsistentHelper checks the core correctness property:
// the manifest invocation name equals the executable actually installed,
// and the name fields carry the helper identity.
func TestRun_DerivesConsistentHelper(t *testing.T) {
	t.Parallel()

	cfg := layout(t)
	plist := newFakePlist()
	svc := newService(cfg, &commandtest.Runner{Handler: plist.handle})

	require.NoError(t, svc.run(context.Background()))

	helper := bundle.At(filepath.Join(cfg.BundleDir, "SSH GUI Settings"+bundle.Extension))
	fields := plist.manifests[helper.ManifestPath()]
	require.Equal(t, "SSH GUI Settings", fields["CFBundleDisplayName"])
	require.Equal(t, "SSH GUI Settings", fields["CFBundleName"])
	require.Equal(t, "ssh-gui-settings", fields["CFBundleExecutable"])
	require.Equal(t, "bool true", fields["LSUIElement"])

	// A file of exactly the invocation name exists, executable, holding the
	// build output rather than the clone's inherited binary.
	info, err := os.Stat(helper.Executable(fields["CFBundleExecutable"]))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	contents, err := os.ReadFile(helper.Executable("ssh-gui-settings"))
	require.NoError(t, err)
	require.Equal(t, "build output", string(contents))

	// The inherited primary executable is gone from the helper.
	_, err = os.Stat(helper.Executable("ssh-gui"))
	require.ErrorIs(t, err, os.ErrNotExist)

	// The primary bundle is untouched.
	primary := bundle.At(filepath.Join(cfg.BundleDir, "SSH GUI"+bundle.Extension))
	_, ok := plist.manifests[primary.ManifestPath()]
	require.False(t, ok)

	contents, err = os.ReadFile(primary.Executable("ssh-gui"))
	require.NoError(t, err)
	require.Equal(t, "bundled binary", string(contents))
}

// TestRun_FlagAlreadyPresentIsRecovered reruns derivation over a manifest
// that already carries the background-agent flag.
func TestRun_FlagAlreadyPresentIsRecovered(t *testing.T) {
	t.Parallel()

	cfg := layout(t)
	plist := newFakePlist()
	svc := newService(cfg, &commandtest.Runner{Handler: plist.handle})

	ctx := context.Background()
	require.NoError(t, svc.run(ctx))
	// Second run: clone replaces the helper, but the fake keeps manifest
	// state per path, so the Add now collides. Still no error.
	require.NoError(t, svc.run(ctx))
}

// TestRun_SetFailureAborts aborts the pipeline when an identity field cannot be written.
func TestRun_SetFailureAborts(t *testing.T) {
	t.Parallel()

	cfg := layout(t)
	runner := &commandtest.Runner{
		Handler: func(string, ...string) ([]byte, error) {
			return nil, errors.New("exit status 1")
		},
	}
	svc := newService(cfg, runner)

	require.Error(t, svc.run(context.Background()))
}

// TestRun_MissingPrimaryBundle fails with the locator sentinel before any mutation.
func TestRun_MissingPrimaryBundle(t *testing.T) {
	t.Parallel()

	cfg := layout(t)
	require.NoError(t, os.RemoveAll(cfg.BundleDir))
	require.NoError(t, os.MkdirAll(cfg.BundleDir, 0o755))

	runner := &commandtest.Runner{}
	svc := newService(cfg, runner)

	err := svc.run(context.Background())
	require.ErrorIs(t, err, bundle.ErrBundleNotFound)
	require.Empty(t, runner.Calls)
}
