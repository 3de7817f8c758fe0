package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/sshgui-packager/internal/service/dmg"
)

// TestDMG_EndToEnd runs the real disk image pipeline against a fake hdiutil
// on PATH, twice, and verifies exactly one artifact plus the release manifest.
func TestDMG_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	// A shell stand-in for hdiutil: writes a placeholder image at the last argument.
	installFakeTool(t, "hdiutil", `#!/bin/sh
for arg; do last="$arg"; done
echo "disk image" > "$last"
`)

	bundlePath := filepath.Join(dir, "SSH GUI.app")
	require.NoError(t, os.MkdirAll(filepath.Join(bundlePath, "Contents", "MacOS"), 0o755))

	output := filepath.Join(dir, "dist", "SSH GUI.dmg")
	manifest := filepath.Join(dir, "dist", "release.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	options := &dmg.Options{
		BundlePath:   bundlePath,
		OutputPath:   output,
		ManifestPath: manifest,
	}

	require.NoError(t, dmg.Run(ctx, options))
	require.NoError(t, dmg.Run(ctx, options))

	// Exactly one image artifact survives the rerun.
	entries, err := os.ReadDir(filepath.Dir(output))
	require.NoError(t, err)

	var images []string

	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".dmg" {
			images = append(images, entry.Name())
		}
	}

	require.Equal(t, []string{"SSH GUI.dmg"}, images)

	// The release manifest checksums the artifact.
	contents, err := os.ReadFile(manifest)
	require.NoError(t, err)

	var desc struct {
		VersionNumber string            `yaml:"version"`
		Files         map[string]string `yaml:"files"`
	}

	require.NoError(t, yaml.Unmarshal(contents, &desc))
	require.Contains(t, desc.Files, output)
}

// TestDMG_MissingBundle exits before any tool invocation when the bundle is absent.
func TestDMG_MissingBundle(t *testing.T) {
	dir := t.TempDir()

	// A booby-trapped hdiutil proves the tool is never reached.
	marker := filepath.Join(dir, "invoked")
	installFakeTool(t, "hdiutil", `#!/bin/sh
touch "`+marker+`"
`)

	err := dmg.Run(context.Background(), &dmg.Options{
		BundlePath: filepath.Join(dir, "missing.app"),
		OutputPath: filepath.Join(dir, "out.dmg"),
	})
	require.Error(t, err)

	_, err = os.Stat(marker)
	require.ErrorIs(t, err, os.ErrNotExist)
}
