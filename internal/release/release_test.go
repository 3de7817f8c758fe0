package release

import (
	"crypto/sha512"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/sshgui-packager/internal/version"
)

// TestDescription_AddFileAndSave records a known checksum and persists YAML.
func TestDescription_AddFileAndSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	artifact := filepath.Join(dir, "SSH GUI.dmg")
	require.NoError(t, os.WriteFile(artifact, []byte("image bytes"), 0o644))

	desc := NewDescription()
	require.Equal(t, version.Short(), desc.VersionNumber)
	require.NoError(t, desc.AddFile(artifact))

	sum := sha512.Sum512([]byte("image bytes"))
	require.Equal(t, base64.StdEncoding.EncodeToString(sum[:]), desc.Files[artifact])

	path := filepath.Join(dir, "release.yaml")
	require.NoError(t, desc.Save(path))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Description
	require.NoError(t, yaml.Unmarshal(contents, &loaded))
	require.Equal(t, desc.Files, loaded.Files)
	require.Equal(t, desc.VersionNumber, loaded.VersionNumber)
}

// TestDescription_AddMissingFile fails for absent artifacts.
func TestDescription_AddMissingFile(t *testing.T) {
	t.Parallel()

	desc := NewDescription()
	require.Error(t, desc.AddFile(filepath.Join(t.TempDir(), "missing.dmg")))
	require.Empty(t, desc.Files)
}
