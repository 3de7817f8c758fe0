package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the suffix marking a directory as an application bundle.
const Extension = ".app"

// executableMode is applied to executables installed into a bundle.
const executableMode os.FileMode = 0o755

var (
	// ErrBundleNotFound indicates the expected bundle is absent from the output directory.
	ErrBundleNotFound = errors.New("application bundle not found")
	// ErrExecutableNotFound indicates the build-output executable is absent.
	ErrExecutableNotFound = errors.New("build output executable not found")
)

// Bundle is an application bundle rooted at Path.
// It only captures the layout; all mutation goes through package functions
// so callers always pass explicit paths and tests can point at temp dirs.
type Bundle struct {
	// Path is the bundle root, ending in Extension.
	Path string
}

// At returns the bundle rooted at the provided path without checking existence.
func At(path string) Bundle {
	return Bundle{Path: path}
}

// Name returns the bundle name without the extension.
func (b Bundle) Name() string {
	return strings.TrimSuffix(filepath.Base(b.Path), Extension)
}

// ContentsDir returns the bundle's Contents directory.
func (b Bundle) ContentsDir() string {
	return filepath.Join(b.Path, "Contents")
}

// ExecutablesDir returns the directory holding the bundle's executables.
func (b Bundle) ExecutablesDir() string {
	return filepath.Join(b.ContentsDir(), "MacOS")
}

// Executable returns the path of the named executable inside the bundle.
func (b Bundle) Executable(name string) string {
	return filepath.Join(b.ExecutablesDir(), name)
}

// ManifestPath returns the bundle's Info.plist.
func (b Bundle) ManifestPath() string {
	return filepath.Join(b.ContentsDir(), "Info.plist")
}

// Locate finds the bundle produced by the build step inside dir.
// It prefers the conventional "<name>.app" and falls back to the first
// directory (non-recursive) carrying the bundle extension.
func Locate(dir, name string) (Bundle, error) {
	conventional := filepath.Join(dir, name+Extension)
	if info, err := os.Stat(conventional); err == nil && info.IsDir() {
		return At(conventional), nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Bundle{}, fmt.Errorf("read bundle directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() && strings.HasSuffix(entry.Name(), Extension) {
			return At(filepath.Join(dir, entry.Name())), nil
		}
	}

	return Bundle{}, fmt.Errorf("%s in %s: %w", name+Extension, dir, ErrBundleNotFound)
}

// SwapExecutable removes the executable the clone inherited from the primary
// bundle and installs the build output under the helper's own name with the
// execute bit set. The name written here must match the invocation name set
// in the manifest; both come from the same configuration value.
func SwapExecutable(b Bundle, buildOutput, helperName, primaryName string) error {
	if _, err := os.Stat(buildOutput); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", buildOutput, ErrExecutableNotFound)
	} else if err != nil {
		return fmt.Errorf("stat build output %s: %w", buildOutput, err)
	}

	inherited := b.Executable(primaryName)
	if err := os.Remove(inherited); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove inherited executable %s: %w", inherited, err)
	}

	target := b.Executable(helperName)
	if err := copyFile(buildOutput, target); err != nil {
		return fmt.Errorf("install helper executable: %w", err)
	}

	if err := os.Chmod(target, executableMode); err != nil {
		return fmt.Errorf("set execute permission on %s: %w", target, err)
	}

	return nil
}
