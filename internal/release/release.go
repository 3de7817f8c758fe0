package release

import (
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/sshgui-packager/internal/version"

	// Ensure SHA512 available for checksum calculation.
	_ "crypto/sha512"
)

// DefaultChecksumFunction is used to calculate artifact hashes.
const DefaultChecksumFunction crypto.Hash = crypto.SHA512

// manifestFileMode is used when writing the release manifest.
const manifestFileMode os.FileMode = 0o644

var errHashUnavailable = errors.New("hash function unavailable")

// Description records what a packaging run produced: the build version and a
// base64 checksum per distributable artifact, so downstream consumers can
// verify what they downloaded.
type Description struct {
	// VersionNumber is the semantic version of this release.
	VersionNumber string `yaml:"version"`
	// Files maps artifact paths to their base64-encoded checksums.
	Files map[string]string `yaml:"files"`
}

// NewDescription produces a Description stamped with the current build version.
func NewDescription() *Description {
	return &Description{
		VersionNumber: version.Short(),
		Files:         make(map[string]string),
	}
}

// AddFile checksums the artifact at path and records it in the description.
func (d *Description) AddFile(path string) error {
	checksum, err := FileChecksum(path)
	if err != nil {
		return err
	}

	d.Files[path] = base64.StdEncoding.EncodeToString(checksum)

	return nil
}

// Save writes the description to the provided path.
func (d *Description) Save(path string) error {
	contents, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal release description: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), contents, manifestFileMode); err != nil {
		return fmt.Errorf("write release description: %w", err)
	}

	return nil
}

// FileChecksum returns checksum bytes for a file using DefaultChecksumFunction.
func FileChecksum(path string) ([]byte, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !DefaultChecksumFunction.Available() {
		return nil, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	hasher := DefaultChecksumFunction.New()
	if _, err = hasher.Write(contents); err != nil {
		return nil, fmt.Errorf("calculate checksum: %w", err)
	}

	return hasher.Sum(nil), nil
}
