package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the packaging layout shared by the pipeline binaries.
// Every path is repository-relative so the tools run without flags from the
// project root; a YAML file can override any of them.
type Config struct {
	// AppName is the product name, used for the bundle and the image volume.
	AppName string `yaml:"app_name"`
	// BundleDir is the directory where the build step leaves the .app bundle.
	BundleDir string `yaml:"bundle_dir"`
	// BuildOutput is the standalone executable produced by the build step.
	BuildOutput string `yaml:"build_output"`
	// HelperName is the display and bundle name of the derived helper bundle.
	HelperName string `yaml:"helper_name"`
	// HelperExecutable is the executable name installed into the helper bundle
	// and written to its manifest as the invocation name.
	HelperExecutable string `yaml:"helper_executable"`
	// IconSource is the vector source of the application icon.
	IconSource string `yaml:"icon_source"`
	// IconOutput is where the icon container is written for the build step.
	IconOutput string `yaml:"icon_output"`
	// OutputImage is the path of the distributable disk image.
	OutputImage string `yaml:"output_image"`
}

const (
	// DefaultConfigFilename is the default filename for the packaging layout.
	DefaultConfigFilename = "sshgui-packager.yaml"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errAppNameRequired is returned when the application name is missing.
	errAppNameRequired = errors.New("application name must be provided")
	// errHelperNameRequired is returned when the helper bundle name is missing.
	errHelperNameRequired = errors.New("helper bundle name must be provided")
	// errHelperExecutableClash is returned when the helper executable would
	// collide with the primary one inside the cloned bundle.
	errHelperExecutableClash = errors.New("helper executable must differ from the primary executable")
)

// Default returns the conventional layout of the repository:
// cargo-bundle output under target/, icon sources under assets/,
// the distributable image under dist/.
func Default() *Config {
	return &Config{
		AppName:          "SSH GUI",
		BundleDir:        filepath.Join("target", "release", "bundle", "osx"),
		BuildOutput:      filepath.Join("target", "release", "ssh-gui"),
		HelperName:       "SSH GUI Settings",
		HelperExecutable: "ssh-gui-settings",
		IconSource:       filepath.Join("assets", "icon.svg"),
		IconOutput:       filepath.Join("assets", "AppIcon.icns"),
		OutputImage:      filepath.Join("dist", "SSH GUI.dmg"),
	}
}

// Load reads configuration from the provided path and validates essential fields.
// A missing file at the default path is not an error: the tools then run with
// the conventional layout. An explicitly requested path must exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) && path == DefaultConfigFilename {
		return Default(), nil
	} else if err != nil {
		return nil, fmt.Errorf("read packaging settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal packaging settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal packaging settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write packaging settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields
// and fills every empty path with its conventional default.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	defaults := Default()

	if cfg.AppName == "" {
		return errAppNameRequired
	}

	if cfg.HelperName == "" {
		return errHelperNameRequired
	}

	if cfg.BundleDir == "" {
		cfg.BundleDir = defaults.BundleDir
	}

	if cfg.BuildOutput == "" {
		cfg.BuildOutput = defaults.BuildOutput
	}

	if cfg.HelperExecutable == "" {
		cfg.HelperExecutable = defaults.HelperExecutable
	}

	if cfg.IconSource == "" {
		cfg.IconSource = defaults.IconSource
	}

	if cfg.IconOutput == "" {
		cfg.IconOutput = defaults.IconOutput
	}

	if cfg.OutputImage == "" {
		cfg.OutputImage = defaults.OutputImage
	}

	// The helper executable replaces the clone's primary executable under a new
	// name; sharing the name would silently keep the wrong binary addressable.
	if cfg.HelperExecutable == cfg.PrimaryExecutable() {
		return errHelperExecutableClash
	}

	return nil
}

// PrimaryExecutable returns the executable name the build step puts inside the
// primary bundle, which is the base name of the standalone build output.
func (c *Config) PrimaryExecutable() string {
	return filepath.Base(c.BuildOutput)
}
