// Package config describes the packaging layout: where the build step leaves
// its artifacts, how the helper bundle is named, and where the icon and disk
// image are written.
//
// All paths default to the conventional repository-relative locations so the
// pipeline binaries run with no arguments from the project root. A YAML file
// (sshgui-packager.yaml) can override any field.
package config
