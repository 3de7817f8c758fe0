// Package version exposes build metadata shared by the packaging binaries.
//
// Version, Commit and BuildTime are injected at build time via ldflags and a
// cobra `version` subcommand is provided for every CLI in this repository.
package version
