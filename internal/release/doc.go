// Package release produces the optional YAML description of a packaging run:
// build version plus checksums of the distributable artifacts.
package release
