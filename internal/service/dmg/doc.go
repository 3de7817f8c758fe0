// Package dmg packages the primary application bundle into a compressed,
// read-only disk image for end-user installation. Reruns replace the
// previous artifact wholesale; there is no incremental update.
package dmg
