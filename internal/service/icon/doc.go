// Package icon rasterizes the vector application icon into a 1024x1024
// bitmap via an external rasterizer and wraps the bytes into the icon
// container consumed by the build step. The bitmap lives only in scratch
// storage, which is removed on every path.
package icon
