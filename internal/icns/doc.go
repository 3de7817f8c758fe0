// Package icns writes the minimal single-chunk form of the Apple icon
// container: a fixed magic tag, a total-length field, and one length-prefixed
// chunk holding the raw bitmap bytes. The full format allows many chunk
// types; the pipeline only ever emits the 1024x1024 PNG entry, so that is all
// this writer supports. Output is byte-exact for interoperability.
package icns
