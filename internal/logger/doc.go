// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger writing to stderr with a sane console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// Pipeline binaries accept a context and extract the logger from it, so all
// diagnostics stay on the error stream and stdout remains clean.
package logger
