// Package command wraps external tool invocation behind a small Runner
// interface. The packaging pipeline treats its collaborators (PlistBuddy,
// rsvg-convert, hdiutil) as black boxes: it only launches them, checks their
// exit status, and reads the files they produce. Keeping the launch behind an
// interface lets tests substitute fakes without touching real OS utilities.
package command
