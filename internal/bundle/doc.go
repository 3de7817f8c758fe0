// Package bundle models application bundles as explicit paths and implements
// the operations the pipeline performs on them: locating the build output,
// cloning a bundle wholesale, rewriting manifest identity fields through the
// external plist utility, and swapping in the helper executable.
//
// Nothing here reaches for implicit global paths; every operation takes the
// bundle it works on, so tests run against temp directories and a fake runner.
package bundle
