// Package commandtest provides a scripted command.Runner so pipeline tests
// can observe and fake external tool invocations without real OS utilities.
package commandtest
