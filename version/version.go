// Package version holds the build version of the engine, overridden at link
// time with -ldflags "-X github.com/snakefield/engine/version.Version=...".
package version

// Version is the engine version.
var Version = "dev"
