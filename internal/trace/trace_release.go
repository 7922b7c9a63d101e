//go:build !dev

// Package trace records runtime traces of console sessions in development builds.
// Release builds compile it to no-ops.
package trace

import "context"

// EnvVar names the trace output file
const EnvVar = "DEVCONSOLE_TRACE"

// Init is a no-op in release builds
func Init() func() {
	return func() {}
}

// Region is a no-op in release builds
func Region(_ context.Context, _ string) func() {
	return func() {}
}

// Log is a no-op in release builds
func Log(_ context.Context, _, _ string) {
}

// IsEnabled always reports false in release builds
func IsEnabled() bool {
	return false
}
