//go:build dev

// Package trace records runtime traces of console sessions in development builds.
//
// Usage:
//
//	DEVCONSOLE_TRACE=trace.out devconsole exec hack
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
)

// EnvVar names the trace output file
const EnvVar = "DEVCONSOLE_TRACE"

var (
	traceMu     sync.Mutex
	traceFile   *os.File
	traceActive bool
)

// Init starts tracing when DEVCONSOLE_TRACE names a file.
// The returned function stops it and must be deferred.
func Init() func() {
	path := os.Getenv(EnvVar)
	if path == "" {
		return func() {}
	}

	traceMu.Lock()
	defer traceMu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devconsole: failed to create trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "devconsole: failed to start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}
	traceFile = f
	traceActive = true

	return func() {
		traceMu.Lock()
		defer traceMu.Unlock()
		if traceActive {
			trace.Stop()
			traceActive = false
		}
		if traceFile != nil {
			_ = traceFile.Close()
			traceFile = nil
		}
	}
}

// Region opens a trace region and returns the function closing it
func Region(ctx context.Context, name string) func() {
	if !traceActive {
		return func() {}
	}
	return trace.StartRegion(ctx, name).End
}

// Log attaches a message to the trace
func Log(ctx context.Context, category, message string) {
	if traceActive {
		trace.Log(ctx, category, message)
	}
}

// IsEnabled reports whether a trace is being recorded
func IsEnabled() bool {
	return traceActive
}
