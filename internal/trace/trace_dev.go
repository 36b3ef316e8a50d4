//go:build dev

// Package trace wraps runtime/trace for development builds.
//
// Usage:
//
//	go build -tags dev ./cmd/mcfunction
//	MCFUNCTION_TRACE=trace.out mcfunction complete 'execute as @e[type='
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
	"sync/atomic"
)

var (
	mu      sync.Mutex
	file    *os.File
	enabled atomic.Bool
)

// Init starts tracing to the file named by MCFUNCTION_TRACE, if set.
// The returned function stops tracing and must be deferred.
func Init() func() {
	path := os.Getenv("MCFUNCTION_TRACE")
	if path == "" {
		return func() {}
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mcfunction: failed to create trace file %s: %v\n", path, err)
		return func() {}
	}

	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "mcfunction: failed to start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}

	file = f
	enabled.Store(true)
	fmt.Fprintf(os.Stderr, "mcfunction: tracing to %s\n", path)

	return func() {
		mu.Lock()
		defer mu.Unlock()

		if enabled.Swap(false) {
			trace.Stop()
		}
		if file != nil {
			_ = file.Close()
			file = nil
		}
	}
}

// Region starts a trace region and returns the function ending it
func Region(ctx context.Context, name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	return trace.StartRegion(ctx, name).End
}

// Log records a message in the trace
func Log(ctx context.Context, category, message string) {
	if enabled.Load() {
		trace.Log(ctx, category, message)
	}
}

// IsEnabled reports whether tracing is active
func IsEnabled() bool {
	return enabled.Load()
}
