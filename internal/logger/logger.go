// Package logger provides verbose logging for the Galley CLI.
// When verbose mode is enabled via the --verbose flag, pipeline progress
// is written to stderr: one section per chaining stage with its counters.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Section prints a stage header.
func Section(name string) {
	emit("\n=== %s ===\n", name)
}

// Debug prints a detail line.
func Debug(format string, args ...any) {
	emit("[DEBUG] "+format+"\n", args...)
}

// Info prints an informational line.
func Info(format string, args ...any) {
	emit("[INFO] "+format+"\n", args...)
}

// Warn prints a warning line.
func Warn(format string, args ...any) {
	emit("[WARN] "+format+"\n", args...)
}

func emit(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, format, args...)
	}
}
