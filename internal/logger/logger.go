// Package logger provides verbose logging for the holdings CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow a conversion or scrape.
// Level prefixes are coloured when the terminal supports it.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.RWMutex
	verbose bool
	colored           = !color.NoColor
	output  io.Writer = os.Stderr
)

var (
	debugColor   = color.New(color.FgCyan)
	infoColor    = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	sectionColor = color.New(color.Bold)
)

func init() {
	// Colouring is decided by SetColor, not per call.
	for _, c := range []*color.Color{debugColor, infoColor, warnColor, sectionColor} {
		c.EnableColor()
	}
}

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

// SetColor enables or disables coloured prefixes.
func SetColor(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	colored = enabled
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(debugColor, "[DEBUG]", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n%s\n", paint(sectionColor, "=== "+name+" ==="))
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(infoColor, "[INFO]", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(warnColor, "[WARN]", format, args...)
}

func logf(c *color.Color, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, paint(c, prefix)+" "+format+"\n", args...)
	}
}

// paint must be called with mu held.
func paint(c *color.Color, s string) string {
	if !colored {
		return s
	}
	return c.Sprint(s)
}
