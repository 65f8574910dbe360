// Package output prints styled status messages for the command line.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose output.
// Called by the root command when --verbose is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// SetWriters redirects normal and error output
func SetWriters(out, errOut io.Writer) {
	stdout, stderr = out, errOut
}

// Success prints a completed operation in green.
//
//	output.Success("Diagrams saved to beam.png")
func Success(msg string) {
	fmt.Fprintln(stdout, successStyle.Render("✔ "+msg))
}

// Error prints a failure in red on stderr
func Error(msg string) {
	fmt.Fprintln(stderr, errorStyle.Render("✘ "+msg))
}

// Warn prints a non-fatal problem in yellow on stderr, such as hitting the
// iteration cap before the tolerance was met
func Warn(msg string) {
	fmt.Fprintln(stderr, warnStyle.Render("⚠ "+msg))
}

// Info prints a status update in cyan
func Info(msg string) {
	fmt.Fprintln(stdout, infoStyle.Render("ℹ "+msg))
}

// Step prints an indented sub-item in gray
func Step(msg string) {
	fmt.Fprintln(stdout, stepStyle.Render("   "+msg))
}

// Verbose prints a debug message only if verbose mode is enabled
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(stderr, stepStyle.Render("🔍 "+msg))
	}
}
