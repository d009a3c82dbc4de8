// Package ui prints colored status lines for noisegen.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	valueColor   = color.New(color.FgWhite)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Success prints a line starting with a check mark.
func Success(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warn prints a warning line.
func Warn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Error prints an error line.
func Error(w io.Writer, err error) {
	errorColor.Fprintf(w, "Error: %v\n", err)
}

// Field prints a "title: value" line.
func Field(w io.Writer, title string, value any) {
	titleColor.Fprintf(w, "%s: ", title)
	valueColor.Fprintln(w, fmt.Sprint(value))
}
