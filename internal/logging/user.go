package logging

import (
	"fmt"
	"io"
	"os"
)

// Printer writes user-facing output.
// Out receives info, success and plain lines; Err receives warnings and errors.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// NewPrinter returns a Printer, substituting stdout/stderr for nil writers.
func NewPrinter(out, errW io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errW == nil {
		errW = os.Stderr
	}
	return &Printer{Out: out, Err: errW}
}

// Plain prints an unadorned line to Out.
func (p *Printer) Plain(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// Info prints an info message to Out.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "ℹ "+format+"\n", args...)
}

// Success prints a success message to Out.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.Out, "✓ "+format+"\n", args...)
}

// Warning prints a warning message to Err.
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintf(p.Err, "⚠ "+format+"\n", args...)
}

// Error prints an error message to Err.
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintf(p.Err, "✗ "+format+"\n", args...)
}
