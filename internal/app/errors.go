package app

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var errorBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("196")).
	Padding(0, 1)

var errorTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("196"))

// ShowErrors reports a construction failure to the user. It is the last
// line of defense: it works without an Application and never panics, even
// when err is nil or w fails.
func ShowErrors(w io.Writer, err error, logFile string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "openshot failed to start: %v\n", err)
		}
	}()

	if w == nil {
		w = os.Stderr
	}

	var body strings.Builder
	body.WriteString(errorTitleStyle.Render("openshot failed to start"))
	body.WriteString("\n\n")
	if err != nil {
		body.WriteString(err.Error())
	} else {
		body.WriteString("unknown error")
	}
	if logFile != "" {
		body.WriteString("\n\nSee ")
		body.WriteString(logFile)
		body.WriteString(" for details.")
	}

	fmt.Fprintln(w, errorBoxStyle.Render(body.String()))
}

// LoggedError is a construction error that was also written to the log file.
type LoggedError struct {
	LogFile string
	Err     error
}

func (e *LoggedError) Error() string {
	return e.Err.Error()
}

func (e *LoggedError) Unwrap() error {
	return e.Err
}

// loggedError wraps err with the log file path when the file channel is
// attached.
func (a *Application) loggedError(err error) error {
	if a.logPath == "" {
		return err
	}
	return &LoggedError{LogFile: a.logPath, Err: err}
}

// LogFileOf returns the log file holding details of err, or "" when the
// failure happened before the log file was opened.
func LogFileOf(err error) string {
	var logged *LoggedError
	if stderrors.As(err, &logged) {
		return logged.LogFile
	}
	return ""
}
