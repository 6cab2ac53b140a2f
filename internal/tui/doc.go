// Package tui provides the openshot main window.
//
// The window is a Bubble Tea program. Running it is the application's event
// loop: Run blocks until the user quits and returns the exit code chosen by
// the model.
//
// # Main Window
//
// The window shows the application identity and session settings, and a
// list of the files passed on the command line:
//
//	m := tui.NewMainWindow(tui.Options{
//	    Header: tui.Header{Name: "openshot", Version: "3.1.1"},
//	    Files:  []string{"project.osp"},
//	})
//	code, err := tui.Run(m)
//
// # Keys
//
//   - q/Esc: quit with exit code 0
//   - Ctrl+C: quit with exit code 130
//   - /: filter the file list
//
// # Model Testing
//
// With Options.ModelTest set, every update checks the list model's
// invariants (cursor within the visible items, visible items a subset of
// all items). Violations are counted and, when ModelTestDebug is set,
// logged at debug level.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
