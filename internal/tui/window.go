package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Lucioric2000/openshot-qt/internal/config"
	"github.com/Lucioric2000/openshot-qt/internal/logging"
)

// Exit codes chosen by the main window.
const (
	ExitQuit      = 0
	ExitInterrupt = 130
)

// Header is the identity and session summary shown above the file list.
type Header struct {
	Name        string
	Version     string
	Title       string
	Backend     string
	Language    string
	CommandLine string
}

// Options configures the main window.
type Options struct {
	Header Header
	Files  []string
	Theme  *config.Theme

	// Exists reports whether a file is present; nil treats every file as present.
	Exists func(path string) bool

	ModelTest      bool
	ModelTestDebug bool
}

// fileItem implements list.Item for a file passed on the command line
type fileItem struct {
	path   string
	exists bool
}

func (i fileItem) Title() string {
	return filepath.Base(i.path)
}

func (i fileItem) Description() string {
	statusIcon := "✓"
	if !i.exists {
		statusIcon = "⚠"
	}
	return fmt.Sprintf("%s %s", statusIcon, truncatePath(i.path, 50))
}

func (i fileItem) FilterValue() string {
	return i.path
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

type styles struct {
	title lipgloss.Style
	help  lipgloss.Style
	muted lipgloss.Style
	err   lipgloss.Style
}

func newStyles(theme *config.Theme) styles {
	if theme == nil {
		theme = config.DefaultTheme()
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Accent)).
			MarginBottom(1),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)).
			MarginTop(1),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)),
		err: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),
	}
}

// Model is the bubbletea model for the main window
type Model struct {
	list     list.Model
	header   Header
	styles   styles
	exitCode int
	quitting bool
	width    int
	height   int

	modelTest      bool
	modelTestDebug bool
	violations     int
}

// NewMainWindow creates the main window model
func NewMainWindow(opts Options) Model {
	exists := opts.Exists
	if exists == nil {
		exists = func(string) bool { return true }
	}

	items := make([]list.Item, len(opts.Files))
	for i, f := range opts.Files {
		items[i] = fileItem{path: f, exists: exists(f)}
	}

	st := newStyles(opts.Theme)

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = st.title.MarginBottom(0)
	delegate.Styles.SelectedDesc = st.muted

	l := list.New(items, delegate, 80, 20)
	l.Title = "Files"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = st.title

	return Model{
		list:           l,
		header:         opts.Header,
		styles:         st,
		modelTest:      opts.ModelTest,
		modelTestDebug: opts.ModelTestDebug,
	}
}

func (m Model) Init() tea.Cmd {
	if m.header.Title == "" {
		return nil
	}
	return tea.SetWindowTitle(m.header.Title)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if next.modelTest {
		next.checkModel()
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.exitCode = ExitInterrupt
			m.quitting = true
			return m, tea.Quit
		}

		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "q", "esc":
			m.exitCode = ExitQuit
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// checkModel verifies the list model invariants.
func (m *Model) checkModel() {
	all := len(m.list.Items())
	visible := len(m.list.VisibleItems())
	idx := m.list.Index()

	var problems []string
	if visible > all {
		problems = append(problems, fmt.Sprintf("visible items %d exceed items %d", visible, all))
	}
	if visible > 0 && (idx < 0 || idx >= visible) {
		problems = append(problems, fmt.Sprintf("cursor %d outside [0,%d)", idx, visible))
	}

	if len(problems) == 0 {
		return
	}
	m.violations += len(problems)
	if m.modelTestDebug {
		logging.Debug("model test failure", "model", "files", "problems", strings.Join(problems, "; "))
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.title.Render(fmt.Sprintf("%s %s", m.header.Name, m.header.Version)))
	sb.WriteString("\n")

	language := m.header.Language
	if language == "" {
		language = "default"
	}
	sb.WriteString(m.styles.muted.Render(fmt.Sprintf("backend: %s | language: %s", m.header.Backend, language)))
	sb.WriteString("\n")
	if m.header.CommandLine != "" {
		sb.WriteString(m.styles.muted.Render("argv: " + m.header.CommandLine))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(m.list.Items()) == 0 {
		sb.WriteString("No files opened.\n")
	} else {
		sb.WriteString(m.list.View())
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.help.Render("[/] Filter  [q] Quit"))
	return sb.String()
}

// ExitCode returns the code the window chose when it quit
func (m Model) ExitCode() int {
	return m.exitCode
}

// Violations returns the number of model invariant failures seen
func (m Model) Violations() int {
	return m.violations
}

// Run runs the main window until it quits and returns its exit code
func Run(m Model, opts ...tea.ProgramOption) (int, error) {
	p := tea.NewProgram(m, opts...)

	finalModel, err := p.Run()
	if err != nil {
		return 1, err
	}

	if fm, ok := finalModel.(Model); ok {
		return fm.ExitCode(), nil
	}
	return 1, fmt.Errorf("unexpected model type %T", finalModel)
}
