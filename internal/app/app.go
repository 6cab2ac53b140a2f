// Package app provides the openshot application object.
//
// An Application is built from the launcher's argv and ProcessConfig, is
// given its identity by the launcher, and then owns the event loop. All
// collaborators are injectable for testing.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	shellquote "github.com/kballard/go-shellquote"

	"github.com/Lucioric2000/openshot-qt/internal/config"
	"github.com/Lucioric2000/openshot-qt/internal/errors"
	"github.com/Lucioric2000/openshot-qt/internal/logging"
	"github.com/Lucioric2000/openshot-qt/internal/modpath"
	"github.com/Lucioric2000/openshot-qt/internal/system"
	"github.com/Lucioric2000/openshot-qt/internal/tui"
)

// Capabilities lists the optional toolkit features available at runtime.
type Capabilities struct {
	// DesktopID is true when the terminal accepts a window title.
	DesktopID bool
	// AltScreen is true when the terminal supports the alternate screen.
	AltScreen bool
}

// Runner runs the main window until it quits.
type Runner func(m tui.Model, opts ...tea.ProgramOption) (int, error)

// Application is the running openshot instance
type Application struct {
	name      string
	version   string
	desktopID string

	argv      []string
	files     []string
	style     string
	altScreen bool

	config   *config.ProcessConfig
	settings *config.Settings
	session  config.Session
	theme    *config.Theme
	caps     *Capabilities

	fs      system.FileSystem
	env     system.Environment
	runner  Runner
	console io.Writer
	in      io.Reader
	out     io.Writer
	logFile io.Closer
	logPath string
	logCh   logging.Channels
}

// Option is a function that configures the Application
type Option func(*Application)

// WithFileSystem sets a custom file system
func WithFileSystem(fs system.FileSystem) Option {
	return func(a *Application) {
		a.fs = fs
	}
}

// WithEnvironment sets a custom environment
func WithEnvironment(env system.Environment) Option {
	return func(a *Application) {
		a.env = env
	}
}

// WithRunner replaces the Bubble Tea program runner
func WithRunner(r Runner) Option {
	return func(a *Application) {
		a.runner = r
	}
}

// WithCapabilities overrides capability detection
func WithCapabilities(c Capabilities) Option {
	return func(a *Application) {
		a.caps = &c
	}
}

// WithConsole sets the console log channel writer
func WithConsole(w io.Writer) Option {
	return func(a *Application) {
		a.console = w
	}
}

// WithIO sets the terminal input and output used by the event loop
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *Application) {
		a.in = in
		a.out = out
	}
}

// New builds the application from argv (program name first) and the
// process configuration.
func New(argv []string, cfg *config.ProcessConfig, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("process configuration is required")
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("argv must start with the program name")
	}

	a := &Application{
		argv:      append([]string(nil), argv...),
		config:    cfg,
		altScreen: true,
		fs:        system.DefaultFS(),
		env:       system.DefaultEnv(),
		runner:    tui.Run,
		console:   os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.parseToolkitArgs(argv[1:])

	paths := cfg.Paths
	if paths == nil {
		paths = config.DefaultPaths()
	}

	settings, err := config.LoadSettings(a.fs, paths.SettingsFile)
	if err != nil {
		return nil, err
	}
	a.settings = settings
	a.session = settings.Resolve(cfg)

	a.setupLogging(paths)

	theme, err := a.loadTheme()
	if err != nil {
		logging.Error("failed to load theme", "error", err)
		err = a.loggedError(err)
		a.Close()
		return nil, err
	}
	a.theme = theme

	if a.caps == nil {
		c := detectCapabilities(a.env)
		a.caps = &c
	}

	logging.Debug("application constructed",
		"argv", shellquote.Join(a.argv...),
		"files", len(a.files),
		"backend", a.session.WebBackend,
		"language", a.session.Language,
		"theme", a.theme.Name,
	)

	return a, nil
}

// parseToolkitArgs picks out the toolkit options; other tokens are files.
// Malformed toolkit options are logged and skipped.
func (a *Application) parseToolkitArgs(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-style" || arg == "--style":
			if i+1 >= len(args) {
				logging.Warn("ignoring toolkit option without a value", "arg", arg)
				continue
			}
			i++
			a.style = args[i]
		case strings.HasPrefix(arg, "-style=") || strings.HasPrefix(arg, "--style="):
			a.style = arg[strings.IndexByte(arg, '=')+1:]
		case arg == "--no-alt-screen":
			a.altScreen = false
		case strings.HasPrefix(arg, "-") && arg != "-":
			logging.Debug("ignoring unknown toolkit option", "arg", arg)
		default:
			a.files = append(a.files, arg)
		}
	}
}

// setupLogging attaches the file channel. Failure to open the log file
// leaves console logging in place.
func (a *Application) setupLogging(paths *config.Paths) {
	ch := logging.Channels{
		ConsoleLevel: a.session.LogLevelConsole.Slog(),
		FileLevel:    a.session.LogLevelFile.Slog(),
		Console:      a.console,
	}

	if err := a.fs.MkdirAll(filepath.Dir(paths.LogFile), 0755); err != nil {
		logging.Setup(ch)
		logging.Warn("log file unavailable", "path", paths.LogFile, "error", err)
		return
	}
	f, err := a.fs.OpenAppend(paths.LogFile)
	if err != nil {
		logging.Setup(ch)
		logging.Warn("log file unavailable", "path", paths.LogFile, "error", err)
		return
	}

	a.logCh = ch
	a.logFile = f
	a.logPath = paths.LogFile
	ch.File = f
	logging.Setup(ch)
}

// loadTheme resolves the theme file through the module search path.
func (a *Application) loadTheme() (*config.Theme, error) {
	name := a.style
	if name == "" {
		name = a.session.Theme
	}

	file := config.ThemeFileName
	if name != "" {
		file = filepath.Join("themes", name+".toml")
	}

	search := a.config.ModulePath
	if search == nil {
		search = modpath.New()
	}

	path, err := search.Find(a.fs, file)
	if err != nil {
		if name != "" {
			logging.Debug("theme not found, using default", "theme", name, "search", search.String())
		}
		return config.DefaultTheme(), nil
	}

	theme, err := config.LoadTheme(a.fs, path)
	if err != nil {
		return nil, err
	}
	logging.Debug("theme loaded", "path", path, "name", theme.Name)
	return theme, nil
}

func detectCapabilities(env system.Environment) Capabilities {
	term, ok := env.LookupEnv("TERM")
	capable := ok && term != "" && term != "dumb"
	return Capabilities{DesktopID: capable, AltScreen: capable}
}

// Capabilities returns the optional features of the running toolkit
func (a *Application) Capabilities() Capabilities {
	return *a.caps
}

// SetName sets the application name
func (a *Application) SetName(name string) {
	a.name = name
}

// Name returns the application name
func (a *Application) Name() string {
	return a.name
}

// SetVersion sets the application version
func (a *Application) SetVersion(version string) {
	a.version = version
}

// Version returns the application version
func (a *Application) Version() string {
	return a.version
}

// SetDesktopID sets the desktop integration identifier.
// It returns ErrCapabilityUnavailable when the terminal cannot use it.
func (a *Application) SetDesktopID(id string) error {
	if !a.caps.DesktopID {
		return errors.ErrCapabilityUnavailable
	}
	a.desktopID = id
	return nil
}

// DesktopID returns the desktop integration identifier, if set
func (a *Application) DesktopID() string {
	return a.desktopID
}

// Argv returns the arguments the application was built from
func (a *Application) Argv() []string {
	return append([]string(nil), a.argv...)
}

// Files returns the files passed on the command line
func (a *Application) Files() []string {
	return append([]string(nil), a.files...)
}

// Session returns the effective session settings
func (a *Application) Session() config.Session {
	return a.session
}

// Theme returns the main window theme
func (a *Application) Theme() *config.Theme {
	return a.theme
}

// RunEventLoop runs the main window and returns its exit code.
// It blocks until the window quits.
func (a *Application) RunEventLoop() int {
	defer a.Close()

	rules, _ := a.env.LookupEnv(config.LoggingRulesEnv)

	m := tui.NewMainWindow(tui.Options{
		Header: tui.Header{
			Name:        a.name,
			Version:     a.version,
			Title:       a.desktopID,
			Backend:     string(a.session.WebBackend),
			Language:    a.session.Language,
			CommandLine: shellquote.Join(a.argv...),
		},
		Files:          a.files,
		Theme:          a.theme,
		Exists:         a.fs.Exists,
		ModelTest:      a.config.ModelTest,
		ModelTestDebug: strings.Contains(rules, config.DefaultLoggingRules),
	})

	var opts []tea.ProgramOption
	if a.altScreen && a.caps.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if a.in != nil {
		opts = append(opts, tea.WithInput(a.in))
	}
	if a.out != nil {
		opts = append(opts, tea.WithOutput(a.out))
	}

	logging.Debug("entering event loop", "alt_screen", a.altScreen && a.caps.AltScreen)
	code, err := a.runner(m, opts...)
	if err != nil {
		logging.Error("event loop failed", "error", err)
		if code == 0 {
			code = errors.ExitGeneralError
		}
	}
	logging.Debug("event loop finished", "code", code)
	return code
}

// Close releases the log file and drops back to console logging.
// It is safe to call more than once.
func (a *Application) Close() error {
	if a.logFile == nil {
		return nil
	}
	logging.Setup(a.logCh)
	err := a.logFile.Close()
	a.logFile = nil
	a.logPath = ""
	return err
}
