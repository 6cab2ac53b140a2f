package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lucioric2000/openshot-qt/internal/app"
	"github.com/Lucioric2000/openshot-qt/internal/buildinfo"
	"github.com/Lucioric2000/openshot-qt/internal/config"
	"github.com/Lucioric2000/openshot-qt/internal/errors"
	"github.com/Lucioric2000/openshot-qt/internal/language"
	"github.com/Lucioric2000/openshot-qt/internal/logging"
	"github.com/Lucioric2000/openshot-qt/internal/modpath"
	"github.com/Lucioric2000/openshot-qt/internal/system"
	"github.com/Lucioric2000/openshot-qt/internal/telemetry"
)

// Application is what the launcher needs from a constructed application.
type Application interface {
	SetName(name string)
	SetVersion(version string)
	SetDesktopID(id string) error
	Capabilities() app.Capabilities
	RunEventLoop() int
}

// AppFactory constructs the application from argv and the process config.
type AppFactory func(argv []string, cfg *config.ProcessConfig) (Application, error)

// Launcher runs the startup sequence. Fields left nil fall back to the
// process defaults when Run is called.
type Launcher struct {
	Program string
	Version string
	Origin  string

	Catalog     language.Catalog
	InitTracing func()
	NewApp      AppFactory

	FS    system.FileSystem
	Env   system.Environment
	Paths *config.Paths

	Out io.Writer
	Err io.Writer

	cfg *config.ProcessConfig
}

// New returns a Launcher wired to the real application, catalog and
// telemetry backend.
func New(out, errW io.Writer) *Launcher {
	version := buildinfo.GetVersion()
	return &Launcher{
		Program: filepath.Base(os.Args[0]),
		Version: version,
		Origin:  buildinfo.Origin(),
		Catalog: language.Default(),
		InitTracing: func() {
			telemetry.Init(telemetry.Options{ServiceName: config.AppName, Version: version})
		},
		NewApp: func(argv []string, cfg *config.ProcessConfig) (Application, error) {
			a, err := app.New(argv, cfg, app.WithConsole(errW))
			if err != nil {
				return nil, err
			}
			return a, nil
		},
		Out: out,
		Err: errW,
	}
}

// Config returns the process configuration built by the last Run, or nil
// when Run exited before configuring.
func (l *Launcher) Config() *config.ProcessConfig {
	return l.cfg
}

func (l *Launcher) defaults() {
	if l.Program == "" {
		l.Program = config.AppName
	}
	if l.Catalog == nil {
		l.Catalog = language.Default()
	}
	if l.FS == nil {
		l.FS = system.DefaultFS()
	}
	if l.Env == nil {
		l.Env = system.DefaultEnv()
	}
	if l.Out == nil {
		l.Out = os.Stdout
	}
	if l.Err == nil {
		l.Err = os.Stderr
	}
}

// Run executes the startup sequence for args (without the program name)
// and returns the process exit code.
func (l *Launcher) Run(args []string) int {
	l.defaults()
	l.cfg = nil
	p := logging.NewPrinter(l.Out, l.Err)

	opts, unknown, err := Parse(args)
	if err != nil {
		fmt.Fprintf(l.Err, "Error: %v\n\n", err)
		fmt.Fprint(l.Err, Usage(l.Version))
		return errors.GetExitCode(err)
	}
	if opts.Help {
		fmt.Fprint(l.Out, Usage(l.Version))
		return errors.ExitSuccess
	}

	if opts.ShowVersion {
		p.Plain("%s", l.Version)
		return errors.ExitSuccess
	}

	cfg := config.NewProcessConfig(l.Paths)
	l.cfg = cfg

	if opts.Debug || opts.DebugConsole {
		cfg.LogLevelConsole = config.LevelDebug
	}
	if opts.Debug || opts.DebugFile {
		cfg.LogLevelFile = config.LevelDebug
	}
	logging.Setup(logging.Channels{
		ConsoleLevel: cfg.LogLevelConsole.Slog(),
		FileLevel:    cfg.LogLevelFile.Slog(),
		Console:      l.Err,
	})

	if opts.ListLanguages {
		p.Plain("Supported Languages:")
		for _, lang := range l.Catalog.List() {
			p.Plain("  %12s  %s", lang.Code, lang.Name)
		}
		return errors.ExitSuccess
	}

	for _, raw := range opts.ExtraPaths {
		l.addModulePath(p, cfg, raw)
	}

	if opts.TestModels {
		cfg.ModelTest = true
		if _, ok := l.Env.LookupEnv(config.LoggingRulesEnv); !ok {
			if err := l.Env.Setenv(config.LoggingRulesEnv, config.DefaultLoggingRules); err != nil {
				logging.Warn("failed to set logging rules", "error", err)
			}
		}
	}

	cfg.WebBackend = config.WebBackend(strings.ToLower(string(opts.WebBackend)))
	cfg.WebBackendSet = opts.WebBackendSet

	if opts.Lang != "" {
		if !l.Catalog.IsSupported(opts.Lang) {
			p.Error("%s", errors.UnsupportedLanguage(opts.Lang).Message)
			return errors.ExitUnsupportedLanguage
		}
		cfg.Language = opts.Lang
	}

	if l.InitTracing != nil {
		l.InitTracing()
	}

	p.Info("Loaded modules from: %s", l.Origin)

	argv := make([]string, 0, 1+len(opts.Passthrough)+len(unknown))
	argv = append(argv, l.Program)
	argv = append(argv, opts.Passthrough...)
	argv = append(argv, unknown...)

	a, err := l.construct(argv, cfg)
	if err != nil {
		err = errors.ConstructionFailure(err)
		logging.Error("application construction failed", "error", err)
		telemetry.RecordError(context.Background(), "construct application", err)
		app.ShowErrors(l.Err, err, app.LogFileOf(err))
		return errors.ExitConstruction
	}

	a.SetName(config.AppName)
	a.SetVersion(l.Version)
	if a.Capabilities().DesktopID {
		if err := a.SetDesktopID(config.DesktopID); err != nil {
			logging.Debug("desktop id not set", "error", err)
		}
	}

	return a.RunEventLoop()
}

func (l *Launcher) addModulePath(p *logging.Printer, cfg *config.ProcessConfig, raw string) {
	abs, err := modpath.Resolve(l.FS, raw)
	if err != nil {
		p.Warning("%v", errors.ResourceWarning(raw, err))
		return
	}
	if !l.FS.Exists(abs) {
		p.Warning("%s does not exist", abs)
		return
	}
	cfg.ModulePath.Prepend(abs)
	p.Success("Added %s to module path", abs)
}

// construct calls the factory, turning a panic or a nil application into
// an error.
func (l *Launcher) construct(argv []string, cfg *config.ProcessConfig) (a Application, err error) {
	if l.NewApp == nil {
		return nil, errors.New(errors.ExitConstruction, "no application factory")
	}
	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = fmt.Errorf("panic during construction: %v", r)
		}
	}()

	a, err = l.NewApp(argv, cfg)
	if err == nil && a == nil {
		err = errors.New(errors.ExitConstruction, "application factory returned nil")
	}
	return a, err
}
