package app

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lucioric2000/openshot-qt/internal/config"
	launcherrors "github.com/Lucioric2000/openshot-qt/internal/errors"
	"github.com/Lucioric2000/openshot-qt/internal/logging"
	"github.com/Lucioric2000/openshot-qt/internal/system"
	"github.com/Lucioric2000/openshot-qt/internal/tui"
)

const userDir = "/home/user/.openshot_qt"

func newTestConfig() *config.ProcessConfig {
	return config.NewProcessConfig(config.PathsIn(userDir))
}

func newTestApp(t *testing.T, argv []string, cfg *config.ProcessConfig, fsys *system.MockFS, opts ...Option) *Application {
	t.Helper()

	base := []Option{
		WithFileSystem(fsys),
		WithEnvironment(system.NewMockEnv(nil)),
		WithConsole(&bytes.Buffer{}),
		WithCapabilities(Capabilities{DesktopID: true, AltScreen: true}),
	}
	a, err := New(argv, cfg, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNew_RequiresConfigAndArgv(t *testing.T) {
	if _, err := New([]string{"openshot"}, nil); err == nil {
		t.Error("New() without config should fail")
	}
	if _, err := New(nil, newTestConfig()); err == nil {
		t.Error("New() without argv should fail")
	}
}

func TestNew_ToolkitArgs(t *testing.T) {
	tests := []struct {
		name      string
		argv      []string
		files     []string
		style     string
		altScreen bool
	}{
		{
			name:      "files only",
			argv:      []string{"openshot", "a.osp", "b.osp"},
			files:     []string{"a.osp", "b.osp"},
			altScreen: true,
		},
		{
			name:      "style with separate value",
			argv:      []string{"openshot", "-style", "dark", "a.osp"},
			files:     []string{"a.osp"},
			style:     "dark",
			altScreen: true,
		},
		{
			name:      "style inline and no alt screen",
			argv:      []string{"openshot", "--style=light", "--no-alt-screen"},
			style:     "light",
			altScreen: false,
		},
		{
			name:      "unknown options ignored",
			argv:      []string{"openshot", "-display", ":0", "-"},
			files:     []string{":0", "-"},
			altScreen: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, tt.argv, newTestConfig(), system.NewMockFS())

			if !reflect.DeepEqual(a.Files(), tt.files) {
				t.Errorf("Files() = %v, want %v", a.Files(), tt.files)
			}
			if a.style != tt.style {
				t.Errorf("style = %q, want %q", a.style, tt.style)
			}
			if a.altScreen != tt.altScreen {
				t.Errorf("altScreen = %v, want %v", a.altScreen, tt.altScreen)
			}
			if !reflect.DeepEqual(a.Argv(), tt.argv) {
				t.Errorf("Argv() = %v, want %v", a.Argv(), tt.argv)
			}
		})
	}
}

func TestNew_TrailingStyleIgnored(t *testing.T) {
	var console bytes.Buffer
	logging.Setup(logging.Channels{Console: &console})
	t.Cleanup(func() { logging.Setup(logging.Channels{}) })

	// Unrecognized tokens are appended after the positional ones, so the
	// value of "-style Fusion" arrives ahead of the option itself.
	argv := []string{"openshot", "Fusion", "clip.mp4", "-style"}
	a := newTestApp(t, argv, newTestConfig(), system.NewMockFS())

	if a.style != "" {
		t.Errorf("style = %q, want empty", a.style)
	}
	if want := []string{"Fusion", "clip.mp4"}; !reflect.DeepEqual(a.Files(), want) {
		t.Errorf("Files() = %v, want %v", a.Files(), want)
	}
	if !strings.Contains(console.String(), "ignoring toolkit option without a value") {
		t.Errorf("console should warn about -style, got: %s", console.String())
	}
}

func TestNew_MalformedSettingsFails(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile(filepath.Join(userDir, config.SettingsName), []byte("debug-mode = "), 0644)

	_, err := New([]string{"openshot"}, newTestConfig(), WithFileSystem(fsys), WithConsole(&bytes.Buffer{}))
	if err == nil {
		t.Fatal("New() should fail on malformed settings")
	}
	if !strings.Contains(err.Error(), "settings") {
		t.Errorf("error = %v, want a settings error", err)
	}
	if got := LogFileOf(err); got != "" {
		t.Errorf("LogFileOf() = %q, want empty before the log file is opened", got)
	}
}

func TestNew_SessionLayersCommandLine(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile(filepath.Join(userDir, config.SettingsName), []byte(`
default-language = "de"
web-backend = "webengine"
`), 0644)

	cfg := newTestConfig()
	cfg.Language = "fr"

	a := newTestApp(t, []string{"openshot"}, cfg, fsys)
	session := a.Session()

	if session.Language != "fr" {
		t.Errorf("Language = %q, want command-line fr", session.Language)
	}
	if session.WebBackend != config.BackendWebEngine {
		t.Errorf("WebBackend = %q, want persisted webengine", session.WebBackend)
	}
}

func TestNew_WritesLogFile(t *testing.T) {
	fsys := system.NewMockFS()
	cfg := newTestConfig()
	cfg.LogLevelFile = config.LevelDebug

	newTestApp(t, []string{"openshot", "a.osp"}, cfg, fsys)

	data, ok := fsys.GetFile(filepath.Join(userDir, config.LogFileName))
	if !ok {
		t.Fatal("log file should be created")
	}
	if !strings.Contains(string(data), "application constructed") {
		t.Errorf("log file missing debug record: %s", data)
	}
}

func TestNew_LogFileUnavailableIsNotFatal(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.OpenAppendErr = fs.ErrPermission
	var console bytes.Buffer

	_, err := New([]string{"openshot"}, newTestConfig(), WithFileSystem(fsys), WithConsole(&console))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if !strings.Contains(console.String(), "log file unavailable") {
		t.Errorf("console should warn about the log file, got: %s", console.String())
	}
}

func TestNew_ThemeFromModulePath(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/low/theme.toml", []byte(`name = "low"`), 0644)
	fsys.AddFile("/high/theme.toml", []byte(`name = "high"`), 0644)

	cfg := newTestConfig()
	cfg.ModulePath.Prepend("/low")
	cfg.ModulePath.Prepend("/high")

	a := newTestApp(t, []string{"openshot"}, cfg, fsys)
	if a.Theme().Name != "high" {
		t.Errorf("Theme().Name = %q, want high (last added path wins)", a.Theme().Name)
	}
}

func TestNew_NamedThemeFallsBackToDefault(t *testing.T) {
	a := newTestApp(t, []string{"openshot", "-style", "missing"}, newTestConfig(), system.NewMockFS())
	if a.Theme().Name != config.DefaultTheme().Name {
		t.Errorf("Theme().Name = %q, want default", a.Theme().Name)
	}
}

func TestNew_MalformedThemeFails(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/plugins/themes/dark.toml", []byte("accent = "), 0644)
	cfg := newTestConfig()
	cfg.ModulePath.Prepend("/plugins")

	_, err := New([]string{"openshot", "-style", "dark"}, cfg, WithFileSystem(fsys), WithConsole(&bytes.Buffer{}))
	if err == nil {
		t.Fatal("New() should fail on a malformed theme")
	}

	logFile := filepath.Join(userDir, config.LogFileName)
	if got := LogFileOf(err); got != logFile {
		t.Errorf("LogFileOf() = %q, want %q", got, logFile)
	}
	data, _ := fsys.GetFile(logFile)
	if !strings.Contains(string(data), "failed to load theme") {
		t.Errorf("log file should record the failure, got: %s", data)
	}
}

func TestLogFileOf(t *testing.T) {
	cause := errors.New("boom")
	wrapped := launcherrors.ConstructionFailure(&LoggedError{LogFile: "/tmp/openshot.log", Err: cause})

	if got := LogFileOf(wrapped); got != "/tmp/openshot.log" {
		t.Errorf("LogFileOf() = %q, want /tmp/openshot.log", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("LoggedError should unwrap to its cause")
	}
	if got := LogFileOf(cause); got != "" {
		t.Errorf("LogFileOf(plain) = %q, want empty", got)
	}
	if got := LogFileOf(nil); got != "" {
		t.Errorf("LogFileOf(nil) = %q, want empty", got)
	}
}

func TestDetectCapabilities(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"xterm", map[string]string{"TERM": "xterm-256color"}, true},
		{"dumb", map[string]string{"TERM": "dumb"}, false},
		{"unset", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := detectCapabilities(system.NewMockEnv(tt.env))
			if c.DesktopID != tt.want || c.AltScreen != tt.want {
				t.Errorf("detectCapabilities() = %+v, want %v", c, tt.want)
			}
		})
	}
}

func TestSetDesktopID(t *testing.T) {
	a := newTestApp(t, []string{"openshot"}, newTestConfig(), system.NewMockFS())
	if err := a.SetDesktopID(config.DesktopID); err != nil {
		t.Fatalf("SetDesktopID() error: %v", err)
	}
	if a.DesktopID() != config.DesktopID {
		t.Errorf("DesktopID() = %q", a.DesktopID())
	}

	limited := newTestApp(t, []string{"openshot"}, newTestConfig(), system.NewMockFS(),
		WithCapabilities(Capabilities{}))
	err := limited.SetDesktopID(config.DesktopID)
	if !errors.Is(err, launcherrors.ErrCapabilityUnavailable) {
		t.Errorf("SetDesktopID() error = %v, want ErrCapabilityUnavailable", err)
	}
	if limited.DesktopID() != "" {
		t.Error("DesktopID() should stay empty when unsupported")
	}
}

func TestIdentity(t *testing.T) {
	a := newTestApp(t, []string{"openshot"}, newTestConfig(), system.NewMockFS())
	a.SetName("openshot")
	a.SetVersion("3.1.1")

	if a.Name() != "openshot" || a.Version() != "3.1.1" {
		t.Errorf("identity = %q %q", a.Name(), a.Version())
	}
}

func TestRunEventLoop(t *testing.T) {
	fsys := system.NewMockFS()
	cfg := newTestConfig()
	cfg.ModelTest = true

	var gotModel tui.Model
	var gotOpts int
	runner := func(m tui.Model, opts ...tea.ProgramOption) (int, error) {
		gotModel = m
		gotOpts = len(opts)
		return 42, nil
	}

	a := newTestApp(t, []string{"openshot", "a.osp"}, cfg, fsys,
		WithRunner(runner),
		WithEnvironment(system.NewMockEnv(map[string]string{config.LoggingRulesEnv: config.DefaultLoggingRules})),
		WithIO(&bytes.Buffer{}, &bytes.Buffer{}),
	)
	a.SetName("openshot")
	a.SetVersion("3.1.1")

	if code := a.RunEventLoop(); code != 42 {
		t.Errorf("RunEventLoop() = %d, want 42", code)
	}
	if !strings.Contains(gotModel.View(), "openshot 3.1.1") {
		t.Errorf("model header missing identity:\n%s", gotModel.View())
	}
	// alt screen, input and output
	if gotOpts != 3 {
		t.Errorf("program options = %d, want 3", gotOpts)
	}
}

func TestRunEventLoop_RunnerError(t *testing.T) {
	runner := func(tui.Model, ...tea.ProgramOption) (int, error) {
		return 0, errors.New("no tty")
	}
	a := newTestApp(t, []string{"openshot"}, newTestConfig(), system.NewMockFS(), WithRunner(runner))

	if code := a.RunEventLoop(); code != launcherrors.ExitGeneralError {
		t.Errorf("RunEventLoop() = %d, want %d", code, launcherrors.ExitGeneralError)
	}
}

func TestRunEventLoop_NoAltScreenWithoutCapability(t *testing.T) {
	var gotOpts int
	runner := func(m tui.Model, opts ...tea.ProgramOption) (int, error) {
		gotOpts = len(opts)
		return 0, nil
	}
	a := newTestApp(t, []string{"openshot"}, newTestConfig(), system.NewMockFS(),
		WithRunner(runner), WithCapabilities(Capabilities{}))

	a.RunEventLoop()
	if gotOpts != 0 {
		t.Errorf("program options = %d, want 0", gotOpts)
	}
}

func TestShowErrors(t *testing.T) {
	var buf bytes.Buffer
	ShowErrors(&buf, errors.New("settings unreadable"), "/home/user/.openshot_qt/openshot-qt.log")

	out := buf.String()
	for _, want := range []string{"openshot failed to start", "settings unreadable", "openshot-qt.log"} {
		if !strings.Contains(out, want) {
			t.Errorf("ShowErrors output missing %q:\n%s", want, out)
		}
	}
}

func TestShowErrors_NilError(t *testing.T) {
	var buf bytes.Buffer
	ShowErrors(&buf, nil, "")

	if !strings.Contains(buf.String(), "unknown error") {
		t.Errorf("ShowErrors(nil) output = %q", buf.String())
	}
}

type panicWriter struct{}

func (panicWriter) Write([]byte) (int, error) { panic("broken terminal") }

func TestShowErrors_NeverPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("ShowErrors panicked: %v", r)
		}
	}()
	ShowErrors(panicWriter{}, errors.New("boom"), "")
}
