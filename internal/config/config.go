package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Lucioric2000/openshot-qt/internal/modpath"
	"github.com/Lucioric2000/openshot-qt/internal/system"
)

const (
	AppName         = "openshot"
	DesktopID       = "org.openshot.OpenShot"
	UserDirName     = ".openshot_qt"
	LogFileName     = "openshot-qt.log"
	SettingsName    = "openshot.toml"
	ThemeFileName   = "theme.toml"
	UserPathEnv     = "OPENSHOT_USER_PATH"
	LoggingRulesEnv = "OPENSHOT_LOGGING_RULES"

	// DefaultLoggingRules enables the model tester's debug output.
	DefaultLoggingRules = "modeltest.debug=true"
)

// LogLevel is the severity threshold of a log channel.
type LogLevel string

const (
	LevelDebug   LogLevel = "debug"
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
)

// Slog maps the level onto slog; unknown values map to info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WebBackend selects the timeline web backend.
// It implements pflag.Value so invalid choices fail at parse time.
type WebBackend string

const (
	BackendAuto      WebBackend = "auto"
	BackendWebKit    WebBackend = "webkit"
	BackendWebEngine WebBackend = "webengine"
)

// WebBackends lists the accepted choices in display order.
var WebBackends = []WebBackend{BackendAuto, BackendWebKit, BackendWebEngine}

func (b *WebBackend) String() string {
	return string(*b)
}

func (b *WebBackend) Set(v string) error {
	parsed, err := ParseWebBackend(v)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func (b *WebBackend) Type() string {
	return "backend"
}

// ParseWebBackend validates v case-insensitively and returns it lower-cased.
func ParseWebBackend(v string) (WebBackend, error) {
	lower := WebBackend(strings.ToLower(v))
	for _, b := range WebBackends {
		if lower == b {
			return b, nil
		}
	}
	return "", fmt.Errorf("invalid choice %q (choose from auto, webkit, webengine)", v)
}

// ProcessConfig is the process-wide configuration derived from the command line.
type ProcessConfig struct {
	LogLevelConsole LogLevel
	LogLevelFile    LogLevel
	ModelTest       bool
	WebBackend      WebBackend
	Language        string
	ModulePath      *modpath.SearchPath
	Paths           *Paths

	// WebBackendSet is true when the backend was given on the command
	// line, so an explicit "auto" still overrides the persisted choice.
	WebBackendSet bool
}

// NewProcessConfig returns the configuration used before any option is applied.
func NewProcessConfig(paths *Paths) *ProcessConfig {
	if paths == nil {
		paths = DefaultPaths()
	}
	return &ProcessConfig{
		LogLevelConsole: LevelInfo,
		LogLevelFile:    LevelInfo,
		WebBackend:      BackendAuto,
		ModulePath:      modpath.New(),
		Paths:           paths,
	}
}

// Paths holds the per-user file locations.
type Paths struct {
	UserDir      string
	LogFile      string
	SettingsFile string
}

// DefaultPaths returns paths under $OPENSHOT_USER_PATH, or ~/.openshot_qt.
func DefaultPaths() *Paths {
	dir, ok := system.DefaultEnv().LookupEnv(UserPathEnv)
	if !ok || dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		dir = filepath.Join(home, UserDirName)
	}
	return PathsIn(dir)
}

// PathsIn returns the standard layout rooted at dir.
func PathsIn(dir string) *Paths {
	return &Paths{
		UserDir:      dir,
		LogFile:      filepath.Join(dir, LogFileName),
		SettingsFile: filepath.Join(dir, SettingsName),
	}
}

// Settings are the persisted user preferences.
type Settings struct {
	DefaultLanguage string     `toml:"default-language"`
	DebugMode       bool       `toml:"debug-mode"`
	WebBackend      WebBackend `toml:"web-backend"`
	Theme           string     `toml:"theme"`
}

// DefaultSettings returns the preferences used when no settings file exists.
func DefaultSettings() *Settings {
	return &Settings{
		DefaultLanguage: "Default",
		WebBackend:      BackendAuto,
	}
}

// LoadSettings reads the TOML settings file at path.
// A missing file yields the defaults; a malformed file is an error.
func LoadSettings(fsys system.FileSystem, path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if _, err := toml.Decode(string(data), settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}

	return settings, nil
}

// Validate checks that the Settings are valid.
func (s *Settings) Validate() error {
	if s.WebBackend == "" {
		return nil
	}
	if _, err := ParseWebBackend(string(s.WebBackend)); err != nil {
		return fmt.Errorf("web-backend: %w", err)
	}
	return nil
}

// Session is the effective configuration seen by the running application.
type Session struct {
	Language        string
	WebBackend      WebBackend
	LogLevelConsole LogLevel
	LogLevelFile    LogLevel
	Theme           string
}

// Resolve layers the command-line choices in cfg over the persisted settings.
func (s *Settings) Resolve(cfg *ProcessConfig) Session {
	session := Session{
		Language:        cfg.Language,
		WebBackend:      cfg.WebBackend,
		LogLevelConsole: cfg.LogLevelConsole,
		LogLevelFile:    cfg.LogLevelFile,
		Theme:           s.Theme,
	}

	if session.Language == "" && s.DefaultLanguage != "Default" {
		session.Language = s.DefaultLanguage
	}
	if !cfg.WebBackendSet && (session.WebBackend == "" || session.WebBackend == BackendAuto) && s.WebBackend != "" {
		session.WebBackend = s.WebBackend
	}
	if s.DebugMode {
		session.LogLevelConsole = LevelDebug
		session.LogLevelFile = LevelDebug
	}

	return session
}

// Theme holds main window colours as lipgloss colour strings.
type Theme struct {
	Name   string `toml:"name"`
	Accent string `toml:"accent"`
	Muted  string `toml:"muted"`
	Error  string `toml:"error"`
}

// DefaultTheme returns the built-in colours.
func DefaultTheme() *Theme {
	return &Theme{
		Name:   "default",
		Accent: "39",
		Muted:  "241",
		Error:  "196",
	}
}

// LoadTheme decodes a theme file, filling unset colours from the default theme.
func LoadTheme(fsys system.FileSystem, path string) (*Theme, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}

	theme := DefaultTheme()
	if _, err := toml.Decode(string(data), theme); err != nil {
		return nil, fmt.Errorf("failed to parse theme %s: %w", path, err)
	}
	return theme, nil
}
