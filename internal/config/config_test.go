package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Lucioric2000/openshot-qt/internal/system"
)

func TestLogLevel_Slog(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarning, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.Slog(); got != tt.want {
				t.Errorf("Slog() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWebBackend_Set(t *testing.T) {
	tests := []struct {
		in      string
		want    WebBackend
		wantErr bool
	}{
		{"auto", BackendAuto, false},
		{"webkit", BackendWebKit, false},
		{"WebEngine", BackendWebEngine, false},
		{"gecko", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b := BackendAuto
			err := b.Set(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && b != tt.want {
				t.Errorf("Set(%q) = %q, want %q", tt.in, b, tt.want)
			}
			if tt.wantErr && b != BackendAuto {
				t.Errorf("failed Set should leave value unchanged, got %q", b)
			}
		})
	}
}

func TestWebBackend_ErrorNamesChoices(t *testing.T) {
	_, err := ParseWebBackend("gecko")
	if err == nil || !strings.Contains(err.Error(), "webengine") {
		t.Errorf("error should list the choices, got %v", err)
	}
}

func TestNewProcessConfig_Defaults(t *testing.T) {
	cfg := NewProcessConfig(PathsIn("/tmp/openshot"))

	if cfg.LogLevelConsole != LevelInfo || cfg.LogLevelFile != LevelInfo {
		t.Errorf("default levels = %q/%q, want info/info", cfg.LogLevelConsole, cfg.LogLevelFile)
	}
	if cfg.WebBackend != BackendAuto {
		t.Errorf("WebBackend = %q, want auto", cfg.WebBackend)
	}
	if cfg.ModulePath == nil || cfg.ModulePath.Len() != 0 {
		t.Error("ModulePath should be an empty search path")
	}
	if cfg.Paths.LogFile != "/tmp/openshot/openshot-qt.log" {
		t.Errorf("LogFile = %q", cfg.Paths.LogFile)
	}
}

func TestDefaultPaths_FromEnv(t *testing.T) {
	system.SetDefaultEnv(system.NewMockEnv(map[string]string{UserPathEnv: "/custom"}))
	defer system.ResetDefaults()

	paths := DefaultPaths()
	if paths.UserDir != "/custom" {
		t.Errorf("UserDir = %q, want /custom", paths.UserDir)
	}
	if paths.SettingsFile != filepath.Join("/custom", SettingsName) {
		t.Errorf("SettingsFile = %q", paths.SettingsFile)
	}
}

func TestLoadSettings_Missing(t *testing.T) {
	fsys := system.NewMockFS()

	settings, err := LoadSettings(fsys, "/home/user/.openshot_qt/openshot.toml")
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if settings.DefaultLanguage != "Default" || settings.WebBackend != BackendAuto {
		t.Errorf("expected defaults, got %+v", settings)
	}
}

func TestLoadSettings_Valid(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/s.toml", []byte(`
default-language = "fr_FR"
debug-mode = true
web-backend = "webkit"
theme = "dark"
`), 0644)

	settings, err := LoadSettings(fsys, "/s.toml")
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	want := Settings{DefaultLanguage: "fr_FR", DebugMode: true, WebBackend: BackendWebKit, Theme: "dark"}
	if *settings != want {
		t.Errorf("settings = %+v, want %+v", *settings, want)
	}
}

func TestLoadSettings_Malformed(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/s.toml", []byte("default-language = "), 0644)

	if _, err := LoadSettings(fsys, "/s.toml"); err == nil {
		t.Error("LoadSettings() should fail on malformed TOML")
	}
}

func TestLoadSettings_InvalidBackend(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/s.toml", []byte(`web-backend = "gecko"`), 0644)

	_, err := LoadSettings(fsys, "/s.toml")
	if err == nil || !strings.Contains(err.Error(), "web-backend") {
		t.Errorf("LoadSettings() error = %v, want web-backend validation error", err)
	}
}

func TestSettings_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		cfg      ProcessConfig
		want     Session
	}{
		{
			name:     "defaults pass through",
			settings: *DefaultSettings(),
			cfg:      ProcessConfig{LogLevelConsole: LevelInfo, LogLevelFile: LevelInfo, WebBackend: BackendAuto},
			want:     Session{WebBackend: BackendAuto, LogLevelConsole: LevelInfo, LogLevelFile: LevelInfo},
		},
		{
			name:     "persisted language used without override",
			settings: Settings{DefaultLanguage: "de_DE", WebBackend: BackendWebEngine},
			cfg:      ProcessConfig{WebBackend: BackendAuto},
			want:     Session{Language: "de_DE", WebBackend: BackendWebEngine},
		},
		{
			name:     "command line wins",
			settings: Settings{DefaultLanguage: "de_DE", WebBackend: BackendWebEngine},
			cfg:      ProcessConfig{Language: "fr", WebBackend: BackendWebKit},
			want:     Session{Language: "fr", WebBackend: BackendWebKit},
		},
		{
			name:     "explicit auto overrides persisted backend",
			settings: Settings{DefaultLanguage: "Default", WebBackend: BackendWebKit},
			cfg:      ProcessConfig{WebBackend: BackendAuto, WebBackendSet: true},
			want:     Session{WebBackend: BackendAuto},
		},
		{
			name:     "debug mode raises both channels",
			settings: Settings{DefaultLanguage: "Default", DebugMode: true},
			cfg:      ProcessConfig{LogLevelConsole: LevelInfo, LogLevelFile: LevelInfo, WebBackend: BackendAuto},
			want:     Session{WebBackend: BackendAuto, LogLevelConsole: LevelDebug, LogLevelFile: LevelDebug},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.Resolve(&tt.cfg); got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadTheme(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/themes/theme.toml", []byte(`
name = "dark"
accent = "#ff8800"
`), 0644)

	theme, err := LoadTheme(fsys, "/themes/theme.toml")
	if err != nil {
		t.Fatalf("LoadTheme() error: %v", err)
	}
	if theme.Name != "dark" || theme.Accent != "#ff8800" {
		t.Errorf("theme = %+v", theme)
	}
	if theme.Muted != DefaultTheme().Muted {
		t.Errorf("unset colours should come from the default theme, got Muted=%q", theme.Muted)
	}

	if _, err := LoadTheme(fsys, "/missing.toml"); err == nil {
		t.Error("LoadTheme() should fail for a missing file")
	}
}
