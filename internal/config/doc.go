// Package config provides configuration types and loading for openshot.
//
// # Process Configuration
//
// ProcessConfig is built once by the launcher from the command line and is
// handed to the application by pointer. After the launcher finishes its
// configuration steps nothing writes to it again:
//
//	type ProcessConfig struct {
//	    LogLevelConsole LogLevel             // console channel severity
//	    LogLevelFile    LogLevel             // file channel severity
//	    ModelTest       bool                 // list model invariant checks
//	    WebBackend      WebBackend           // auto, webkit or webengine
//	    Language        string               // session language override
//	    ModulePath      *modpath.SearchPath  // resource search roots
//	}
//
// # Settings
//
// Settings are the persisted preferences stored as TOML in the user
// directory (~/.openshot_qt/openshot.toml by default):
//
//	default-language = "fr_FR"
//	debug-mode = false
//	web-backend = "auto"
//	theme = "dark"
//
// Command-line choices are layered on top of the persisted values by
// Settings.Resolve; the settings file itself is never written here.
//
// # Themes
//
// A theme.toml found on the module search path supplies the main window
// colours. The first root that contains the file wins.
package config
