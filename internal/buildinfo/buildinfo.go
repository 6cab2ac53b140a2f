// Package buildinfo exposes the version and install origin of the binary.
package buildinfo

import (
	"os"
	"path/filepath"
	"runtime/debug"
)

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/Lucioric2000/openshot-qt/internal/buildinfo.Version=3.2.1"
var Version = ""

// fallbackVersion is reported when neither ldflags nor module info provide one.
const fallbackVersion = "3.1.1-dev"

// GetVersion returns the build version.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return fallbackVersion
}

// Origin returns the directory the program was loaded from.
func Origin() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	if real, err := filepath.EvalSymlinks(exe); err == nil {
		exe = real
	}
	return filepath.Dir(exe)
}
