// Package system provides abstractions for OS operations to enable testing.
package system

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem abstracts the file system operations used during startup.
type FileSystem interface {
	// ReadFile reads the named file and returns the contents.
	ReadFile(path string) ([]byte, error)

	// Stat returns file info for the named file.
	Stat(path string) (fs.FileInfo, error)

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm fs.FileMode) error

	// OpenAppend opens the named file for appending, creating it if necessary.
	OpenAppend(path string) (io.WriteCloser, error)

	// Exists returns true if the path exists.
	Exists(path string) bool

	// IsDir returns true if the path is a directory.
	IsDir(path string) bool

	// Abs returns an absolute representation of path.
	Abs(path string) (string, error)

	// EvalSymlinks returns the path name after evaluating any symbolic links.
	EvalSymlinks(path string) (string, error)
}

// Environment abstracts process environment access for testability.
type Environment interface {
	// LookupEnv retrieves the value of the environment variable named by key.
	LookupEnv(key string) (string, bool)

	// Setenv sets the value of the environment variable named by key.
	Setenv(key, value string) error
}

// Default instances using real OS operations.
var (
	defaultFS  FileSystem  = &osFileSystem{}
	defaultEnv Environment = &osEnvironment{}
)

// DefaultFS returns the default FileSystem implementation using real OS operations.
func DefaultFS() FileSystem {
	return defaultFS
}

// DefaultEnv returns the default Environment backed by the process environment.
func DefaultEnv() Environment {
	return defaultEnv
}

// SetDefaultEnv sets the default Environment (useful for testing).
func SetDefaultEnv(env Environment) {
	defaultEnv = env
}

// ResetDefaults restores the default OS implementations.
func ResetDefaults() {
	defaultFS = &osFileSystem{}
	defaultEnv = &osEnvironment{}
}

// osFileSystem implements FileSystem using real OS operations.
type osFileSystem struct{}

func (f *osFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (f *osFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (f *osFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (f *osFileSystem) OpenAppend(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func (f *osFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (f *osFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (f *osFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (f *osFileSystem) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// osEnvironment implements Environment using the process environment.
type osEnvironment struct{}

func (e *osEnvironment) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (e *osEnvironment) Setenv(key, value string) error {
	return os.Setenv(key, value)
}
