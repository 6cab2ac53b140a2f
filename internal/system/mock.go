package system

import (
	"bytes"
	"io"
	"io/fs"
	"path/filepath"
	"sync"
	"time"
)

// MockFS implements FileSystem for testing.
type MockFS struct {
	mu    sync.RWMutex
	files map[string]*mockFile
	dirs  map[string]bool

	// Cwd is used to absolutize relative paths.
	Cwd string

	// Symlinks maps a link path to its target.
	Symlinks map[string]string

	// Error injection
	ReadFileErr   error
	StatErr       error
	MkdirAllErr   error
	OpenAppendErr error
	AbsErr        error
}

type mockFile struct {
	data *bytes.Buffer
	mode fs.FileMode
}

// NewMockFS creates a new MockFS with an empty filesystem rooted at /.
func NewMockFS() *MockFS {
	return &MockFS{
		files:    make(map[string]*mockFile),
		dirs:     make(map[string]bool),
		Cwd:      "/",
		Symlinks: make(map[string]string),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFS) AddFile(path string, data []byte, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: bytes.NewBuffer(data), mode: mode}
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

// AddDir adds a directory to the mock filesystem.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

// GetFile returns the contents of a file in the mock filesystem.
func (m *MockFS) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return f.data.Bytes(), true
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return bytes.Clone(f.data.Bytes()), nil
}

func (m *MockFS) Stat(path string) (fs.FileInfo, error) {
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if f, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(f.data.Len()), mode: f.mode}, nil
	}
	if _, ok := m.dirs[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), isDir: true, mode: fs.ModeDir | 0755}, nil
	}
	return nil, fs.ErrNotExist
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	current := path
	for current != "." && current != "/" {
		m.dirs[current] = true
		current = filepath.Dir(current)
	}
	return nil
}

func (m *MockFS) OpenAppend(path string) (io.WriteCloser, error) {
	if m.OpenAppendErr != nil {
		return nil, m.OpenAppendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[path]
	if !ok {
		f = &mockFile{data: &bytes.Buffer{}, mode: 0644}
		m.files[path] = f
	}
	return &mockWriter{mu: &m.mu, buf: f.data}, nil
}

func (m *MockFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, fileOk := m.files[path]
	_, dirOk := m.dirs[path]
	return fileOk || dirOk
}

func (m *MockFS) IsDir(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.dirs[path]
	return ok
}

func (m *MockFS) Abs(path string) (string, error) {
	if m.AbsErr != nil {
		return "", m.AbsErr
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join(m.Cwd, path), nil
}

// EvalSymlinks resolves entries registered in Symlinks; the result must exist.
func (m *MockFS) EvalSymlinks(path string) (string, error) {
	m.mu.RLock()
	target, ok := m.Symlinks[path]
	m.mu.RUnlock()
	if ok {
		path = target
	}
	if !m.Exists(path) {
		return "", fs.ErrNotExist
	}
	return path, nil
}

// mockWriter appends to a mock file under the filesystem lock.
type mockWriter struct {
	mu  *sync.RWMutex
	buf *bytes.Buffer
}

func (w *mockWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *mockWriter) Close() error { return nil }

// mockFileInfo implements fs.FileInfo for testing.
type mockFileInfo struct {
	name  string
	size  int64
	mode  fs.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Now() }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// MockEnv implements Environment for testing.
type MockEnv struct {
	mu   sync.Mutex
	vars map[string]string

	// Sets records every Setenv call in order.
	Sets []string

	// SetenvErr is returned by Setenv if set.
	SetenvErr error
}

// NewMockEnv creates a MockEnv seeded with vars.
func NewMockEnv(vars map[string]string) *MockEnv {
	env := &MockEnv{vars: make(map[string]string)}
	for k, v := range vars {
		env.vars[k] = v
	}
	return env
}

func (e *MockEnv) LookupEnv(key string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.vars[key]
	return v, ok
}

func (e *MockEnv) Setenv(key, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.SetenvErr != nil {
		return e.SetenvErr
	}
	e.vars[key] = value
	e.Sets = append(e.Sets, key+"="+value)
	return nil
}

// Snapshot returns a copy of the current variables.
func (e *MockEnv) Snapshot() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}
