// Package filestore implements the filesystem storage adapter for keeper.
// Each named resource is one plain-text file; names are resolved relative to
// the configured DataDir unless they are absolute.
package filestore

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/keeper/pkg/types"
)

// Backend implements types.Backend on top of the host filesystem.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	logger   *slog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for debug output on failed operations.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBackend creates a new filesystem backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach validates config and creates DataDir if it does not exist.
// An empty DataDir means names resolve against the working directory.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.DataDir != "" {
		if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
			return err
		}
	}

	b.dataDir = config.DataDir
	b.attached = true
	return nil
}

// Detach marks the backend detached. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	b.dataDir = ""
	return nil
}

// Path returns the filesystem path a resource name resolves to.
func (b *Backend) Path(name string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.resolve(name)
}

func (b *Backend) resolve(name string) string {
	if filepath.IsAbs(name) || b.dataDir == "" {
		return name
	}
	return filepath.Join(b.dataDir, name)
}

// path returns the resolved path and whether the backend is attached.
func (b *Backend) path(op, name string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		b.logger.Debug("filestore operation on detached backend", "op", op, "name", name)
		return "", false
	}
	return b.resolve(name), true
}

// Exists reports whether the resource can be opened for reading.
func (b *Backend) Exists(name string) bool {
	p, ok := b.path("exists", name)
	if !ok {
		return false
	}
	f, err := os.Open(p)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Read returns the file content, or "" if it cannot be opened.
func (b *Backend) Read(name string) string {
	p, ok := b.path("read", name)
	if !ok {
		return ""
	}
	f, err := os.Open(p)
	if err != nil {
		b.logger.Debug("open for read failed", "path", p, "error", err)
		return ""
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		// Whatever was read before the failure is returned.
		b.logger.Debug("read failed", "path", p, "error", err)
	}
	return string(data)
}

// Write truncates or creates the file and stores text.
// The write is not atomic; a crash mid-write can leave the file truncated.
func (b *Backend) Write(name, text string) bool {
	return b.put("write", name, text, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// Append writes text at the end of the file, creating it if absent.
func (b *Backend) Append(name, text string) bool {
	return b.put("append", name, text, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

// put opens the file with flag and writes text. Only a failed open is
// reported as false; write and close errors are logged.
func (b *Backend) put(op, name, text string, flag int) bool {
	p, ok := b.path(op, name)
	if !ok {
		return false
	}
	f, err := os.OpenFile(p, flag, 0o644)
	if err != nil {
		b.logger.Debug("open for "+op+" failed", "path", p, "error", err)
		return false
	}
	if _, err := io.WriteString(f, text); err != nil {
		b.logger.Warn(op+" incomplete", "path", p, "error", err)
	}
	if err := f.Close(); err != nil {
		b.logger.Warn("close after "+op+" failed", "path", p, "error", err)
	}
	return true
}

// Delete removes the file; true iff the removal succeeded.
func (b *Backend) Delete(name string) bool {
	p, ok := b.path("delete", name)
	if !ok {
		return false
	}
	if err := os.Remove(p); err != nil {
		b.logger.Debug("remove failed", "path", p, "error", err)
		return false
	}
	return true
}

var _ types.Backend = (*Backend)(nil)
