// Package watch follows a file-backed scalar and reports each change to it
// as the file is written, replaced or removed on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mesh-intelligence/keeper/internal/scalar"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

// Source is a Store whose resources are files on the host filesystem.
// filestore.Backend implements it.
type Source interface {
	types.Store
	Path(name string) string
}

// Change is the state of the watched resource after one filesystem event.
// Text is meaningful only when Found is true.
type Change struct {
	Name  string
	Found bool
	Text  string
}

// Outcome decodes Text, or returns an Absent outcome when the resource is
// gone.
func (c Change) Outcome() scalar.Outcome {
	if !c.Found {
		return scalar.Outcome{Kind: scalar.Absent}
	}
	return scalar.Decode(c.Text)
}

// Watcher monitors a single resource of a Source.
type Watcher struct {
	source  Source
	name    string
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for resource name in source. The directory the name
// resolves into must exist; the resource itself need not.
func New(source Source, name string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(source.Path(name))
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	// Watch the directory; editors and rename-based writers replace the file.
	dir := filepath.Dir(absPath)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", dir, err)
	}

	w := &Watcher{source: source, name: name, path: absPath, watcher: fw, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Run calls fn after every write, create, rename or removal of the resource.
// The resource is re-read through the Source: Exists decides Found, then
// Read supplies Text. It returns nil when ctx is cancelled and closes the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context, fn func(Change)) error {
	defer w.watcher.Close()

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			w.logger.Debug("resource changed", "path", event.Name, "op", event.Op.String())
			fn(w.current())
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// current snapshots the resource. Exists comes first because Read's empty
// string does not distinguish a missing file from an empty one.
func (w *Watcher) current() Change {
	if !w.source.Exists(w.name) {
		return Change{Name: w.name}
	}
	return Change{Name: w.name, Found: true, Text: w.source.Read(w.name)}
}
