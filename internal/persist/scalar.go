// Package persist ties a types.Store to the scalar decoder: one named
// resource holding one decimal integer.
package persist

import (
	"io"
	"log/slog"
	"os"

	"github.com/mesh-intelligence/keeper/internal/scalar"
	"github.com/mesh-intelligence/keeper/pkg/types"
)

// Scalar is a persisted integer stored as decimal text under Name.
type Scalar struct {
	store  types.Store
	name   string
	diag   io.Writer
	logger *slog.Logger
}

// Option configures a Scalar.
type Option func(*Scalar)

// WithDiagnostics sets the stream decode failures are reported on.
// Defaults to os.Stderr; nil silences diagnostics.
func WithDiagnostics(w io.Writer) Option {
	return func(s *Scalar) { s.diag = w }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scalar) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Scalar bound to name in store.
func New(store types.Store, name string, opts ...Option) *Scalar {
	s := &Scalar{
		store:  store,
		name:   name,
		diag:   os.Stderr,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the resource name.
func (s *Scalar) Name() string { return s.name }

// Load returns the best-known value. If the resource does not exist it
// returns fallback, an Absent outcome and found=false, and reports nothing.
// Otherwise the content is decoded; an Empty or Malformed outcome is
// reported on the diagnostic stream and fallback is returned.
func (s *Scalar) Load(fallback int) (value int, outcome scalar.Outcome, found bool) {
	if !s.store.Exists(s.name) {
		s.logger.Debug("no persisted value", "name", s.name, "fallback", fallback)
		return fallback, scalar.Outcome{Kind: scalar.Absent}, false
	}

	raw := s.store.Read(s.name)
	outcome = scalar.Decode(raw)
	if !outcome.OK() {
		scalar.Report(s.diag, outcome)
		s.logger.Debug("persisted value rejected", "name", s.name, "kind", outcome.Kind.String())
	}
	return outcome.Or(fallback), outcome, true
}

// Save writes n as decimal text, replacing prior content.
func (s *Scalar) Save(n int) bool {
	ok := s.store.Write(s.name, scalar.Encode(n))
	if !ok {
		s.logger.Warn("persist failed", "name", s.name, "value", n)
	}
	return ok
}

// Reset deletes the resource.
func (s *Scalar) Reset() bool {
	return s.store.Delete(s.name)
}
