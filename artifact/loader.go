package artifact

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Loader loads a bundle from a Source once and hands out the same
// read-only Bundle on every later call. Failed loads are not cached.
type Loader struct {
	source Source
	logger *slog.Logger

	mu     sync.Mutex
	bundle *Bundle
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewLoader creates a loader for source.
func NewLoader(source Source, opts ...LoaderOption) (*Loader, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}

	l := &Loader{
		source: source,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Load returns the cached bundle, loading and validating it on first use.
// Errors are returned as *LoadError.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.bundle != nil {
		return l.bundle, nil
	}

	start := time.Now()
	bundle, err := l.source.Load(ctx)
	if err != nil {
		l.logger.Error("error loading artifact", "location", l.source.Location(), "err", err)
		return nil, newLoadError(l.source.Location(), err)
	}
	if err := bundle.Validate(); err != nil {
		l.logger.Error("artifact failed validation", "location", l.source.Location(), "err", err)
		return nil, newLoadError(l.source.Location(), err)
	}

	l.logger.Info("artifact loaded",
		"location", l.source.Location(),
		"courses", bundle.Len(),
		"terms", bundle.Vectorizer.Len(),
		"elapsed", time.Since(start))
	l.bundle = bundle
	return bundle, nil
}

// Loaded reports whether a bundle has been loaded.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bundle != nil
}

// Location returns the source location.
func (l *Loader) Location() string {
	return l.source.Location()
}
