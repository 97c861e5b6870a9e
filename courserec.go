// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package courserec recommends courses similar to a search term.
//
// A Catalog ties together an artifact source (a compressed artifact file or
// a read-only Badger store), a lazy loader, and the recommender:
//
//	catalog, err := courserec.NewCatalog(courserec.WithArtifactPath("recommendation_model.crb.gz"))
//	if err != nil {
//		return err
//	}
//	defer catalog.Close()
//
//	titles, err := catalog.RecommendCourses(ctx, "python", 6)
//
// The artifacts are read on the first query and shared read-only by every
// later one.
package courserec

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/recommend"
	"github.com/poiesic/courserec/storage/badger"
)

// Catalog answers recommendation queries from one artifact source. The
// artifacts are loaded on first use and shared by every query. It is safe
// for concurrent use.
type Catalog struct {
	backend *badger.Backend
	loader  *artifact.Loader
	logger  *slog.Logger
	monitor recommend.Monitor

	mu          sync.Mutex
	recommender *recommend.Recommender
	closed      bool
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	artifactPath string
	storePath    string
	source       artifact.Source
	logger       *slog.Logger
	monitor      recommend.Monitor
}

// WithArtifactPath reads the artifacts from a compressed artifact file.
// Default is artifact.DefaultPath.
func WithArtifactPath(path string) CatalogOption {
	return func(o *catalogOptions) {
		o.artifactPath = path
	}
}

// WithBadgerStore reads the artifacts from a Badger directory opened read-only.
func WithBadgerStore(dir string) CatalogOption {
	return func(o *catalogOptions) {
		o.storePath = dir
	}
}

// WithSource reads the artifacts from src. Overrides the path options.
func WithSource(src artifact.Source) CatalogOption {
	return func(o *catalogOptions) {
		o.source = src
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) CatalogOption {
	return func(o *catalogOptions) {
		o.logger = logger
	}
}

// WithMonitor attaches a monitor to every recommendation.
func WithMonitor(monitor recommend.Monitor) CatalogOption {
	return func(o *catalogOptions) {
		o.monitor = monitor
	}
}

// NewCatalog creates a catalog. Nothing is read until the first query.
func NewCatalog(opts ...CatalogOption) (*Catalog, error) {
	options := &catalogOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	c := &Catalog{
		logger:  options.logger,
		monitor: options.monitor,
	}

	source := options.source
	if source == nil {
		switch {
		case options.storePath != "" && options.artifactPath != "":
			return nil, ErrConflictingSources
		case options.storePath != "":
			backend, err := badger.OpenBackend(options.storePath, false,
				badger.ReadOnly(), badger.WithLogger(options.logger))
			if err != nil {
				return nil, err
			}
			repo, err := badger.NewArtifactRepository(backend)
			if err != nil {
				backend.Close()
				return nil, err
			}
			c.backend = backend
			source = repo
		default:
			source = artifact.NewFileSource(options.artifactPath)
		}
	}

	loader, err := artifact.NewLoader(source, artifact.WithLogger(options.logger))
	if err != nil {
		if c.backend != nil {
			c.backend.Close()
		}
		return nil, err
	}
	c.loader = loader
	return c, nil
}

// Close releases the store, if one is open.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.backend != nil {
		if err := c.backend.Close(); err != nil {
			c.logger.Error("error closing artifact store", "err", err)
			return err
		}
	}
	return nil
}

// Location describes where the artifacts are read from.
func (c *Catalog) Location() string {
	return c.loader.Location()
}

// Ready reports whether the artifacts have been loaded.
func (c *Catalog) Ready() bool {
	return c.loader.Loaded()
}

// Bundle returns the loaded artifacts, loading them on first use.
func (c *Catalog) Bundle(ctx context.Context) (*artifact.Bundle, error) {
	return c.loader.Load(ctx)
}

// Recommender returns the recommender, loading the artifacts on first use.
func (c *Catalog) Recommender(ctx context.Context) (*recommend.Recommender, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrCatalogClosed
	}
	if c.recommender != nil {
		return c.recommender, nil
	}

	bundle, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	opts := []recommend.Option{recommend.WithLogger(c.logger)}
	if c.monitor != nil {
		opts = append(opts, recommend.WithMonitor(c.monitor))
	}
	r, err := recommend.New(bundle, opts...)
	if err != nil {
		return nil, err
	}
	c.recommender = r
	return r, nil
}

// Recommend returns up to limit courses for query.
func (c *Catalog) Recommend(ctx context.Context, query string, limit int) (recommend.Result, error) {
	r, err := c.Recommender(ctx)
	if err != nil {
		return recommend.Result{}, err
	}
	return r.Recommend(query, limit)
}

// RecommendCourses returns the display lines for courseName: up to
// numRecommendations titles, or the single not-found message.
func (c *Catalog) RecommendCourses(ctx context.Context, courseName string, numRecommendations int) ([]string, error) {
	result, err := c.Recommend(ctx, courseName, numRecommendations)
	if err != nil {
		return nil, err
	}
	return result.Lines(), nil
}
