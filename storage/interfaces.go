package storage

import (
	"context"

	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/core"
)

type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

type ArtifactRepository interface {
	Repository
	artifact.Source

	// SaveBundle replaces the stored artifacts with b.
	// The bundle is validated first.
	// Returns ErrReadOnly if the store was opened read-only.
	SaveBundle(ctx context.Context, b *artifact.Bundle) error

	// LoadBundle reads all four artifacts.
	// Returns ErrEmptyStore if nothing has been imported.
	LoadBundle(ctx context.Context) (*artifact.Bundle, error)

	// GetMeta returns the description written by the last SaveBundle.
	// Returns ErrEmptyStore if nothing has been imported.
	GetMeta(ctx context.Context) (*core.StoreMeta, error)

	// GetCourse retrieves a single course by row.
	// Returns ErrNotFound if the row doesn't exist.
	GetCourse(ctx context.Context, index int) (*core.Course, error)

	// GetSimilarityRow retrieves one row of the similarity matrix.
	// Returns ErrNotFound if the row doesn't exist.
	GetSimilarityRow(ctx context.Context, index int) ([]float64, error)
}
