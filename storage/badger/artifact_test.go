package badger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/core"
	"github.com/poiesic/courserec/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArtifactRepository(t *testing.T) {
	_, err := NewArtifactRepository(nil)
	assert.Equal(t, storage.ErrBackendRequired, err)
}

func TestArtifactRepository_EmptyStore(t *testing.T) {
	repo, backend, err := NewMemoryRepository(nil)
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	_, err = repo.LoadBundle(ctx)
	assert.ErrorIs(t, err, storage.ErrEmptyStore)

	_, err = repo.GetMeta(ctx)
	assert.ErrorIs(t, err, storage.ErrEmptyStore)

	_, err = repo.GetCourse(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestArtifactRepository_SaveLoad(t *testing.T) {
	original := artifact.FixtureBundle()
	repo, backend, err := NewMemoryRepository(original)
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	loaded, err := repo.LoadBundle(ctx)
	require.NoError(t, err)
	require.NoError(t, loaded.Validate())

	assert.Equal(t, original.Courses, loaded.Courses)
	assert.Equal(t, original.Vectorizer.Terms, loaded.Vectorizer.Terms)
	assert.Equal(t, *original.DocumentTerm, *loaded.DocumentTerm)
	assert.Equal(t, *original.Similarity, *loaded.Similarity)

	want, err := artifact.Fingerprint(original)
	require.NoError(t, err)
	got, err := artifact.Fingerprint(loaded)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Equal(t, "badger:memory", repo.Location())
}

func TestArtifactRepository_Meta(t *testing.T) {
	original := artifact.FixtureBundle()
	repo, backend, err := NewMemoryRepository(original)
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	meta, err := repo.GetMeta(context.Background())
	require.NoError(t, err)

	fp, err := artifact.Fingerprint(original)
	require.NoError(t, err)
	assert.Equal(t, artifact.FormatVersion, meta.FormatVersion)
	assert.Equal(t, 9, meta.Courses)
	assert.Equal(t, original.Vectorizer.Len(), meta.Terms)
	assert.Equal(t, fp, meta.Fingerprint)
	assert.NotZero(t, meta.ImportedAt)
}

func TestArtifactRepository_GetCourseAndRow(t *testing.T) {
	original := artifact.FixtureBundle()
	repo, backend, err := NewMemoryRepository(original)
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	course, err := repo.GetCourse(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Machine Learning A-Z", course.Title)

	row, err := repo.GetSimilarityRow(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, original.Similarity.Row(2), row)

	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"past the end", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.GetCourse(ctx, tt.index)
			assert.ErrorIs(t, err, storage.ErrNotFound)
			_, err = repo.GetSimilarityRow(ctx, tt.index)
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestArtifactRepository_SaveReplaces(t *testing.T) {
	repo, backend, err := NewMemoryRepository(artifact.FixtureBundle())
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	courses := []core.Course{
		{Title: "Go in Action", CleanTitle: "go action"},
		{Title: "Concurrency in Go", CleanTitle: "concurrency go"},
	}
	vocab, dtm := artifact.CountMatrix(courses)
	sim, err := core.NewDenseMatrix([][]float64{{1, 0.3}, {0.3, 1}})
	require.NoError(t, err)
	smaller := &artifact.Bundle{Vectorizer: vocab, DocumentTerm: dtm, Similarity: sim, Courses: courses}

	ctx := context.Background()
	require.NoError(t, repo.SaveBundle(ctx, smaller))

	loaded, err := repo.LoadBundle(ctx)
	require.NoError(t, err)
	assert.Equal(t, courses, loaded.Courses)
	assert.Equal(t, 2, loaded.Similarity.Rows)

	_, err = repo.GetCourse(ctx, 5)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestArtifactRepository_SaveInvalid(t *testing.T) {
	repo, backend, err := NewMemoryRepository(nil)
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	b := artifact.FixtureBundle()
	b.Courses = b.Courses[:3]
	err = repo.SaveBundle(context.Background(), b)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	_, err = repo.LoadBundle(context.Background())
	assert.ErrorIs(t, err, storage.ErrEmptyStore)
}

func TestArtifactRepository_CanceledContext(t *testing.T) {
	repo, backend, err := NewMemoryRepository(artifact.FixtureBundle())
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repo.LoadBundle(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.SaveBundle(ctx, artifact.FixtureBundle()), context.Canceled)
}

func TestArtifactRepository_ReadOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	ctx := context.Background()

	// Import with a writable backend
	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	repo, err := NewArtifactRepository(backend)
	require.NoError(t, err)
	require.NoError(t, repo.SaveBundle(ctx, artifact.FixtureBundle()))
	require.NoError(t, backend.Close())

	// Reopen read-only
	backend, err = OpenBackend(dir, false, ReadOnly())
	require.NoError(t, err)
	defer backend.Close()
	repo, err = NewArtifactRepository(backend)
	require.NoError(t, err)

	assert.True(t, backend.IsReadOnly())
	assert.Equal(t, "badger:"+dir, repo.Location())

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.Len())

	err = repo.SaveBundle(ctx, artifact.FixtureBundle())
	assert.ErrorIs(t, err, storage.ErrReadOnly)
}

func TestArtifactRepository_AsLoaderSource(t *testing.T) {
	repo, backend, err := NewMemoryRepository(artifact.FixtureBundle())
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	loader, err := artifact.NewLoader(repo)
	require.NoError(t, err)

	b, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, b.Len())
	assert.True(t, loader.Loaded())
}
