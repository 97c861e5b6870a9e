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


package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/courserec/artifact"
	"github.com/poiesic/courserec/core"
	"github.com/poiesic/courserec/storage"
)

// ArtifactRepository implements storage.ArtifactRepository for BadgerDB.
type ArtifactRepository struct {
	backend *Backend
}

var _ storage.ArtifactRepository = (*ArtifactRepository)(nil)

// NewArtifactRepository creates a new ArtifactRepository.
func NewArtifactRepository(backend *Backend) (*ArtifactRepository, error) {
	if backend == nil {
		return nil, storage.ErrBackendRequired
	}
	return &ArtifactRepository{
		backend: backend,
	}, nil
}

// Close is a no-op; the backend is owned by the caller.
func (r *ArtifactRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ArtifactRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// Location describes the store for log and error messages.
func (r *ArtifactRepository) Location() string {
	if r.backend.Path() == "" {
		return "badger:memory"
	}
	return "badger:" + r.backend.Path()
}

// Load reads the stored bundle. It implements artifact.Source.
func (r *ArtifactRepository) Load(ctx context.Context) (*artifact.Bundle, error) {
	return r.LoadBundle(ctx)
}

// SaveBundle replaces the stored artifacts with b.
func (r *ArtifactRepository) SaveBundle(ctx context.Context, b *artifact.Bundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsReadOnly() {
		return storage.ErrReadOnly
	}
	if err := b.Validate(); err != nil {
		return err
	}
	fingerprint, err := artifact.Fingerprint(b)
	if err != nil {
		return err
	}

	if err := r.backend.DropPrefix(allPrefixes()...); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}

	meta := &core.StoreMeta{
		FormatVersion: artifact.FormatVersion,
		Courses:       b.Len(),
		Terms:         b.Vectorizer.Len(),
		Fingerprint:   fingerprint,
		ImportedAt:    time.Now().UTC().UnixMicro(),
	}

	return r.backend.WriteBatch(func(wb *badger.WriteBatch) error {
		if err := wb.Set([]byte(vocabularyKey), storage.MarshalVocabulary(b.Vectorizer)); err != nil {
			return err
		}
		if err := wb.Set([]byte(documentTermKey), storage.MarshalSparseMatrix(b.DocumentTerm)); err != nil {
			return err
		}
		for i := range b.Courses {
			if err := wb.Set(makeCourseKey(i), storage.MarshalCourse(&b.Courses[i])); err != nil {
				return err
			}
			if err := wb.Set(makeSimilarityRowKey(i), storage.MarshalScores(b.Similarity.Row(i))); err != nil {
				return err
			}
		}
		// Meta goes last; a store without it reads as empty
		return wb.Set([]byte(metaKey), storage.MarshalStoreMeta(meta))
	})
}

// LoadBundle reads all four artifacts.
func (r *ArtifactRepository) LoadBundle(ctx context.Context) (*artifact.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var bundle *artifact.Bundle
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := readMeta(tx)
		if err != nil {
			return err
		}
		if meta.FormatVersion != artifact.FormatVersion {
			return fmt.Errorf("%w: %d", artifact.ErrUnsupportedVersion, meta.FormatVersion)
		}

		var vocab *core.Vocabulary
		if err := readValue(tx, []byte(vocabularyKey), func(val []byte) (err error) {
			vocab, err = storage.UnmarshalVocabulary(val)
			return
		}); err != nil {
			return fmt.Errorf("vectorizer: %w", err)
		}

		var dtm *core.SparseMatrix
		if err := readValue(tx, []byte(documentTermKey), func(val []byte) (err error) {
			dtm, err = storage.UnmarshalSparseMatrix(val)
			return
		}); err != nil {
			return fmt.Errorf("document-term matrix: %w", err)
		}

		courses := make([]core.Course, 0, meta.Courses)
		if err := scanRows(tx, coursePrefix, func(val []byte) error {
			course, err := storage.UnmarshalCourse(val)
			if err != nil {
				return err
			}
			courses = append(courses, *course)
			return nil
		}); err != nil {
			return fmt.Errorf("course table: %w", err)
		}

		rows := make([][]float64, 0, meta.Courses)
		if err := scanRows(tx, similarityRowPrefix, func(val []byte) error {
			row, err := storage.UnmarshalScores(val)
			if err != nil {
				return err
			}
			rows = append(rows, row)
			return nil
		}); err != nil {
			return fmt.Errorf("similarity matrix: %w", err)
		}
		sim, err := core.NewDenseMatrix(rows)
		if err != nil {
			return fmt.Errorf("similarity matrix: %w", err)
		}
		if len(courses) != meta.Courses {
			return fmt.Errorf("%w: %d courses stored, meta records %d",
				core.ErrDimensionMismatch, len(courses), meta.Courses)
		}

		bundle = &artifact.Bundle{
			Vectorizer:   vocab,
			DocumentTerm: dtm,
			Similarity:   sim,
			Courses:      courses,
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

// GetMeta returns the description written by the last SaveBundle.
func (r *ArtifactRepository) GetMeta(ctx context.Context) (*core.StoreMeta, error) {
	var meta *core.StoreMeta
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		meta, err = readMeta(tx)
		return err
	}, false)
	return meta, err
}

// GetCourse retrieves a single course by row.
func (r *ArtifactRepository) GetCourse(ctx context.Context, index int) (*core.Course, error) {
	if index < 0 {
		return nil, storage.ErrNotFound
	}
	var course *core.Course
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return readValue(tx, makeCourseKey(index), func(val []byte) (err error) {
			course, err = storage.UnmarshalCourse(val)
			return
		})
	}, false)
	return course, err
}

// GetSimilarityRow retrieves one row of the similarity matrix.
func (r *ArtifactRepository) GetSimilarityRow(ctx context.Context, index int) ([]float64, error) {
	if index < 0 {
		return nil, storage.ErrNotFound
	}
	var row []float64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return readValue(tx, makeSimilarityRowKey(index), func(val []byte) (err error) {
			row, err = storage.UnmarshalScores(val)
			return
		})
	}, false)
	return row, err
}

// Helper methods

// readValue reads a single key, mapping a missing key to storage.ErrNotFound.
func readValue(tx *badger.Txn, key []byte, fn func(val []byte) error) error {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		return err
	}
	return item.Value(fn)
}

func readMeta(tx *badger.Txn) (*core.StoreMeta, error) {
	var meta *core.StoreMeta
	err := readValue(tx, []byte(metaKey), func(val []byte) (err error) {
		meta, err = storage.UnmarshalStoreMeta(val)
		return
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, storage.ErrEmptyStore
	}
	return meta, err
}

// scanRows visits the rows under prefix in order. Rows must be contiguous
// from zero.
func scanRows(tx *badger.Txn, prefix string, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix + ":")
	iter := tx.NewIterator(opts)
	defer iter.Close()

	want := 0
	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()
		if got := indexFromKey(item.Key()); got != want {
			return fmt.Errorf("%w: row %d missing", storage.ErrNotFound, want)
		}
		if err := item.Value(fn); err != nil {
			return err
		}
		want++
	}
	return nil
}
