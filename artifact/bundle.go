package artifact

import (
	"fmt"

	"github.com/poiesic/courserec/core"
)

// DefaultPath is where the artifact is looked up when no path is configured.
const DefaultPath = "recommendation_model.crb.gz"

// Bundle holds the four precomputed artifacts in their on-disk order:
// vectorizer, document-term matrix, similarity matrix and course table.
// A loaded Bundle is never mutated and may be shared between goroutines.
type Bundle struct {
	Vectorizer   *core.Vocabulary
	DocumentTerm *core.SparseMatrix
	Similarity   *core.DenseMatrix
	Courses      []core.Course
}

// Len returns the number of courses.
func (b *Bundle) Len() int {
	return len(b.Courses)
}

// Validate checks that the four artifacts are present and agree on their
// dimensions.
//
// Validation rules:
//   - all four parts are present
//   - every course has a title
//   - the document-term matrix is well formed, has one row per course and
//     one column per vocabulary term
//   - the similarity matrix is square with one row per course
func (b *Bundle) Validate() error {
	if b == nil || b.Vectorizer == nil || b.DocumentTerm == nil || b.Similarity == nil {
		return ErrNilBundle
	}

	for i := range b.Courses {
		if err := core.ValidateCourse(&b.Courses[i]); err != nil {
			return fmt.Errorf("course %d: %w", i, err)
		}
	}

	if err := core.ValidateSparseMatrix(b.DocumentTerm); err != nil {
		return fmt.Errorf("document-term matrix: %w", err)
	}
	if err := core.ValidateSimilarityMatrix(b.Similarity); err != nil {
		return fmt.Errorf("similarity matrix: %w", err)
	}

	n := len(b.Courses)
	if b.DocumentTerm.Rows != n {
		return fmt.Errorf("%w: document-term matrix has %d rows for %d courses",
			core.ErrDimensionMismatch, b.DocumentTerm.Rows, n)
	}
	if b.DocumentTerm.Cols != b.Vectorizer.Len() {
		return fmt.Errorf("%w: document-term matrix has %d columns for %d terms",
			core.ErrDimensionMismatch, b.DocumentTerm.Cols, b.Vectorizer.Len())
	}
	if b.Similarity.Rows != n {
		return fmt.Errorf("%w: similarity matrix is %dx%d for %d courses",
			core.ErrDimensionMismatch, b.Similarity.Rows, b.Similarity.Cols, n)
	}
	return nil
}

// Stats summarizes a bundle for reporting.
type Stats struct {
	Courses        int
	MissingClean   int
	Terms          int
	DocumentTermNZ int
	Fingerprint    string
}

// Describe returns summary statistics for the bundle.
func (b *Bundle) Describe() (Stats, error) {
	fp, err := Fingerprint(b)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{
		Courses:        b.Len(),
		Terms:          b.Vectorizer.Len(),
		DocumentTermNZ: b.DocumentTerm.NNZ(),
		Fingerprint:    fp,
	}
	for _, c := range b.Courses {
		if !c.HasCleanTitle() {
			stats.MissingClean++
		}
	}
	return stats, nil
}
