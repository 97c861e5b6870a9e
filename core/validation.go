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


package core

import (
	"fmt"
	"math"
)

// MaxLength bounds every decoded slice length. It covers a dense
// similarity matrix of a few thousand courses.
const MaxLength = 1 << 25

// ValidateLength rejects decoded slice lengths above MaxLength before the
// slice is allocated.
func ValidateLength(length int) error {
	if length > MaxLength {
		return fmt.Errorf("%w: %d exceeds %d", ErrInvalidLength, length, MaxLength)
	}
	return nil
}

// ValidateCourse validates a Course according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//
// NOT validated:
//   - CleanTitle (empty marks a missing key and is tolerated)
func ValidateCourse(course *Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", ErrInvalidCourse)
	}

	if course.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCourse, ErrEmptyTitle)
	}

	return nil
}

// ValidateSparseMatrix checks the CSR structure of a matrix.
//
// Validation rules:
//   - Rows and Cols are non-negative
//   - Indptr has Rows+1 entries, starts at 0, is non-decreasing and ends at NNZ
//   - Indices and Data have the same length
//   - every column index is within [0, Cols)
func ValidateSparseMatrix(m *SparseMatrix) error {
	if m == nil {
		return fmt.Errorf("%w: matrix is nil", ErrInvalidMatrix)
	}
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("%w: negative shape (%d, %d)", ErrInvalidMatrix, m.Rows, m.Cols)
	}
	if len(m.Indptr) != m.Rows+1 {
		return fmt.Errorf("%w: indptr has %d entries, want %d", ErrInvalidMatrix, len(m.Indptr), m.Rows+1)
	}
	if len(m.Indices) != len(m.Data) {
		return fmt.Errorf("%w: %d indices for %d values", ErrInvalidMatrix, len(m.Indices), len(m.Data))
	}
	if m.Indptr[0] != 0 || m.Indptr[m.Rows] != len(m.Data) {
		return fmt.Errorf("%w: indptr must span [0, %d]", ErrInvalidMatrix, len(m.Data))
	}
	for i := 0; i < m.Rows; i++ {
		if m.Indptr[i] > m.Indptr[i+1] {
			return fmt.Errorf("%w: indptr decreases at row %d", ErrInvalidMatrix, i)
		}
	}
	for _, col := range m.Indices {
		if col < 0 || col >= m.Cols {
			return fmt.Errorf("%w: column index %d out of range [0, %d)", ErrInvalidMatrix, col, m.Cols)
		}
	}
	return nil
}

// ValidateSimilarityMatrix checks that a similarity matrix is square and
// fully populated.
func ValidateSimilarityMatrix(m *DenseMatrix) error {
	if m == nil {
		return fmt.Errorf("%w: matrix is nil", ErrInvalidMatrix)
	}
	if !m.IsSquare() {
		return fmt.Errorf("%w: %w: shape (%d, %d)", ErrInvalidMatrix, ErrNotSquare, m.Rows, m.Cols)
	}
	if len(m.Values) != m.Rows*m.Cols {
		return fmt.Errorf("%w: %d values for shape (%d, %d)", ErrInvalidMatrix, len(m.Values), m.Rows, m.Cols)
	}
	for i, v := range m.Values {
		if math.IsInf(v, 0) {
			return fmt.Errorf("%w: infinite score at row %d", ErrInvalidMatrix, i/m.Cols)
		}
	}
	return nil
}
