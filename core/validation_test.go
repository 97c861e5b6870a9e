package core

import (
	"errors"
	"math"
	"testing"
)

func TestValidateCourse(t *testing.T) {
	tests := []struct {
		name    string
		course  *Course
		wantErr error
	}{
		{
			name:    "valid course",
			course:  &Course{Title: "Excel for Beginners", CleanTitle: "excel beginners"},
			wantErr: nil,
		},
		{
			name:    "valid course with missing clean title",
			course:  &Course{Title: "Untitled Course"},
			wantErr: nil,
		},
		{
			name:    "nil course",
			course:  nil,
			wantErr: ErrInvalidCourse,
		},
		{
			name:    "empty title",
			course:  &Course{CleanTitle: "excel beginners"},
			wantErr: ErrEmptyTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCourse(tt.course)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCourse() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCourse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSparseMatrix(t *testing.T) {
	valid := func() *SparseMatrix {
		return &SparseMatrix{
			Rows:    2,
			Cols:    3,
			Indptr:  []int{0, 2, 3},
			Indices: []int{0, 2, 1},
			Data:    []float64{1, 1, 2},
		}
	}

	tests := []struct {
		name    string
		mutate  func(m *SparseMatrix) *SparseMatrix
		wantErr bool
	}{
		{name: "valid matrix", mutate: func(m *SparseMatrix) *SparseMatrix { return m }},
		{name: "nil matrix", mutate: func(*SparseMatrix) *SparseMatrix { return nil }, wantErr: true},
		{name: "empty matrix", mutate: func(*SparseMatrix) *SparseMatrix {
			return &SparseMatrix{Indptr: []int{0}}
		}},
		{name: "short indptr", mutate: func(m *SparseMatrix) *SparseMatrix {
			m.Indptr = []int{0, 3}
			return m
		}, wantErr: true},
		{name: "indices and data disagree", mutate: func(m *SparseMatrix) *SparseMatrix {
			m.Data = m.Data[:2]
			return m
		}, wantErr: true},
		{name: "decreasing indptr", mutate: func(m *SparseMatrix) *SparseMatrix {
			m.Indptr = []int{0, 3, 3}
			m.Indptr[1] = 4
			return m
		}, wantErr: true},
		{name: "column out of range", mutate: func(m *SparseMatrix) *SparseMatrix {
			m.Indices[2] = 3
			return m
		}, wantErr: true},
		{name: "indptr does not start at zero", mutate: func(m *SparseMatrix) *SparseMatrix {
			m.Indptr[0] = 1
			return m
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSparseMatrix(tt.mutate(valid()))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMatrix) {
					t.Errorf("ValidateSparseMatrix() error = %v, want %v", err, ErrInvalidMatrix)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateSparseMatrix() error = %v, want nil", err)
			}
		})
	}
}

func TestValidateSimilarityMatrix(t *testing.T) {
	tests := []struct {
		name    string
		matrix  *DenseMatrix
		wantErr error
	}{
		{
			name:   "valid square matrix",
			matrix: &DenseMatrix{Rows: 2, Cols: 2, Values: []float64{1, 0.2, 0.2, 1}},
		},
		{
			name:   "empty matrix",
			matrix: &DenseMatrix{},
		},
		{
			name:    "nil matrix",
			matrix:  nil,
			wantErr: ErrInvalidMatrix,
		},
		{
			name:    "not square",
			matrix:  &DenseMatrix{Rows: 1, Cols: 2, Values: []float64{1, 0}},
			wantErr: ErrNotSquare,
		},
		{
			name:    "missing values",
			matrix:  &DenseMatrix{Rows: 2, Cols: 2, Values: []float64{1, 0, 0}},
			wantErr: ErrInvalidMatrix,
		},
		{
			name:    "infinite score",
			matrix:  &DenseMatrix{Rows: 1, Cols: 1, Values: []float64{math.Inf(1)}},
			wantErr: ErrInvalidMatrix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSimilarityMatrix(tt.matrix)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSimilarityMatrix() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSimilarityMatrix() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLength(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{"zero", 0, false},
		{"at limit", MaxLength, false},
		{"over limit", MaxLength + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLength(tt.length)
			if tt.wantErr != errors.Is(err, ErrInvalidLength) {
				t.Errorf("ValidateLength(%d) error = %v, wantErr %v", tt.length, err, tt.wantErr)
			}
		})
	}
}
