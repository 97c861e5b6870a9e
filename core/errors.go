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
	"errors"
	"fmt"
)

// Domain validation errors
var (
	// ErrInvalidCourse indicates a Course failed validation.
	ErrInvalidCourse = errors.New("invalid course")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("course title cannot be empty")

	// ErrInvalidMatrix indicates a matrix failed structural validation.
	ErrInvalidMatrix = errors.New("invalid matrix")

	// ErrNotSquare indicates a similarity matrix is not square.
	ErrNotSquare = errors.New("matrix is not square")

	// ErrDimensionMismatch indicates two artifacts disagree on a dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidLength indicates an encoded length prefix exceeds MaxLength.
	ErrInvalidLength = errors.New("invalid encoded length")
)

// ErrRaggedMatrix reports a row whose length differs from the first row.
func ErrRaggedMatrix(row, got, want int) error {
	return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidMatrix, row, got, want)
}
