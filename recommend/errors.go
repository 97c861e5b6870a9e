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


package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrBundleRequired is returned when a recommender is created without a bundle.
	ErrBundleRequired = errors.New("artifact bundle required")

	// ErrConsistency matches every ConsistencyError.
	ErrConsistency = errors.New("course table and similarity matrix disagree")
)

// ConsistencyError reports that the similarity matrix cannot be indexed by
// the matched course row.
type ConsistencyError struct {
	// Rows is the number of courses in the table.
	Rows int
	// Dimension is the similarity matrix shape as rows x cols.
	Dimension [2]int
	// Index is the matched course row.
	Index int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%v: %d courses, %dx%d similarity matrix, row %d",
		ErrConsistency, e.Rows, e.Dimension[0], e.Dimension[1], e.Index)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrConsistency
}
