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


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/poiesic/courserec/core"
)

func marshal[T any](s mus.Serializer[T], v T) []byte {
	buf := make([]byte, s.Size(v))
	s.Marshal(v, buf)
	return buf
}

func unmarshal[T any](s mus.Serializer[T], data []byte) (T, error) {
	v, n, err := s.Unmarshal(data)
	if err != nil {
		return v, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return v, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return v, nil
}

// MarshalCourse serializes a Course to bytes.
func MarshalCourse(course *core.Course) []byte {
	return marshal(core.CourseMUS, *course)
}

// UnmarshalCourse deserializes a Course from bytes.
func UnmarshalCourse(data []byte) (*core.Course, error) {
	course, err := unmarshal(core.CourseMUS, data)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// MarshalVocabulary serializes a Vocabulary to bytes.
func MarshalVocabulary(vocab *core.Vocabulary) []byte {
	return marshal(core.VocabularyMUS, *vocab)
}

// UnmarshalVocabulary deserializes a Vocabulary from bytes.
func UnmarshalVocabulary(data []byte) (*core.Vocabulary, error) {
	vocab, err := unmarshal(core.VocabularyMUS, data)
	if err != nil {
		return nil, err
	}
	return core.NewVocabulary(vocab.Terms), nil
}

// MarshalSparseMatrix serializes a SparseMatrix to bytes.
func MarshalSparseMatrix(m *core.SparseMatrix) []byte {
	return marshal(core.SparseMatrixMUS, *m)
}

// UnmarshalSparseMatrix deserializes a SparseMatrix from bytes.
func UnmarshalSparseMatrix(data []byte) (*core.SparseMatrix, error) {
	m, err := unmarshal(core.SparseMatrixMUS, data)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MarshalScores serializes a similarity row to bytes.
func MarshalScores(row []float64) []byte {
	return marshal(core.Float64sMUS, row)
}

// UnmarshalScores deserializes a similarity row from bytes.
func UnmarshalScores(data []byte) ([]float64, error) {
	return unmarshal(core.Float64sMUS, data)
}

// MarshalStoreMeta serializes a StoreMeta to bytes.
func MarshalStoreMeta(meta *core.StoreMeta) []byte {
	return marshal(core.StoreMetaMUS, *meta)
}

// UnmarshalStoreMeta deserializes a StoreMeta from bytes.
func UnmarshalStoreMeta(data []byte) (*core.StoreMeta, error) {
	meta, err := unmarshal(core.StoreMetaMUS, data)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}
