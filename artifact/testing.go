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

package artifact

import (
	"sort"
	"strings"

	"github.com/poiesic/courserec/core"
)

// FixtureCourses is the course table of FixtureBundle.
// Row 8 has a missing clean title.
var FixtureCourses = []core.Course{
	{Title: "Learn Python Programming from Scratch", CleanTitle: "learn python programming scratch"},
	{Title: "Python for Data Science", CleanTitle: "python data science"},
	{Title: "Machine Learning A-Z", CleanTitle: "machine learning az"},
	{Title: "Financial Modeling in Excel", CleanTitle: "financial modeling excel"},
	{Title: "Web Development Bootcamp", CleanTitle: "web development bootcamp"},
	{Title: "Advanced Python Automation", CleanTitle: "advanced python automation"},
	{Title: "Deep Learning with TensorFlow", CleanTitle: "deep learning tensorflow"},
	{Title: "Excel for Beginners", CleanTitle: "excel beginners"},
	{Title: "Untitled Course"},
}

// fixtureSimilarity is symmetric with a unit diagonal, except for the row
// without a clean title.
var fixtureSimilarity = [][]float64{
	{1.00, 0.40, 0.10, 0.00, 0.05, 0.50, 0.00, 0.00, 0},
	{0.40, 1.00, 0.20, 0.00, 0.00, 0.35, 0.10, 0.00, 0},
	{0.10, 0.20, 1.00, 0.00, 0.05, 0.10, 0.60, 0.00, 0},
	{0.00, 0.00, 0.00, 1.00, 0.00, 0.00, 0.00, 0.45, 0},
	{0.05, 0.00, 0.05, 0.00, 1.00, 0.05, 0.00, 0.00, 0},
	{0.50, 0.35, 0.10, 0.00, 0.05, 1.00, 0.00, 0.00, 0},
	{0.00, 0.10, 0.60, 0.00, 0.00, 0.00, 1.00, 0.00, 0},
	{0.00, 0.00, 0.00, 0.45, 0.00, 0.00, 0.00, 1.00, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
}

// FixtureBundle returns a small, valid bundle for tests. Each call returns
// a fresh copy.
func FixtureBundle() *Bundle {
	courses := make([]core.Course, len(FixtureCourses))
	copy(courses, FixtureCourses)

	rows := make([][]float64, len(fixtureSimilarity))
	for i, row := range fixtureSimilarity {
		rows[i] = append([]float64(nil), row...)
	}
	sim, err := core.NewDenseMatrix(rows)
	if err != nil {
		panic(err)
	}

	vocab, dtm := CountMatrix(courses)
	return &Bundle{
		Vectorizer:   vocab,
		DocumentTerm: dtm,
		Similarity:   sim,
		Courses:      courses,
	}
}

// CountMatrix builds a sorted vocabulary and a term-count matrix from the
// whitespace tokens of the clean titles.
func CountMatrix(courses []core.Course) (*core.Vocabulary, *core.SparseMatrix) {
	seen := make(map[string]bool)
	for _, c := range courses {
		for _, term := range strings.Fields(c.CleanTitle) {
			seen[term] = true
		}
	}
	terms := make([]string, 0, len(seen))
	for term := range seen {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	vocab := core.NewVocabulary(terms)

	m := &core.SparseMatrix{
		Rows:   len(courses),
		Cols:   len(terms),
		Indptr: make([]int, 1, len(courses)+1),
	}
	for _, c := range courses {
		counts := make(map[int]float64)
		for _, term := range strings.Fields(c.CleanTitle) {
			col, _ := vocab.Lookup(term)
			counts[col]++
		}
		cols := make([]int, 0, len(counts))
		for col := range counts {
			cols = append(cols, col)
		}
		sort.Ints(cols)
		for _, col := range cols {
			m.Indices = append(m.Indices, col)
			m.Data = append(m.Data, counts[col])
		}
		m.Indptr = append(m.Indptr, len(m.Indices))
	}
	return vocab, m
}
