package core

//go:generate go run ../cmd/musgen

// Course is a single row of the course table.
// Its identity is its position in the table.
type Course struct {
	Title      string // Display title (course_title)
	CleanTitle string // Normalized matching key (clean_course_title); empty means missing
}

// HasCleanTitle reports whether the course carries a usable matching key.
// Rows with a missing clean title never match a query.
func (c Course) HasCleanTitle() bool {
	return c.CleanTitle != ""
}

// Vocabulary is the fitted term vectorizer: the position of a term is its
// column in the document-term matrix.
type Vocabulary struct {
	Terms []string

	index map[string]int
}

// NewVocabulary builds a vocabulary from ordered terms.
func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{Terms: terms}
	v.buildIndex()
	return v
}

func (v *Vocabulary) buildIndex() {
	v.index = make(map[string]int, len(v.Terms))
	for i, term := range v.Terms {
		if _, exists := v.index[term]; !exists {
			v.index[term] = i
		}
	}
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Terms)
}

// Lookup returns the column index of a term.
func (v *Vocabulary) Lookup(term string) (int, bool) {
	if v == nil {
		return 0, false
	}
	if v.index == nil {
		// Built without NewVocabulary; scan instead of mutating shared state.
		for i, t := range v.Terms {
			if t == term {
				return i, true
			}
		}
		return 0, false
	}
	i, ok := v.index[term]
	return i, ok
}

// SparseMatrix is a compressed sparse row matrix.
// Row i occupies Indices[Indptr[i]:Indptr[i+1]] and the same range of Data.
type SparseMatrix struct {
	Rows    int
	Cols    int
	Indptr  []int
	Indices []int
	Data    []float64
}

// NNZ returns the number of stored entries.
func (m *SparseMatrix) NNZ() int {
	if m == nil {
		return 0
	}
	return len(m.Data)
}

// Row returns the column indices and values stored for row i.
// The returned slices alias the matrix and must not be modified.
func (m *SparseMatrix) Row(i int) ([]int, []float64) {
	start, end := m.Indptr[i], m.Indptr[i+1]
	return m.Indices[start:end], m.Data[start:end]
}

// DenseMatrix is a row-major matrix of float64 values.
type DenseMatrix struct {
	Rows   int
	Cols   int
	Values []float64
}

// NewDenseMatrix builds a dense matrix from a slice of rows.
// All rows must have the same length.
func NewDenseMatrix(rows [][]float64) (*DenseMatrix, error) {
	m := &DenseMatrix{Rows: len(rows)}
	if len(rows) > 0 {
		m.Cols = len(rows[0])
	}
	m.Values = make([]float64, 0, m.Rows*m.Cols)
	for i, row := range rows {
		if len(row) != m.Cols {
			return nil, ErrRaggedMatrix(i, len(row), m.Cols)
		}
		m.Values = append(m.Values, row...)
	}
	return m, nil
}

// IsSquare reports whether the matrix has as many rows as columns.
func (m *DenseMatrix) IsSquare() bool {
	return m != nil && m.Rows == m.Cols
}

// Row returns row i. The returned slice aliases the matrix and must not be modified.
func (m *DenseMatrix) Row(i int) []float64 {
	return m.Values[i*m.Cols : (i+1)*m.Cols]
}

// At returns the value at row i, column j.
func (m *DenseMatrix) At(i, j int) float64 {
	return m.Values[i*m.Cols+j]
}

// ScoredIndex pairs a course index with a similarity score.
type ScoredIndex struct {
	Index int
	Score float64
}

// StoreMeta describes the artifacts held by a store.
type StoreMeta struct {
	FormatVersion int
	Courses       int
	Terms         int
	Fingerprint   string
	// ImportedAt is a Unix timestamp in microseconds.
	ImportedAt int64
}
