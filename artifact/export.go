package artifact

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/poiesic/courserec/core"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of an export file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Export is the interchange layout written next to the trained model:
// the fitted vocabulary, the CSR document-term matrix, the dense cosine
// similarity matrix and the course table.
type Export struct {
	Vocabulary   []string       `json:"vocabulary" yaml:"vocabulary"`
	DocumentTerm ExportCSR      `json:"document_term" yaml:"document_term"`
	Similarity   [][]float64    `json:"similarity" yaml:"similarity"`
	Courses      []ExportCourse `json:"courses" yaml:"courses"`
}

// ExportCSR is a sparse matrix in scipy CSR layout.
type ExportCSR struct {
	Shape   [2]int    `json:"shape" yaml:"shape"`
	Indptr  []int     `json:"indptr" yaml:"indptr"`
	Indices []int     `json:"indices" yaml:"indices"`
	Data    []float64 `json:"data" yaml:"data"`
}

// ExportCourse is one row of the course table. A null clean title is kept
// as missing.
type ExportCourse struct {
	CourseTitle      string  `json:"course_title" yaml:"course_title"`
	CleanCourseTitle *string `json:"clean_course_title" yaml:"clean_course_title"`
}

// DecodeExport reads an export and converts it into a validated Bundle.
func DecodeExport(r io.Reader, format Format) (*Bundle, error) {
	var export Export
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&export); err != nil {
			return nil, fmt.Errorf("decode json export: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&export); err != nil {
			return nil, fmt.Errorf("decode yaml export: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return export.Bundle()
}

// Bundle converts the export into a validated Bundle.
func (e *Export) Bundle() (*Bundle, error) {
	sim, err := core.NewDenseMatrix(e.Similarity)
	if err != nil {
		return nil, fmt.Errorf("similarity matrix: %w", err)
	}

	courses := make([]core.Course, len(e.Courses))
	for i, c := range e.Courses {
		courses[i].Title = c.CourseTitle
		if c.CleanCourseTitle != nil {
			courses[i].CleanTitle = *c.CleanCourseTitle
		}
	}

	b := &Bundle{
		Vectorizer: core.NewVocabulary(e.Vocabulary),
		DocumentTerm: &core.SparseMatrix{
			Rows:    e.DocumentTerm.Shape[0],
			Cols:    e.DocumentTerm.Shape[1],
			Indptr:  e.DocumentTerm.Indptr,
			Indices: e.DocumentTerm.Indices,
			Data:    e.DocumentTerm.Data,
		},
		Similarity: sim,
		Courses:    courses,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewExport converts a bundle into its interchange layout.
func NewExport(b *Bundle) *Export {
	e := &Export{
		Vocabulary: b.Vectorizer.Terms,
		DocumentTerm: ExportCSR{
			Shape:   [2]int{b.DocumentTerm.Rows, b.DocumentTerm.Cols},
			Indptr:  b.DocumentTerm.Indptr,
			Indices: b.DocumentTerm.Indices,
			Data:    b.DocumentTerm.Data,
		},
		Similarity: make([][]float64, b.Similarity.Rows),
		Courses:    make([]ExportCourse, len(b.Courses)),
	}
	for i := range e.Similarity {
		e.Similarity[i] = b.Similarity.Row(i)
	}
	for i, c := range b.Courses {
		e.Courses[i].CourseTitle = c.Title
		if c.HasCleanTitle() {
			clean := c.CleanTitle
			e.Courses[i].CleanCourseTitle = &clean
		}
	}
	return e
}

// EncodeExport writes b to w in the interchange layout.
func EncodeExport(w io.Writer, b *Bundle, format Format) error {
	if err := b.Validate(); err != nil {
		return err
	}
	export := NewExport(b)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(export)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(export)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
