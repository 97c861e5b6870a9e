package artifact

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
)

// Source produces a Bundle. Implementations read from a compressed file or
// from a read-only store.
type Source interface {
	// Load reads the four artifacts. It does not cache.
	Load(ctx context.Context) (*Bundle, error)

	// Location describes where the artifacts are read from.
	Location() string
}

// FileSource reads a compressed artifact file.
type FileSource struct {
	Path string
}

var _ Source = (*FileSource)(nil)

// NewFileSource returns a source for path, or DefaultPath when path is empty.
func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultPath
	}
	return &FileSource{Path: path}
}

// Location returns the file path.
func (s *FileSource) Location() string {
	return s.Path
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) (*Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, newLoadError(s.Path, err)
	}
	return ReadFile(s.Path)
}

// ReadFile reads, decodes and validates an artifact file.
// Every failure is returned as a *LoadError.
func ReadFile(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newLoadError(path, err)
	}
	defer f.Close()

	bundle, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, newLoadError(path, err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, newLoadError(path, err)
	}
	return bundle, nil
}

// WriteFile validates b and writes it to path. The file is written to a
// temporary name in the same directory and renamed into place.
func WriteFile(path string, b *Bundle) error {
	if err := b.Validate(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := Encode(w, b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
