package artifact

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/go-crypt/x/blake2b"
	"github.com/klauspost/compress/gzip"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/courserec/core"
)

const (
	magic = "courserec-artifact"

	// FormatVersion is the payload layout written by MarshalPayload.
	FormatVersion = 1

	arity = 4

	// MaxPayloadSize caps the uncompressed payload Decode will read.
	MaxPayloadSize = 1 << 30
)

// MarshalPayload encodes the bundle without compression:
// magic, version, arity, then the four components in tuple order.
func MarshalPayload(b *Bundle) ([]byte, error) {
	if b == nil || b.Vectorizer == nil || b.DocumentTerm == nil || b.Similarity == nil {
		return nil, ErrNilBundle
	}

	size := ord.String.Size(magic) +
		varint.PositiveInt.Size(FormatVersion) +
		varint.PositiveInt.Size(arity) +
		core.VocabularyMUS.Size(*b.Vectorizer) +
		core.SparseMatrixMUS.Size(*b.DocumentTerm) +
		core.DenseMatrixMUS.Size(*b.Similarity) +
		core.CoursesMUS.Size(b.Courses)

	buf := make([]byte, size)
	n := ord.String.Marshal(magic, buf)
	n += varint.PositiveInt.Marshal(FormatVersion, buf[n:])
	n += varint.PositiveInt.Marshal(arity, buf[n:])
	n += core.VocabularyMUS.Marshal(*b.Vectorizer, buf[n:])
	n += core.SparseMatrixMUS.Marshal(*b.DocumentTerm, buf[n:])
	n += core.DenseMatrixMUS.Marshal(*b.Similarity, buf[n:])
	core.CoursesMUS.Marshal(b.Courses, buf[n:])
	return buf, nil
}

// UnmarshalPayload decodes a payload written by MarshalPayload.
// It does not validate the dimensions of the result; see Bundle.Validate.
func UnmarshalPayload(data []byte) (*Bundle, error) {
	header, n, err := ord.String.Unmarshal(data)
	if err != nil || header != magic {
		return nil, ErrBadMagic
	}

	version, n1, err := varint.PositiveInt.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	count, n1, err := varint.PositiveInt.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("read arity: %w", err)
	}
	if count != arity {
		return nil, fmt.Errorf("%w: got %d", ErrArity, count)
	}

	vocab, n1, err := core.VocabularyMUS.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("decode vectorizer: %w", err)
	}
	dtm, n1, err := core.SparseMatrixMUS.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("decode document-term matrix: %w", err)
	}
	sim, n1, err := core.DenseMatrixMUS.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("decode similarity matrix: %w", err)
	}
	courses, n1, err := core.CoursesMUS.Unmarshal(data[n:])
	n += n1
	if err != nil {
		return nil, fmt.Errorf("decode course table: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, len(data)-n)
	}

	return &Bundle{
		Vectorizer:   core.NewVocabulary(vocab.Terms),
		DocumentTerm: &dtm,
		Similarity:   &sim,
		Courses:      courses,
	}, nil
}

// Encode writes the gzip-compressed payload of b to w.
func Encode(w io.Writer, b *Bundle) error {
	payload, err := MarshalPayload(b)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(payload); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Decode reads a gzip-compressed payload from r.
// Payloads that inflate past MaxPayloadSize fail with ErrPayloadTooLarge.
func Decode(r io.Reader) (*Bundle, error) {
	return decode(r, MaxPayloadSize)
}

func decode(r io.Reader, limit int64) (*Bundle, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	payload, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(payload)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrPayloadTooLarge, limit)
	}
	return UnmarshalPayload(payload)
}

// Fingerprint returns the hex BLAKE2b-256 digest of the uncompressed payload.
// Identical bundles always produce the same fingerprint.
func Fingerprint(b *Bundle) (string, error) {
	payload, err := MarshalPayload(b)
	if err != nil {
		return "", err
	}
	h, err := blake2b.New(32, nil)
	if err != nil {
		return "", err
	}
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil)), nil
}
