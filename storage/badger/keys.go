package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	coursePrefix        = "crs"
	similarityRowPrefix = "simrow"
	vocabularyKey       = "vocab"
	documentTermKey     = "dtm"
	metaKey             = "meta"
)

// makeIndexedKey generates a key for a row-addressed record.
// Format: prefix:index, index as 8 BigEndian bytes
func makeIndexedKey(prefix string, index int) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort matches row order
	binary.BigEndian.PutUint64(buf[offset:], uint64(index))
	return buf
}

// makeCourseKey generates a key for a course by row.
func makeCourseKey(index int) []byte {
	return makeIndexedKey(coursePrefix, index)
}

// makeSimilarityRowKey generates a key for a similarity matrix row.
func makeSimilarityRowKey(index int) []byte {
	return makeIndexedKey(similarityRowPrefix, index)
}

// indexFromKey extracts the row from a key made by makeIndexedKey.
func indexFromKey(key []byte) int {
	return int(binary.BigEndian.Uint64(key[len(key)-8:]))
}

// allPrefixes lists every key written by SaveBundle.
func allPrefixes() [][]byte {
	return [][]byte{
		[]byte(coursePrefix + ":"),
		[]byte(similarityRowPrefix + ":"),
		[]byte(vocabularyKey),
		[]byte(documentTermKey),
		[]byte(metaKey),
	}
}
