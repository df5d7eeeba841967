package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// PrefixLength is the number of hex characters used when disambiguating
// extracted file names by source archive. Eight characters (32 bits) is
// plenty for the few thousand sheets of a national dataset while keeping
// scratch file names readable.
const PrefixLength = 8

// Calculator is an interface for computing digests.
// This abstraction allows for different digest strategies and algorithms.
type Calculator interface {
	// Calculate computes a digest of the given content.
	Calculate(content []byte) string

	// Short computes a digest of s truncated to n hex characters.
	Short(s string, n int) string
}

// SHA256 implements digest calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple
// goroutines. Using value semantics (pass by value) eliminates heap
// allocations.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
// Returns by value to avoid heap allocation (SHA256 is a zero-size type).
func New() SHA256 {
	return SHA256{}
}

// Calculate computes the SHA-256 of content as lowercase hex.
func (c SHA256) Calculate(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Short computes the SHA-256 of s truncated to n hex characters.
// If n is out of range the full digest is returned.
func (c SHA256) Short(s string, n int) string {
	digest := c.Calculate([]byte(s))
	if n <= 0 || n > len(digest) {
		return digest
	}
	return digest[:n]
}
