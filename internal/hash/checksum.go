package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest is a streaming xxHash64 accumulator. It implements io.Writer.
type Digest = xxhash.Digest

// NewDigest returns a zeroed streaming digest.
func NewDigest() *Digest {
	return xxhash.New()
}
