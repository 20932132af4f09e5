package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a SHA-256 sum, same as source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by deps. Callers pass deps in a
// deterministic order.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Short returns the first 12 hex digits.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}

func (d Digest) IsZero() bool { return d == Digest{} }
