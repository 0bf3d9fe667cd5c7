// Package util contains internal helpers shared by the runtime and the generator.
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash returns the 64-bit xxhash of b.
func Hash(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// HashStrings hashes an ordered list of strings. Each part is prefixed with
// its length so that boundaries are part of the digest.
func HashStrings(parts []string) uint64 {
	d := xxhash.New()
	var lenBuf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(p)))
		_, _ = d.Write(lenBuf[:])
		_, _ = d.WriteString(p)
	}
	return d.Sum64()
}
