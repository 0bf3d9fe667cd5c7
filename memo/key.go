package memo

import "github.com/IvanBrykalov/memogen/internal/util"

// Tuple2 is the default cache key of a two-argument function.
// It is comparable whenever its members are.
type Tuple2[T1, T2 comparable] struct {
	V1 T1
	V2 T2
}

// Tuple3 is the default cache key of a three-argument function.
type Tuple3[T1, T2, T3 comparable] struct {
	V1 T1
	V2 T2
	V3 T3
}

// Tuple4 is the default cache key of a four-argument function.
type Tuple4[T1, T2, T3, T4 comparable] struct {
	V1 T1
	V2 T2
	V3 T3
	V4 T4
}

// Fingerprint reduces an ordered list of strings to a 64-bit key.
// Part boundaries are significant: ("ab", "c") and ("a", "bc") differ.
// It is meant for key functions over non-comparable inputs such as grids
// held as []string. Distinct inputs may collide (64-bit xxhash); a collision
// behaves like any other custom-key collision and returns the first result.
func Fingerprint(parts ...string) uint64 {
	return util.HashStrings(parts)
}

// HashBytes reduces a byte slice to a 64-bit key.
func HashBytes(b []byte) uint64 {
	return util.Hash(b)
}
