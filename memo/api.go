package memo

// Store is the storage object behind a memoized function: a mapping from
// cache key to a previously computed result.
//
// A Store is owned by whoever constructed it. It is NOT safe for concurrent
// use; goroutines that need memoization construct their own Store (or Memo).
// There is no size bound and no eviction: entries live until Clear.
type Store[K comparable, V any] interface {
	// Get returns the stored value for k and a presence flag.
	// With Options.Clone set, the returned value is an independent copy.
	Get(k K) (V, bool)

	// Insert stores k→v, overwriting any existing entry for k.
	// With Options.Clone set, a copy of v is stored.
	Insert(k K, v V)

	// Clear discards every entry.
	Clear()

	// Len returns the number of resident entries.
	Len() int
}

// Resetter is anything that can discard its memoized state.
// Memo and every FuncN/KeyedN wrapper implement it.
type Resetter interface {
	Reset()
}

// ResetFunc adapts a plain function, such as a generated X_reset_memoize,
// to Resetter.
type ResetFunc func()

// Reset calls f.
func (f ResetFunc) Reset() { f() }
