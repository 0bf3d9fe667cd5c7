package memo

// The KeyedN wrappers take a key function alongside the computation. The key
// function receives the same arguments as fn and returns the cache key, so
// arguments need not be comparable (slices, grids, pointers to large
// structures) as long as the derived key is.
//
// Two argument tuples mapping to the same key share one result: the second
// call returns what the first computed, even if fn would have produced
// something else. Pick the key so that this is what you want.

// Keyed1 memoizes fn(a), keyed by key(a).
type Keyed1[A any, K comparable, R any] struct {
	*Memo[K, R]
	fn  func(A) R
	key func(A) K
}

// NewKeyed1 wraps fn with the key function key. It panics if either is nil.
func NewKeyed1[A any, K comparable, R any](fn func(A) R, key func(A) K, opt Options[R]) *Keyed1[A, K, R] {
	mustFn(fn == nil || key == nil)
	return &Keyed1[A, K, R]{Memo: NewMemo[K, R](opt), fn: fn, key: key}
}

// Call returns the memoized fn(a).
func (f *Keyed1[A, K, R]) Call(a A) R {
	return f.Do(f.key(a), func() R { return f.fn(a) })
}

// Keyed2 memoizes fn(a, b), keyed by key(a, b).
type Keyed2[A, B any, K comparable, R any] struct {
	*Memo[K, R]
	fn  func(A, B) R
	key func(A, B) K
}

// NewKeyed2 wraps fn with the key function key. It panics if either is nil.
func NewKeyed2[A, B any, K comparable, R any](fn func(A, B) R, key func(A, B) K, opt Options[R]) *Keyed2[A, B, K, R] {
	mustFn(fn == nil || key == nil)
	return &Keyed2[A, B, K, R]{Memo: NewMemo[K, R](opt), fn: fn, key: key}
}

// Call returns the memoized fn(a, b).
func (f *Keyed2[A, B, K, R]) Call(a A, b B) R {
	return f.Do(f.key(a, b), func() R { return f.fn(a, b) })
}

// Keyed3 memoizes fn(a, b, c), keyed by key(a, b, c).
type Keyed3[A, B, C any, K comparable, R any] struct {
	*Memo[K, R]
	fn  func(A, B, C) R
	key func(A, B, C) K
}

// NewKeyed3 wraps fn with the key function key. It panics if either is nil.
func NewKeyed3[A, B, C any, K comparable, R any](fn func(A, B, C) R, key func(A, B, C) K, opt Options[R]) *Keyed3[A, B, C, K, R] {
	mustFn(fn == nil || key == nil)
	return &Keyed3[A, B, C, K, R]{Memo: NewMemo[K, R](opt), fn: fn, key: key}
}

// Call returns the memoized fn(a, b, c).
func (f *Keyed3[A, B, C, K, R]) Call(a A, b B, c C) R {
	return f.Do(f.key(a, b, c), func() R { return f.fn(a, b, c) })
}

// Keyed4 memoizes fn(a, b, c, d), keyed by key(a, b, c, d).
type Keyed4[A, B, C, D any, K comparable, R any] struct {
	*Memo[K, R]
	fn  func(A, B, C, D) R
	key func(A, B, C, D) K
}

// NewKeyed4 wraps fn with the key function key. It panics if either is nil.
func NewKeyed4[A, B, C, D any, K comparable, R any](fn func(A, B, C, D) R, key func(A, B, C, D) K, opt Options[R]) *Keyed4[A, B, C, D, K, R] {
	mustFn(fn == nil || key == nil)
	return &Keyed4[A, B, C, D, K, R]{Memo: NewMemo[K, R](opt), fn: fn, key: key}
}

// Call returns the memoized fn(a, b, c, d).
func (f *Keyed4[A, B, C, D, K, R]) Call(a A, b B, c C, d D) R {
	return f.Do(f.key(a, b, c, d), func() R { return f.fn(a, b, c, d) })
}
