package memo

// Func0 memoizes a function without arguments: a single-slot cache.
type Func0[R any] struct {
	*Memo[struct{}, R]
	fn func() R
}

// New0 wraps fn. It panics if fn is nil.
func New0[R any](fn func() R, opt Options[R]) *Func0[R] {
	mustFn(fn == nil)
	return &Func0[R]{Memo: NewMemo[struct{}, R](opt), fn: fn}
}

// Call returns the memoized fn().
func (f *Func0[R]) Call() R {
	return f.Do(struct{}{}, f.fn)
}

// Func1 memoizes fn(a), keyed by a.
type Func1[A comparable, R any] struct {
	*Memo[A, R]
	fn func(A) R
}

// New1 wraps fn. It panics if fn is nil.
func New1[A comparable, R any](fn func(A) R, opt Options[R]) *Func1[A, R] {
	mustFn(fn == nil)
	return &Func1[A, R]{Memo: NewMemo[A, R](opt), fn: fn}
}

// Call returns the memoized fn(a).
func (f *Func1[A, R]) Call(a A) R {
	return f.Do(a, func() R { return f.fn(a) })
}

// Func2 memoizes fn(a, b), keyed by the tuple (a, b).
type Func2[A, B comparable, R any] struct {
	*Memo[Tuple2[A, B], R]
	fn func(A, B) R
}

// New2 wraps fn. It panics if fn is nil.
func New2[A, B comparable, R any](fn func(A, B) R, opt Options[R]) *Func2[A, B, R] {
	mustFn(fn == nil)
	return &Func2[A, B, R]{Memo: NewMemo[Tuple2[A, B], R](opt), fn: fn}
}

// Call returns the memoized fn(a, b).
func (f *Func2[A, B, R]) Call(a A, b B) R {
	return f.Do(Tuple2[A, B]{V1: a, V2: b}, func() R { return f.fn(a, b) })
}

// Func3 memoizes fn(a, b, c), keyed by the tuple (a, b, c).
type Func3[A, B, C comparable, R any] struct {
	*Memo[Tuple3[A, B, C], R]
	fn func(A, B, C) R
}

// New3 wraps fn. It panics if fn is nil.
func New3[A, B, C comparable, R any](fn func(A, B, C) R, opt Options[R]) *Func3[A, B, C, R] {
	mustFn(fn == nil)
	return &Func3[A, B, C, R]{Memo: NewMemo[Tuple3[A, B, C], R](opt), fn: fn}
}

// Call returns the memoized fn(a, b, c).
func (f *Func3[A, B, C, R]) Call(a A, b B, c C) R {
	return f.Do(Tuple3[A, B, C]{V1: a, V2: b, V3: c}, func() R { return f.fn(a, b, c) })
}

// Func4 memoizes fn(a, b, c, d), keyed by the tuple (a, b, c, d).
type Func4[A, B, C, D comparable, R any] struct {
	*Memo[Tuple4[A, B, C, D], R]
	fn func(A, B, C, D) R
}

// New4 wraps fn. It panics if fn is nil.
func New4[A, B, C, D comparable, R any](fn func(A, B, C, D) R, opt Options[R]) *Func4[A, B, C, D, R] {
	mustFn(fn == nil)
	return &Func4[A, B, C, D, R]{Memo: NewMemo[Tuple4[A, B, C, D], R](opt), fn: fn}
}

// Call returns the memoized fn(a, b, c, d).
func (f *Func4[A, B, C, D, R]) Call(a A, b B, c C, d D) R {
	key := Tuple4[A, B, C, D]{V1: a, V2: b, V3: c, V4: d}
	return f.Do(key, func() R { return f.fn(a, b, c, d) })
}

func mustFn(isNil bool) {
	if isNil {
		panic("memo: nil function")
	}
}
