// Package memo provides explicit, generic memoization for pure functions:
// a cache object plus typed wrappers that run the lookup / compute / store
// sequence on every call.
//
// Design
//
//   - Ownership: a memoized function owns one Store. Nothing is hidden in
//     globals; creation, reset and teardown are plain API calls on the value
//     the caller holds. The store is not synchronized: confine it to one
//     goroutine, or give each goroutine its own.
//
//   - Keys: FuncN wrappers key by their arguments (the argument itself for one
//     parameter, TupleN for several). KeyedN wrappers take a typed key function
//     instead, for arguments that are not comparable or that should not all
//     take part in the key.
//
//   - Copies: Options.Clone is applied on insert and on every hit, so results
//     holding slices or maps are never shared with the store.
//
//   - Lifetime: no eviction and no size bound. Entries stay until Reset. A
//     memoized function reused for two unrelated inputs keeps the first
//     input's results unless it is reset in between; Group resets several
//     functions at once.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Reset/Size signals. By
//     default NoopMetrics is used; Counters keeps plain counts and the
//     metrics/prom adapter exports them to Prometheus.
//
// Basic usage
//
//	var fib *memo.Func1[int, uint64]
//	fib = memo.New1(func(n int) uint64 {
//	    if n < 2 {
//	        return uint64(n)
//	    }
//	    return fib.Call(n-1) + fib.Call(n-2)
//	}, memo.Options[uint64]{})
//	fib.Call(90)
//
// With a key function
//
//	timelines = memo.NewKeyed2(
//	    func(g *Grid, p Point) uint64 { ... timelines.Call(g, p.Down()) ... },
//	    func(_ *Grid, p Point) Point { return p },
//	    memo.Options[uint64]{},
//	)
//
// Between unrelated inputs
//
//	timelines.Reset()
//
// For call-site transparency without hand-written wrappers, see package gen
// and cmd/memogen, which emit the same state machine as source code.
package memo
