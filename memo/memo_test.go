package memo

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Recursive Fibonacci through its own memoized wrapper: every n is computed
// once, and a second top-level call is a single hit.
func TestFunc1_RecursiveFib(t *testing.T) {
	t.Parallel()

	var (
		calls int
		fib   *Func1[int, uint64]
	)
	fib = New1(func(n int) uint64 {
		calls++
		if n < 2 {
			return uint64(n)
		}
		return fib.Call(n-1) + fib.Call(n-2)
	}, Options[uint64]{})

	assert.Equal(t, uint64(12586269025), fib.Call(50))
	assert.Equal(t, 51, calls)
	assert.Equal(t, 51, fib.Len())

	assert.Equal(t, uint64(12586269025), fib.Call(50))
	assert.Equal(t, 51, calls, "second call must be served from the cache")
}

func TestMemo_HitSkipsCompute(t *testing.T) {
	t.Parallel()

	m := NewMemo[string, int](Options[int]{})
	calls := 0
	compute := func() int { calls++; return 7 }

	assert.Equal(t, 7, m.Do("a", compute))
	assert.Equal(t, 7, m.Do("a", compute))
	assert.Equal(t, 1, calls)

	// A different key computes again.
	assert.Equal(t, 7, m.Do("b", compute))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, m.Len())
}

// A stored zero value is still a hit.
func TestMemo_ZeroValueIsCached(t *testing.T) {
	t.Parallel()

	calls := 0
	f := New1(func(int) string { calls++; return "" }, Options[string]{})
	f.Call(1)
	f.Call(1)
	assert.Equal(t, 1, calls)
}

func TestMemo_ResetRecomputes(t *testing.T) {
	t.Parallel()

	calls := 0
	f := New1(func(n int) int { calls++; return n * n }, Options[int]{})
	f.Call(3)
	f.Call(4)
	require.Equal(t, 2, f.Len())

	f.Reset()
	assert.Zero(t, f.Len())
	assert.Equal(t, 9, f.Call(3))
	assert.Equal(t, 3, calls)

	// Reset on an empty memo is a no-op.
	f.Reset()
	f.Reset()
	assert.Zero(t, f.Len())
}

func TestFunc0_SingleSlot(t *testing.T) {
	t.Parallel()

	calls := 0
	f := New0(func() int { calls++; return 42 }, Options[int]{})
	for i := 0; i < 3; i++ {
		assert.Equal(t, 42, f.Call())
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, f.Len())
}

// Argument order is part of the key.
func TestFunc2_TupleKey(t *testing.T) {
	t.Parallel()

	calls := 0
	sub := New2(func(a, b int) int { calls++; return a - b }, Options[int]{})

	assert.Equal(t, 1, sub.Call(3, 2))
	assert.Equal(t, -1, sub.Call(2, 3))
	assert.Equal(t, 1, sub.Call(3, 2))
	assert.Equal(t, 2, calls)
}

func TestFunc3AndFunc4(t *testing.T) {
	t.Parallel()

	calls := 0
	f3 := New3(func(a, b, c int) int { calls++; return a*100 + b*10 + c }, Options[int]{})
	assert.Equal(t, 123, f3.Call(1, 2, 3))
	assert.Equal(t, 321, f3.Call(3, 2, 1))
	assert.Equal(t, 123, f3.Call(1, 2, 3))
	assert.Equal(t, 2, calls)

	f4 := New4(func(a string, b int, c bool, d rune) string {
		calls++
		return a + string(d)
	}, Options[string]{})
	assert.Equal(t, "x!", f4.Call("x", 1, true, '!'))
	assert.Equal(t, "x!", f4.Call("x", 1, true, '!'))
	assert.Equal(t, "x!", f4.Call("x", 1, false, '!'))
	assert.Equal(t, 4, calls)
}

// Arguments that are not comparable are keyed by a key function; tuples
// mapping to the same key share the first result.
func TestKeyed_CollidingKeysShareResult(t *testing.T) {
	t.Parallel()

	calls := 0
	sum := NewKeyed1(
		func(xs []int) int { calls++; return xs[0] + xs[1] },
		func(xs []int) int { return xs[0] },
		Options[int]{},
	)

	assert.Equal(t, 3, sum.Call([]int{1, 2}))
	assert.Equal(t, 3, sum.Call([]int{1, 5}), "same key must return the first result")
	assert.Equal(t, 1, calls)

	assert.Equal(t, 7, sum.Call([]int{2, 5}))
	assert.Equal(t, 2, calls)
}

// The receiver-like context argument is left out of the key, as in the
// beam-splitting example: results survive across grids until Reset.
func TestKeyed2_StaleUntilReset(t *testing.T) {
	t.Parallel()

	type grid struct{ weight int }
	walk := NewKeyed2(
		func(g *grid, pos int) int { return g.weight * pos },
		func(_ *grid, pos int) int { return pos },
		Options[int]{},
	)

	a, b := &grid{weight: 2}, &grid{weight: 10}
	assert.Equal(t, 6, walk.Call(a, 3))
	assert.Equal(t, 6, walk.Call(b, 3), "key ignores the grid")

	walk.Reset()
	assert.Equal(t, 30, walk.Call(b, 3))
}

func TestKeyed3AndKeyed4(t *testing.T) {
	t.Parallel()

	k3 := NewKeyed3(
		func(grid []string, x, y int) byte { return grid[y][x] },
		func(grid []string, x, y int) uint64 { return Fingerprint(append(slices.Clone(grid), string(rune(x)), string(rune(y)))...) },
		Options[byte]{},
	)
	g := []string{"ab", "cd"}
	assert.Equal(t, byte('d'), k3.Call(g, 1, 1))
	assert.Equal(t, byte('b'), k3.Call(g, 1, 0))
	assert.Equal(t, 2, k3.Len())

	calls := 0
	k4 := NewKeyed4(
		func(a, b []byte, c, d int) int { calls++; return len(a) + len(b) + c + d },
		func(a, b []byte, c, d int) Tuple4[uint64, uint64, int, int] {
			return Tuple4[uint64, uint64, int, int]{HashBytes(a), HashBytes(b), c, d}
		},
		Options[int]{},
	)
	assert.Equal(t, 5, k4.Call([]byte("a"), []byte("bc"), 1, 1))
	assert.Equal(t, 5, k4.Call([]byte("a"), []byte("bc"), 1, 1))
	assert.Equal(t, 1, calls)
}

// With Clone set, mutating a returned value never reaches the store.
func TestOptions_CloneIsolatesCallers(t *testing.T) {
	t.Parallel()

	row := New1(func(n int) []int { return make([]int, n) }, Options[[]int]{Clone: slices.Clone[[]int]})

	got := row.Call(3)
	got[0] = 99
	assert.Equal(t, []int{0, 0, 0}, row.Call(3))

	again := row.Call(3)
	again[1] = 42
	assert.Equal(t, []int{0, 0, 0}, row.Call(3))
}

// Without Clone, callers share the stored value.
func TestOptions_NoCloneSharesValue(t *testing.T) {
	t.Parallel()

	row := New1(func(n int) []int { return make([]int, n) }, Options[[]int]{})
	got := row.Call(2)
	got[0] = 5
	assert.Equal(t, []int{5, 0}, row.Call(2))
}

func TestCounters(t *testing.T) {
	t.Parallel()

	var c Counters
	assert.Zero(t, c.HitRate())

	f := New1(func(n int) int { return n }, Options[int]{Metrics: &c})
	f.Call(1) // miss
	f.Call(1) // hit
	f.Call(2) // miss
	f.Call(1) // hit

	assert.Equal(t, 2, c.Hits)
	assert.Equal(t, 2, c.Misses)
	assert.Equal(t, 2, c.Entries)
	assert.InDelta(t, 0.5, c.HitRate(), 1e-9)

	f.Reset()
	assert.Equal(t, 1, c.Resets)
	assert.Zero(t, c.Entries)
}

func TestNewStore_NegativeInitialSize(t *testing.T) {
	t.Parallel()

	s := NewStore[int, int](Options[int]{InitialSize: -5})
	s.Insert(1, 1)
	v, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = s.Get(2)
	assert.False(t, ok)
}

func TestNewMemoWithStore_SharesStore(t *testing.T) {
	t.Parallel()

	s := NewStore[int, int](Options[int]{})
	a := NewMemoWithStore(s)
	b := NewMemoWithStore(s)

	a.Do(1, func() int { return 10 })
	assert.Equal(t, 10, b.Do(1, func() int { return -1 }))
	assert.Same(t, s, a.Store())
}

func TestNilArgumentsPanic(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "memo: nil Store", func() { NewMemoWithStore[int, int](nil) })
	assert.PanicsWithValue(t, "memo: nil function", func() { New0[int](nil, Options[int]{}) })
	assert.PanicsWithValue(t, "memo: nil function", func() { New1[int, int](nil, Options[int]{}) })
	assert.PanicsWithValue(t, "memo: nil function", func() {
		NewKeyed1(func(int) int { return 0 }, (func(int) int)(nil), Options[int]{})
	})
}

func TestGroup_ResetsEveryMember(t *testing.T) {
	t.Parallel()

	paths := New1(func(n int) int { return n }, Options[int]{})
	reach := New2(func(a, b int) bool { return a < b }, Options[bool]{})
	paths.Call(1)
	paths.Call(2)
	reach.Call(1, 2)

	g := NewGroup(paths, nil, reach)
	assert.Equal(t, 2, g.Len())

	g.Reset()
	assert.Zero(t, paths.Len())
	assert.Zero(t, reach.Len())

	extra := NewMemo[string, int](Options[int]{})
	extra.Do("x", func() int { return 1 })
	g.Add(extra)
	g.Reset()
	assert.Zero(t, extra.Len())
}

// Generated reset functions join a Group through ResetFunc.
func TestGroup_ResetFunc(t *testing.T) {
	t.Parallel()

	cache := map[int]int{1: 1, 2: 4}
	resets := 0
	g := NewGroup(ResetFunc(func() { clear(cache); resets++ }))

	g.Reset()
	assert.Empty(t, cache)
	assert.Equal(t, 1, resets)
}

// Two questions over different inputs with shared helpers: without a reset
// between them, the second answer is wrong.
func TestGroup_IndependentBatches(t *testing.T) {
	t.Parallel()

	var input []int
	at := New1(func(i int) int { return input[i] }, Options[int]{})
	g := NewGroup(at)

	input = []int{1, 2, 3}
	assert.Equal(t, 2, at.Call(1))

	input = []int{10, 20, 30}
	assert.Equal(t, 2, at.Call(1), "stale result without reset")

	g.Reset()
	assert.Equal(t, 20, at.Call(1))
}

func TestFingerprint_PartBoundaries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Fingerprint("ab", "c"), Fingerprint("ab", "c"))
	assert.NotEqual(t, Fingerprint("ab", "c"), Fingerprint("a", "bc"))
	assert.NotEqual(t, Fingerprint("abc"), Fingerprint("ab", "c"))
	assert.NotEqual(t, Fingerprint(), Fingerprint(""))
	assert.Equal(t, HashBytes([]byte("xyz")), HashBytes([]byte("xyz")))
}
