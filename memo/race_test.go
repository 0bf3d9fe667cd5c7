package memo

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Each goroutine owns its memoized function, so concurrent workers never
// share a store. Should pass under `-race` without detector reports.
func TestRace_PerGoroutineMemo(t *testing.T) {
	workers := 4 * runtime.GOMAXPROCS(0)
	results := make([]uint64, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var fib *Func1[int, uint64]
			fib = New1(func(n int) uint64 {
				if n < 2 {
					return uint64(n)
				}
				return fib.Call(n-1) + fib.Call(n-2)
			}, Options[uint64]{})

			for round := 0; round < 100; round++ {
				results[w] = fib.Call(80)
				if round%10 == 0 {
					fib.Reset()
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, r := range results {
		require.Equal(t, uint64(23416728348467685), r)
	}
}

// Groups are confined the same way: one per goroutine.
func TestRace_PerGoroutineGroup(t *testing.T) {
	var g errgroup.Group
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		g.Go(func() error {
			var c Counters
			sq := New1(func(n int) int { return n * n }, Options[int]{Metrics: &c})
			grp := NewGroup(sq)
			for i := 0; i < 1_000; i++ {
				sq.Call(i % 32)
				if i%100 == 99 {
					grp.Reset()
				}
			}
			if c.Resets != 10 {
				return fmt.Errorf("resets = %d, want 10", c.Resets)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
