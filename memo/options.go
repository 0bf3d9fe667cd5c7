package memo

// Options configures a Store or a memoized function. Zero values are safe;
// defaults are applied in NewStore():
//   - nil Clone    => values are copied by assignment only
//   - nil Metrics  => NoopMetrics
type Options[V any] struct {
	// Clone returns an independent copy of v. It is applied on Insert and on
	// every Get hit, so callers can never mutate what the store holds.
	// Needed only when V holds references (slices, maps, pointers).
	Clone func(v V) V

	// Metrics receives Hit/Miss/Reset/Size signals.
	Metrics Metrics

	// InitialSize pre-sizes the underlying map (0 = Go default).
	InitialSize int
}
