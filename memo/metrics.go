package memo

// Metrics exposes memoization observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	// Reset is called when the store is cleared; dropped is the number of
	// entries discarded.
	Reset(dropped int)
	Size(entries int)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Reset(int) {}
func (NoopMetrics) Size(int)  {}

// Counters is a plain in-process Metrics implementation. Like the Store it is
// attached to, it must only be used from the goroutine that owns the store.
type Counters struct {
	Hits    int
	Misses  int
	Resets  int
	Entries int
}

func (c *Counters) Hit()             { c.Hits++ }
func (c *Counters) Miss()            { c.Misses++ }
func (c *Counters) Reset(int)        { c.Resets++ }
func (c *Counters) Size(entries int) { c.Entries = entries }

// HitRate returns hits/(hits+misses) in [0,1], or 0 before the first lookup.
func (c *Counters) HitRate() float64 {
	total := c.Hits + c.Misses
	if total == 0 {
		return 0
	}
	return float64(c.Hits) / float64(total)
}

// Ensure implementations satisfy Metrics at compile time.
var (
	_ Metrics = NoopMetrics{}
	_ Metrics = (*Counters)(nil)
)
