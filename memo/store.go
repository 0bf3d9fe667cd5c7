package memo

// store is the map-backed Store. It carries no lock: a store is confined to
// the goroutine that owns it.
type store[K comparable, V any] struct {
	m   map[K]V
	opt Options[V]
}

// NewStore constructs an empty Store with the provided Options.
// Defaults:
//   - nil Metrics -> NoopMetrics
//   - nil Clone   -> plain assignment
func NewStore[K comparable, V any](opt Options[V]) Store[K, V] {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.InitialSize < 0 {
		opt.InitialSize = 0
	}
	return &store[K, V]{
		m:   make(map[K]V, opt.InitialSize),
		opt: opt,
	}
}

// Get returns a copy of the value stored under k.
// Hit/Miss is reported to Metrics.
func (s *store[K, V]) Get(k K) (V, bool) {
	v, ok := s.m[k]
	if !ok {
		s.opt.Metrics.Miss()
		return v, false
	}
	s.opt.Metrics.Hit()
	return s.copyOf(v), true
}

// Insert overwrites k→v unconditionally.
func (s *store[K, V]) Insert(k K, v V) {
	s.m[k] = s.copyOf(v)
	s.opt.Metrics.Size(len(s.m))
}

// Clear empties the store. The map is reused, so memory already grown for
// a previous batch is kept for the next one.
func (s *store[K, V]) Clear() {
	dropped := len(s.m)
	clear(s.m)
	s.opt.Metrics.Reset(dropped)
	s.opt.Metrics.Size(0)
}

// Len returns the number of resident entries.
func (s *store[K, V]) Len() int { return len(s.m) }

func (s *store[K, V]) copyOf(v V) V {
	if s.opt.Clone == nil {
		return v
	}
	return s.opt.Clone(v)
}
