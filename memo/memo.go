package memo

// Memo runs the memoization state machine over a Store keyed by K.
//
// On every Do:
//   - look the key up;
//   - hit: return the stored result, compute is not invoked;
//   - miss: invoke compute, store its result under key, return it.
//
// Only fully computed results are stored. A compute that recursively calls
// back into the same Memo for a key that is not yet present simply computes
// it too; there is no reentrancy guard, so unbounded recursion is the
// caller's problem.
//
// A Memo is not safe for concurrent use.
type Memo[K comparable, R any] struct {
	store Store[K, R]
}

// NewMemo constructs a Memo over a fresh Store built from opt.
func NewMemo[K comparable, R any](opt Options[R]) *Memo[K, R] {
	return &Memo[K, R]{store: NewStore[K, R](opt)}
}

// NewMemoWithStore constructs a Memo over an existing Store.
// It panics if s is nil.
func NewMemoWithStore[K comparable, R any](s Store[K, R]) *Memo[K, R] {
	if s == nil {
		panic("memo: nil Store")
	}
	return &Memo[K, R]{store: s}
}

// Do returns the result stored under key, computing and storing it on miss.
func (m *Memo[K, R]) Do(key K, compute func() R) R {
	if v, ok := m.store.Get(key); ok {
		return v
	}
	v := compute()
	m.store.Insert(key, v)
	return v
}

// Reset discards every stored result. Call it between logically independent
// batches of work that share this Memo; otherwise later batches see results
// computed for earlier ones.
func (m *Memo[K, R]) Reset() { m.store.Clear() }

// Len returns the number of stored results.
func (m *Memo[K, R]) Len() int { return m.store.Len() }

// Store exposes the underlying store.
func (m *Memo[K, R]) Store() Store[K, R] { return m.store }
