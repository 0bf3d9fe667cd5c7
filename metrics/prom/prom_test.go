package prom

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/memogen/memo"
)

func TestAdapter_CountsMemoizedCalls(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewPedanticRegistry()
	a := New(reg, "memogen", "test", prometheus.Labels{"func": "square"})

	sq := memo.New1(func(n int) int { return n * n }, memo.Options[int]{Metrics: a})
	sq.Call(2) // miss
	sq.Call(2) // hit
	sq.Call(3) // miss
	sq.Call(3) // hit
	sq.Call(3) // hit

	assert.Equal(t, 3.0, testutil.ToFloat64(a.hits))
	assert.Equal(t, 2.0, testutil.ToFloat64(a.misses))
	assert.Equal(t, 2.0, testutil.ToFloat64(a.sizeEnt))

	sq.Reset()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.resets))
	assert.Equal(t, 2.0, testutil.ToFloat64(a.dropped))
	assert.Equal(t, 0.0, testutil.ToFloat64(a.sizeEnt))
}

func TestAdapter_Exposition(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "memogen", "", nil)
	a.Miss()
	a.Size(1)

	want := `
# HELP memogen_misses_total Memoized calls that ran the computation
# TYPE memogen_misses_total counter
memogen_misses_total 1
# HELP memogen_size_entries Number of cached results
# TYPE memogen_size_entries gauge
memogen_size_entries 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(want), "memogen_misses_total", "memogen_size_entries")
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

// Registering the same metric names twice on one registry panics; separate
// functions need distinct labels.
func TestAdapter_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	New(reg, "memogen", "", prometheus.Labels{"func": "a"})
	assert.Panics(t, func() { New(reg, "memogen", "", prometheus.Labels{"func": "a"}) })
}
