// Command bench runs a memoized workload and exposes optional pprof/Prometheus endpoints.
//
// Every worker owns its memoized functions (memo objects are confined to one
// goroutine) and answers batches of lattice-path queries, resetting its
// caches between batches the way a solver resets between puzzle inputs.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/memogen/memo"
	pmet "github.com/IvanBrykalov/memogen/metrics/prom"
)

func main() {
	// ---- Flags ----
	var (
		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		size     = flag.Int("size", 200, "largest lattice side queried")
		batch    = flag.Int("batch", 1_000, "queries per batch; caches are reset between batches")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr; empty = disabled")
	)
	flag.Parse()

	log, _ := zap.NewProduction()
	defer func() { _ = log.Sync() }()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Info("pprof: serving", zap.String("addr", *pprofAddr))
			log.Warn("pprof server stopped", zap.Error(http.ListenAndServe(*pprofAddr, nil)))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Info("metrics: serving", zap.String("addr", *metricsAddr))
			log.Warn("metrics server stopped", zap.Error(http.ListenAndServe(*metricsAddr, nil)))
		}()
	}

	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}
	sizeN := max(*size, 1)
	batchN := max(*batch, 1)

	// ---- Load generation ----
	var queries, batches, hits, misses uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workersN; w++ {
		g.Go(func() error {
			// One adapter per worker: the size gauge tracks a single store.
			metrics := pmet.New(nil, "memogen", "bench", prometheus.Labels{"worker": strconv.Itoa(w)})
			var local memo.Counters
			p := newPaths(memo.Options[uint64]{Metrics: tee{metrics, &local}})

			r := rand.New(rand.NewSource(*seed + int64(w)*9973))
			for ctx.Err() == nil {
				for i := 0; i < batchN; i++ {
					p.count(r.Intn(sizeN)+1, r.Intn(sizeN)+1)
				}
				atomic.AddUint64(&queries, uint64(batchN))
				atomic.AddUint64(&batches, 1)
				p.Reset()
			}
			atomic.AddUint64(&hits, uint64(local.Hits))
			atomic.AddUint64(&misses, uint64(local.Misses))
			return nil
		})
	}
	_ = g.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	hitsN, missesN := atomic.LoadUint64(&hits), atomic.LoadUint64(&misses)
	hitRate := 0.0
	if hitsN+missesN > 0 {
		hitRate = float64(hitsN) / float64(hitsN+missesN) * 100
	}
	q := atomic.LoadUint64(&queries)
	fmt.Printf("workers=%d size=%d batch=%d dur=%v seed=%d\n", workersN, sizeN, batchN, elapsed, *seed)
	fmt.Printf("queries=%d (%.0f q/s)  batches=%d\n", q, float64(q)/elapsed.Seconds(), atomic.LoadUint64(&batches))
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", hitsN, missesN, hitRate)
}

// paths counts monotone lattice paths from (0,0) to (x,y), modulo 2^64.
type paths struct {
	*memo.Func2[int, int, uint64]
}

func newPaths(opt memo.Options[uint64]) *paths {
	p := &paths{}
	p.Func2 = memo.New2(func(x, y int) uint64 {
		if x == 0 || y == 0 {
			return 1
		}
		return p.count(x-1, y) + p.count(x, y-1)
	}, opt)
	return p
}

func (p *paths) count(x, y int) uint64 { return p.Call(x, y) }

// tee fans metrics out to several sinks.
type tee []memo.Metrics

func (t tee) Hit() {
	for _, m := range t {
		m.Hit()
	}
}

func (t tee) Miss() {
	for _, m := range t {
		m.Miss()
	}
}

func (t tee) Reset(dropped int) {
	for _, m := range t {
		m.Reset(dropped)
	}
}

func (t tee) Size(entries int) {
	for _, m := range t {
		m.Size(entries)
	}
}
