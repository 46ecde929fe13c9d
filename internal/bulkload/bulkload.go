// Package bulkload drives concurrent Put/Remove calls against a trie.Store
// from a fixed-size worker pool: a channel of work items, N goroutines
// draining it, a WaitGroup at the end.
package bulkload

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"triefuzz/internal/lib/logger/sl"
	"triefuzz/internal/metrics"
	"triefuzz/internal/trie"
)

// Op selects which Store method an Entry applies.
type Op int

const (
	OpPut Op = iota
	OpRemove
)

// Entry is one unit of work for Load: either a Put of Key/Value or a Remove
// of Key (Value is ignored for OpRemove).
type Entry[V any] struct {
	Op    Op
	Key   string
	Value V
}

// Load applies entries to store using workerCount concurrent goroutines,
// recording outcomes to m and log when non-nil. It returns once every entry
// has been applied or ctx is cancelled, whichever comes first. This is both
// the bulk-loading utility cmd/triedemo uses to seed a Store from a corpus
// and the harness the concurrency property tests drive with random
// interleavings of Put/Remove.
func Load[V any](ctx context.Context, store *trie.Store[V], entries []Entry[V], workerCount int, m *metrics.Metrics, log *slog.Logger) {
	if workerCount < 1 {
		workerCount = 1
	}

	jobs := make(chan Entry[V])
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case e, ok := <-jobs:
					if !ok {
						return
					}
					apply(store, e, m, log)
				}
			}
		}()
	}

feed:
	for _, e := range entries {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- e:
		}
	}
	close(jobs)
	wg.Wait()
}

func apply[V any](store *trie.Store[V], e Entry[V], m *metrics.Metrics, log *slog.Logger) {
	start := time.Now()

	var err error
	switch e.Op {
	case OpPut:
		_, _, err = store.Put(e.Key, e.Value)
	case OpRemove:
		_, err = store.Remove(e.Key)
	}
	d := time.Since(start)

	if err != nil {
		if m != nil {
			m.RecordFailure(d)
		}
		if log != nil {
			log.Warn("bulkload entry failed", "key", e.Key, "op", e.Op, sl.Err(err))
		}
		return
	}
	if m != nil {
		m.RecordSuccess(d)
	}
}
