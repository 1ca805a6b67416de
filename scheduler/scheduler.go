// Package scheduler runs selected vendor scrapers concurrently on a
// bounded worker pool (spec §4.6), grounded directly on the teacher's
// libvuln/updates.Manager.Run: a semaphore-bounded fan-out, a
// mutex-guarded per-vendor result map that collects failures without
// aborting the batch,
// and an unconditional wait for all in-flight workers before returning.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/quay/zlog"
	"golang.org/x/sync/semaphore"

	"github.com/jmeta/jmeta/accumulator"
	"github.com/jmeta/jmeta/driver"
)

// DefaultBatchSize is the default number of vendors run in parallel.
var DefaultBatchSize = runtime.GOMAXPROCS(0)

// Result is the outcome of a Run call: the merged accumulator of
// everything every vendor discovered, plus a per-vendor success/failure
// map for reporting (spec §7: the fetch command exits 0 if at least one
// vendor completed).
type Result struct {
	// RunID tags this Run invocation for log correlation across
	// vendors, the same role claircore's update_operation.Ref plays for
	// one indexer/matcher pass.
	RunID     uuid.UUID
	Set       *accumulator.Set
	PerVendor map[string]error
}

// Option configures a Run call.
type Option func(*config)

type config struct {
	batchSize int
}

// WithBatchSize overrides DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(c *config) { c.batchSize = n }
}

// Run executes updaters concurrently on a bounded worker pool.
//
// Cancellation is coarse: in-flight HTTP calls inside a vendor's
// FetchInto are not interrupted; a canceled ctx is honored before the
// next vendor starts, and Run always waits for in-flight vendors to
// finish before returning (spec §4.6, §5).
func Run(ctx context.Context, updaters []driver.Updater, opts ...Option) *Result {
	cfg := config{batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.batchSize < 1 {
		cfg.batchSize = 1
	}

	res := &Result{
		RunID:     uuid.New(),
		Set:       accumulator.New(),
		PerVendor: make(map[string]error, len(updaters)),
	}
	ctx = zlog.ContextWithValues(ctx, "run_id", res.RunID.String())
	var mu sync.Mutex

	sem := semaphore.NewWeighted(int64(cfg.batchSize))
	var wg sync.WaitGroup
	for _, u := range updaters {
		if err := sem.Acquire(ctx, 1); err != nil {
			zlog.Error(ctx).Err(err).Msg("scheduler: context canceled, ending run early")
			break
		}
		wg.Add(1)
		go func(u driver.Updater) {
			defer wg.Done()
			defer sem.Release(1)

			set, err := driver.Fetch(ctx, u)

			mu.Lock()
			res.Set.Merge(set)
			res.PerVendor[u.Name()] = err
			mu.Unlock()

			if err != nil {
				zlog.Error(ctx).Str("vendor", u.Name()).Err(err).Msg("vendor failed")
			}
		}(u)
	}

	// Unconditionally wait for all in-flight goroutines: every goroutine
	// releases its semaphore slot before returning, so this never
	// deadlocks even if the loop above broke out early on ctx.Err().
	wg.Wait()

	return res
}

// Err aggregates the per-vendor failures of a Result into a single
// error, or nil if every vendor succeeded.
func (r *Result) Err() error {
	var names []string
	for name, err := range r.PerVendor {
		if err != nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("updating errors:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %v\n", name, r.PerVendor[name])
	}
	return errors.New(b.String())
}

// AnySucceeded reports whether at least one vendor completed without
// error, the condition spec §7 uses to decide the fetch command's exit
// status.
func (r *Result) AnySucceeded() bool {
	for _, err := range r.PerVendor {
		if err == nil {
			return true
		}
	}
	return false
}
