// Package driver defines the contract every vendor scraper implements
// (spec §4.4), generalized from the teacher's Fetcher/Parser split into a
// single fetch-and-accumulate method: a JVM vendor scraper re-enumerates
// its source's current catalog on every run rather than diffing against
// a prior fingerprint, so there is no separate "has this changed" stage
// to model — the accumulator's dedup and the repository's diff-guarded
// upsert (spec §4.7) absorb the idempotence a fingerprint would
// otherwise provide.
package driver

import (
	"context"
	"time"

	"github.com/quay/zlog"

	"github.com/jmeta/jmeta/accumulator"
)

// Updater is the capability set the scheduler consumes: a name and an
// operation that appends discovered artifact records into an
// accumulator (spec §4.4, §9's "polymorphic vendors" design note).
type Updater interface {
	Name() string
	FetchInto(ctx context.Context, set *accumulator.Set) error
}

// Fetch wraps a call to u.FetchInto with timing and a summary log line,
// matching the "public entry wraps fetch_into with timing and a summary
// log line" contract of spec §4.4. It returns a fresh accumulator.Set
// containing whatever the updater discovered before it failed, if it
// failed at all partway through enumeration (spec §7: per-release/page
// failures break that axis's loop only; partial results still flow).
func Fetch(ctx context.Context, u Updater) (*accumulator.Set, error) {
	ctx = zlog.ContextWithValues(ctx, "vendor", u.Name())
	set := accumulator.New()
	start := time.Now()
	zlog.Debug(ctx).Msg("starting vendor fetch")
	err := u.FetchInto(ctx, set)
	elapsed := time.Since(start)
	if err != nil {
		zlog.Error(ctx).
			Err(err).
			Dur("elapsed", elapsed).
			Int("discovered", set.Len()).
			Msg("vendor fetch failed")
		return set, err
	}
	zlog.Info(ctx).
		Dur("elapsed", elapsed).
		Int("discovered", set.Len()).
		Msg("vendor fetch complete")
	return set, nil
}
