// Package export implements the export orchestrator (spec §4.9):
// enumerate the partition Cartesian product, query each slice, run
// filter+projection in parallel, and hand results to a Writer
// collaborator. The concurrency shape is grounded on the same
// semaphore-bounded fan-out as package scheduler (itself grounded on the
// teacher's libvuln/updates.Manager.Run).
package export

import (
	"context"
	"fmt"
	"path"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/jmeta/jmeta/datastore"
	"github.com/jmeta/jmeta/filter"
)

// Writer receives one export slice's projected records for a given
// output path. Implementations (e.g. internal/writer) handle directory
// creation and JSON encoding; export itself only produces in-memory
// projected records, per spec §1 ("the core produces the in-memory
// projected records; the writer is trivial").
type Writer interface {
	Write(ctx context.Context, relPath string, records []map[string]any) error
}

// Options configures one export run.
type Options struct {
	// Axis1Column is datastore.ColumnReleaseType or datastore.ColumnVendor.
	Axis1Column datastore.DistinctColumn
	// Axis1Values restricts axis1 to these values; empty means "every
	// distinct value currently in the catalog" (spec §4.9).
	Axis1Values []string
	OSValues    []string
	ArchValues  []string
	Filters     filter.Fields
	Include     []string
	Exclude     []string
	Concurrency int
}

// Run enumerates the Cartesian product of Options' partition axes,
// queries each slice, filters and projects it in parallel, and writes it
// through w at "<axis1>/<os>/<arch>.json".
func Run(ctx context.Context, store datastore.Repository, w Writer, opts Options) error {
	axis1, err := resolveValues(ctx, store, opts.Axis1Column, opts.Axis1Values)
	if err != nil {
		return err
	}
	osValues, err := resolveValues(ctx, store, datastore.ColumnOS, opts.OSValues)
	if err != nil {
		return err
	}
	archValues, err := resolveValues(ctx, store, datastore.ColumnArch, opts.ArchValues)
	if err != nil {
		return err
	}

	conc := opts.Concurrency
	if conc < 1 {
		conc = runtime.GOMAXPROCS(0)
	}
	sem := semaphore.NewWeighted(int64(conc))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, a1 := range axis1 {
		for _, osv := range osValues {
			for _, arch := range archValues {
				if err := sem.Acquire(ctx, 1); err != nil {
					fail(err)
					break
				}
				wg.Add(1)
				go func(a1, osv, arch string) {
					defer wg.Done()
					defer sem.Release(1)
					if err := runOne(ctx, store, w, opts, a1, osv, arch); err != nil {
						fail(err)
					}
				}(a1, osv, arch)
			}
		}
	}
	wg.Wait()
	return firstErr
}

func runOne(ctx context.Context, store datastore.Repository, w Writer, opts Options, a1, osv, arch string) error {
	key := datastore.PartitionKey{
		Axis1Column:  opts.Axis1Column,
		Axis1Value:   a1,
		OS:           osv,
		Architecture: arch,
	}
	records, err := store.ExportSlice(ctx, key)
	if err != nil {
		return fmt.Errorf("export: slice (%s=%s, os=%s, arch=%s): %w", opts.Axis1Column, a1, osv, arch, err)
	}

	projected := make([]map[string]any, 0, len(records))
	for _, r := range records {
		m, err := filter.ToMap(r)
		if err != nil {
			return err
		}
		if !filter.Match(m, opts.Filters) {
			continue
		}
		projected = append(projected, filter.Project(m, opts.Include, opts.Exclude))
	}

	relPath := path.Join(a1, osv, arch+".json")
	return w.Write(ctx, relPath, projected)
}

func resolveValues(ctx context.Context, store datastore.Repository, col datastore.DistinctColumn, given []string) ([]string, error) {
	if len(given) > 0 {
		return given, nil
	}
	return store.Distinct(ctx, col)
}
