// Package datastore defines the Repository contract (spec §4.7)
// implemented by both the postgres and sqlite backends.
package datastore

import (
	"context"

	"github.com/jmeta/jmeta/artifact"
)

// DistinctColumn is the closed set of columns Distinct may be called
// with; never build the column name from caller-provided text, per spec
// §4.7.
type DistinctColumn string

const (
	ColumnReleaseType DistinctColumn = "release_type"
	ColumnOS          DistinctColumn = "os"
	ColumnArch        DistinctColumn = "architecture"
	ColumnVendor      DistinctColumn = "vendor"
)

// PartitionKey addresses one export slice: either (release_type, os,
// architecture) or (vendor, os, architecture), per spec §3.
type PartitionKey struct {
	// Axis1Column is ColumnReleaseType or ColumnVendor.
	Axis1Column DistinctColumn
	Axis1Value  string
	OS          string
	Architecture string
}

// Repository is the persistence contract: a batched idempotent upsert,
// a distinct-value probe, and a partitioned export query (spec §4.7).
type Repository interface {
	// Upsert inserts batch, updating any existing row only when at
	// least one non-key column differs, and returns the count of rows
	// actually inserted or modified.
	Upsert(ctx context.Context, batch []artifact.Record) (int, error)
	// Distinct returns the sorted distinct non-null values of column.
	Distinct(ctx context.Context, column DistinctColumn) ([]string, error)
	// ExportSlice returns every artifact matching key with
	// file_type in {tar.gz, zip}, ordered by (vendor, version,
	// created_at desc).
	ExportSlice(ctx context.Context, key PartitionKey) ([]artifact.Record, error)
	// Close releases any held resources (connection pools, file
	// handles).
	Close()
}

// ExportFileTypes is the file_type allow-list export slices are
// restricted to, per spec §3.
var ExportFileTypes = []string{"tar.gz", "zip"}
