// Package sqlite implements datastore.Repository backed by the embedded
// engine option spec §4.7 allows, using modernc.org/sqlite (the
// teacher's own dependency for its embedded-store code paths). The
// contract matches the postgres backend exactly; SQLite accepts the
// same "ON CONFLICT ... DO UPDATE ... WHERE" clause shape postgres does,
// so the diff-guarded upsert needs no special-casing here.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jmeta/jmeta"
	"github.com/jmeta/jmeta/artifact"
	"github.com/jmeta/jmeta/datastore"
)

const schema = `
CREATE TABLE IF NOT EXISTS jvm (
	vendor        text NOT NULL,
	version       text NOT NULL,
	java_version  text NOT NULL,
	os            text NOT NULL,
	architecture  text NOT NULL,
	image_type    text NOT NULL,
	file_type     text NOT NULL,
	filename      text NOT NULL,
	url           text NOT NULL,
	release_type  text NOT NULL,
	jvm_impl      text NOT NULL,
	features      text,
	checksum      text,
	checksum_url  text,
	size          integer,
	created_at    text NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
	modified_at   text NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
	PRIMARY KEY (vendor, version, os, architecture, image_type, file_type)
);
`

// Store is a SQLite-backed datastore.Repository.
type Store struct {
	db *sql.DB
}

var _ datastore.Repository = (*Store)(nil)

// Open opens (creating if necessary) the SQLite database at path and
// ensures the jvm table exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "sqlite.Open", Inner: err}
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite serializes writers; avoid lock contention.
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "sqlite.Open", Message: "applying schema", Inner: err}
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() { s.db.Close() }

const upsertStmt = `
INSERT INTO jvm (
	vendor, version, java_version, os, architecture, image_type, file_type,
	filename, url, release_type, jvm_impl, features, checksum, checksum_url, size,
	created_at, modified_at
) VALUES (
	?, ?, ?, ?, ?, ?, ?,
	?, ?, ?, ?, ?, ?, ?, ?,
	strftime('%Y-%m-%dT%H:%M:%fZ','now'), strftime('%Y-%m-%dT%H:%M:%fZ','now')
)
ON CONFLICT (vendor, version, os, architecture, image_type, file_type) DO UPDATE SET
	java_version = excluded.java_version,
	filename     = excluded.filename,
	url          = excluded.url,
	release_type = excluded.release_type,
	jvm_impl     = excluded.jvm_impl,
	features     = excluded.features,
	checksum     = excluded.checksum,
	checksum_url = excluded.checksum_url,
	size         = excluded.size,
	modified_at  = strftime('%Y-%m-%dT%H:%M:%fZ','now')
WHERE
	jvm.java_version IS NOT excluded.java_version OR
	jvm.filename     IS NOT excluded.filename OR
	jvm.url          IS NOT excluded.url OR
	jvm.release_type IS NOT excluded.release_type OR
	jvm.jvm_impl     IS NOT excluded.jvm_impl OR
	jvm.features     IS NOT excluded.features OR
	jvm.checksum     IS NOT excluded.checksum OR
	jvm.checksum_url IS NOT excluded.checksum_url OR
	jvm.size         IS NOT excluded.size;
`

// Upsert inserts batch within one transaction, returning the number of
// rows inserted or modified (a row is only touched when at least one
// non-key column differs). Unlike the postgres backend, SQLite statement
// execution has no wire-protocol batch size to tune, so the 1000-row
// chunking of spec §4.7 only has teeth in the postgres backend; the
// contract's outer shape (one transaction, diff-guarded conditional
// update, returned row count) is identical here.
func (s *Store) Upsert(ctx context.Context, batch []artifact.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &jmeta.Error{Kind: jmeta.ErrDb, Op: "sqlite.Upsert", Inner: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertStmt)
	if err != nil {
		return 0, &jmeta.Error{Kind: jmeta.ErrDb, Op: "sqlite.Upsert", Inner: err}
	}
	defer stmt.Close()

	var affected int64
	for _, r := range batch {
		if err := r.Validate(); err != nil {
			continue
		}
		r.SortFeatures()
		res, err := stmt.ExecContext(ctx,
			r.Vendor, r.Version, r.JavaVersion, r.OS, r.Architecture, r.ImageType, r.FileType,
			r.Filename, r.URL, r.ReleaseType, r.JVMImpl, joinFeatures(r.Features), nullStr(r.Checksum), nullStr(r.ChecksumURL), nullInt(r.Size),
		)
		if err != nil {
			return 0, &jmeta.Error{Kind: jmeta.ErrDb, Op: "sqlite.Upsert", Inner: err}
		}
		ra, _ := res.RowsAffected()
		affected += ra
	}
	if err := tx.Commit(); err != nil {
		return 0, &jmeta.Error{Kind: jmeta.ErrDb, Op: "sqlite.Upsert", Message: "commit", Inner: err}
	}
	return int(affected), nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

func joinFeatures(fs []string) any {
	if len(fs) == 0 {
		return nil
	}
	return strings.Join(fs, ",")
}

func splitFeatures(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return nil
	}
	return strings.Split(s.String, ",")
}

var distinctColumns = map[datastore.DistinctColumn]string{
	datastore.ColumnReleaseType: "release_type",
	datastore.ColumnOS:          "os",
	datastore.ColumnArch:        "architecture",
	datastore.ColumnVendor:      "vendor",
}

// Distinct returns the sorted distinct non-null values of column.
func (s *Store) Distinct(ctx context.Context, column datastore.DistinctColumn) ([]string, error) {
	col, ok := distinctColumns[column]
	if !ok {
		return nil, &jmeta.Error{Kind: jmeta.ErrDecode, Op: "sqlite.Distinct", Message: fmt.Sprintf("unknown column %q", column)}
	}
	q := fmt.Sprintf(`SELECT DISTINCT %s FROM jvm WHERE %s IS NOT NULL ORDER BY %s ASC`, col, col, col)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "sqlite.Distinct", Inner: err}
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "sqlite.Distinct", Inner: err}
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ExportSlice returns every artifact matching key with
// file_type in {tar.gz, zip}, ordered by (vendor, version, created_at
// desc).
func (s *Store) ExportSlice(ctx context.Context, key datastore.PartitionKey) ([]artifact.Record, error) {
	axisCol, ok := distinctColumns[key.Axis1Column]
	if !ok {
		return nil, &jmeta.Error{Kind: jmeta.ErrDecode, Op: "sqlite.ExportSlice", Message: fmt.Sprintf("unknown axis column %q", key.Axis1Column)}
	}
	q := fmt.Sprintf(`
		SELECT vendor, version, java_version, os, architecture, image_type, file_type,
		       filename, url, release_type, jvm_impl, features, checksum, checksum_url, size
		FROM jvm
		WHERE %s = ? AND os = ? AND architecture = ? AND file_type IN ('tar.gz', 'zip')
		ORDER BY vendor ASC, version ASC, created_at DESC
	`, axisCol)
	rows, err := s.db.QueryContext(ctx, q, key.Axis1Value, key.OS, key.Architecture)
	if err != nil {
		return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "sqlite.ExportSlice", Inner: err}
	}
	defer rows.Close()

	var out []artifact.Record
	for rows.Next() {
		var r artifact.Record
		var features sql.NullString
		var chk, chkURL sql.NullString
		var size sql.NullInt64
		if err := rows.Scan(
			&r.Vendor, &r.Version, &r.JavaVersion, &r.OS, &r.Architecture, &r.ImageType, &r.FileType,
			&r.Filename, &r.URL, &r.ReleaseType, &r.JVMImpl, &features, &chk, &chkURL, &size,
		); err != nil {
			return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "sqlite.ExportSlice", Inner: err}
		}
		r.Features = splitFeatures(features)
		if chk.Valid {
			r.Checksum = chk.String
		}
		if chkURL.Valid {
			r.ChecksumURL = chkURL.String
		}
		if size.Valid {
			r.Size = size.Int64
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
