// Package postgres implements datastore.Repository backed by Postgres
// via pgx/v5, grounded on the teacher's datastore/postgres package: one
// transaction per scraper run, a pkg/microbatch-style batched insert
// (here internal/microbatch, ported to pgx/v5 and to spec §4.7's
// 1000-row batch size), and promauto counters/histograms matching the
// teacher's own updatevulnerabilities.go metrics.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/quay/zlog"

	"github.com/jmeta/jmeta"
	"github.com/jmeta/jmeta/artifact"
	"github.com/jmeta/jmeta/datastore"
	"github.com/jmeta/jmeta/internal/microbatch"
	"github.com/jmeta/jmeta/internal/tlsconf"
)

const batchSize = 1000

var (
	upsertCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jmeta",
		Subsystem: "datastore",
		Name:      "upsert_total",
		Help:      "Total number of upsert batches issued against the jvm table.",
	}, []string{"result"})
	upsertDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "jmeta",
		Subsystem: "datastore",
		Name:      "upsert_duration_seconds",
		Help:      "Duration of Upsert calls against the jvm table.",
	}, []string{"result"})
)

// Store is a Postgres-backed datastore.Repository.
type Store struct {
	pool *pgxpool.Pool
}

var _ datastore.Repository = (*Store)(nil)

// Config configures pool sizing and TLS, per spec §5/§6.
type Config struct {
	URL            string
	PoolSize       int32
	MaxConnLife    time.Duration
	TLS            *TLSConfig // see internal/tlsconf; nil uses connection string defaults.
}

// TLSConfig carries the sslmode/ssl_ca/ssl_cert/ssl_key options of spec
// §6. It is consumed by internal/tlsconf to build the *tls.Config pgx
// uses; Store itself only stores the already-resolved pool config.
type TLSConfig struct {
	Mode       string
	CAFile     string
	CertFile   string
	KeyFile    string
}

// Open connects to Postgres and ensures the jvm table exists.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.Open", Inner: err}
	}
	if cfg.PoolSize > 0 {
		poolCfg.MaxConns = cfg.PoolSize
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MaxConnLife > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLife
	} else {
		poolCfg.MaxConnLifetime = 60 * time.Minute
	}
	if cfg.TLS != nil {
		tc, err := tlsconf.Build(tlsconf.Config{
			Mode:     tlsconf.Mode(cfg.TLS.Mode),
			CAFile:   cfg.TLS.CAFile,
			CertFile: cfg.TLS.CertFile,
			KeyFile:  cfg.TLS.KeyFile,
		}, poolCfg.ConnConfig.Host)
		if err != nil {
			return nil, err
		}
		poolCfg.ConnConfig.TLSConfig = tc
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.Open", Inner: err}
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.Open", Message: "applying schema", Inner: err}
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() { s.pool.Close() }

const upsertStmt = `
INSERT INTO jvm (
	vendor, version, java_version, os, architecture, image_type, file_type,
	filename, url, release_type, jvm_impl, features, checksum, checksum_url, size,
	created_at, modified_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7,
	$8, $9, $10, $11, $12, $13, $14, $15,
	now(), now()
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
	modified_at  = now()
WHERE
	jvm.java_version IS DISTINCT FROM excluded.java_version OR
	jvm.filename     IS DISTINCT FROM excluded.filename OR
	jvm.url          IS DISTINCT FROM excluded.url OR
	jvm.release_type IS DISTINCT FROM excluded.release_type OR
	jvm.jvm_impl     IS DISTINCT FROM excluded.jvm_impl OR
	jvm.features     IS DISTINCT FROM excluded.features OR
	jvm.checksum     IS DISTINCT FROM excluded.checksum OR
	jvm.checksum_url IS DISTINCT FROM excluded.checksum_url OR
	jvm.size         IS DISTINCT FROM excluded.size;
`

// Upsert issues one single-row statement per record, sent in batches of
// up to 1000 statements, all within one transaction: commit on success,
// rollback on any error.
// Rows are only updated (and modified_at bumped) when at least one
// non-key column actually differs from the stored row, per spec §4.7's
// diff-guarded upsert.
func (s *Store) Upsert(ctx context.Context, batch []artifact.Record) (int, error) {
	start := time.Now()
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		upsertCounter.WithLabelValues("error").Inc()
		return 0, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.Upsert", Message: "begin transaction", Inner: err}
	}
	defer tx.Rollback(ctx)

	ins := microbatch.NewInsert(tx, batchSize, time.Minute)
	for _, r := range batch {
		if err := r.Validate(); err != nil {
			continue
		}
		r.SortFeatures()
		err := ins.Queue(ctx, upsertStmt,
			r.Vendor, r.Version, r.JavaVersion, r.OS, r.Architecture, r.ImageType, r.FileType,
			r.Filename, r.URL, r.ReleaseType, r.JVMImpl, r.Features, nullStr(r.Checksum), nullStr(r.ChecksumURL), nullInt(r.Size),
		)
		if err != nil {
			upsertCounter.WithLabelValues("error").Inc()
			return 0, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.Upsert", Inner: err}
		}
	}
	affected, err := ins.Done(ctx)
	if err != nil {
		upsertCounter.WithLabelValues("error").Inc()
		return 0, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.Upsert", Inner: err}
	}
	if err := tx.Commit(ctx); err != nil {
		upsertCounter.WithLabelValues("error").Inc()
		return 0, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.Upsert", Message: "commit", Inner: err}
	}
	upsertCounter.WithLabelValues("ok").Inc()
	upsertDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	zlog.Debug(ctx).Int("rows", len(batch)).Int64("affected", affected).Msg("upsert committed")
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

var distinctColumns = map[datastore.DistinctColumn]string{
	datastore.ColumnReleaseType: "release_type",
	datastore.ColumnOS:          "os",
	datastore.ColumnArch:        "architecture",
	datastore.ColumnVendor:      "vendor",
}

// Distinct returns the sorted distinct non-null values of column. column
// must be one of the allow-listed datastore.DistinctColumn values; it is
// never concatenated from caller-supplied text.
func (s *Store) Distinct(ctx context.Context, column datastore.DistinctColumn) ([]string, error) {
	col, ok := distinctColumns[column]
	if !ok {
		return nil, &jmeta.Error{Kind: jmeta.ErrDecode, Op: "postgres.Distinct", Message: fmt.Sprintf("unknown column %q", column)}
	}
	q := fmt.Sprintf(`SELECT DISTINCT %s FROM jvm WHERE %s IS NOT NULL ORDER BY %s ASC`, col, col, col)
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.Distinct", Inner: err}
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.Distinct", Inner: err}
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ExportSlice returns every artifact matching key with
// file_type in {tar.gz, zip}, ordered by (vendor, version, created_at
// desc), per spec §3/§4.7.
func (s *Store) ExportSlice(ctx context.Context, key datastore.PartitionKey) ([]artifact.Record, error) {
	axisCol, ok := distinctColumns[key.Axis1Column]
	if !ok {
		return nil, &jmeta.Error{Kind: jmeta.ErrDecode, Op: "postgres.ExportSlice", Message: fmt.Sprintf("unknown axis column %q", key.Axis1Column)}
	}
	q := fmt.Sprintf(`
		SELECT vendor, version, java_version, os, architecture, image_type, file_type,
		       filename, url, release_type, jvm_impl, features, checksum, checksum_url, size
		FROM jvm
		WHERE %s = $1 AND os = $2 AND architecture = $3 AND file_type = ANY($4)
		ORDER BY vendor ASC, version ASC, created_at DESC
	`, axisCol)
	rows, err := s.pool.Query(ctx, q, key.Axis1Value, key.OS, key.Architecture, datastore.ExportFileTypes)
	if err != nil {
		return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.ExportSlice", Inner: err}
	}
	defer rows.Close()

	var out []artifact.Record
	for rows.Next() {
		var r artifact.Record
		var (
			chk, chkURL *string
			size        *int64
		)
		if err := rows.Scan(
			&r.Vendor, &r.Version, &r.JavaVersion, &r.OS, &r.Architecture, &r.ImageType, &r.FileType,
			&r.Filename, &r.URL, &r.ReleaseType, &r.JVMImpl, &r.Features, &chk, &chkURL, &size,
		); err != nil {
			return nil, &jmeta.Error{Kind: jmeta.ErrDb, Op: "postgres.ExportSlice", Inner: err}
		}
		if chk != nil {
			r.Checksum = *chk
		}
		if chkURL != nil {
			r.ChecksumURL = *chkURL
		}
		if size != nil {
			r.Size = *size
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
