package main

import (
	"context"
	"strings"

	"github.com/jmeta/jmeta"
	"github.com/jmeta/jmeta/datastore"
	"github.com/jmeta/jmeta/datastore/postgres"
	"github.com/jmeta/jmeta/datastore/sqlite"
	"github.com/jmeta/jmeta/internal/config"
)

// openStore opens the backend selected by cfg.Database.URL's scheme, per
// spec §6 ("scheme selects backend").
func openStore(ctx context.Context, cfg config.Config) (datastore.Repository, error) {
	switch {
	case strings.HasPrefix(cfg.Database.URL, "postgres://"):
		return postgres.Open(ctx, postgres.Config{
			URL:      cfg.Database.URL,
			PoolSize: int32(cfg.Database.PoolSize),
			TLS: &postgres.TLSConfig{
				Mode:     cfg.Database.SSLMode,
				CAFile:   cfg.Database.SSLCA,
				CertFile: cfg.Database.SSLCert,
				KeyFile:  cfg.Database.SSLKey,
			},
		})
	case strings.HasPrefix(cfg.Database.URL, "sqlite://"):
		return sqlite.Open(ctx, strings.TrimPrefix(cfg.Database.URL, "sqlite://"))
	default:
		return nil, &jmeta.Error{Kind: jmeta.ErrConfigMissing, Op: "openStore", Message: "unsupported database.url scheme"}
	}
}
