package main

import (
	"context"
	"testing"

	"github.com/jmeta/jmeta/internal/config"
)

func TestOpenStoreRejectsUnsupportedScheme(t *testing.T) {
	cfg := config.Config{}
	cfg.Database.URL = "mysql://localhost/jmeta"
	if _, err := openStore(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unsupported database.url scheme")
	}
}

func TestOpenStoreSqliteScheme(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{}
	cfg.Database.URL = "sqlite://" + dir + "/jmeta.db"
	store, err := openStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("openStore() error = %v", err)
	}
	defer store.Close()
}
