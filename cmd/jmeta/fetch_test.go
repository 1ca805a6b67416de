package main

import (
	"context"
	"testing"

	"github.com/jmeta/jmeta/accumulator"
	"github.com/jmeta/jmeta/driver"
)

type namedUpdater string

func (n namedUpdater) Name() string { return string(n) }

func (n namedUpdater) FetchInto(ctx context.Context, set *accumulator.Set) error { return nil }

func TestFilterUpdatersExactName(t *testing.T) {
	all := []driver.Updater{namedUpdater("microsoft"), namedUpdater("corretto-8")}
	out := filterUpdaters(all, []string{"microsoft"})
	if len(out) != 1 || out[0].Name() != "microsoft" {
		t.Fatalf("filterUpdaters() = %v, want just microsoft", out)
	}
}

func TestFilterUpdatersVendorPrefix(t *testing.T) {
	all := []driver.Updater{
		namedUpdater("corretto-8"),
		namedUpdater("corretto-11"),
		namedUpdater("liberica-8"),
	}
	out := filterUpdaters(all, []string{"corretto"})
	if len(out) != 2 {
		t.Fatalf("filterUpdaters(corretto) = %v, want both corretto-* entries", out)
	}
}

func TestFilterUpdatersNoMatch(t *testing.T) {
	all := []driver.Updater{namedUpdater("corretto-8")}
	out := filterUpdaters(all, []string{"zulu"})
	if len(out) != 0 {
		t.Fatalf("filterUpdaters(zulu) = %v, want none", out)
	}
}
