package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/jmeta/jmeta/accumulator"
	"github.com/jmeta/jmeta/artifact"
)

type fakeUpdater struct {
	name    string
	records []artifact.Record
	err     error
}

func (f fakeUpdater) Name() string { return f.name }

func (f fakeUpdater) FetchInto(ctx context.Context, set *accumulator.Set) error {
	for _, r := range f.records {
		set.Add(r)
	}
	return f.err
}

func TestFetchReturnsDiscoveredRecords(t *testing.T) {
	r := artifact.Record{
		Vendor: "corretto", Version: "11.0.19.7.1", JavaVersion: "11",
		OS: "linux", Architecture: "x86_64", ImageType: "jdk", FileType: "tar.gz",
		Filename: "x.tar.gz", URL: "https://example.invalid/x",
		ReleaseType: artifact.ReleaseGA, JVMImpl: artifact.ImplHotspot,
	}
	u := fakeUpdater{name: "corretto-11", records: []artifact.Record{r}}

	set, err := Fetch(context.Background(), u)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := set.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
}

func TestFetchReturnsPartialResultsOnError(t *testing.T) {
	r := artifact.Record{
		Vendor: "corretto", Version: "11.0.19.7.1", JavaVersion: "11",
		OS: "linux", Architecture: "x86_64", ImageType: "jdk", FileType: "tar.gz",
		Filename: "x.tar.gz", URL: "https://example.invalid/x",
		ReleaseType: artifact.ReleaseGA, JVMImpl: artifact.ImplHotspot,
	}
	wantErr := errors.New("boom")
	u := fakeUpdater{name: "corretto-11", records: []artifact.Record{r}, err: wantErr}

	set, err := Fetch(context.Background(), u)
	if !errors.Is(err, wantErr) {
		t.Fatalf("Fetch() error = %v, want %v", err, wantErr)
	}
	if got := set.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1 (partial results should still flow)", got)
	}
}
