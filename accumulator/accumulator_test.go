package accumulator

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmeta/jmeta/artifact"
)

func sampleRecord(version string) artifact.Record {
	return artifact.Record{
		Vendor:       "corretto",
		Version:      version,
		JavaVersion:  "11",
		OS:           "linux",
		Architecture: "x86_64",
		ImageType:    "jdk",
		FileType:     "tar.gz",
		Filename:     "amazon-corretto-" + version + "-linux-x64.tar.gz",
		URL:          "https://example.invalid/" + version,
		ReleaseType:  artifact.ReleaseGA,
		JVMImpl:      artifact.ImplHotspot,
	}
}

func TestAddDedupesByIdentity(t *testing.T) {
	s := New()
	r := sampleRecord("11.0.19.7.1")
	s.Add(r)

	dup := r
	dup.URL = "https://example.invalid/replaced"
	s.Add(dup)

	if got, want := s.Len(), 1; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	records := s.Records()
	if diff := cmp.Diff(r, records[0]); diff != "" {
		t.Errorf("first writer should win (-want +got):\n%s", diff)
	}
}

func TestAddSortsFeatures(t *testing.T) {
	s := New()
	r := sampleRecord("11.0.19.7.1")
	r.Features = []string{"musl", "lite"}
	s.Add(r)

	got := s.Records()[0].Features
	want := []string{"lite", "musl"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("features not sorted (-want +got):\n%s", diff)
	}
}

func TestAddConcurrentSafe(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := sampleRecord("11.0.19.7.1")
			r.Architecture = string(rune('a' + i%26))
			s.Add(r)
		}(i)
	}
	wg.Wait()
	if s.Len() == 0 {
		t.Fatal("expected at least one record after concurrent Add")
	}
}

func TestMergeFirstWriterWins(t *testing.T) {
	a := New()
	b := New()
	r := sampleRecord("17.0.1")
	a.Add(r)
	dup := r
	dup.URL = "https://example.invalid/from-b"
	b.Add(dup)

	a.Merge(b)
	if got, want := a.Len(), 1; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got := a.Records()[0].URL; got != r.URL {
		t.Errorf("Merge should keep s's existing entry on collision, got URL %q", got)
	}
}
