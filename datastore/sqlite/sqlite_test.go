package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmeta/jmeta/artifact"
	"github.com/jmeta/jmeta/datastore"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(context.Background(), filepath.Join(dir, "jmeta.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func sampleBatch() []artifact.Record {
	return []artifact.Record{
		{
			Vendor: "corretto", Version: "11.0.19.7.1", JavaVersion: "11",
			OS: "linux", Architecture: "aarch64", ImageType: "jdk", FileType: "tar.gz",
			Filename: "amazon-corretto-11.0.19.7.1-linux-aarch64.tar.gz",
			URL:      "https://example.invalid/corretto-aarch64.tar.gz",
			ReleaseType: artifact.ReleaseGA, JVMImpl: artifact.ImplHotspot,
			Checksum: "sha256:aaaa",
		},
		{
			Vendor: "liberica", Version: "11.0.19+9", JavaVersion: "11",
			OS: "linux", Architecture: "aarch64", ImageType: "jdk", FileType: "tar.gz",
			Filename: "bellsoft-jdk11.0.19+9-linux-aarch64.tar.gz",
			URL:      "https://example.invalid/liberica-aarch64.tar.gz",
			ReleaseType: artifact.ReleaseGA, JVMImpl: artifact.ImplHotspot,
		},
		{
			Vendor: "corretto", Version: "17.0.7.7.1", JavaVersion: "17",
			OS: "windows", Architecture: "x86_64", ImageType: "jdk", FileType: "zip",
			Filename: "amazon-corretto-17.0.7.7.1-windows-x64.zip",
			URL:      "https://example.invalid/corretto-windows.zip",
			ReleaseType: artifact.ReleaseGA, JVMImpl: artifact.ImplHotspot,
		},
	}
}

func TestUpsertInsertsFreshBatch(t *testing.T) {
	s := openTestStore(t)
	n, err := s.Upsert(context.Background(), sampleBatch())
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("Upsert() = %d, want 3", n)
	}
}

func TestUpsertIsIdempotentOnRepeat(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	batch := sampleBatch()
	if _, err := s.Upsert(ctx, batch); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}
	n, err := s.Upsert(ctx, batch)
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if n != 0 {
		t.Fatalf("repeat Upsert() = %d, want 0 (nothing changed)", n)
	}
}

func TestUpsertOnlyUpdatesChangedRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	batch := sampleBatch()
	if _, err := s.Upsert(ctx, batch); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}

	changed := batch
	changed[0].Checksum = "sha256:bbbb"
	n, err := s.Upsert(ctx, changed)
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("Upsert() after one checksum change = %d, want 1", n)
	}
}

func TestDistinctSortedNonNull(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.Upsert(ctx, sampleBatch()); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	vendors, err := s.Distinct(ctx, datastore.ColumnVendor)
	if err != nil {
		t.Fatalf("Distinct() error = %v", err)
	}
	want := []string{"corretto", "liberica"}
	if len(vendors) != len(want) {
		t.Fatalf("Distinct(vendor) = %v, want %v", vendors, want)
	}
	for i := range want {
		if vendors[i] != want[i] {
			t.Fatalf("Distinct(vendor) = %v, want %v", vendors, want)
		}
	}
}

func TestExportSliceFiltersByPartitionAndFileType(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	batch := sampleBatch()
	batch = append(batch, artifact.Record{
		Vendor: "corretto", Version: "11.0.19.7.1", JavaVersion: "11",
		OS: "linux", Architecture: "aarch64", ImageType: "jdk", FileType: "rpm",
		Filename: "amazon-corretto-11.0.19.7.1-linux-aarch64.rpm",
		URL:      "https://example.invalid/corretto-aarch64.rpm",
		ReleaseType: artifact.ReleaseGA, JVMImpl: artifact.ImplHotspot,
	})
	if _, err := s.Upsert(ctx, batch); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	records, err := s.ExportSlice(ctx, datastore.PartitionKey{
		Axis1Column:  datastore.ColumnReleaseType,
		Axis1Value:   "ga",
		OS:           "linux",
		Architecture: "aarch64",
	})
	if err != nil {
		t.Fatalf("ExportSlice() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ExportSlice() = %d records, want 2 (rpm excluded, windows excluded)", len(records))
	}
	for _, r := range records {
		if r.FileType != "tar.gz" && r.FileType != "zip" {
			t.Errorf("unexpected file_type %q in export slice", r.FileType)
		}
	}
	if records[0].Vendor != "corretto" {
		t.Errorf("records[0].Vendor = %q, want corretto (ordered by vendor asc)", records[0].Vendor)
	}
}
