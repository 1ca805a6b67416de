package artifact

import "testing"

func validRecord() Record {
	return Record{
		Vendor:       "corretto",
		Version:      "11.0.19.7.1",
		JavaVersion:  "11",
		OS:           "linux",
		Architecture: "x86_64",
		ImageType:    "jdk",
		FileType:     "tar.gz",
		Filename:     "amazon-corretto-11.0.19.7.1-linux-x64.tar.gz",
		URL:          "https://example.invalid/download",
		ReleaseType:  ReleaseGA,
		JVMImpl:      ImplHotspot,
	}
}

func TestValidateOK(t *testing.T) {
	r := validRecord()
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsBadChecksum(t *testing.T) {
	r := validRecord()
	r.Checksum = "notanalgo:deadbeef"
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for malformed checksum")
	}
}

func TestValidateRejectsRelativeURL(t *testing.T) {
	r := validRecord()
	r.URL = "/download/file.tar.gz"
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for non-absolute url")
	}
}

func TestValidateRejectsBadReleaseType(t *testing.T) {
	r := validRecord()
	r.ReleaseType = "nightly"
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for invalid release_type")
	}
}

func TestSortFeaturesEmptyBecomesNil(t *testing.T) {
	r := validRecord()
	r.Features = []string{}
	r.SortFeatures()
	if r.Features != nil {
		t.Errorf("Features = %v, want nil", r.Features)
	}
}

func TestSortFeaturesSorts(t *testing.T) {
	r := validRecord()
	r.Features = []string{"musl", "lite", "crac"}
	r.SortFeatures()
	want := []string{"crac", "lite", "musl"}
	for i, w := range want {
		if r.Features[i] != w {
			t.Fatalf("Features = %v, want %v", r.Features, want)
		}
	}
}

func TestIdentityDeterminesEquality(t *testing.T) {
	a := validRecord()
	b := validRecord()
	b.URL = "https://example.invalid/other"
	if a.Identity() != b.Identity() {
		t.Error("records differing only by URL should share identity")
	}
	b.Architecture = "aarch64"
	if a.Identity() == b.Identity() {
		t.Error("records differing by architecture should not share identity")
	}
}
