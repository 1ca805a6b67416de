// Package artifact holds the normalized per-artifact record (spec §3)
// shared by every vendor scraper, the deduplicating accumulator, and the
// repository layer.
package artifact

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jmeta/jmeta"
)

// ReleaseType values, closed per spec §3.
const (
	ReleaseGA = "ga"
	ReleaseEA = "ea"
)

// JVMImpl values, closed per spec §3.
const (
	ImplHotspot = "hotspot"
	ImplOpenJ9  = "openj9"
	ImplGraalVM = "graalvm"
)

// Feature tokens, the cross-cutting capability vocabulary from spec §3.
const (
	FeatureMusl      = "musl"
	FeatureJavaFX    = "javafx"
	FeatureCRaC      = "crac"
	FeatureLite      = "lite"
	FeatureLeyden    = "leyden"
	FeatureFastdebug = "fastdebug"
	FeatureJCEF      = "jcef"
	FeatureFreetype  = "freetype"
	FeatureDebug     = "debug"
	FeatureLargeHeap = "large_heap"
	FeatureCertified = "certified"
)

var checksumRe = regexp.MustCompile(`^(md5|sha1|sha256|sha512):[0-9A-Fa-f]+$`)

// Record is one downloadable JVM binary, normalized per spec §3.
type Record struct {
	Vendor       string   `json:"vendor"`
	Version      string   `json:"version"`
	JavaVersion  string   `json:"java_version"`
	OS           string   `json:"os"`
	Architecture string   `json:"architecture"`
	ImageType    string   `json:"image_type"`
	FileType     string   `json:"file_type"`
	Filename     string   `json:"filename"`
	URL          string   `json:"url"`
	ReleaseType  string   `json:"release_type"`
	JVMImpl      string   `json:"jvm_impl"`
	Features     []string `json:"features,omitempty"`
	Checksum     string   `json:"checksum,omitempty"`
	ChecksumURL  string   `json:"checksum_url,omitempty"`
	Size         int64    `json:"size,omitempty"`
}

// Identity is the composite primary key spec §3 requires the accumulator
// and repository to agree on: (vendor, version, os, architecture,
// image_type, file_type). It is comparable, so it can key a Go map.
type Identity struct {
	Vendor       string
	Version      string
	OS           string
	Architecture string
	ImageType    string
	FileType     string
}

// Identity extracts r's identity key.
func (r *Record) Identity() Identity {
	return Identity{
		Vendor:       r.Vendor,
		Version:      r.Version,
		OS:           r.OS,
		Architecture: r.Architecture,
		ImageType:    r.ImageType,
		FileType:     r.FileType,
	}
}

// SortFeatures puts Features in sorted order and drops the slice to nil
// when empty, satisfying the "feature determinism" property of spec §8:
// features are always emitted sorted, and an empty set is absent, never
// an empty array.
func (r *Record) SortFeatures() {
	if len(r.Features) == 0 {
		r.Features = nil
		return
	}
	sort.Strings(r.Features)
}

// Validate checks the invariants of spec §3. It does not check vocabulary
// closure for os/architecture — that is the normalize package's
// responsibility at construction time — but does check the remaining
// structural invariants every record must satisfy before being handed to
// the accumulator.
func (r *Record) Validate() error {
	switch {
	case r.Vendor == "":
		return fieldErr("vendor", "required")
	case r.Version == "":
		return fieldErr("version", "required")
	case r.JavaVersion == "":
		return fieldErr("java_version", "required")
	case r.OS == "":
		return fieldErr("os", "required")
	case r.Architecture == "":
		return fieldErr("architecture", "required")
	case r.ImageType == "":
		return fieldErr("image_type", "required")
	case r.FileType == "":
		return fieldErr("file_type", "required")
	case r.Filename == "":
		return fieldErr("filename", "required")
	case r.URL == "":
		return fieldErr("url", "required")
	case !strings.Contains(r.URL, "://"):
		return fieldErr("url", "must be absolute")
	case r.ReleaseType != ReleaseGA && r.ReleaseType != ReleaseEA:
		return fieldErr("release_type", "must be ga or ea")
	case r.JVMImpl != ImplHotspot && r.JVMImpl != ImplOpenJ9 && r.JVMImpl != ImplGraalVM:
		return fieldErr("jvm_impl", "must be hotspot, openj9, or graalvm")
	case r.Checksum != "" && !checksumRe.MatchString(r.Checksum):
		return fieldErr("checksum", "must match <algo>:<hex>")
	}
	return nil
}

func fieldErr(field, reason string) error {
	return &jmeta.Error{
		Kind:    jmeta.ErrDecode,
		Op:      "artifact.Validate",
		Message: fmt.Sprintf("field %q: %s", field, reason),
	}
}
