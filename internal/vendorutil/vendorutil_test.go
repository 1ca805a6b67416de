package vendorutil

import "testing"

func TestIsAsset(t *testing.T) {
	cases := map[string]bool{
		"amazon-corretto-11.0.19.7.1-linux-x64.tar.gz": true,
		"amazon-corretto-11.0.19.7.1-linux-x64.tar.gz.sig": false,
		"amazon-corretto-11.0.19.7.1.src.tar.gz":           false,
		"bundle.jar":                                       false,
		"release-manifest.json":                             false,
		"checksums.txt":                                     false,
		"openjdk-21_linux-x64_bin-debugsymbols.tar.gz":       false,
	}
	for name, want := range cases {
		if got := IsAsset(name); got != want {
			t.Errorf("IsAsset(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestReleaseTypeFromTag(t *testing.T) {
	cases := []struct {
		tag, body, want string
	}{
		{"jdk-21.0.1-FP1", "", "ea"},
		{"jdk-21.0.1", "This is a preview build", "ea"},
		{"jdk-21.0.1", "Experimental features enabled", "ea"},
		{"jdk-21.0.1-Final", "", "ga"},
		{"jdk-21.0.1", "stable release", "ga"},
	}
	for _, c := range cases {
		if got := ReleaseTypeFromTag(c.tag, c.body); got != c.want {
			t.Errorf("ReleaseTypeFromTag(%q, %q) = %q, want %q", c.tag, c.body, got, c.want)
		}
	}
}
