package normalize

import "testing"

func TestArchKnownTokens(t *testing.T) {
	cases := map[string]string{
		"x64":     ArchX8664,
		"amd64":   ArchX8664,
		"aarch64": ArchAarch64,
		"arm64":   ArchAarch64,
		"ppc64le": ArchPPC64LE,
		"s390x":   ArchS390X,
		"X64":     ArchX8664,
	}
	for raw, want := range cases {
		if got := Arch(raw); got != want {
			t.Errorf("Arch(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestArchUnknownFallsBackToTaggedToken(t *testing.T) {
	got := Arch("mips64")
	want := "unknown-arch-mips64"
	if got != want {
		t.Errorf("Arch(mips64) = %q, want %q", got, want)
	}
}

func TestOSKnownTokens(t *testing.T) {
	cases := map[string]string{
		"alpine-linux": OSLinux,
		"osx":          OSMacOS,
		"win":          OSWindows,
		"Windows":      OSWindows,
	}
	for raw, want := range cases {
		if got := OS(raw); got != want {
			t.Errorf("OS(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestOSUnknownFallsBackToTaggedToken(t *testing.T) {
	got := OS("plan9")
	want := "unknown-os-plan9"
	if got != want {
		t.Errorf("OS(plan9) = %q, want %q", got, want)
	}
}

func TestVersionBareMajor(t *testing.T) {
	cases := map[string]string{
		"18":       "18.0.0",
		"18-ea+1":  "18.0.0-ea+1",
		"24+36":    "24.0.0+36",
	}
	for raw, want := range cases {
		if got := Version(raw); got != want {
			t.Errorf("Version(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestVersionUnderscoreSeparators(t *testing.T) {
	got := Version("18_0_2+build")
	want := "18.0.2+build"
	if got != want {
		t.Errorf("Version(18_0_2+build) = %q, want %q", got, want)
	}
}

func TestVersionUnchangedWhenAlreadyDotted(t *testing.T) {
	got := Version("11.0.19.7.1")
	want := "11.0.19.7.1"
	if got != want {
		t.Errorf("Version(11.0.19.7.1) = %q, want %q", got, want)
	}
}

func TestVersionIdempotent(t *testing.T) {
	inputs := []string{"18", "18-ea+1", "18_0_2+build", "11.0.19.7.1", "24+36"}
	for _, raw := range inputs {
		once := Version(raw)
		twice := Version(once)
		if once != twice {
			t.Errorf("Version not idempotent for %q: Version(raw)=%q, Version(Version(raw))=%q", raw, once, twice)
		}
	}
}
