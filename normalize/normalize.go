// Package normalize implements the shared closed-vocabulary mapping
// tables of spec §4.3. Each vendor scraper keeps its own filename regex
// family, but all of them route the raw tokens they extract through
// these normalizers so the catalog ends up with one consistent
// vocabulary for os/architecture and one consistent version shape.
package normalize

import (
	"regexp"
	"strings"
)

// Closed OS vocabulary, spec §4.3.
const (
	OSLinux   = "linux"
	OSMacOS   = "macosx"
	OSWindows = "windows"
	OSSolaris = "solaris"
	OSAix     = "aix"
)

// Closed architecture vocabulary, spec §4.3.
const (
	ArchX8664       = "x86_64"
	ArchI686        = "i686"
	ArchAarch64     = "aarch64"
	ArchArm32       = "arm32"
	ArchArm32VFPHF  = "arm32-vfp-hflt"
	ArchPPC32       = "ppc32"
	ArchPPC32HF     = "ppc32hf"
	ArchPPC32SPE    = "ppc32spe"
	ArchPPC64       = "ppc64"
	ArchPPC64LE     = "ppc64le"
	ArchS390        = "s390"
	ArchS390X       = "s390x"
	ArchSparc       = "sparc"
	ArchRISCV64     = "riscv64"
)

var archTable = map[string]string{
	"amd64": ArchX8664, "x64": ArchX8664, "x86_64": ArchX8664, "x86-64": ArchX8664, "x86lx64": ArchX8664,
	"x32": ArchI686, "x86": ArchI686, "x86_32": ArchI686, "x86-32": ArchI686, "i386": ArchI686, "i586": ArchI686, "i686": ArchI686,
	"aarch64": ArchAarch64, "arm64": ArchAarch64,
	"arm": ArchArm32, "arm32": ArchArm32, "armv7": ArchArm32, "aarch32sf": ArchArm32,
	"arm32-vfp-hflt": ArchArm32VFPHF, "aarch32hf": ArchArm32VFPHF,
	"ppc": ArchPPC32, "ppc32hf": ArchPPC32HF, "ppc32spe": ArchPPC32SPE,
	"ppc64": ArchPPC64, "ppc64le": ArchPPC64LE,
	"s390": ArchS390, "s390x": ArchS390X,
	"sparcv9":  ArchSparc,
	"riscv64":  ArchRISCV64,
}

var osTable = map[string]string{
	"linux": OSLinux, "alpine": OSLinux, "alpine-linux": OSLinux, "linux-musl": OSLinux, "linux_musl": OSLinux,
	"mac": OSMacOS, "macos": OSMacOS, "macosx": OSMacOS, "osx": OSMacOS, "darwin": OSMacOS,
	"win": OSWindows, "windows": OSWindows,
	"solaris": OSSolaris,
	"aix":     OSAix,
}

// Arch maps a raw architecture token to the closed vocabulary of spec
// §4.3. Unknown tokens become "unknown-arch-<raw>" rather than an error,
// per spec §4.3 ("everything else").
func Arch(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if v, ok := archTable[key]; ok {
		return v
	}
	return "unknown-arch-" + key
}

// OS maps a raw OS token to the closed vocabulary of spec §4.3. Unknown
// tokens become "unknown-os-<raw>".
func OS(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if v, ok := osTable[key]; ok {
		return v
	}
	return "unknown-os-" + key
}

var (
	bareMajorRe   = regexp.MustCompile(`^[0-9]+([-+].+)?$`)
	numericPrefix = regexp.MustCompile(`^[0-9][0-9_]*`)
)

// Version normalizes a raw JVM version string into a semver-compatible
// form, per spec §4.3:
//   - a bare major (optionally with a -/+  suffix) gets ".0.0" injected
//     before the suffix: "18" -> "18.0.0", "18-ea+1" -> "18.0.0-ea+1".
//   - underscore separators in the numeric prefix become dots:
//     "18_0_2+build" -> "18.0.2+build".
//   - anything else is left unchanged.
//
// Version is idempotent: Version(Version(s)) == Version(s) for all s, as
// required by spec §8's normalization idempotence property — re-running
// it against an already-normalized string is a no-op because the bare
// major form no longer matches once it contains dots.
func Version(raw string) string {
	s := raw
	if bareMajorRe.MatchString(s) {
		i := strings.IndexAny(s, "-+")
		if i < 0 {
			return s + ".0.0"
		}
		return s[:i] + ".0.0" + s[i:]
	}
	if loc := numericPrefix.FindStringIndex(s); loc != nil {
		prefix := s[loc[0]:loc[1]]
		if strings.Contains(prefix, "_") {
			return strings.ReplaceAll(prefix, "_", ".") + s[loc[1]:]
		}
	}
	return s
}
