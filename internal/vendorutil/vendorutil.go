// Package vendorutil holds the small set of helpers every vendor
// scraper in the vendor_* packages shares: the common asset filter
// (spec §4.4 step 2) and the release-type heuristic several
// GitHub-releases-shaped vendors apply identically (spec §4.4's
// Dragonwell/Kona/Mandrel/SAPMachine/Trava note). Anything more
// vendor-specific than this stays in the vendor's own package, per spec
// §9's "no value in unifying [per-vendor regexes]" design note.
package vendorutil

import (
	"strings"

	"golang.org/x/net/html"
)

var rejectSuffixes = []string{
	".sig", ".asc", ".sha256", ".sha1", ".sha512", ".md5",
	".jar", ".json", ".txt",
}

var rejectSubstrings = []string{
	"-sources", "-src", ".src.", "-debugsymbols", "-symbols", "-debuginfo",
}

// IsAsset reports whether filename should be treated as a downloadable
// artifact, rejecting sources, debug symbols, signatures, checksum
// sidecar files, and other non-binary assets (spec §4.4 step 2). A
// caller that needs a checksum sidecar file fetches it explicitly by
// name rather than through this filter.
func IsAsset(filename string) bool {
	lower := strings.ToLower(filename)
	for _, suf := range rejectSuffixes {
		if strings.HasSuffix(lower, suf) {
			return false
		}
	}
	for _, sub := range rejectSubstrings {
		if strings.Contains(lower, sub) {
			return false
		}
	}
	return true
}

// WalkAnchors walks n depth-first, invoking fn with the href of every
// anchor element found, matching the recursive *html.Node walk the
// teacher's suse.Factory.createUpdater uses over a parsed directory
// listing. Vendors with HTML landing pages (Microsoft, OpenJDK, Oracle,
// Oracle GraalVM) share this traversal; each supplies its own predicate
// and filename grammar via fn.
func WalkAnchors(n *html.Node, fn func(href string)) {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, a := range n.Attr {
			if a.Key == "href" {
				fn(a.Val)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		WalkAnchors(c, fn)
	}
}

// ReleaseTypeFromTag classifies a GitHub release as "ga" or "ea" from
// its tag and body text, per spec §4.4's shared heuristic: "preview",
// "Experimental", or "FP1" anywhere in the text means early access;
// "Final" means general availability; anything else defaults to "ga".
func ReleaseTypeFromTag(tag, body string) string {
	hay := tag + " " + body
	lower := strings.ToLower(hay)
	switch {
	case strings.Contains(lower, "preview"), strings.Contains(lower, "experimental"), strings.Contains(hay, "FP1"):
		return "ea"
	default:
		return "ga"
	}
}
