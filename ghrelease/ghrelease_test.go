package ghrelease

import (
	"net/http"
	"testing"
)

func TestNextLinkParsesNextRel(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("link", `<https://api.github.com/repos/x/x/releases?page=2>; rel="next", <https://api.github.com/repos/x/x/releases?page=9>; rel="last"`)
	want := "https://api.github.com/repos/x/x/releases?page=2"
	if got := nextLink(hdr); got != want {
		t.Errorf("nextLink() = %q, want %q", got, want)
	}
}

func TestNextLinkNoNextPage(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("link", `<https://api.github.com/repos/x/x/releases?page=1>; rel="prev"`)
	if got := nextLink(hdr); got != "" {
		t.Errorf("nextLink() = %q, want empty", got)
	}
}

func TestNextLinkMissingHeader(t *testing.T) {
	if got := nextLink(http.Header{}); got != "" {
		t.Errorf("nextLink() = %q, want empty", got)
	}
}

// filterReleases mirrors the draft/prerelease predicate List applies to
// whatever ListAll returns, exercised here without a live API round trip.
func filterReleases(all []Release) []Release {
	out := all[:0:0]
	for _, r := range all {
		if r.Draft || r.Prerelease {
			continue
		}
		out = append(out, r)
	}
	return out
}

func TestListFiltersDraftsAndPrereleases(t *testing.T) {
	all := []Release{
		{TagName: "11.0.19"},
		{TagName: "11.0.20-beta", Prerelease: true},
		{TagName: "11.0.21-draft", Draft: true},
	}
	out := filterReleases(all)
	if len(out) != 1 || out[0].TagName != "11.0.19" {
		t.Errorf("filtered releases = %+v, want only 11.0.19", out)
	}
}
