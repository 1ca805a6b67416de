// Package ghrelease lists GitHub releases for a repository, following
// Link-header pagination (spec §4.2). The pagination idiom (parsing the
// "rel=next" Link header by hand) is grounded on the pack's own
// self-update client rather than pulling in a full GitHub SDK, since the
// lister only ever needs this one endpoint shape.
package ghrelease

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmeta/jmeta"
	"github.com/jmeta/jmeta/httpclient"
)

// Release is the subset of a GitHub release object the aggregator cares
// about.
type Release struct {
	TagName    string  `json:"tag_name"`
	Name       string  `json:"name"`
	Body       string  `json:"body"`
	Draft      bool    `json:"draft"`
	Prerelease bool    `json:"prerelease"`
	Assets     []Asset `json:"assets"`
}

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// ListAll returns every release for owner/repo across all pages,
// including drafts and prereleases, so a scraper that needs prerelease
// status to set release_type = ea can inspect it (spec §4.2).
func ListAll(ctx context.Context, c *httpclient.Client, slug string) ([]Release, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases?per_page=100", slug)
	var all []Release
	for url != "" {
		page, hdr, err := httpclient.GetJSON[[]Release](ctx, c, url)
		if err != nil {
			return nil, &jmeta.Error{Kind: jmeta.ErrNetwork, Op: "ghrelease.ListAll", Message: slug, Inner: err}
		}
		all = append(all, page...)
		url = nextLink(hdr)
	}
	return all, nil
}

// List returns every release for owner/repo, excluding drafts and
// prereleases, per spec §4.2's default filtering.
func List(ctx context.Context, c *httpclient.Client, slug string) ([]Release, error) {
	all, err := ListAll(ctx, c, slug)
	if err != nil {
		return nil, err
	}
	out := all[:0:0]
	for _, r := range all {
		if r.Draft || r.Prerelease {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// nextLink extracts the rel="next" URL from a GitHub Link response
// header, e.g.:
//
//	<https://api.github.com/...?page=2>; rel="next", <...>; rel="last"
//
// Returns "" when no next page is present, terminating pagination.
func nextLink(hdr http.Header) string {
	raw := hdr.Get("link")
	if raw == "" {
		return ""
	}
	for _, part := range strings.Split(raw, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start < 0 || end < 0 || end <= start {
			continue
		}
		return part[start+1 : end]
	}
	return ""
}
