package domsift

import (
	"context"
	"regexp"
)

// SitemapService discovers page URLs from a site's sitemaps, so feeds and
// listing pages can be batch-reduced without naming every URL.
type SitemapService interface {
	// DiscoverURLs returns page URLs, in sitemap order and without repeats.
	// target is either a sitemap XML URL or a site URL whose sitemaps are
	// found through robots.txt or /sitemap.xml. A non-nil match keeps only
	// matching URLs.
	DiscoverURLs(ctx context.Context, target string, match *regexp.Regexp) ([]string, error)
}
