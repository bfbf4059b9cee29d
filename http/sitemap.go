package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/domsift"
)

// maxSitemapDepth bounds sitemap index nesting.
const maxSitemapDepth = 3

// Ensure SitemapService implements domsift.SitemapService.
var _ domsift.SitemapService = (*SitemapService)(nil)

// SitemapService reads sitemaps over HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed by target's sitemaps.
// Returns an empty slice (not nil) if no sitemaps are found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, target string, match *regexp.Regexp) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(target)
	if err != nil || base.Host == "" {
		return nil, domsift.Errorf(domsift.EINVALID, "invalid sitemap URL: %s", target)
	}

	sitemaps := []string{target}
	if !strings.HasSuffix(strings.ToLower(base.Path), ".xml") {
		root := &url.URL{Scheme: base.Scheme, Host: base.Host}
		sitemaps = s.findSitemaps(ctx, root)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	urls := []string{}
	seenURLs := make(map[string]bool)
	seenSitemaps := make(map[string]bool)
	for _, sm := range sitemaps {
		found, err := s.readSitemap(ctx, sm, seenSitemaps, 0)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seenURLs[u] || (match != nil && !match.MatchString(u)) {
				continue
			}
			seenURLs[u] = true
			urls = append(urls, u)
		}
	}

	return urls, nil
}

// findSitemaps reads Sitemap: lines from robots.txt and falls back to
// /sitemap.xml. Lookup failures mean no sitemaps.
func (s *SitemapService) findSitemaps(ctx context.Context, root *url.URL) []string {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.get(ctx, robots); err == nil {
		defer body.Close()

		var sitemaps []string
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if len(line) > len("sitemap:") && strings.EqualFold(line[:len("sitemap:")], "sitemap:") {
				if u := strings.TrimSpace(line[len("sitemap:"):]); u != "" {
					sitemaps = append(sitemaps, u)
				}
			}
		}
		if len(sitemaps) > 0 {
			return sitemaps
		}
	}

	return []string{root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}
}

// readSitemap parses a urlset, following sitemap indexes.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool, depth int) ([]string, error) {
	if seen[sitemapURL] || depth > maxSitemapDepth {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, domsift.Errorf(domsift.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, domsift.Errorf(domsift.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, loc := range locs(root, "sitemap") {
			found, err := s.readSitemap(ctx, loc, seen, depth+1)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	return locs(root, "url"), nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}
