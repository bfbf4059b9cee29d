package mock

import (
	"context"
	"regexp"

	"github.com/fwojciec/domsift"
)

var _ domsift.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of domsift.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ domsift.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of domsift.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ domsift.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of domsift.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, target string, match *regexp.Regexp) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, target string, match *regexp.Regexp) ([]string, error) {
	return s.DiscoverURLsFn(ctx, target, match)
}
