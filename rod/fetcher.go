// Package rod fetches script-rendered pages with headless Chrome via go-rod.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/domsift"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds one page render.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements domsift.Fetcher at compile time.
var _ domsift.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	settle       time.Duration
	scrolls      int
	managerOpts  []ManagerOption
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithSettle waits d after the load event so late feed items can render.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithScrolls scrolls to the bottom n times before capturing, loading more
// items on infinite-scroll pages.
func WithScrolls(n int) Option {
	return func(f *Fetcher) {
		f.scrolls = n
	}
}

// WithManagerOptions passes options to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher launches Chrome and returns a Fetcher.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{fetchTimeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", domsift.Errorf(domsift.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.PageDone()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	for range f.scrolls {
		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return "", err
		}
		if err := sleep(ctx, f.settle); err != nil {
			return "", err
		}
	}
	if f.scrolls == 0 {
		if err := sleep(ctx, f.settle); err != nil {
			return "", err
		}
	}

	return page.HTML()
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	f.closed.Store(true)
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
